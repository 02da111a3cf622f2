package handler

import (
	"context"
	"denizquiz/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ScoreAPI is the score ledger side of the service layer
type ScoreAPI interface {
	SubmitEpisode(ctx context.Context, sub model.EpisodeScoreSubmission) (model.SubmitResult, error)
	SubmitMixed(ctx context.Context, sub model.MixedScoreSubmission) (model.SubmitResult, error)
	PlayerStats(ctx context.Context, playerName string) (*model.PlayerStats, error)
}

// ScoreHandler handles score submission and player stats endpoints
type ScoreHandler struct {
	scores ScoreAPI
	log    *zap.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores ScoreAPI, log *zap.Logger) *ScoreHandler {
	return &ScoreHandler{scores: scores, log: log}
}

// SubmitEpisode handles POST /api/score/episode
func (h *ScoreHandler) SubmitEpisode(w http.ResponseWriter, r *http.Request) {
	var req model.EpisodeScoreSubmission
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	h.submitEpisode(w, r, req)
}

// LegacySubmit handles POST /api/leaderboard. Missing fields fall back to
// episode 1 and the anonymous player.
func (h *ScoreHandler) LegacySubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EpisodeID  *int    `json:"episode_id"`
		PlayerName *string `json:"player_name"`
		Score      int     `json:"score"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	sub := model.EpisodeScoreSubmission{EpisodeID: 1, PlayerName: model.AnonymousPlayer, Score: req.Score}
	if req.EpisodeID != nil {
		sub.EpisodeID = *req.EpisodeID
	}
	if req.PlayerName != nil {
		sub.PlayerName = *req.PlayerName
	}
	h.submitEpisode(w, r, sub)
}

func (h *ScoreHandler) submitEpisode(w http.ResponseWriter, r *http.Request, sub model.EpisodeScoreSubmission) {
	res, err := h.scores.SubmitEpisode(r.Context(), sub)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SubmitMixed handles POST /api/score/mixed
func (h *ScoreHandler) SubmitMixed(w http.ResponseWriter, r *http.Request) {
	var req model.MixedScoreSubmission
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res, err := h.scores.SubmitMixed(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PlayerStats handles GET /api/player/{name}/stats
func (h *ScoreHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scores.PlayerStats(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
