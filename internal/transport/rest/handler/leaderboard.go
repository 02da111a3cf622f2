package handler

import (
	"context"
	"denizquiz/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LeaderboardAPI is the ranking side of the service layer
type LeaderboardAPI interface {
	General(ctx context.Context, playerName string) (*model.Leaderboard, error)
	Episode(ctx context.Context, episodeID int, playerName string) (*model.Leaderboard, error)
	Mixed(ctx context.Context, playerName string) (*model.Leaderboard, error)
}

// legacyTopSize is how many entries the old leaderboard payload carries
const legacyTopSize = 10

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	boards LeaderboardAPI
	log    *zap.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(boards LeaderboardAPI, log *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{boards: boards, log: log}
}

// General handles GET /api/leaderboard/general
func (h *LeaderboardHandler) General(w http.ResponseWriter, r *http.Request) {
	lb, err := h.boards.General(r.Context(), r.URL.Query().Get("player_name"))
	h.respond(w, r, lb, err)
}

// Mixed handles GET /api/leaderboard/mixed
func (h *LeaderboardHandler) Mixed(w http.ResponseWriter, r *http.Request) {
	lb, err := h.boards.Mixed(r.Context(), r.URL.Query().Get("player_name"))
	h.respond(w, r, lb, err)
}

// Episode handles GET /api/leaderboard/episode/{id}
func (h *LeaderboardHandler) Episode(w http.ResponseWriter, r *http.Request) {
	lb, err := h.episode(r)
	h.respond(w, r, lb, err)
}

// Legacy handles GET /api/leaderboard/{id} with the old response shape
func (h *LeaderboardHandler) Legacy(w http.ResponseWriter, r *http.Request) {
	lb, err := h.episode(r)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	top := lb.Entries
	if len(top) > legacyTopSize {
		top = top[:legacyTopSize]
	}
	// a stored zero reports no entry
	var entry interface{}
	if lb.PlayerScore != nil && *lb.PlayerScore != 0 {
		entry = map[string]int{"score": *lb.PlayerScore}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"top_10":        top,
		"player_rank":   lb.PlayerRank,
		"player_entry":  entry,
		"total_players": lb.TotalPlayers,
	})
}

func (h *LeaderboardHandler) episode(r *http.Request) (*model.Leaderboard, error) {
	episodeID, err := pathInt(mux.Vars(r)["id"], "episode_id")
	if err != nil {
		return nil, err
	}
	return h.boards.Episode(r.Context(), episodeID, r.URL.Query().Get("player_name"))
}

func (h *LeaderboardHandler) respond(w http.ResponseWriter, r *http.Request, lb *model.Leaderboard, err error) {
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, lb)
}
