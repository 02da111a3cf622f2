package handler

import (
	"context"
	"denizquiz/internal/catalog"
	"denizquiz/internal/model"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// QuizAPI is the quiz side of the service layer
type QuizAPI interface {
	Episodes(ctx context.Context) []model.Episode
	EpisodeQuiz(ctx context.Context, episodeID, count int) (*model.Quiz, error)
	MixedQuiz(ctx context.Context) (*model.Quiz, error)
	RefreshCatalog(ctx context.Context) (catalog.RefreshResult, error)
}

// QuizHandler handles episode, quiz and catalog maintenance endpoints
type QuizHandler struct {
	quiz         QuizAPI
	defaultCount int
	log          *zap.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quiz QuizAPI, defaultCount int, log *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quiz:         quiz,
		defaultCount: defaultCount,
		log:          log,
	}
}

// Episodes handles GET /api/episodes
func (h *QuizHandler) Episodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quiz.Episodes(r.Context()))
}

// EpisodeQuiz handles GET /api/quiz/episode/{id}?count=N and the legacy GET /api/quiz/{id}
func (h *QuizHandler) EpisodeQuiz(w http.ResponseWriter, r *http.Request) {
	episodeID, err := pathInt(mux.Vars(r)["id"], "episode_id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	count := h.defaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		if count, err = pathInt(raw, "count"); err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
	}

	q, err := h.quiz.EpisodeQuiz(r.Context(), episodeID, count)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// MixedQuiz handles GET /api/quiz/mixed
func (h *QuizHandler) MixedQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.quiz.MixedQuiz(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// RefreshCache handles GET /api/refresh-cache
func (h *QuizHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	res, err := h.quiz.RefreshCatalog(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"episodes":  res.Episodes,
		"questions": res.Questions,
	})
}
