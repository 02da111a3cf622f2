package rest

import (
	"denizquiz/internal/metrics"
	"denizquiz/internal/transport/rest/handler"
	"denizquiz/internal/transport/rest/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// APIVersion is reported by the banner endpoint
const APIVersion = "2.0"

const bannerMessage = "Taşacak Bu Deniz Quiz API"

// Container holds all dependencies for the router
type Container struct {
	QuizService        handler.QuizAPI
	ScoreService       handler.ScoreAPI
	LeaderboardService handler.LeaderboardAPI

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      *zap.Logger

	AllowedOrigins       string
	DefaultQuestionCount int
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	quizHandler := handler.NewQuizHandler(c.QuizService, c.DefaultQuestionCount, c.Log)
	scoreHandler := handler.NewScoreHandler(c.ScoreService, c.Log)
	boardHandler := handler.NewLeaderboardHandler(c.LeaderboardService, c.Log)

	if c.Metrics != nil {
		r.Use(c.Metrics.Middleware)
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/", banner).Methods("GET")
	api.HandleFunc("/episodes", quizHandler.Episodes).Methods("GET")

	// Quiz sessions
	api.HandleFunc("/quiz/mixed", quizHandler.MixedQuiz).Methods("GET")
	api.HandleFunc("/quiz/episode/{id}", quizHandler.EpisodeQuiz).Methods("GET")
	api.HandleFunc("/quiz/{id}", quizHandler.EpisodeQuiz).Methods("GET")

	// Scores
	api.HandleFunc("/score/episode", scoreHandler.SubmitEpisode).Methods("POST")
	api.HandleFunc("/score/mixed", scoreHandler.SubmitMixed).Methods("POST")
	api.HandleFunc("/player/{name}/stats", scoreHandler.PlayerStats).Methods("GET")

	// Leaderboards; the fixed paths must be registered before the legacy {id} route
	api.HandleFunc("/leaderboard/general", boardHandler.General).Methods("GET")
	api.HandleFunc("/leaderboard/mixed", boardHandler.Mixed).Methods("GET")
	api.HandleFunc("/leaderboard/episode/{id}", boardHandler.Episode).Methods("GET")
	api.HandleFunc("/leaderboard/{id}", boardHandler.Legacy).Methods("GET")
	api.HandleFunc("/leaderboard", scoreHandler.LegacySubmit).Methods("POST")

	// Maintenance
	api.HandleFunc("/refresh-cache", quizHandler.RefreshCache).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	var h http.Handler = r
	h = middleware.AccessLog(c.Log)(h)
	h = middleware.CORS(c.AllowedOrigins)(h)
	return h
}

func banner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"` + bannerMessage + `","version":"` + APIVersion + `"}`))
}
