// Package app wires configuration, storage, the catalog and the services
// into a runnable HTTP application.
package app

import (
	"context"
	"denizquiz/internal/cache"
	"denizquiz/internal/catalog"
	"denizquiz/internal/config"
	"denizquiz/internal/metrics"
	"denizquiz/internal/quiz"
	"denizquiz/internal/repository"
	"denizquiz/internal/service"
	"denizquiz/internal/sheets"
	"denizquiz/internal/transport/rest"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// App holds every long-lived dependency of the server
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client

	Catalog   *catalog.Loader
	Assembler *quiz.Assembler

	QuizService        *service.QuizService
	ScoreService       *service.ScoreService
	LeaderboardService *service.LeaderboardService
}

// NewRegistry returns a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// ConnectMongo connects and pings the document store
func ConnectMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Info("connected to MongoDB", zap.String("db", cfg.DBName))
	return client, nil
}

// NewCache picks the catalog cache: Redis when REDIS_URL is set, otherwise an
// in-process table. The returned client is nil for the in-memory cache.
func NewCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.Cache, *redis.Client, error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory catalog cache", zap.Duration("ttl", cfg.CacheTTL))
		return cache.NewMemoryCache(cfg.CacheTTL, cache.DefaultMaxEntries), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	log.Info("using Redis catalog cache", zap.String("addr", opts.Addr), zap.Duration("ttl", cfg.CacheTTL))
	return cache.NewRedisCache(rdb, cfg.CacheTTL), rdb, nil
}

// NewCatalog builds the spreadsheet-backed catalog loader
func NewCatalog(cfg *config.Config, c cache.Cache, log *zap.Logger, m *metrics.Metrics) *catalog.Loader {
	client := sheets.NewClient(cfg.Sheets.BaseURL, cfg.Sheets.SheetID, cfg.Sheets.FetchTimeout, log)
	return catalog.NewLoader(client, c, catalog.Config{
		EpisodesGID:   cfg.Sheets.EpisodesGID,
		QuestionsGID:  cfg.Sheets.QuestionsGID,
		EpisodeCount:  cfg.Quiz.EpisodeCount,
		QuestionCount: cfg.Quiz.MaxQuestions,
	}, log, m)
}

// New connects to every backing store and builds the services
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Log:      log,
		Registry: NewRegistry(),
	}
	a.Metrics = metrics.New(a.Registry)

	mongoClient, err := ConnectMongo(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.Mongo = mongoClient
	a.DB = mongoClient.Database(cfg.DBName)

	if err := repository.EnsureIndexes(ctx, a.DB, log); err != nil {
		log.Warn("continuing without all indexes", zap.Error(err))
	}

	c, rdb, err := NewCache(ctx, cfg, log)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.Redis = rdb

	a.Catalog = NewCatalog(cfg, c, log, a.Metrics)
	a.Assembler = quiz.NewAssembler(cfg.Quiz.EpisodeCount, cfg.Quiz.MaxQuestions)

	a.QuizService = service.NewQuizService(a.Catalog, a.Assembler, nil, log)
	a.ScoreService = service.NewScoreService(repository.NewScoreRepo(a.DB), a.Assembler, a.Metrics, log)
	a.LeaderboardService = service.NewLeaderboardService(repository.NewLeaderboardRepo(a.DB), a.Assembler, cfg.Quiz.LeaderboardLimit)

	return a, nil
}

// Handler returns the HTTP handler for the whole API
func (a *App) Handler() http.Handler {
	return rest.NewRouter(&rest.Container{
		QuizService:          a.QuizService,
		ScoreService:         a.ScoreService,
		LeaderboardService:   a.LeaderboardService,
		Metrics:              a.Metrics,
		Gatherer:             a.Registry,
		Log:                  a.Log,
		AllowedOrigins:       a.Config.CORSAllowedOrigins,
		DefaultQuestionCount: a.Config.Quiz.DefaultQuestionCount,
	})
}

// Close releases the store connections
func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("failed to close Redis", zap.Error(err))
		}
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			a.Log.Warn("failed to disconnect MongoDB", zap.Error(err))
		}
	}
}
