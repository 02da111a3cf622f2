package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings
type Config struct {
	HTTPPort string `mapstructure:"port"`

	MongoURL string `mapstructure:"mongo_url"`
	DBName   string `mapstructure:"db_name"`
	RedisURL string `mapstructure:"redis_url"`

	Sheets SheetsConfig `mapstructure:",squash"`
	Quiz   QuizConfig   `mapstructure:",squash"`

	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// SheetsConfig locates the upstream spreadsheet
type SheetsConfig struct {
	BaseURL      string        `mapstructure:"sheets_base_url"`
	SheetID      string        `mapstructure:"sheet_id"`
	EpisodesGID  string        `mapstructure:"episodes_gid"`
	QuestionsGID string        `mapstructure:"questions_gid"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// QuizConfig bounds sessions and leaderboards
type QuizConfig struct {
	EpisodeCount         int `mapstructure:"episode_count"`
	MaxQuestions         int `mapstructure:"max_questions"`
	DefaultQuestionCount int `mapstructure:"default_question_count"`
	LeaderboardLimit     int `mapstructure:"leaderboard_limit"`
}

var defaults = map[string]interface{}{
	"port":                   "8001",
	"mongo_url":              "mongodb://localhost:27017",
	"db_name":                "denizquiz",
	"redis_url":              "",
	"sheets_base_url":        "https://docs.google.com/spreadsheets/d",
	"sheet_id":               "1txXN5xN_W4OaLL2FVm6QM5TzbUeb4KMWKWYK55GvOIc",
	"episodes_gid":           "0",
	"questions_gid":          "1459380949",
	"fetch_timeout":          "30s",
	"episode_count":          14,
	"max_questions":          25,
	"default_question_count": 25,
	"leaderboard_limit":      50,
	"cache_ttl":              "300s",
	"cors_allowed_origins":   "*",
	"log_level":              "info",
	"log_file":               "",
}

// Load reads an optional .env file and then the process environment.
// Environment variables use the upper-cased key names, e.g. MONGO_URL.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		// a missing .env is fine; real deployments set the environment directly
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Quiz.EpisodeCount <= 0 {
		return fmt.Errorf("EPISODE_COUNT must be positive, got %d", c.Quiz.EpisodeCount)
	}
	if c.Quiz.MaxQuestions <= 0 {
		return fmt.Errorf("MAX_QUESTIONS must be positive, got %d", c.Quiz.MaxQuestions)
	}
	if c.Quiz.DefaultQuestionCount <= 0 {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT must be positive, got %d", c.Quiz.DefaultQuestionCount)
	}
	if c.Quiz.LeaderboardLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive, got %d", c.Quiz.LeaderboardLimit)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.Sheets.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.Sheets.FetchTimeout)
	}
	if c.Sheets.SheetID == "" {
		return fmt.Errorf("SHEET_ID is required")
	}
	return nil
}
