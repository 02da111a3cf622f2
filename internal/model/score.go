package model

import "time"

// AnonymousPlayer is rendered when a stored record has no name
const AnonymousPlayer = "Anonim"

// Player name length bounds, counted in characters after trimming
const (
	PlayerNameMin = 2
	PlayerNameMax = 20
)

// EpisodeScore is a player's best run on one episode
type EpisodeScore struct {
	ID           string    `json:"id" bson:"id"`
	PlayerName   string    `json:"player_name" bson:"player_name"`
	EpisodeID    int       `json:"episode_id" bson:"episode_id"`
	Score        int       `json:"score" bson:"score"`
	CorrectCount int       `json:"correct_count" bson:"correct_count"`
	SpeedBonus   int       `json:"speed_bonus" bson:"speed_bonus"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}

// MixedScore is a player's best endless-mode run
type MixedScore struct {
	ID                string    `json:"id" bson:"id"`
	PlayerName        string    `json:"player_name" bson:"player_name"`
	Score             int       `json:"score" bson:"score"`
	CorrectCount      int       `json:"correct_count" bson:"correct_count"`
	SpeedBonus        int       `json:"speed_bonus" bson:"speed_bonus"`
	QuestionsAnswered int       `json:"questions_answered" bson:"questions_answered"`
	Timestamp         time.Time `json:"timestamp" bson:"timestamp"`
}

// GlobalScore aggregates a player's episode bests
type GlobalScore struct {
	PlayerName        string    `json:"player_name" bson:"player_name"`
	Score             int       `json:"score" bson:"score"`
	EpisodesCompleted int       `json:"episodes_completed" bson:"episodes_completed"`
	Timestamp         time.Time `json:"timestamp" bson:"timestamp"`
}

// EpisodeScoreSubmission is the request body for POST /score/episode
type EpisodeScoreSubmission struct {
	PlayerName   string `json:"player_name" validate:"player_name"`
	EpisodeID    int    `json:"episode_id"`
	Score        int    `json:"score" validate:"gte=0"`
	CorrectCount int    `json:"correct_count" validate:"gte=0"`
	SpeedBonus   int    `json:"speed_bonus" validate:"gte=0"`
}

// MixedScoreSubmission is the request body for POST /score/mixed
type MixedScoreSubmission struct {
	PlayerName        string `json:"player_name" validate:"player_name"`
	Score             int    `json:"score" validate:"gte=0"`
	CorrectCount      int    `json:"correct_count" validate:"gte=0"`
	SpeedBonus        int    `json:"speed_bonus" validate:"gte=0"`
	QuestionsAnswered int    `json:"questions_answered" validate:"gte=0"`
}

// SubmitResult reports the outcome of a best-score-only submission
type SubmitResult struct {
	Success     bool `json:"success"`
	IsNewRecord bool `json:"is_new_record"`
	BestScore   int  `json:"best_score"`
}

// PlayerStats summarizes everything stored for one player
type PlayerStats struct {
	PlayerName        string      `json:"player_name"`
	GlobalScore       int         `json:"global_score"`
	EpisodesCompleted int         `json:"episodes_completed"`
	EpisodeScores     map[int]int `json:"episode_scores"`
	MixedBestScore    int         `json:"mixed_best_score"`
}
