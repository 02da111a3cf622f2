package model

import "time"

// LeaderboardScope selects which ledger a ranking is computed over
type LeaderboardScope struct {
	Kind      ScopeKind
	EpisodeID int // only for ScopeEpisode
}

// ScopeKind enumerates the three ranked collections
type ScopeKind string

const (
	ScopeGeneral ScopeKind = "general"
	ScopeEpisode ScopeKind = "episode"
	ScopeMixed   ScopeKind = "mixed"
)

// RankedRecord is a storage-agnostic row used for ranking
type RankedRecord struct {
	PlayerName        string
	Score             int
	EpisodesCompleted int
	QuestionsAnswered int
	Timestamp         time.Time
}

// LeaderboardEntry is one ranked row. Only the fields relevant to the scope are rendered.
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	PlayerName        string `json:"player_name"`
	Score             int    `json:"score"`
	EpisodesCompleted *int   `json:"episodes_completed,omitempty"`
	QuestionsAnswered *int   `json:"questions_answered,omitempty"`
}

// Leaderboard is the response for every leaderboard endpoint
type Leaderboard struct {
	Entries      []LeaderboardEntry `json:"entries"`
	PlayerRank   *int               `json:"player_rank"`
	PlayerScore  *int               `json:"player_score"`
	TotalPlayers int64              `json:"total_players"`
}
