package model

import "strings"

// Difficulty labels as they appear in the catalog's native language
type Difficulty string

const (
	DifficultyEasy   Difficulty = "kolay"
	DifficultyMedium Difficulty = "orta"
	DifficultyHard   Difficulty = "zor"
)

// Points awarded per difficulty
const (
	PointsEasy   = 10
	PointsMedium = 20
	PointsHard   = 50

	// SpeedBonusCeiling is the most a client can add per question for answering fast
	SpeedBonusCeiling = 5
)

// OptionLabels is the fixed positional label sequence
var OptionLabels = []string{"A", "B", "C", "D"}

// ParseDifficulty maps English and native synonyms to a canonical label.
// Anything unrecognized, including empty, is medium.
func ParseDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy", "kolay":
		return DifficultyEasy
	case "hard", "zor":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Points returns the score value of a correctly answered question of this difficulty
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return PointsEasy
	case DifficultyHard:
		return PointsHard
	default:
		return PointsMedium
	}
}

// RawQuestion is a catalog question before its options are shuffled
type RawQuestion struct {
	ID           string            `json:"id"`
	EpisodeID    int               `json:"episode_id"`
	Text         string            `json:"text"`
	Options      map[string]string `json:"options"` // label -> text, empty text means absent
	CorrectLabel string            `json:"correct_label"`
	Difficulty   Difficulty        `json:"difficulty"`
	Points       int               `json:"points"`
}

// CorrectText returns the text of the correct option
func (q RawQuestion) CorrectText() string {
	return q.Options[q.CorrectLabel]
}

// Option is one presented answer choice
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PresentedQuestion is a question with shuffled, positionally relabelled options
type PresentedQuestion struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Options       []Option   `json:"options"`
	CorrectOption string     `json:"correct_option"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        int        `json:"points"`
}

// QuizMode distinguishes single-episode sessions from the pooled endless mode
type QuizMode string

const (
	QuizModeEpisode QuizMode = "episode"
	QuizModeMixed   QuizMode = "mixed"
)

// MixedEpisodeName is shown as the episode name for mixed sessions
const MixedEpisodeName = "Karışık Mod"

// Quiz is the session payload returned to clients
type Quiz struct {
	EpisodeID        *int                `json:"episode_id"`
	EpisodeName      string              `json:"episode_name"`
	Questions        []PresentedQuestion `json:"questions"`
	TotalQuestions   int                 `json:"total_questions"`
	MaxPossibleScore int                 `json:"max_possible_score"`
	Mode             QuizMode            `json:"mode"`
}
