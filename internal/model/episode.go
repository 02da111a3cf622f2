package model

import "fmt"

// Episode is a themed group of questions served by the catalog
type Episode struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
	IsLocked      bool   `json:"is_locked"`
	Description   string `json:"description"`
}

// PlaceholderEpisode synthesizes an unlocked episode for a missing catalog row
func PlaceholderEpisode(id, questionCount int) Episode {
	return Episode{
		ID:            id,
		Name:          DefaultEpisodeName(id),
		QuestionCount: questionCount,
	}
}

// DefaultEpisodeName is the display name used when the sheet leaves it blank
func DefaultEpisodeName(id int) string {
	return fmt.Sprintf("%d. Bölüm", id)
}
