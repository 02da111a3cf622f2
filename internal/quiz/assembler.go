// Package quiz turns catalog questions into playable sessions: it samples
// questions, shuffles each question's options and relabels them A-D while
// keeping track of which label now holds the correct answer.
package quiz

import (
	"denizquiz/internal/model"
	"fmt"
	"math/rand/v2"
)

// Assembler builds quiz sessions within the configured bounds
type Assembler struct {
	episodeCount int
	maxQuestions int
}

// NewAssembler creates an assembler for episodes 1..episodeCount and at most
// maxQuestions questions per episode session
func NewAssembler(episodeCount, maxQuestions int) *Assembler {
	return &Assembler{
		episodeCount: episodeCount,
		maxQuestions: maxQuestions,
	}
}

// ValidEpisode reports whether id is inside 1..episodeCount
func (a *Assembler) ValidEpisode(id int) bool {
	return id >= 1 && id <= a.episodeCount
}

// CheckEpisode returns model.ErrInvalidEpisodeID for ids outside 1..episodeCount
func (a *Assembler) CheckEpisode(id int) error {
	if !a.ValidEpisode(id) {
		return fmt.Errorf("%w: %d (1-%d)", model.ErrInvalidEpisodeID, id, a.episodeCount)
	}
	return nil
}

// AssembleEpisode draws min(requested, maxQuestions, len(pool)) distinct questions
// uniformly at random and presents each with shuffled options.
func (a *Assembler) AssembleEpisode(rng *rand.Rand, episodeID, requested int, pool []model.RawQuestion) ([]model.PresentedQuestion, error) {
	if err := a.CheckEpisode(episodeID); err != nil {
		return nil, err
	}
	if requested < 1 {
		return nil, model.NewValidationError("count", "count must be at least 1")
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: no questions for episode %d", model.ErrNotFound, episodeID)
	}

	n := min(requested, a.maxQuestions, len(pool))
	picks := rng.Perm(len(pool))[:n]

	questions := make([]model.PresentedQuestion, 0, n)
	for _, ix := range picks {
		q, err := Present(rng, pool[ix])
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// AssembleMixed presents the whole pool in random order. Endless mode is not
// capped by maxQuestions.
func (a *Assembler) AssembleMixed(rng *rand.Rand, pool []model.RawQuestion) ([]model.PresentedQuestion, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: no questions", model.ErrNotFound)
	}

	questions := make([]model.PresentedQuestion, 0, len(pool))
	for _, ix := range rng.Perm(len(pool)) {
		q, err := Present(rng, pool[ix])
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Present shuffles the non-empty options of q and relabels them by position.
// The correct option is found again by its text; if the text is missing or
// ambiguous the question is rejected with model.ErrDataIntegrity.
func Present(rng *rand.Rand, q model.RawQuestion) (model.PresentedQuestion, error) {
	correctText := q.CorrectText()
	if correctText == "" {
		return model.PresentedQuestion{}, fmt.Errorf("%w: question %s has no text for correct option %q", model.ErrDataIntegrity, q.ID, q.CorrectLabel)
	}

	texts := make([]string, 0, len(model.OptionLabels))
	for _, label := range model.OptionLabels {
		if t := q.Options[label]; t != "" {
			texts = append(texts, t)
		}
	}
	rng.Shuffle(len(texts), func(i, j int) { texts[i], texts[j] = texts[j], texts[i] })

	options := make([]model.Option, len(texts))
	correct := ""
	for i, t := range texts {
		label := model.OptionLabels[i]
		options[i] = model.Option{ID: label, Text: t}
		if t != correctText {
			continue
		}
		if correct != "" {
			return model.PresentedQuestion{}, fmt.Errorf("%w: question %s repeats its correct answer text", model.ErrDataIntegrity, q.ID)
		}
		correct = label
	}

	return model.PresentedQuestion{
		ID:            q.ID,
		Text:          q.Text,
		Options:       options,
		CorrectOption: correct,
		Difficulty:    q.Difficulty,
		Points:        q.Points,
	}, nil
}

// MaxPossibleScore is the sum of question points plus the per-question speed bonus ceiling
func MaxPossibleScore(questions []model.PresentedQuestion) int {
	total := 0
	for _, q := range questions {
		total += q.Points + model.SpeedBonusCeiling
	}
	return total
}
