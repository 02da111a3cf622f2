package catalog

import (
	"denizquiz/internal/model"
	"denizquiz/internal/sheets"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// parseEpisode normalizes one episodes-sheet row. Errors wrap model.ErrDataIntegrity.
func parseEpisode(row sheets.Row, questionCount int) (model.Episode, error) {
	rawID, ok := EpisodeColumns.Value(row, fieldID)
	if !ok {
		return model.Episode{}, fmt.Errorf("%w: missing episode id", model.ErrDataIntegrity)
	}
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return model.Episode{}, fmt.Errorf("%w: episode id %q is not a number", model.ErrDataIntegrity, rawID)
	}
	if id <= 0 {
		return model.Episode{}, fmt.Errorf("%w: episode id %d is not positive", model.ErrDataIntegrity, id)
	}

	name, ok := EpisodeColumns.Value(row, fieldName)
	if !ok {
		name = model.DefaultEpisodeName(id)
	}
	locked, _ := EpisodeColumns.Value(row, fieldLocked)
	description, _ := EpisodeColumns.Value(row, fieldDescription)

	return model.Episode{
		ID:            id,
		Name:          name,
		QuestionCount: questionCount,
		IsLocked:      lockedValues[strings.ToLower(strings.TrimSpace(locked))],
		Description:   description,
	}, nil
}

// parseQuestion normalizes one questions-sheet row. Errors wrap model.ErrDataIntegrity.
//
// A row is rejected when the correct label has no option text or when that
// text appears under more than one label, since the answer could not be
// located unambiguously after shuffling.
func parseQuestion(row sheets.Row) (model.RawQuestion, error) {
	episodeID := 1
	if raw, ok := QuestionColumns.Value(row, fieldEpisode); ok {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return model.RawQuestion{}, fmt.Errorf("%w: episode %q is not a number", model.ErrDataIntegrity, raw)
		}
		episodeID = id
	}

	text, ok := QuestionColumns.Value(row, fieldText)
	if !ok {
		return model.RawQuestion{}, fmt.Errorf("%w: missing question text", model.ErrDataIntegrity)
	}

	id, ok := QuestionColumns.Value(row, fieldID)
	if !ok {
		id = uuid.NewString()
	}

	options := make(map[string]string, len(model.OptionLabels))
	for _, label := range model.OptionLabels {
		if v, ok := QuestionColumns.Value(row, optionFields[label]); ok {
			options[label] = v
		}
	}

	correct := "A"
	if raw, ok := QuestionColumns.Value(row, fieldCorrect); ok {
		correct = strings.ToUpper(strings.TrimSpace(raw))
	}
	if _, known := optionFields[correct]; !known {
		return model.RawQuestion{}, fmt.Errorf("%w: question %s: correct answer %q is not one of A-D", model.ErrDataIntegrity, id, correct)
	}
	correctText := options[correct]
	if correctText == "" {
		return model.RawQuestion{}, fmt.Errorf("%w: question %s: correct option %s is empty", model.ErrDataIntegrity, id, correct)
	}
	for label, t := range options {
		if label != correct && t == correctText {
			return model.RawQuestion{}, fmt.Errorf("%w: question %s: correct text repeated under %s", model.ErrDataIntegrity, id, label)
		}
	}

	rawDifficulty, _ := QuestionColumns.Value(row, fieldDifficulty)
	difficulty := model.ParseDifficulty(rawDifficulty)
	points := difficulty.Points()
	if raw, ok := QuestionColumns.Value(row, fieldPoints); ok {
		if p, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && p > 0 {
			points = p
		}
	}

	return model.RawQuestion{
		ID:           id,
		EpisodeID:    episodeID,
		Text:         text,
		Options:      options,
		CorrectLabel: correct,
		Difficulty:   difficulty,
		Points:       points,
	}, nil
}
