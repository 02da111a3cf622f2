package service

import (
	"context"
	"denizquiz/internal/metrics"
	"denizquiz/internal/model"
	"denizquiz/internal/quiz"
	"denizquiz/internal/repository"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScoreService keeps each player's best score per episode and per mixed run,
// and keeps the derived global score in step with the episode bests.
type ScoreService struct {
	repo      repository.ScoreRepo
	assembler *quiz.Assembler
	validator *Validator
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// NewScoreService creates a new score service
func NewScoreService(repo repository.ScoreRepo, assembler *quiz.Assembler, m *metrics.Metrics, log *zap.Logger) *ScoreService {
	return &ScoreService{
		repo:      repo,
		assembler: assembler,
		validator: NewValidator(),
		metrics:   m,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SubmitEpisode stores sub if it beats the player's best for that episode
func (s *ScoreService) SubmitEpisode(ctx context.Context, sub model.EpisodeScoreSubmission) (model.SubmitResult, error) {
	if err := s.validator.Struct(sub); err != nil {
		return model.SubmitResult{}, err
	}
	if err := s.assembler.CheckEpisode(sub.EpisodeID); err != nil {
		return model.SubmitResult{}, err
	}

	name := NormalizePlayerName(sub.PlayerName)
	existing, err := s.repo.GetEpisodeScore(ctx, name, sub.EpisodeID)
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("failed to get episode score: %w", err)
	}

	record := &model.EpisodeScore{
		ID:           uuid.NewString(),
		PlayerName:   name,
		EpisodeID:    sub.EpisodeID,
		Score:        sub.Score,
		CorrectCount: sub.CorrectCount,
		SpeedBonus:   sub.SpeedBonus,
		Timestamp:    s.now(),
	}

	accepted := false
	switch {
	case existing == nil:
		err = s.repo.InsertEpisodeScore(ctx, record)
		if errors.Is(err, repository.ErrDuplicate) {
			// a concurrent first submission won the insert
			accepted, err = s.repo.RaiseEpisodeScore(ctx, record)
		} else {
			accepted = err == nil
		}
	case sub.Score > existing.Score:
		accepted, err = s.repo.RaiseEpisodeScore(ctx, record)
	}
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("failed to store episode score: %w", err)
	}

	if accepted {
		if err := s.RecomputeGlobal(ctx, name); err != nil {
			return model.SubmitResult{}, err
		}
	}

	best := sub.Score
	if !accepted {
		current, err := s.repo.GetEpisodeScore(ctx, name, sub.EpisodeID)
		if err != nil {
			return model.SubmitResult{}, fmt.Errorf("failed to get episode score: %w", err)
		}
		if current != nil {
			best = current.Score
		}
	}

	s.record("episode", accepted)
	s.log.Debug("episode score submitted",
		zap.String("player", name),
		zap.Int("episode", sub.EpisodeID),
		zap.Int("score", sub.Score),
		zap.Bool("new_record", accepted))

	return model.SubmitResult{Success: true, IsNewRecord: accepted, BestScore: best}, nil
}

// SubmitMixed stores sub if it beats the player's best endless-mode run.
// Mixed runs do not feed the global score.
func (s *ScoreService) SubmitMixed(ctx context.Context, sub model.MixedScoreSubmission) (model.SubmitResult, error) {
	if err := s.validator.Struct(sub); err != nil {
		return model.SubmitResult{}, err
	}

	name := NormalizePlayerName(sub.PlayerName)
	existing, err := s.repo.GetMixedScore(ctx, name)
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("failed to get mixed score: %w", err)
	}

	record := &model.MixedScore{
		ID:                uuid.NewString(),
		PlayerName:        name,
		Score:             sub.Score,
		CorrectCount:      sub.CorrectCount,
		SpeedBonus:        sub.SpeedBonus,
		QuestionsAnswered: sub.QuestionsAnswered,
		Timestamp:         s.now(),
	}

	accepted := false
	switch {
	case existing == nil:
		err = s.repo.InsertMixedScore(ctx, record)
		if errors.Is(err, repository.ErrDuplicate) {
			accepted, err = s.repo.RaiseMixedScore(ctx, record)
		} else {
			accepted = err == nil
		}
	case sub.Score > existing.Score:
		accepted, err = s.repo.RaiseMixedScore(ctx, record)
	}
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("failed to store mixed score: %w", err)
	}

	best := sub.Score
	if !accepted {
		current, err := s.repo.GetMixedScore(ctx, name)
		if err != nil {
			return model.SubmitResult{}, fmt.Errorf("failed to get mixed score: %w", err)
		}
		if current != nil {
			best = current.Score
		}
	}

	s.record("mixed", accepted)
	return model.SubmitResult{Success: true, IsNewRecord: accepted, BestScore: best}, nil
}

// RecomputeGlobal rewrites the player's global score as the sum of their episode bests
func (s *ScoreService) RecomputeGlobal(ctx context.Context, playerName string) error {
	scores, err := s.repo.GetEpisodeScoresByPlayer(ctx, playerName)
	if err != nil {
		return fmt.Errorf("failed to list episode scores: %w", err)
	}

	total := 0
	for _, sc := range scores {
		total += sc.Score
	}
	err = s.repo.UpsertGlobalScore(ctx, &model.GlobalScore{
		PlayerName:        playerName,
		Score:             total,
		EpisodesCompleted: len(scores),
		Timestamp:         s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to update global score: %w", err)
	}
	return nil
}

// PlayerStats collects everything stored for one player. Unknown players get zeros.
func (s *ScoreService) PlayerStats(ctx context.Context, playerName string) (*model.PlayerStats, error) {
	name := NormalizePlayerName(playerName)

	episodes, err := s.repo.GetEpisodeScoresByPlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list episode scores: %w", err)
	}
	mixed, err := s.repo.GetMixedScore(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get mixed score: %w", err)
	}
	global, err := s.repo.GetGlobalScore(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get global score: %w", err)
	}

	stats := &model.PlayerStats{
		PlayerName:        name,
		EpisodesCompleted: len(episodes),
		EpisodeScores:     make(map[int]int, len(episodes)),
	}
	for _, ep := range episodes {
		stats.EpisodeScores[ep.EpisodeID] = ep.Score
	}
	if global != nil {
		stats.GlobalScore = global.Score
	}
	if mixed != nil {
		stats.MixedBestScore = mixed.Score
	}
	return stats, nil
}

func (s *ScoreService) record(mode string, accepted bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.ScoreSubmissions.WithLabelValues(mode, strconv.FormatBool(accepted)).Inc()
}
