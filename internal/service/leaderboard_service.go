package service

import (
	"context"
	"denizquiz/internal/model"
	"denizquiz/internal/quiz"
	"denizquiz/internal/repository"
	"fmt"
)

// LeaderboardService ranks stored best scores
type LeaderboardService struct {
	repo      repository.LeaderboardRepo
	assembler *quiz.Assembler
	limit     int
}

// NewLeaderboardService creates a leaderboard service returning at most limit entries
func NewLeaderboardService(repo repository.LeaderboardRepo, assembler *quiz.Assembler, limit int) *LeaderboardService {
	return &LeaderboardService{
		repo:      repo,
		assembler: assembler,
		limit:     limit,
	}
}

// General ranks players by the sum of their episode bests
func (s *LeaderboardService) General(ctx context.Context, playerName string) (*model.Leaderboard, error) {
	return s.Get(ctx, model.LeaderboardScope{Kind: model.ScopeGeneral}, playerName)
}

// Episode ranks players on a single episode
func (s *LeaderboardService) Episode(ctx context.Context, episodeID int, playerName string) (*model.Leaderboard, error) {
	if err := s.assembler.CheckEpisode(episodeID); err != nil {
		return nil, err
	}
	return s.Get(ctx, model.LeaderboardScope{Kind: model.ScopeEpisode, EpisodeID: episodeID}, playerName)
}

// Mixed ranks players by their best endless-mode run
func (s *LeaderboardService) Mixed(ctx context.Context, playerName string) (*model.Leaderboard, error) {
	return s.Get(ctx, model.LeaderboardScope{Kind: model.ScopeMixed}, playerName)
}

// Get returns the top entries for scope plus, when playerName is set, that
// player's rank and score.
func (s *LeaderboardService) Get(ctx context.Context, scope model.LeaderboardScope, playerName string) (*model.Leaderboard, error) {
	records, err := s.repo.Top(ctx, scope, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scores: %w", err)
	}
	total, err := s.repo.Count(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}

	board := &model.Leaderboard{
		Entries:      make([]model.LeaderboardEntry, len(records)),
		TotalPlayers: total,
	}
	for i, rec := range records {
		board.Entries[i] = entryFor(scope, i+1, rec)
	}

	if name := NormalizePlayerName(playerName); name != "" {
		rank, score, err := s.RankOf(ctx, scope, name)
		if err != nil {
			return nil, err
		}
		board.PlayerRank = rank
		board.PlayerScore = score
	}
	return board, nil
}

// RankOf is one plus the number of records in scope scoring strictly higher
// than the player. Both results are nil when the player has no record.
func (s *LeaderboardService) RankOf(ctx context.Context, scope model.LeaderboardScope, playerName string) (*int, *int, error) {
	score, err := s.repo.PlayerScore(ctx, scope, playerName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player score: %w", err)
	}
	if score == nil {
		return nil, nil, nil
	}
	above, err := s.repo.CountAbove(ctx, scope, *score)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count higher scores: %w", err)
	}
	rank := int(above) + 1
	return &rank, score, nil
}

func entryFor(scope model.LeaderboardScope, rank int, rec model.RankedRecord) model.LeaderboardEntry {
	name := rec.PlayerName
	if name == "" {
		name = model.AnonymousPlayer
	}
	entry := model.LeaderboardEntry{Rank: rank, PlayerName: name, Score: rec.Score}
	switch scope.Kind {
	case model.ScopeGeneral:
		n := rec.EpisodesCompleted
		entry.EpisodesCompleted = &n
	case model.ScopeMixed:
		n := rec.QuestionsAnswered
		entry.QuestionsAnswered = &n
	}
	return entry
}
