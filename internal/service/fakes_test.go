package service

import (
	"context"
	"denizquiz/internal/catalog"
	"denizquiz/internal/model"
	"denizquiz/internal/repository"
	"errors"
	"sort"
	"sync"
)

type episodeKey struct {
	player  string
	episode int
}

// memStore implements repository.ScoreRepo and repository.LeaderboardRepo in memory
type memStore struct {
	mu       sync.Mutex
	episodes map[episodeKey]model.EpisodeScore
	mixed    map[string]model.MixedScore
	global   map[string]model.GlobalScore
	failWith error
	// staleReads makes the next n single-record reads miss, as if another
	// writer inserted between the read and the insert
	staleReads int
}

func newMemStore() *memStore {
	return &memStore{
		episodes: map[episodeKey]model.EpisodeScore{},
		mixed:    map[string]model.MixedScore{},
		global:   map[string]model.GlobalScore{},
	}
}

var (
	_ repository.ScoreRepo       = (*memStore)(nil)
	_ repository.LeaderboardRepo = (*memStore)(nil)
)

func (m *memStore) GetEpisodeScore(_ context.Context, player string, episodeID int) (*model.EpisodeScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	s, ok := m.episodes[episodeKey{player, episodeID}]
	if !ok || m.stale() {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) stale() bool {
	if m.staleReads == 0 {
		return false
	}
	m.staleReads--
	return true
}

func (m *memStore) InsertEpisodeScore(_ context.Context, s *model.EpisodeScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := episodeKey{s.PlayerName, s.EpisodeID}
	if _, ok := m.episodes[k]; ok {
		return repository.ErrDuplicate
	}
	m.episodes[k] = *s
	return nil
}

func (m *memStore) RaiseEpisodeScore(_ context.Context, s *model.EpisodeScore) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := episodeKey{s.PlayerName, s.EpisodeID}
	cur, ok := m.episodes[k]
	if !ok || cur.Score >= s.Score {
		return false, nil
	}
	cur.Score, cur.CorrectCount, cur.SpeedBonus, cur.Timestamp = s.Score, s.CorrectCount, s.SpeedBonus, s.Timestamp
	m.episodes[k] = cur
	return true, nil
}

func (m *memStore) GetEpisodeScoresByPlayer(_ context.Context, player string) ([]model.EpisodeScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.EpisodeScore
	for k, s := range m.episodes {
		if k.player == player {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EpisodeID < out[j].EpisodeID })
	return out, nil
}

func (m *memStore) GetMixedScore(_ context.Context, player string) (*model.MixedScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.mixed[player]
	if !ok || m.stale() {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) InsertMixedScore(_ context.Context, s *model.MixedScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mixed[s.PlayerName]; ok {
		return repository.ErrDuplicate
	}
	m.mixed[s.PlayerName] = *s
	return nil
}

func (m *memStore) RaiseMixedScore(_ context.Context, s *model.MixedScore) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.mixed[s.PlayerName]
	if !ok || cur.Score >= s.Score {
		return false, nil
	}
	next := *s
	next.ID = cur.ID
	m.mixed[s.PlayerName] = next
	return true, nil
}

func (m *memStore) GetGlobalScore(_ context.Context, player string) (*model.GlobalScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.global[player]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) UpsertGlobalScore(_ context.Context, s *model.GlobalScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.global[s.PlayerName] = *s
	return nil
}

func (m *memStore) records(scope model.LeaderboardScope) []model.RankedRecord {
	var out []model.RankedRecord
	switch scope.Kind {
	case model.ScopeGeneral:
		for _, s := range m.global {
			out = append(out, model.RankedRecord{PlayerName: s.PlayerName, Score: s.Score, EpisodesCompleted: s.EpisodesCompleted, Timestamp: s.Timestamp})
		}
	case model.ScopeMixed:
		for _, s := range m.mixed {
			out = append(out, model.RankedRecord{PlayerName: s.PlayerName, Score: s.Score, QuestionsAnswered: s.QuestionsAnswered, Timestamp: s.Timestamp})
		}
	case model.ScopeEpisode:
		for _, s := range m.episodes {
			if s.EpisodeID == scope.EpisodeID {
				out = append(out, model.RankedRecord{PlayerName: s.PlayerName, Score: s.Score, Timestamp: s.Timestamp})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.PlayerName < b.PlayerName
	})
	return out
}

func (m *memStore) Top(_ context.Context, scope model.LeaderboardScope, limit int) ([]model.RankedRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	recs := m.records(scope)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (m *memStore) Count(_ context.Context, scope model.LeaderboardScope) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records(scope))), nil
}

func (m *memStore) CountAbove(_ context.Context, scope model.LeaderboardScope, score int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.records(scope) {
		if r.Score > score {
			n++
		}
	}
	return n, nil
}

func (m *memStore) PlayerScore(_ context.Context, scope model.LeaderboardScope, player string) (*int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records(scope) {
		if r.PlayerName == player {
			s := r.Score
			return &s, nil
		}
	}
	return nil, nil
}

// fakeCatalog serves fixed catalog data
type fakeCatalog struct {
	episodes   []model.Episode
	questions  map[int][]model.RawQuestion
	refresh    catalog.RefreshResult
	refreshErr error
}

func (f *fakeCatalog) Episodes(context.Context) []model.Episode { return f.episodes }

func (f *fakeCatalog) Questions(context.Context) map[int][]model.RawQuestion { return f.questions }

func (f *fakeCatalog) Refresh(context.Context) (catalog.RefreshResult, error) {
	return f.refresh, f.refreshErr
}

var errStoreDown = errors.New("store down")
