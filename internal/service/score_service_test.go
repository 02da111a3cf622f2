package service

import (
	"context"
	"denizquiz/internal/metrics"
	"denizquiz/internal/model"
	"denizquiz/internal/quiz"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScoreService(store *memStore) (*ScoreService, *metrics.Metrics) {
	m := metrics.Noop()
	svc := NewScoreService(store, quiz.NewAssembler(14, 25), m, zap.NewNop())
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, m
}

func episodeSub(name string, episode, score int) model.EpisodeScoreSubmission {
	return model.EpisodeScoreSubmission{PlayerName: name, EpisodeID: episode, Score: score}
}

func TestSubmitEpisodeKeepsBest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScoreService(newMemStore())

	res, err := svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 100))
	require.NoError(t, err)
	assert.Equal(t, model.SubmitResult{Success: true, IsNewRecord: true, BestScore: 100}, res)

	res, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 80))
	require.NoError(t, err)
	assert.False(t, res.IsNewRecord)
	assert.Equal(t, 100, res.BestScore)

	res, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 100))
	require.NoError(t, err)
	assert.False(t, res.IsNewRecord, "equal score is not a new record")

	res, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 150))
	require.NoError(t, err)
	assert.True(t, res.IsNewRecord)
	assert.Equal(t, 150, res.BestScore)
}

func TestSubmitEpisodeLostInsertRace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newScoreService(store)

	_, err := svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 100))
	require.NoError(t, err)

	store.staleReads = 1
	res, err := svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 150))
	require.NoError(t, err)
	assert.Equal(t, model.SubmitResult{Success: true, IsNewRecord: true, BestScore: 150}, res)
	assert.Equal(t, 150, store.episodes[episodeKey{"Deniz", 1}].Score)
	assert.Equal(t, 150, store.global["Deniz"].Score)

	store.staleReads = 1
	res, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 120))
	require.NoError(t, err)
	assert.Equal(t, model.SubmitResult{Success: true, IsNewRecord: false, BestScore: 150}, res)
	assert.Equal(t, 150, store.episodes[episodeKey{"Deniz", 1}].Score)
}

func TestSubmitMixedLostInsertRace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newScoreService(store)

	_, err := svc.SubmitMixed(ctx, model.MixedScoreSubmission{PlayerName: "Deniz", Score: 300})
	require.NoError(t, err)

	store.staleReads = 1
	res, err := svc.SubmitMixed(ctx, model.MixedScoreSubmission{PlayerName: "Deniz", Score: 200})
	require.NoError(t, err)
	assert.False(t, res.IsNewRecord)
	assert.Equal(t, 300, res.BestScore)

	store.staleReads = 1
	res, err = svc.SubmitMixed(ctx, model.MixedScoreSubmission{PlayerName: "Deniz", Score: 400})
	require.NoError(t, err)
	assert.True(t, res.IsNewRecord)
	assert.Equal(t, 400, store.mixed["Deniz"].Score)
}

func TestSubmitEpisodeRecomputesGlobal(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newScoreService(store)

	_, err := svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 100))
	require.NoError(t, err)
	_, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 2, 50))
	require.NoError(t, err)

	g, err := store.GetGlobalScore(ctx, "Deniz")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 150, g.Score)
	assert.Equal(t, 2, g.EpisodesCompleted)

	// a rejected submission leaves the global total alone
	_, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 2, 10))
	require.NoError(t, err)
	g, _ = store.GetGlobalScore(ctx, "Deniz")
	assert.Equal(t, 150, g.Score)

	_, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 2, 70))
	require.NoError(t, err)
	g, _ = store.GetGlobalScore(ctx, "Deniz")
	assert.Equal(t, 170, g.Score)
}

func TestSubmitEpisodeTrimsName(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newScoreService(store)

	_, err := svc.SubmitEpisode(ctx, episodeSub("  Deniz  ", 3, 40))
	require.NoError(t, err)

	rec, err := store.GetEpisodeScore(ctx, "Deniz", 3)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
}

func TestSubmitEpisodeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScoreService(newMemStore())

	tests := []struct {
		name    string
		sub     model.EpisodeScoreSubmission
		wantErr error
	}{
		{"empty name", episodeSub("", 1, 10), model.ErrValidation},
		{"blank name", episodeSub("   ", 1, 10), model.ErrValidation},
		{"one letter", episodeSub(" D ", 1, 10), model.ErrValidation},
		{"too long", episodeSub("abcdefghijklmnopqrstu", 1, 10), model.ErrValidation},
		{"negative score", episodeSub("Deniz", 1, -1), model.ErrValidation},
		{"episode zero", episodeSub("Deniz", 0, 10), model.ErrInvalidEpisodeID},
		{"episode too high", episodeSub("Deniz", 15, 10), model.ErrInvalidEpisodeID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitEpisode(ctx, tt.sub)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.SubmitEpisode(ctx, episodeSub("Çağrı Öztürk", 1, 10))
	assert.NoError(t, err, "name length counts characters, not bytes")
}

func TestValidationErrorNamesField(t *testing.T) {
	svc, _ := newScoreService(newMemStore())
	_, err := svc.SubmitEpisode(context.Background(), episodeSub("x", 1, 10))

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "player_name", verr.Field)
	assert.Contains(t, verr.Message, "between 2 and 20")
}

func TestSubmitEpisodeStoreFailure(t *testing.T) {
	store := newMemStore()
	store.failWith = errStoreDown
	svc, _ := newScoreService(store)

	_, err := svc.SubmitEpisode(context.Background(), episodeSub("Deniz", 1, 10))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestSubmitMixedKeepsBest(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, m := newScoreService(store)

	sub := model.MixedScoreSubmission{PlayerName: "Ece", Score: 300, QuestionsAnswered: 20}
	res, err := svc.SubmitMixed(ctx, sub)
	require.NoError(t, err)
	assert.True(t, res.IsNewRecord)

	sub.Score = 200
	res, err = svc.SubmitMixed(ctx, sub)
	require.NoError(t, err)
	assert.False(t, res.IsNewRecord)
	assert.Equal(t, 300, res.BestScore)

	sub.Score = 420
	sub.QuestionsAnswered = 42
	res, err = svc.SubmitMixed(ctx, sub)
	require.NoError(t, err)
	assert.True(t, res.IsNewRecord)
	assert.Equal(t, 420, res.BestScore)

	rec, _ := store.GetMixedScore(ctx, "Ece")
	assert.Equal(t, 42, rec.QuestionsAnswered)

	g, _ := store.GetGlobalScore(ctx, "Ece")
	assert.Nil(t, g, "mixed runs do not feed the global score")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScoreSubmissions.WithLabelValues("mixed", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScoreSubmissions.WithLabelValues("mixed", "false")))
}

func TestPlayerStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScoreService(newMemStore())

	_, err := svc.SubmitEpisode(ctx, episodeSub("Deniz", 1, 100))
	require.NoError(t, err)
	_, err = svc.SubmitEpisode(ctx, episodeSub("Deniz", 4, 60))
	require.NoError(t, err)
	_, err = svc.SubmitMixed(ctx, model.MixedScoreSubmission{PlayerName: "Deniz", Score: 90})
	require.NoError(t, err)

	stats, err := svc.PlayerStats(ctx, "Deniz")
	require.NoError(t, err)
	assert.Equal(t, &model.PlayerStats{
		PlayerName:        "Deniz",
		GlobalScore:       160,
		EpisodesCompleted: 2,
		EpisodeScores:     map[int]int{1: 100, 4: 60},
		MixedBestScore:    90,
	}, stats)

	empty, err := svc.PlayerStats(ctx, "Nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.GlobalScore)
	assert.Empty(t, empty.EpisodeScores)
}
