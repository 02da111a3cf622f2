package service

import (
	"context"
	"denizquiz/internal/catalog"
	"denizquiz/internal/model"
	"denizquiz/internal/quiz"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Catalog is the read side of the question catalog
type Catalog interface {
	Episodes(ctx context.Context) []model.Episode
	Questions(ctx context.Context) map[int][]model.RawQuestion
	Refresh(ctx context.Context) (catalog.RefreshResult, error)
}

// RandSource returns a generator for one request
type RandSource func() *rand.Rand

// DefaultRandSource seeds a fresh PCG generator per call
func DefaultRandSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// QuizService serves episodes and assembles quiz sessions
type QuizService struct {
	catalog   Catalog
	assembler *quiz.Assembler
	newRand   RandSource
	log       *zap.Logger
}

// NewQuizService creates a new quiz service. A nil rand source uses DefaultRandSource.
func NewQuizService(c Catalog, assembler *quiz.Assembler, newRand RandSource, log *zap.Logger) *QuizService {
	if newRand == nil {
		newRand = DefaultRandSource
	}
	return &QuizService{
		catalog:   c,
		assembler: assembler,
		newRand:   newRand,
		log:       log,
	}
}

// Episodes lists every episode, padded to the configured count
func (s *QuizService) Episodes(ctx context.Context) []model.Episode {
	return s.catalog.Episodes(ctx)
}

// EpisodeQuiz builds a session of up to count questions from one episode
func (s *QuizService) EpisodeQuiz(ctx context.Context, episodeID, count int) (*model.Quiz, error) {
	if err := s.assembler.CheckEpisode(episodeID); err != nil {
		return nil, err
	}

	pool := s.catalog.Questions(ctx)[episodeID]
	questions, err := s.assembler.AssembleEpisode(s.newRand(), episodeID, count, pool)
	if err != nil {
		return nil, err
	}

	id := episodeID
	return &model.Quiz{
		EpisodeID:        &id,
		EpisodeName:      s.episodeName(ctx, episodeID),
		Questions:        questions,
		TotalQuestions:   len(questions),
		MaxPossibleScore: quiz.MaxPossibleScore(questions),
		Mode:             model.QuizModeEpisode,
	}, nil
}

// MixedQuiz pools every episode's questions into one shuffled session
func (s *QuizService) MixedQuiz(ctx context.Context) (*model.Quiz, error) {
	byEpisode := s.catalog.Questions(ctx)

	var pool []model.RawQuestion
	for _, id := range catalog.EpisodeIDs(byEpisode) {
		pool = append(pool, byEpisode[id]...)
	}

	questions, err := s.assembler.AssembleMixed(s.newRand(), pool)
	if err != nil {
		return nil, err
	}

	return &model.Quiz{
		EpisodeName:      model.MixedEpisodeName,
		Questions:        questions,
		TotalQuestions:   len(questions),
		MaxPossibleScore: quiz.MaxPossibleScore(questions),
		Mode:             model.QuizModeMixed,
	}, nil
}

// RefreshCatalog drops cached catalog data and reloads it from upstream
func (s *QuizService) RefreshCatalog(ctx context.Context) (catalog.RefreshResult, error) {
	res, err := s.catalog.Refresh(ctx)
	if err != nil {
		s.log.Error("catalog refresh failed", zap.Error(err))
		return res, err
	}
	return res, nil
}

func (s *QuizService) episodeName(ctx context.Context, episodeID int) string {
	for _, ep := range s.catalog.Episodes(ctx) {
		if ep.ID == episodeID && ep.Name != "" {
			return ep.Name
		}
	}
	return model.DefaultEpisodeName(episodeID)
}
