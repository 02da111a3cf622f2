package catalog

import (
	"context"
	"denizquiz/internal/cache"
	"denizquiz/internal/metrics"
	"denizquiz/internal/model"
	"denizquiz/internal/sheets"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	episodesKey  = "episodes"
	questionsKey = "questions"
)

// Config locates the two sub-sheets and sizes the episode list
type Config struct {
	EpisodesGID   string
	QuestionsGID  string
	EpisodeCount  int
	QuestionCount int // advertised per episode
}

// Loader serves episodes and questions from the spreadsheet through a read-through cache.
//
// Upstream failures degrade instead of failing the request: episodes fall back to
// placeholders and questions to an empty catalog. Degraded results are not cached
// so the next request tries upstream again. A shared fetch outlives the request
// that started it; the fetcher's own timeout bounds it.
type Loader struct {
	fetcher sheets.Fetcher
	cache   cache.Cache
	cfg     Config
	log     *zap.Logger
	metrics *metrics.Metrics
	sf      singleflight.Group
}

// NewLoader creates a catalog loader
func NewLoader(fetcher sheets.Fetcher, c cache.Cache, cfg Config, log *zap.Logger, m *metrics.Metrics) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   c,
		cfg:     cfg,
		log:     log.Named("catalog"),
		metrics: m,
	}
}

// Episodes returns exactly EpisodeCount episodes with ids 1..EpisodeCount
func (l *Loader) Episodes(ctx context.Context) []model.Episode {
	var episodes []model.Episode
	if l.cacheGet(ctx, episodesKey, &episodes) {
		return episodes
	}

	v, err, _ := l.sf.Do(episodesKey, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		var cached []model.Episode
		if l.cacheGet(shared, episodesKey, &cached) {
			return cached, nil
		}
		fresh, err := l.fetchEpisodes(shared)
		if err != nil {
			return nil, err
		}
		l.cacheSet(shared, episodesKey, fresh)
		return fresh, nil
	})
	if err != nil {
		l.log.Error("serving placeholder episodes", zap.Error(err))
		return l.placeholders()
	}
	return v.([]model.Episode)
}

// Questions returns every parsed question grouped by episode id
func (l *Loader) Questions(ctx context.Context) map[int][]model.RawQuestion {
	var questions map[int][]model.RawQuestion
	if l.cacheGet(ctx, questionsKey, &questions) {
		return questions
	}

	v, err, _ := l.sf.Do(questionsKey, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		var cached map[int][]model.RawQuestion
		if l.cacheGet(shared, questionsKey, &cached) {
			return cached, nil
		}
		fresh, err := l.fetchQuestions(shared)
		if err != nil {
			return nil, err
		}
		l.cacheSet(shared, questionsKey, fresh)
		return fresh, nil
	})
	if err != nil {
		l.log.Error("serving empty question catalog", zap.Error(err))
		return map[int][]model.RawQuestion{}
	}
	return v.(map[int][]model.RawQuestion)
}

// RefreshResult reports what a forced reload fetched
type RefreshResult struct {
	Episodes  int `json:"episodes"`
	Questions int `json:"questions"`
}

// Refresh clears the cache and reloads both sheets. Unlike the read paths it
// reports upstream failures to the caller.
func (l *Loader) Refresh(ctx context.Context) (RefreshResult, error) {
	if err := l.cache.Clear(ctx); err != nil {
		return RefreshResult{}, err
	}

	episodes, err := l.fetchEpisodes(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	l.cacheSet(ctx, episodesKey, episodes)

	questions, err := l.fetchQuestions(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	l.cacheSet(ctx, questionsKey, questions)

	total := 0
	for _, qs := range questions {
		total += len(qs)
	}
	l.log.Info("catalog refreshed", zap.Int("episodes", len(episodes)), zap.Int("questions", total))
	return RefreshResult{Episodes: len(episodes), Questions: total}, nil
}

func (l *Loader) fetchEpisodes(ctx context.Context) ([]model.Episode, error) {
	text, err := l.fetcher.FetchCSV(ctx, l.cfg.EpisodesGID)
	if err != nil {
		l.metrics.CatalogFetches.WithLabelValues(episodesKey, "error").Inc()
		return nil, err
	}
	l.metrics.CatalogFetches.WithLabelValues(episodesKey, "ok").Inc()

	rows := sheets.Decode(text)
	l.log.Info("parsed episode rows", zap.Int("rows", len(rows)))

	byID := make(map[int]model.Episode, l.cfg.EpisodeCount)
	for _, row := range rows {
		ep, err := parseEpisode(row, l.cfg.QuestionCount)
		if err != nil {
			l.skipRow(episodesKey, row, err)
			continue
		}
		if ep.ID > l.cfg.EpisodeCount {
			l.log.Warn("episode id out of range", zap.Int("id", ep.ID), zap.Int("max", l.cfg.EpisodeCount))
			continue
		}
		if _, dup := byID[ep.ID]; dup {
			l.log.Warn("duplicate episode id, keeping first", zap.Int("id", ep.ID))
			continue
		}
		byID[ep.ID] = ep
	}

	episodes := make([]model.Episode, 0, l.cfg.EpisodeCount)
	for id := 1; id <= l.cfg.EpisodeCount; id++ {
		ep, ok := byID[id]
		if !ok {
			ep = model.PlaceholderEpisode(id, l.cfg.QuestionCount)
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

func (l *Loader) fetchQuestions(ctx context.Context) (map[int][]model.RawQuestion, error) {
	text, err := l.fetcher.FetchCSV(ctx, l.cfg.QuestionsGID)
	if err != nil {
		l.metrics.CatalogFetches.WithLabelValues(questionsKey, "error").Inc()
		return nil, err
	}
	l.metrics.CatalogFetches.WithLabelValues(questionsKey, "ok").Inc()

	rows := sheets.Decode(text)
	l.log.Info("parsed question rows", zap.Int("rows", len(rows)))

	byEpisode := make(map[int][]model.RawQuestion)
	for _, row := range rows {
		q, err := parseQuestion(row)
		if err != nil {
			l.skipRow(questionsKey, row, err)
			continue
		}
		byEpisode[q.EpisodeID] = append(byEpisode[q.EpisodeID], q)
	}
	return byEpisode, nil
}

func (l *Loader) placeholders() []model.Episode {
	episodes := make([]model.Episode, 0, l.cfg.EpisodeCount)
	for id := 1; id <= l.cfg.EpisodeCount; id++ {
		episodes = append(episodes, model.PlaceholderEpisode(id, l.cfg.QuestionCount))
	}
	return episodes
}

func (l *Loader) skipRow(sheet string, row sheets.Row, err error) {
	l.metrics.CatalogRowsSkip.WithLabelValues(sheet).Inc()
	l.log.Warn("skipping catalog row", zap.String("sheet", sheet), zap.Error(err), zap.Any("row", row))
}

// cacheGet treats cache errors as misses
func (l *Loader) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	hit, err := l.cache.Get(ctx, key, dest)
	if err != nil {
		l.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (l *Loader) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := l.cache.Set(ctx, key, value); err != nil {
		l.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// EpisodeIDs returns the keys of a question catalog in ascending order
func EpisodeIDs(questions map[int][]model.RawQuestion) []int {
	ids := make([]int, 0, len(questions))
	for id := range questions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
