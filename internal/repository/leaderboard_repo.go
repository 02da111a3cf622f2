package repository

import (
	"context"
	"denizquiz/internal/model"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeaderboardRepo runs ranking queries over the three score collections
type LeaderboardRepo interface {
	Top(ctx context.Context, scope model.LeaderboardScope, limit int) ([]model.RankedRecord, error)
	Count(ctx context.Context, scope model.LeaderboardScope) (int64, error)
	CountAbove(ctx context.Context, scope model.LeaderboardScope, score int) (int64, error)
	PlayerScore(ctx context.Context, scope model.LeaderboardScope, playerName string) (*int, error)
}

type leaderboardRepo struct {
	db *mongo.Database
}

// NewLeaderboardRepo creates a leaderboard repository on db
func NewLeaderboardRepo(db *mongo.Database) LeaderboardRepo {
	return &leaderboardRepo{db: db}
}

type rankedDoc struct {
	PlayerName        string    `bson:"player_name"`
	Score             int       `bson:"score"`
	EpisodesCompleted int       `bson:"episodes_completed"`
	QuestionsAnswered int       `bson:"questions_answered"`
	Timestamp         time.Time `bson:"timestamp"`
}

// rankingSort orders by score, then earlier timestamp, then name so equal
// scores always come back in the same order.
var rankingSort = bson.D{
	{Key: "score", Value: -1},
	{Key: "timestamp", Value: 1},
	{Key: "player_name", Value: 1},
}

func (r *leaderboardRepo) scoped(scope model.LeaderboardScope) (*mongo.Collection, bson.M, error) {
	switch scope.Kind {
	case model.ScopeGeneral:
		return r.db.Collection(GlobalScoresCollection), bson.M{}, nil
	case model.ScopeMixed:
		return r.db.Collection(MixedScoresCollection), bson.M{}, nil
	case model.ScopeEpisode:
		return r.db.Collection(EpisodeScoresCollection), bson.M{"episode_id": scope.EpisodeID}, nil
	default:
		return nil, nil, fmt.Errorf("unknown leaderboard scope %q", scope.Kind)
	}
}

func (r *leaderboardRepo) Top(ctx context.Context, scope model.LeaderboardScope, limit int) ([]model.RankedRecord, error) {
	coll, filter, err := r.scoped(scope)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(rankingSort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []rankedDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]model.RankedRecord, len(docs))
	for i, d := range docs {
		records[i] = model.RankedRecord(d)
	}
	return records, nil
}

func (r *leaderboardRepo) Count(ctx context.Context, scope model.LeaderboardScope) (int64, error) {
	coll, filter, err := r.scoped(scope)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, filter)
}

// CountAbove counts records in scope with a strictly greater score
func (r *leaderboardRepo) CountAbove(ctx context.Context, scope model.LeaderboardScope, score int) (int64, error) {
	coll, filter, err := r.scoped(scope)
	if err != nil {
		return 0, err
	}
	filter["score"] = bson.M{"$gt": score}
	return coll.CountDocuments(ctx, filter)
}

func (r *leaderboardRepo) PlayerScore(ctx context.Context, scope model.LeaderboardScope, playerName string) (*int, error) {
	coll, filter, err := r.scoped(scope)
	if err != nil {
		return nil, err
	}
	filter["player_name"] = playerName

	var doc rankedDoc
	err = coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"score": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Score, nil
}
