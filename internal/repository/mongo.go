package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names
const (
	EpisodeScoresCollection = "episode_scores"
	MixedScoresCollection   = "mixed_scores"
	GlobalScoresCollection  = "global_scores"
)

// ErrDuplicate is returned when an insert hits a unique index
var ErrDuplicate = errors.New("duplicate record")

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

var scoreIndexes = []indexSpec{
	{EpisodeScoresCollection, bson.D{{Key: "player_name", Value: 1}, {Key: "episode_id", Value: 1}}, true},
	{EpisodeScoresCollection, bson.D{{Key: "episode_id", Value: 1}, {Key: "score", Value: -1}}, false},
	{MixedScoresCollection, bson.D{{Key: "player_name", Value: 1}}, true},
	{MixedScoresCollection, bson.D{{Key: "score", Value: -1}}, false},
	{GlobalScoresCollection, bson.D{{Key: "player_name", Value: 1}}, true},
	{GlobalScoresCollection, bson.D{{Key: "score", Value: -1}}, false},
}

// EnsureIndexes creates the unique keys and descending score indexes on every
// score collection. It is safe to call repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var errs []error
	for _, idx := range scoreIndexes {
		opts := options.Index().SetUnique(idx.unique)
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: idx.keys, Options: opts})
		if err != nil {
			log.Warn("failed to create index",
				zap.String("collection", idx.collection),
				zap.Any("keys", idx.keys),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Info("score indexes ensured", zap.Int("count", len(scoreIndexes)))
	return nil
}

func insertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
