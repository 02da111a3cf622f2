package repository

import (
	"context"
	"denizquiz/internal/model"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScoreRepo handles MongoDB operations for best-score records
type ScoreRepo interface {
	// Episode scores
	GetEpisodeScore(ctx context.Context, playerName string, episodeID int) (*model.EpisodeScore, error)
	InsertEpisodeScore(ctx context.Context, score *model.EpisodeScore) error
	RaiseEpisodeScore(ctx context.Context, score *model.EpisodeScore) (bool, error)
	GetEpisodeScoresByPlayer(ctx context.Context, playerName string) ([]model.EpisodeScore, error)

	// Mixed scores
	GetMixedScore(ctx context.Context, playerName string) (*model.MixedScore, error)
	InsertMixedScore(ctx context.Context, score *model.MixedScore) error
	RaiseMixedScore(ctx context.Context, score *model.MixedScore) (bool, error)

	// Global scores
	GetGlobalScore(ctx context.Context, playerName string) (*model.GlobalScore, error)
	UpsertGlobalScore(ctx context.Context, score *model.GlobalScore) error
}

type scoreRepo struct {
	episodes *mongo.Collection
	mixed    *mongo.Collection
	global   *mongo.Collection
}

// NewScoreRepo creates a score repository on db
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		episodes: db.Collection(EpisodeScoresCollection),
		mixed:    db.Collection(MixedScoresCollection),
		global:   db.Collection(GlobalScoresCollection),
	}
}

// Episode score methods

func (r *scoreRepo) GetEpisodeScore(ctx context.Context, playerName string, episodeID int) (*model.EpisodeScore, error) {
	var score model.EpisodeScore
	err := r.episodes.FindOne(ctx, bson.M{"player_name": playerName, "episode_id": episodeID}).Decode(&score)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepo) InsertEpisodeScore(ctx context.Context, score *model.EpisodeScore) error {
	_, err := r.episodes.InsertOne(ctx, score)
	return insertErr(err)
}

// RaiseEpisodeScore overwrites the stored record only while its score is lower
// than the new one. It reports whether a write happened.
func (r *scoreRepo) RaiseEpisodeScore(ctx context.Context, score *model.EpisodeScore) (bool, error) {
	res, err := r.episodes.UpdateOne(ctx,
		bson.M{
			"player_name": score.PlayerName,
			"episode_id":  score.EpisodeID,
			"score":       bson.M{"$lt": score.Score},
		},
		bson.M{"$set": bson.M{
			"score":         score.Score,
			"correct_count": score.CorrectCount,
			"speed_bonus":   score.SpeedBonus,
			"timestamp":     score.Timestamp,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *scoreRepo) GetEpisodeScoresByPlayer(ctx context.Context, playerName string) ([]model.EpisodeScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "episode_id", Value: 1}})
	cursor, err := r.episodes.Find(ctx, bson.M{"player_name": playerName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.EpisodeScore
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// Mixed score methods

func (r *scoreRepo) GetMixedScore(ctx context.Context, playerName string) (*model.MixedScore, error) {
	var score model.MixedScore
	err := r.mixed.FindOne(ctx, bson.M{"player_name": playerName}).Decode(&score)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepo) InsertMixedScore(ctx context.Context, score *model.MixedScore) error {
	_, err := r.mixed.InsertOne(ctx, score)
	return insertErr(err)
}

func (r *scoreRepo) RaiseMixedScore(ctx context.Context, score *model.MixedScore) (bool, error) {
	res, err := r.mixed.UpdateOne(ctx,
		bson.M{
			"player_name": score.PlayerName,
			"score":       bson.M{"$lt": score.Score},
		},
		bson.M{"$set": bson.M{
			"score":              score.Score,
			"correct_count":      score.CorrectCount,
			"speed_bonus":        score.SpeedBonus,
			"questions_answered": score.QuestionsAnswered,
			"timestamp":          score.Timestamp,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Global score methods

func (r *scoreRepo) GetGlobalScore(ctx context.Context, playerName string) (*model.GlobalScore, error) {
	var score model.GlobalScore
	err := r.global.FindOne(ctx, bson.M{"player_name": playerName}).Decode(&score)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepo) UpsertGlobalScore(ctx context.Context, score *model.GlobalScore) error {
	if score.Timestamp.IsZero() {
		score.Timestamp = time.Now().UTC()
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.global.UpdateOne(ctx,
		bson.M{"player_name": score.PlayerName},
		bson.M{"$set": bson.M{
			"score":              score.Score,
			"episodes_completed": score.EpisodesCompleted,
			"timestamp":          score.Timestamp,
		}},
		opts,
	)
	return err
}
