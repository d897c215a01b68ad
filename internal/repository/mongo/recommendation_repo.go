package mongo

import (
	"context"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recommendationCollectionName = "workout_recommendations"

// mongoRecommendationRepository implements repository.RecommendationRepository.
type mongoRecommendationRepository struct {
	collection *mongo.Collection
}

func NewMongoRecommendationRepository(db *mongo.Database) repository.RecommendationRepository {
	return &mongoRecommendationRepository{
		collection: db.Collection(recommendationCollectionName),
	}
}

// Upsert replaces data and snapshot of the profile's recommendation, creating
// it on first use. rec is refreshed with the stored document.
func (r *mongoRecommendationRepository) Upsert(ctx context.Context, rec *domain.WorkoutRecommendation) error {
	now := time.Now().UTC()
	filter := bson.M{"profileId": rec.ProfileID}
	update := bson.M{
		"$set": bson.M{
			"accountId": rec.AccountID,
			"data":      rec.Data,
			"snapshot":  rec.Snapshot,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	return r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(rec)
}

func (r *mongoRecommendationRepository) GetByProfileID(ctx context.Context, profileID primitive.ObjectID) (*domain.WorkoutRecommendation, error) {
	return findOne[domain.WorkoutRecommendation](ctx, r.collection, bson.M{"profileId": profileID})
}

// SetDayProgress sets data.progress.<day> in place; the schedule is untouched.
func (r *mongoRecommendationRepository) SetDayProgress(ctx context.Context, profileID primitive.ObjectID, day string, done bool) error {
	update := bson.M{
		"$set": bson.M{
			"data.progress." + day: done,
			"updatedAt":            time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"profileId": profileID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRecommendationIndexes makes profileId unique (one plan per profile).
func EnsureRecommendationIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "accountId", Value: 1}},
		},
	})
	return err
}
