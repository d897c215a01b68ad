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

const stepLogCollectionName = "step_logs"

// mongoStepLogRepository implements repository.StepLogRepository.
type mongoStepLogRepository struct {
	collection *mongo.Collection
}

func NewMongoStepLogRepository(db *mongo.Database) repository.StepLogRepository {
	return &mongoStepLogRepository{
		collection: db.Collection(stepLogCollectionName),
	}
}

func (r *mongoStepLogRepository) GetByDate(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepLog, error) {
	filter := bson.M{"accountId": accountID, "date": domain.DateOf(date)}
	return findOne[domain.StepLog](ctx, r.collection, filter)
}

// Create inserts a new daily log. A concurrent writer for the same day makes
// the unique index fail, reported as repository.ErrDuplicate.
func (r *mongoStepLogRepository) Create(ctx context.Context, log *domain.StepLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	log.Date = domain.DateOf(log.Date)
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// Update writes the step count and the derived fields.
func (r *mongoStepLogRepository) Update(ctx context.Context, log *domain.StepLog) error {
	log.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": log.ID, "accountId": log.AccountID}
	update := bson.M{
		"$set": bson.M{
			"stepCount":       log.StepCount,
			"distanceMeters":  log.DistanceMeters,
			"caloriesBurned":  log.CaloriesBurned,
			"durationMinutes": log.DurationMinutes,
			"updatedAt":       log.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SumSteps aggregates stepCount over [from, to] on the server.
func (r *mongoStepLogRepository) SumSteps(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: rangeFilter(accountID, from, to)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$stepCount"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoStepLogRepository) ListRange(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) ([]domain.StepLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findAll[domain.StepLog](ctx, r.collection, rangeFilter(accountID, from, to), opts)
}

func (r *mongoStepLogRepository) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return findAll[domain.StepLog](ctx, r.collection, bson.M{"accountId": accountID}, opts)
}

// rangeFilter matches documents of accountID whose date lies in [from, to].
func rangeFilter(accountID primitive.ObjectID, from, to time.Time) bson.M {
	return bson.M{
		"accountId": accountID,
		"date": bson.M{
			"$gte": domain.DateOf(from),
			"$lte": domain.DateOf(to),
		},
	}
}

// EnsureStepLogIndexes creates the unique (accountId, date) index.
func EnsureStepLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "accountId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
