package mongo

import (
	"context"
	"errors"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	stepGoalOverrideCollectionName = "step_goal_overrides"
	stepGoalPlanCollectionName     = "step_goal_plans"
)

// mongoStepGoalOverrideRepository implements repository.StepGoalOverrideRepository.
type mongoStepGoalOverrideRepository struct {
	collection *mongo.Collection
}

func NewMongoStepGoalOverrideRepository(db *mongo.Database) repository.StepGoalOverrideRepository {
	return &mongoStepGoalOverrideRepository{
		collection: db.Collection(stepGoalOverrideCollectionName),
	}
}

func (r *mongoStepGoalOverrideRepository) GetByDate(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepGoalOverride, error) {
	filter := bson.M{"accountId": accountID, "date": domain.DateOf(date)}
	return findOne[domain.StepGoalOverride](ctx, r.collection, filter)
}

func (r *mongoStepGoalOverrideRepository) ListRange(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) ([]domain.StepGoalOverride, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findAll[domain.StepGoalOverride](ctx, r.collection, rangeFilter(accountID, from, to), opts)
}

// Upsert sets the target of (account, date), creating the override if needed.
func (r *mongoStepGoalOverrideRepository) Upsert(ctx context.Context, override *domain.StepGoalOverride) error {
	now := time.Now().UTC()
	override.Date = domain.DateOf(override.Date)

	filter := bson.M{"accountId": override.AccountID, "date": override.Date}
	update := bson.M{
		"$set":         bson.M{"targetSteps": override.TargetSteps, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	return r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(override)
}

func (r *mongoStepGoalOverrideRepository) Delete(ctx context.Context, accountID primitive.ObjectID, date time.Time) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"accountId": accountID, "date": domain.DateOf(date)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureStepGoalOverrideIndexes creates the unique (accountId, date) index.
func EnsureStepGoalOverrideIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "accountId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// mongoStepGoalPlanRepository implements repository.StepGoalPlanRepository.
type mongoStepGoalPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoStepGoalPlanRepository(db *mongo.Database) repository.StepGoalPlanRepository {
	return &mongoStepGoalPlanRepository{
		collection: db.Collection(stepGoalPlanCollectionName),
	}
}

func (r *mongoStepGoalPlanRepository) Create(ctx context.Context, plan *domain.StepGoalPlan) (primitive.ObjectID, error) {
	if plan.AccountID.IsZero() {
		return primitive.NilObjectID, errors.New("goal plan requires an accountId")
	}
	plan.ID = primitive.NewObjectID()
	plan.StartDate = domain.DateOf(plan.StartDate)
	plan.EndDate = domain.DateOf(plan.EndDate)
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoStepGoalPlanRepository) GetByID(ctx context.Context, accountID, planID primitive.ObjectID) (*domain.StepGoalPlan, error) {
	return findOne[domain.StepGoalPlan](ctx, r.collection, bson.M{"_id": planID, "accountId": accountID})
}

func (r *mongoStepGoalPlanRepository) Update(ctx context.Context, plan *domain.StepGoalPlan) error {
	plan.StartDate = domain.DateOf(plan.StartDate)
	plan.EndDate = domain.DateOf(plan.EndDate)
	plan.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": plan.ID, "accountId": plan.AccountID}
	update := bson.M{
		"$set": bson.M{
			"startDate":   plan.StartDate,
			"endDate":     plan.EndDate,
			"targetSteps": plan.TargetSteps,
			"description": plan.Description,
			"updatedAt":   plan.UpdatedAt,
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

func (r *mongoStepGoalPlanRepository) Delete(ctx context.Context, accountID, planID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": planID, "accountId": accountID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoStepGoalPlanRepository) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepGoalPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	return findAll[domain.StepGoalPlan](ctx, r.collection, bson.M{"accountId": accountID}, opts)
}

func (r *mongoStepGoalPlanRepository) FindCovering(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepGoalPlan, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "startDate", Value: -1}})
	return findOne[domain.StepGoalPlan](ctx, r.collection, overlapFilter(accountID, date, date, primitive.NilObjectID), opts)
}

func (r *mongoStepGoalPlanRepository) FindOverlapping(ctx context.Context, accountID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) ([]domain.StepGoalPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}})
	return findAll[domain.StepGoalPlan](ctx, r.collection, overlapFilter(accountID, start, end, excludeID), opts)
}

// overlapFilter matches plans sharing at least one day with [start, end]:
// startDate <= end and endDate >= start. A non-zero excludeID is skipped.
func overlapFilter(accountID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) bson.M {
	filter := bson.M{
		"accountId": accountID,
		"startDate": bson.M{"$lte": domain.DateOf(end)},
		"endDate":   bson.M{"$gte": domain.DateOf(start)},
	}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// EnsureStepGoalPlanIndexes indexes plans by account and range start.
func EnsureStepGoalPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "accountId", Value: 1}, {Key: "startDate", Value: -1}},
	})
	return err
}
