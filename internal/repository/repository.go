package repository

import (
	"context"
	"time"

	"reprise/backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores one profile per account.
type ProfileRepository interface {
	// Create returns ErrDuplicate when the account already has a profile.
	Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error)
	GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// RecommendationRepository stores the single workout recommendation of a profile.
type RecommendationRepository interface {
	// Upsert replaces the whole recommendation of rec.ProfileID.
	Upsert(ctx context.Context, rec *domain.WorkoutRecommendation) error
	GetByProfileID(ctx context.Context, profileID primitive.ObjectID) (*domain.WorkoutRecommendation, error)
	// SetDayProgress flips one progress flag without touching the schedule.
	SetDayProgress(ctx context.Context, profileID primitive.ObjectID, day string, done bool) error
}

// StepLogRepository stores daily step totals, unique per (account, date).
type StepLogRepository interface {
	GetByDate(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepLog, error)
	// Create returns ErrDuplicate when a log for (account, date) already exists.
	Create(ctx context.Context, log *domain.StepLog) (primitive.ObjectID, error)
	Update(ctx context.Context, log *domain.StepLog) error
	// SumSteps adds up step counts over the inclusive range [from, to].
	SumSteps(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) (int, error)
	// ListRange returns logs in [from, to] ordered by date ascending.
	ListRange(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) ([]domain.StepLog, error)
	// ListByAccount returns all logs, newest first.
	ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepLog, error)
}

// StepGoalOverrideRepository stores single-day goal overrides, unique per (account, date).
type StepGoalOverrideRepository interface {
	GetByDate(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepGoalOverride, error)
	// ListRange returns overrides in [from, to] ordered by date.
	ListRange(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) ([]domain.StepGoalOverride, error)
	// Upsert creates or replaces the override of (account, date).
	Upsert(ctx context.Context, override *domain.StepGoalOverride) error
	Delete(ctx context.Context, accountID primitive.ObjectID, date time.Time) error
}

// StepGoalPlanRepository stores date-range goal plans.
type StepGoalPlanRepository interface {
	Create(ctx context.Context, plan *domain.StepGoalPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, accountID, planID primitive.ObjectID) (*domain.StepGoalPlan, error)
	Update(ctx context.Context, plan *domain.StepGoalPlan) error
	Delete(ctx context.Context, accountID, planID primitive.ObjectID) error
	// ListByAccount returns plans ordered by start date, newest first.
	ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepGoalPlan, error)
	// FindCovering returns a plan whose range contains date.
	FindCovering(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepGoalPlan, error)
	// FindOverlapping returns plans sharing a day with [start, end], skipping excludeID.
	FindOverlapping(ctx context.Context, accountID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) ([]domain.StepGoalPlan, error)
}
