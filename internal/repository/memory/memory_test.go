package memory

import (
	"context"
	"testing"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProfileRepository_OnePerAccount(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()
	account := primitive.NewObjectID()

	weight := 80.0
	_, err := repo.Create(ctx, &domain.Profile{AccountID: account, Weight: &weight})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Profile{AccountID: account})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByAccountID(ctx, account)
	require.NoError(t, err)
	*got.Weight = 99

	again, err := repo.GetByAccountID(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, 80.0, *again.Weight, "stored profile must not share pointers with callers")

	_, err = repo.GetByAccountID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecommendationRepository_SetDayProgress(t *testing.T) {
	ctx := context.Background()
	repo := NewRecommendationRepository()
	profileID := primitive.NewObjectID()

	rec := &domain.WorkoutRecommendation{
		ProfileID: profileID,
		Data: domain.PlanDocument{
			Schedule: domain.Schedule{{Day: "Day 1", Exercises: []domain.ExerciseEntry{}}},
			Progress: domain.Progress{"Day 1": false},
		},
	}
	require.NoError(t, repo.Upsert(ctx, rec))
	firstID := rec.ID

	require.NoError(t, repo.SetDayProgress(ctx, profileID, "Day 1", true))

	got, err := repo.GetByProfileID(ctx, profileID)
	require.NoError(t, err)
	assert.True(t, got.Data.Progress["Day 1"])
	assert.Equal(t, firstID, got.ID)

	// Upsert keeps the identity of the existing document.
	require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecommendation{ProfileID: profileID}))
	got, err = repo.GetByProfileID(ctx, profileID)
	require.NoError(t, err)
	assert.Equal(t, firstID, got.ID)

	assert.ErrorIs(t, repo.SetDayProgress(ctx, primitive.NewObjectID(), "Day 1", true), repository.ErrNotFound)
}

func TestStepLogRepository_UniquePerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewStepLogRepository()
	account := primitive.NewObjectID()

	_, err := repo.Create(ctx, &domain.StepLog{AccountID: account, Date: day("2024-01-02"), StepCount: 100})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.StepLog{AccountID: account, Date: day("2024-01-02"), StepCount: 200})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.Create(ctx, &domain.StepLog{AccountID: account, Date: day("2024-01-05"), StepCount: 300})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.StepLog{AccountID: primitive.NewObjectID(), Date: day("2024-01-03"), StepCount: 999})
	require.NoError(t, err)

	total, err := repo.SumSteps(ctx, account, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 400, total)

	total, err = repo.SumSteps(ctx, account, day("2024-01-03"), day("2024-01-05"))
	require.NoError(t, err)
	assert.Equal(t, 300, total)

	all, err := repo.ListByAccount(ctx, account)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, day("2024-01-05"), all[0].Date)
}

func TestStepGoalPlanRepository_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := NewStepGoalPlanRepository()
	account := primitive.NewObjectID()

	plan := &domain.StepGoalPlan{AccountID: account, StartDate: day("2024-01-01"), EndDate: day("2024-01-10"), TargetSteps: 8000}
	_, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	hits, err := repo.FindOverlapping(ctx, account, day("2024-01-05"), day("2024-01-15"), primitive.NilObjectID)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = repo.FindOverlapping(ctx, account, day("2024-01-11"), day("2024-01-20"), primitive.NilObjectID)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = repo.FindOverlapping(ctx, account, day("2024-01-05"), day("2024-01-15"), plan.ID)
	require.NoError(t, err)
	assert.Empty(t, hits)

	covering, err := repo.FindCovering(ctx, account, day("2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, plan.ID, covering.ID)

	_, err = repo.FindCovering(ctx, account, day("2024-01-11"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, primitive.NewObjectID(), plan.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "plans are scoped to their account")
}

func TestStepGoalOverrideRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewStepGoalOverrideRepository()
	account := primitive.NewObjectID()

	require.NoError(t, repo.Upsert(ctx, &domain.StepGoalOverride{AccountID: account, Date: day("2024-03-01"), TargetSteps: 5000}))
	require.NoError(t, repo.Upsert(ctx, &domain.StepGoalOverride{AccountID: account, Date: day("2024-03-01"), TargetSteps: 6000}))

	o, err := repo.GetByDate(ctx, account, day("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 6000, o.TargetSteps)

	list, err := repo.ListRange(ctx, account, day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, account, day("2024-03-01")))
	assert.ErrorIs(t, repo.Delete(ctx, account, day("2024-03-01")), repository.ErrNotFound)
}
