package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGoalService_EffectiveGoalPrecedence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	goal, err := f.goals.EffectiveGoal(ctx, account, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, EffectiveGoal{Target: 10000, Source: GoalFromDefault}, goal)

	_, err = f.profileService.UpdateProfile(ctx, account, ProfileUpdate{DailyStepGoal: ptr(7000)})
	require.NoError(t, err)
	goal, err = f.goals.EffectiveGoal(ctx, account, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, EffectiveGoal{Target: 7000, Source: GoalFromDefault}, goal)

	_, err = f.goals.CreatePlan(ctx, account, PlanInput{StartDate: date(t, "2024-03-01"), EndDate: date(t, "2024-03-10"), TargetSteps: 8000})
	require.NoError(t, err)
	goal, err = f.goals.EffectiveGoal(ctx, account, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, EffectiveGoal{Target: 8000, Source: GoalFromPlan}, goal)

	_, err = f.goals.SetOverride(ctx, account, date(t, "2024-03-05"), 3000)
	require.NoError(t, err)
	goal, err = f.goals.EffectiveGoal(ctx, account, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, EffectiveGoal{Target: 3000, Source: GoalFromOverride}, goal)

	require.NoError(t, f.goals.DeleteOverride(ctx, account, date(t, "2024-03-05")))
	assert.ErrorIs(t, f.goals.DeleteOverride(ctx, account, date(t, "2024-03-05")), ErrOverrideNotFound)
	goal, err = f.goals.EffectiveGoal(ctx, account, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, GoalFromPlan, goal.Source)
}

func TestGoalService_DailyViewWithoutLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	for range 2 {
		view, err := f.goals.DailyView(ctx, account, date(t, "2024-03-05"))
		require.NoError(t, err)
		assert.Equal(t, 0, view.Steps)
		assert.Equal(t, 10000, view.Goal)
		assert.Equal(t, 10000, view.Remaining)
	}

	_, _, err := f.steps.LogSteps(ctx, account, date(t, "2024-03-05"), 12000)
	require.NoError(t, err)
	view, err := f.goals.DailyView(ctx, account, date(t, "2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, 0, view.Remaining)
}

func TestGoalService_WeeklyView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	// 2024-01-07 is a Sunday.
	views, err := f.goals.WeeklyView(ctx, account, date(t, "2024-01-07"))
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	_, _, err = f.steps.LogSteps(ctx, account, date(t, "2024-01-08"), 4000)
	require.NoError(t, err)
	_, _, err = f.steps.LogSteps(ctx, account, date(t, "2024-01-10"), 9000)
	require.NoError(t, err)

	views, err = f.goals.WeeklyView(ctx, account, date(t, "2024-01-10"))
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "2024-01-07", views[0].Date)
	assert.Equal(t, "2024-01-09", views[2].Date)
	assert.Equal(t, 4000, views[1].Steps)
	assert.Equal(t, 6000, views[1].Remaining)
	for _, v := range views {
		assert.NotEqual(t, "2024-01-10", v.Date, "anchor day is excluded")
	}
}

func TestGoalService_MonthlyView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	_, err := f.goals.CreatePlan(ctx, account, PlanInput{StartDate: date(t, "2024-02-01"), EndDate: date(t, "2024-02-10"), TargetSteps: 8000})
	require.NoError(t, err)
	_, err = f.goals.SetOverride(ctx, account, date(t, "2024-02-15"), 2000)
	require.NoError(t, err)
	_, _, err = f.steps.LogSteps(ctx, account, date(t, "2024-02-01"), 5000)
	require.NoError(t, err)
	_, _, err = f.steps.LogSteps(ctx, account, date(t, "2024-02-29"), 7000)
	require.NoError(t, err)
	_, _, err = f.steps.LogSteps(ctx, account, date(t, "2024-03-01"), 99999)
	require.NoError(t, err)

	view, err := f.goals.MonthlyView(ctx, account, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 29, view.Days)
	assert.Equal(t, 12000, view.TotalSteps)
	assert.Equal(t, 10*8000+2000+18*10000, view.TotalGoal)
	assert.Equal(t, 262000/29, view.AverageGoal)

	_, err = f.goals.MonthlyView(ctx, account, 2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestGoalService_PlanOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	jan := func(from, to string) PlanInput {
		return PlanInput{StartDate: date(t, "2024-01-"+from), EndDate: date(t, "2024-01-"+to), TargetSteps: 9000}
	}

	existing, err := f.goals.CreatePlan(ctx, account, jan("01", "10"))
	require.NoError(t, err)

	_, err = f.goals.CreatePlan(ctx, account, jan("05", "15"))
	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.ErrorIs(t, err, ErrPlanOverlap)
	assert.Equal(t, existing.ID, overlap.ConflictID())

	// Sharing only the boundary day still overlaps.
	_, err = f.goals.CreatePlan(ctx, account, jan("10", "12"))
	assert.ErrorIs(t, err, ErrPlanOverlap)

	_, err = f.goals.CreatePlan(ctx, account, jan("11", "20"))
	require.NoError(t, err)

	// Editing a plan ignores its own previous range.
	updated, err := f.goals.UpdatePlan(ctx, account, existing.ID, jan("02", "09"))
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-01-02"), updated.StartDate)

	_, err = f.goals.UpdatePlan(ctx, account, existing.ID, jan("02", "11"))
	assert.ErrorIs(t, err, ErrPlanOverlap)

	// Other accounts never conflict.
	_, err = f.goals.CreatePlan(ctx, primitive.NewObjectID(), jan("05", "15"))
	require.NoError(t, err)

	plans, err := f.goals.ListPlans(ctx, account)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestGoalService_PlanValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	_, err := f.goals.CreatePlan(ctx, account, PlanInput{StartDate: date(t, "2024-01-10"), EndDate: date(t, "2024-01-01"), TargetSteps: 9000})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.goals.CreatePlan(ctx, account, PlanInput{StartDate: date(t, "2024-01-01"), EndDate: date(t, "2024-01-01"), TargetSteps: 0})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = f.goals.UpdatePlan(ctx, account, primitive.NewObjectID(), PlanInput{StartDate: date(t, "2024-01-01"), EndDate: date(t, "2024-01-01"), TargetSteps: 1})
	assert.ErrorIs(t, err, ErrGoalPlanNotFound)

	assert.ErrorIs(t, f.goals.DeletePlan(ctx, account, primitive.NewObjectID()), ErrGoalPlanNotFound)
}

func TestGoalService_EffectiveGoalMatchesWeeklyView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := primitive.NewObjectID()

	// 2024-03-03 is a Sunday; the plan's first and last days are covered.
	_, err := f.goals.CreatePlan(ctx, account, PlanInput{StartDate: date(t, "2024-03-03"), EndDate: date(t, "2024-03-05"), TargetSteps: 8000})
	require.NoError(t, err)
	_, err = f.goals.SetOverride(ctx, account, date(t, "2024-03-04"), 3000)
	require.NoError(t, err)

	days, err := f.goals.WeeklyView(ctx, account, date(t, "2024-03-09"))
	require.NoError(t, err)
	require.Len(t, days, 6)

	want := []GoalSource{GoalFromPlan, GoalFromOverride, GoalFromPlan, GoalFromDefault, GoalFromDefault, GoalFromDefault}
	for i, view := range days {
		goal, err := f.goals.EffectiveGoal(ctx, account, date(t, view.Date))
		require.NoError(t, err)
		assert.Equal(t, want[i], goal.Source, view.Date)
		assert.Equal(t, EffectiveGoal{Target: view.Goal, Source: view.Source}, goal, view.Date)
	}
}
