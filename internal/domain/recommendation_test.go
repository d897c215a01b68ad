package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestWorkoutRecommendation_IsStale(t *testing.T) {
	level := ComputedLevel(LevelIntermediate)
	profile := &Profile{Weight: ptr(80.0), FitnessGoal: GoalFatLoss, FitnessLevel: &level}
	rec := &WorkoutRecommendation{Snapshot: RecommendationSnapshot{Weight: 80, Goal: GoalFatLoss, Level: level}}

	assert.False(t, rec.IsStale(profile), "unchanged profile")

	profile.Weight = ptr(82.0)
	assert.True(t, rec.IsStale(profile), "weight changed")

	profile.Weight = ptr(80.0)
	profile.FitnessGoal = GoalMaintenance
	assert.True(t, rec.IsStale(profile), "goal changed")

	profile.FitnessGoal = GoalFatLoss
	chosen := UserChosenLevel(LevelAdvanced)
	profile.FitnessLevel = &chosen
	assert.True(t, rec.IsStale(profile), "level changed")

	profile.FitnessLevel = nil
	assert.True(t, rec.IsStale(profile), "level cleared")
}

func TestProfile_MissingFields(t *testing.T) {
	p := &Profile{}
	assert.Equal(t, []string{"height", "weight", "target_weight", "age"}, p.MissingFields())

	p = &Profile{Height: ptr(180.0), Weight: ptr(80.0), TargetWeight: ptr(75.0), Age: ptr(25)}
	assert.Empty(t, p.MissingFields())

	p.Height = ptr(0.0)
	assert.Equal(t, []string{"height"}, p.MissingFields())
}

func TestProfile_LevelOverride(t *testing.T) {
	p := &Profile{}
	_, ok := p.LevelOverride()
	assert.False(t, ok)

	computed := ComputedLevel(LevelBeginner)
	p.FitnessLevel = &computed
	_, ok = p.LevelOverride()
	assert.False(t, ok, "computed level is not an override")

	chosen := UserChosenLevel(LevelExpert)
	p.FitnessLevel = &chosen
	level, ok := p.LevelOverride()
	assert.True(t, ok)
	assert.Equal(t, LevelExpert, level)
}

func TestProfile_StepGoal(t *testing.T) {
	assert.Equal(t, DefaultDailyStepGoal, (&Profile{}).StepGoal())
	assert.Equal(t, 8000, (&Profile{DailyStepGoal: 8000}).StepGoal())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelIntermediate, ParseLevel("  Intermediate "))
}
