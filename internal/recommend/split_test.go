package recommend

import (
	"testing"

	"reprise/backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func days(split []SplitDay) []string {
	out := make([]string, len(split))
	for i, d := range split {
		out[i] = d.Day
	}
	return out
}

func TestSplit(t *testing.T) {
	beginner := Split(domain.GoalFatLoss, domain.LevelBeginner)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3"}, days(beginner))
	assert.Equal(t, []string{"chest", "back"}, beginner[0].BodyParts)

	gain := Split(domain.GoalMuscleGain, domain.LevelIntermediate)
	assert.Len(t, gain, 5)
	assert.Equal(t, []string{"arms"}, gain[4].BodyParts)

	other := Split(domain.GoalFatLoss, domain.LevelIntermediate)
	assert.Len(t, other, 4)
	assert.Equal(t, []string{"abs"}, other[3].BodyParts)

	advanced := Split(domain.GoalMaintenance, domain.LevelAdvanced)
	assert.Len(t, advanced, 5)
	assert.Equal(t, []string{"chest", "triceps"}, advanced[0].BodyParts)
	assert.Equal(t, []string{"back", "biceps"}, advanced[1].BodyParts)

	// Unknown levels use the advanced split; level matching ignores case.
	assert.Equal(t, advanced, Split(domain.GoalMaintenance, "expert"))
	assert.Equal(t, beginner, Split(domain.GoalFatLoss, "Beginner"))
}

func TestExerciseCount(t *testing.T) {
	assert.Equal(t, 3, ExerciseCount(domain.LevelBeginner))
	assert.Equal(t, 4, ExerciseCount(domain.LevelIntermediate))
	assert.Equal(t, 5, ExerciseCount(domain.LevelAdvanced))
	assert.Equal(t, 5, ExerciseCount("whatever"))
}

func TestSetsReps(t *testing.T) {
	tests := []struct {
		name       string
		bmi        float64
		goal       domain.Goal
		sets, reps string
	}{
		{"fat loss wins over bmi", 17, domain.GoalFatLoss, "3", "12-20"},
		{"weight loss alias", 22, domain.GoalWeightLoss, "3", "12-20"},
		{"underweight", 17, domain.GoalMuscleGain, "4", "8-12"},
		{"overweight", 27, domain.GoalMaintenance, "3", "12-15"},
		{"exactly 25 is normal", 25, domain.GoalMaintenance, "3-4", "10-12"},
		{"normal", 22.86, domain.GoalMuscleGain, "3-4", "10-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, reps := SetsReps(tt.bmi, tt.goal)
			assert.Equal(t, tt.sets, sets)
			assert.Equal(t, tt.reps, reps)
		})
	}
}
