// Package recommend is the rule-based workout recommendation engine: it
// classifies a profile, picks a weekly split, samples exercises from the
// catalog and enriches the result with video links and a progress tracker.
package recommend

import (
	"math"

	"reprise/backend/internal/domain"
)

// BMI returns weight / height_m^2 rounded to two decimals. The second result
// is false when height is not positive.
func BMI(weightKg, heightCm float64) (float64, bool) {
	if heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*100) / 100, true
}

// ClassifyLevel derives a fitness level from age and BMI. Rules are checked
// in order, the first match wins.
func ClassifyLevel(age int, bmi float64) domain.Level {
	switch {
	case age > 45:
		return domain.LevelBeginner
	case bmi >= 30:
		return domain.LevelBeginner
	case bmi >= 25:
		return domain.LevelBeginner
	case bmi >= 18.5:
		return domain.LevelIntermediate
	default:
		return domain.LevelBeginner
	}
}

// WorkoutGoal compares current and ideal weight.
func WorkoutGoal(weight, idealWeight float64) domain.Goal {
	switch {
	case weight > idealWeight:
		return domain.GoalFatLoss
	case weight < idealWeight:
		return domain.GoalMuscleGain
	default:
		return domain.GoalMaintenance
	}
}
