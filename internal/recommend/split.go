package recommend

import (
	"strings"

	"reprise/backend/internal/domain"
)

// RestTime is the rest period attached to every exercise.
const RestTime = "60s"

// SplitDay lists the body parts trained on one day.
type SplitDay struct {
	Day       string
	BodyParts []string
}

// Split returns the weekly body-part split for a level and goal.
// Any level other than beginner or intermediate gets the advanced split,
// whose "triceps"/"biceps" labels resolve against the arms body part.
func Split(goal domain.Goal, level domain.Level) []SplitDay {
	switch domain.ParseLevel(string(level)) {
	case domain.LevelBeginner:
		return []SplitDay{
			{Day: "Day 1", BodyParts: []string{"chest", "back"}},
			{Day: "Day 2", BodyParts: []string{"legs", "abs"}},
			{Day: "Day 3", BodyParts: []string{"shoulders", "arms"}},
		}
	case domain.LevelIntermediate:
		if domain.Goal(strings.ToLower(string(goal))) == domain.GoalMuscleGain {
			return []SplitDay{
				{Day: "Day 1", BodyParts: []string{"chest"}},
				{Day: "Day 2", BodyParts: []string{"back"}},
				{Day: "Day 3", BodyParts: []string{"legs"}},
				{Day: "Day 4", BodyParts: []string{"shoulders"}},
				{Day: "Day 5", BodyParts: []string{"arms"}},
			}
		}
		return []SplitDay{
			{Day: "Day 1", BodyParts: []string{"chest", "back"}},
			{Day: "Day 2", BodyParts: []string{"legs"}},
			{Day: "Day 3", BodyParts: []string{"shoulders", "arms"}},
			{Day: "Day 4", BodyParts: []string{"abs"}},
		}
	default:
		return []SplitDay{
			{Day: "Day 1", BodyParts: []string{"chest", "triceps"}},
			{Day: "Day 2", BodyParts: []string{"back", "biceps"}},
			{Day: "Day 3", BodyParts: []string{"legs"}},
			{Day: "Day 4", BodyParts: []string{"shoulders"}},
			{Day: "Day 5", BodyParts: []string{"abs"}},
		}
	}
}

// ExerciseCount is the number of exercises sampled per body part.
func ExerciseCount(level domain.Level) int {
	switch domain.ParseLevel(string(level)) {
	case domain.LevelBeginner:
		return 3
	case domain.LevelIntermediate:
		return 4
	default:
		return 5
	}
}

// SetsReps picks sets and reps. A fat loss goal wins over the BMI bands.
func SetsReps(bmi float64, goal domain.Goal) (sets, reps string) {
	if goal == domain.GoalFatLoss || goal == domain.GoalWeightLoss {
		return "3", "12-20"
	}
	switch {
	case bmi < 18.5:
		return "4", "8-12"
	case bmi > 25:
		return "3", "12-15"
	default:
		return "3-4", "10-12"
	}
}
