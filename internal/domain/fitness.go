package domain

import "strings"

// Level is a fitness classification.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// ParseLevel normalizes a user supplied level string.
func ParseLevel(s string) Level {
	return Level(strings.ToLower(strings.TrimSpace(s)))
}

// Goal is the training goal derived from current vs ideal weight.
type Goal string

const (
	GoalFatLoss     Goal = "fat_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
	// GoalWeightLoss is accepted as an alias of GoalFatLoss by the sets/reps policy.
	GoalWeightLoss Goal = "weight_loss"
)

// LevelSource records where a fitness level came from.
type LevelSource string

const (
	LevelComputed   LevelSource = "computed"
	LevelUserChosen LevelSource = "user_chosen"
)

// FitnessLevel is a level tagged with its origin. Only a user chosen level
// overrides the computed classification.
type FitnessLevel struct {
	Value  Level       `bson:"value" json:"value"`
	Source LevelSource `bson:"source" json:"source"`
}

// ComputedLevel wraps a level produced by the classification rules.
func ComputedLevel(l Level) FitnessLevel {
	return FitnessLevel{Value: l, Source: LevelComputed}
}

// UserChosenLevel wraps a level the user picked explicitly.
func UserChosenLevel(l Level) FitnessLevel {
	return FitnessLevel{Value: l, Source: LevelUserChosen}
}

// IsUserChosen reports whether the level came from the user rather than
// from classification.
func (f FitnessLevel) IsUserChosen() bool {
	return f.Source == LevelUserChosen
}
