package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultDailyStepGoal is used when a profile has no explicit step goal.
const DefaultDailyStepGoal = 10000

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Profile holds the physical attributes of one account (1:1).
// Numeric attributes are pointers: nil means "not provided yet".
type Profile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Unique, one profile per account.
	AccountID     primitive.ObjectID `bson:"accountId" json:"accountId"`
	Height        *float64           `bson:"height,omitempty" json:"height"`             // cm
	Weight        *float64           `bson:"weight,omitempty" json:"weight"`             // kg
	TargetWeight  *float64           `bson:"targetWeight,omitempty" json:"targetWeight"` // kg, the ideal weight
	Age           *int               `bson:"age,omitempty" json:"age"`
	Gender        Gender             `bson:"gender,omitempty" json:"gender,omitempty"`
	FitnessGoal   Goal               `bson:"fitnessGoal,omitempty" json:"fitnessGoal,omitempty"`
	FitnessLevel  *FitnessLevel      `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	DailyStepGoal int                `bson:"dailyStepGoal" json:"dailyStepGoal"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MissingFields lists the attributes plan generation needs but the profile
// does not have yet.
func (p *Profile) MissingFields() []string {
	var missing []string
	if p.Height == nil || *p.Height <= 0 {
		missing = append(missing, "height")
	}
	if p.Weight == nil || *p.Weight <= 0 {
		missing = append(missing, "weight")
	}
	if p.TargetWeight == nil || *p.TargetWeight <= 0 {
		missing = append(missing, "target_weight")
	}
	if p.Age == nil {
		missing = append(missing, "age")
	}
	return missing
}

// LevelOverride returns the level the user chose, if any.
func (p *Profile) LevelOverride() (Level, bool) {
	if p.FitnessLevel != nil && p.FitnessLevel.IsUserChosen() && p.FitnessLevel.Value != "" {
		return p.FitnessLevel.Value, true
	}
	return "", false
}

// StepGoal returns the profile default step goal.
func (p *Profile) StepGoal() int {
	if p.DailyStepGoal <= 0 {
		return DefaultDailyStepGoal
	}
	return p.DailyStepGoal
}
