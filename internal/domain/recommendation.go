package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationSnapshot is the profile state a recommendation was generated from.
type RecommendationSnapshot struct {
	Weight float64      `bson:"weight" json:"weight"`
	Goal   Goal         `bson:"goal" json:"goal"`
	Level  FitnessLevel `bson:"level" json:"level"`
	BMI    float64      `bson:"bmi" json:"bmi"`
}

// WorkoutRecommendation is the generated weekly plan of a profile (1:1).
type WorkoutRecommendation struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ProfileID primitive.ObjectID     `bson:"profileId" json:"profileId"`
	AccountID primitive.ObjectID     `bson:"accountId" json:"accountId"`
	Data      PlanDocument           `bson:"data" json:"data"`
	Snapshot  RecommendationSnapshot `bson:"snapshot" json:"snapshot"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// IsStale reports whether the live profile diverged from the snapshot in
// weight, goal or level. Never stored, always derived.
func (r *WorkoutRecommendation) IsStale(p *Profile) bool {
	if p.Weight == nil || *p.Weight != r.Snapshot.Weight {
		return true
	}
	if p.FitnessGoal != r.Snapshot.Goal {
		return true
	}
	if p.FitnessLevel == nil || p.FitnessLevel.Value != r.Snapshot.Level.Value {
		return true
	}
	return false
}
