package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar day at UTC midnight. All stored dates
// go through it so per-day keys compare equal.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// StepLog is the step total of one account on one day, unique per (account, date).
// Distance, calories and duration derive from the step count and the
// profile height/weight at write time.
type StepLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID       primitive.ObjectID `bson:"accountId" json:"accountId"`
	Date            time.Time          `bson:"date" json:"date"`
	StepCount       int                `bson:"stepCount" json:"stepCount"`
	DistanceMeters  float64            `bson:"distanceMeters" json:"distanceMeters"`
	CaloriesBurned  float64            `bson:"caloriesBurned" json:"caloriesBurned"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StepGoalOverride replaces the step goal of a single day.
type StepGoalOverride struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID   primitive.ObjectID `bson:"accountId" json:"accountId"`
	Date        time.Time          `bson:"date" json:"date"`
	TargetSteps int                `bson:"targetSteps" json:"targetSteps"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StepGoalPlan sets a step goal for an inclusive date range. Plans of the
// same account never overlap.
type StepGoalPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID   primitive.ObjectID `bson:"accountId" json:"accountId"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	TargetSteps int                `bson:"targetSteps" json:"targetSteps"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Covers reports whether date falls inside the plan range.
func (p *StepGoalPlan) Covers(date time.Time) bool {
	date = DateOf(date)
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Overlaps reports whether [start, end] shares at least one day with the plan.
func (p *StepGoalPlan) Overlaps(start, end time.Time) bool {
	return !DateOf(start).After(p.EndDate) && !DateOf(end).Before(p.StartDate)
}
