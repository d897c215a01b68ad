package service

import (
	"errors"
	"fmt"
	"strings"

	"reprise/backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrIncompleteProfile      = errors.New("profile incomplete")
	ErrInvalidProfile         = errors.New("invalid profile value")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrUnknownDay             = errors.New("day not found in the workout schedule")
	ErrInvalidStepCount       = errors.New("step count must not be negative")
	ErrInvalidPeriod          = errors.New("period must be daily, weekly or monthly")
	ErrInvalidTarget          = errors.New("target steps must be positive")
	ErrInvalidDateRange       = errors.New("start date cannot be after end date")
	ErrInvalidMonth           = errors.New("month must be between 1 and 12")
	ErrPlanOverlap            = errors.New("goal plan overlaps an existing plan")
	ErrGoalPlanNotFound       = errors.New("goal plan not found")
	ErrOverrideNotFound       = errors.New("goal override not found")
)

// IncompleteProfileError names the attributes plan generation still needs.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return "Profile incomplete: missing " + strings.Join(e.Missing, ", ")
}

func (e *IncompleteProfileError) Unwrap() error { return ErrIncompleteProfile }

// OverlapError rejects a goal plan whose range shares a day with Existing.
type OverlapError struct {
	Existing domain.StepGoalPlan
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("goal plan overlaps existing plan %s (%s to %s)",
		e.Existing.ID.Hex(),
		e.Existing.StartDate.Format(domain.DateLayout),
		e.Existing.EndDate.Format(domain.DateLayout))
}

func (e *OverlapError) Unwrap() error { return ErrPlanOverlap }

// ConflictID is the id of the plan that blocked the write.
func (e *OverlapError) ConflictID() primitive.ObjectID { return e.Existing.ID }
