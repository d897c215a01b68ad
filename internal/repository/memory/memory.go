// Package memory keeps every repository in process memory. It backs the
// "memory" database driver and the service tests. Stored values are copies,
// callers never share state with the store.
package memory

import (
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repository.ProfileRepository          = (*ProfileRepository)(nil)
	_ repository.RecommendationRepository   = (*RecommendationRepository)(nil)
	_ repository.StepLogRepository          = (*StepLogRepository)(nil)
	_ repository.StepGoalOverrideRepository = (*StepGoalOverrideRepository)(nil)
	_ repository.StepGoalPlanRepository     = (*StepGoalPlanRepository)(nil)
)

type dayKey struct {
	account primitive.ObjectID
	date    time.Time
}

func keyOf(accountID primitive.ObjectID, date time.Time) dayKey {
	return dayKey{account: accountID, date: domain.DateOf(date)}
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(domain.DateOf(from)) && !date.After(domain.DateOf(to))
}

func now() time.Time { return time.Now().UTC() }
