package memory

import (
	"context"
	"maps"
	"sync"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationRepository is the in-memory repository.RecommendationRepository.
type RecommendationRepository struct {
	mu        sync.RWMutex
	byProfile map[primitive.ObjectID]*domain.WorkoutRecommendation
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{byProfile: make(map[primitive.ObjectID]*domain.WorkoutRecommendation)}
}

func (r *RecommendationRepository) Upsert(ctx context.Context, rec *domain.WorkoutRecommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	if existing, exists := r.byProfile[rec.ProfileID]; exists {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = primitive.NewObjectID()
		rec.CreatedAt = ts
	}
	rec.UpdatedAt = ts

	r.byProfile[rec.ProfileID] = cloneRecommendation(rec)
	return nil
}

func (r *RecommendationRepository) GetByProfileID(ctx context.Context, profileID primitive.ObjectID) (*domain.WorkoutRecommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.byProfile[profileID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return cloneRecommendation(rec), nil
}

func (r *RecommendationRepository) SetDayProgress(ctx context.Context, profileID primitive.ObjectID, day string, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.byProfile[profileID]
	if !exists {
		return repository.ErrNotFound
	}
	if rec.Data.Progress == nil {
		rec.Data.Progress = domain.Progress{}
	}
	rec.Data.Progress[day] = done
	rec.UpdatedAt = now()
	return nil
}

func cloneRecommendation(rec *domain.WorkoutRecommendation) *domain.WorkoutRecommendation {
	c := *rec
	c.Data.Progress = maps.Clone(rec.Data.Progress)
	if rec.Data.Schedule != nil {
		c.Data.Schedule = make(domain.Schedule, len(rec.Data.Schedule))
		for i, day := range rec.Data.Schedule {
			c.Data.Schedule[i] = domain.DayPlan{
				Day:       day.Day,
				Exercises: append([]domain.ExerciseEntry(nil), day.Exercises...),
			}
		}
	}
	return &c
}
