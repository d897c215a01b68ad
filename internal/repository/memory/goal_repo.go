package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StepGoalOverrideRepository is the in-memory repository.StepGoalOverrideRepository.
type StepGoalOverrideRepository struct {
	mu        sync.RWMutex
	overrides map[dayKey]domain.StepGoalOverride
}

func NewStepGoalOverrideRepository() *StepGoalOverrideRepository {
	return &StepGoalOverrideRepository{overrides: make(map[dayKey]domain.StepGoalOverride)}
}

func (r *StepGoalOverrideRepository) GetByDate(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepGoalOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.overrides[keyOf(accountID, date)]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *StepGoalOverrideRepository) ListRange(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) ([]domain.StepGoalOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.StepGoalOverride{}
	for key, o := range r.overrides {
		if key.account == accountID && inRange(key.date, from, to) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *StepGoalOverrideRepository) Upsert(ctx context.Context, override *domain.StepGoalOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(override.AccountID, override.Date)
	ts := now()
	if existing, exists := r.overrides[key]; exists {
		override.ID = existing.ID
		override.CreatedAt = existing.CreatedAt
	} else {
		override.ID = primitive.NewObjectID()
		override.CreatedAt = ts
	}
	override.Date = key.date
	override.UpdatedAt = ts
	r.overrides[key] = *override
	return nil
}

func (r *StepGoalOverrideRepository) Delete(ctx context.Context, accountID primitive.ObjectID, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(accountID, date)
	if _, exists := r.overrides[key]; !exists {
		return repository.ErrNotFound
	}
	delete(r.overrides, key)
	return nil
}

// StepGoalPlanRepository is the in-memory repository.StepGoalPlanRepository.
type StepGoalPlanRepository struct {
	mu    sync.RWMutex
	plans map[primitive.ObjectID]domain.StepGoalPlan
}

func NewStepGoalPlanRepository() *StepGoalPlanRepository {
	return &StepGoalPlanRepository{plans: make(map[primitive.ObjectID]domain.StepGoalPlan)}
}

func (r *StepGoalPlanRepository) Create(ctx context.Context, plan *domain.StepGoalPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.ID = primitive.NewObjectID()
	plan.StartDate = domain.DateOf(plan.StartDate)
	plan.EndDate = domain.DateOf(plan.EndDate)
	ts := now()
	plan.CreatedAt = ts
	plan.UpdatedAt = ts
	r.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *StepGoalPlanRepository) GetByID(ctx context.Context, accountID, planID primitive.ObjectID) (*domain.StepGoalPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.plans[planID]
	if !exists || p.AccountID != accountID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *StepGoalPlanRepository) Update(ctx context.Context, plan *domain.StepGoalPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.plans[plan.ID]
	if !exists || existing.AccountID != plan.AccountID {
		return repository.ErrNotFound
	}
	plan.StartDate = domain.DateOf(plan.StartDate)
	plan.EndDate = domain.DateOf(plan.EndDate)
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = now()
	r.plans[plan.ID] = *plan
	return nil
}

func (r *StepGoalPlanRepository) Delete(ctx context.Context, accountID, planID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.plans[planID]
	if !exists || p.AccountID != accountID {
		return repository.ErrNotFound
	}
	delete(r.plans, planID)
	return nil
}

func (r *StepGoalPlanRepository) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepGoalPlan, error) {
	return r.filter(accountID, func(domain.StepGoalPlan) bool { return true }), nil
}

func (r *StepGoalPlanRepository) FindCovering(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepGoalPlan, error) {
	covering := r.filter(accountID, func(p domain.StepGoalPlan) bool { return p.Covers(date) })
	if len(covering) == 0 {
		return nil, repository.ErrNotFound
	}
	return &covering[0], nil
}

func (r *StepGoalPlanRepository) FindOverlapping(ctx context.Context, accountID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) ([]domain.StepGoalPlan, error) {
	return r.filter(accountID, func(p domain.StepGoalPlan) bool {
		return p.ID != excludeID && p.Overlaps(start, end)
	}), nil
}

// filter returns matching plans of one account, newest start first.
func (r *StepGoalPlanRepository) filter(accountID primitive.ObjectID, keep func(domain.StepGoalPlan) bool) []domain.StepGoalPlan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.StepGoalPlan{}
	for _, p := range r.plans {
		if p.AccountID == accountID && keep(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result
}
