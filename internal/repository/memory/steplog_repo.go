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

// StepLogRepository is the in-memory repository.StepLogRepository. The
// (account, date) map key plays the role of the unique index.
type StepLogRepository struct {
	mu   sync.RWMutex
	logs map[dayKey]domain.StepLog
}

func NewStepLogRepository() *StepLogRepository {
	return &StepLogRepository{logs: make(map[dayKey]domain.StepLog)}
}

func (r *StepLogRepository) GetByDate(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*domain.StepLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, exists := r.logs[keyOf(accountID, date)]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &log, nil
}

func (r *StepLogRepository) Create(ctx context.Context, log *domain.StepLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(log.AccountID, log.Date)
	if _, exists := r.logs[key]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	log.ID = primitive.NewObjectID()
	log.Date = key.date
	ts := now()
	log.CreatedAt = ts
	log.UpdatedAt = ts

	r.logs[key] = *log
	return log.ID, nil
}

func (r *StepLogRepository) Update(ctx context.Context, log *domain.StepLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(log.AccountID, log.Date)
	existing, exists := r.logs[key]
	if !exists || existing.ID != log.ID {
		return repository.ErrNotFound
	}
	log.UpdatedAt = now()
	r.logs[key] = *log
	return nil
}

func (r *StepLogRepository) SumSteps(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) (int, error) {
	logs, err := r.ListRange(ctx, accountID, from, to)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, l := range logs {
		total += l.StepCount
	}
	return total, nil
}

func (r *StepLogRepository) ListRange(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) ([]domain.StepLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.StepLog{}
	for key, log := range r.logs {
		if key.account == accountID && inRange(key.date, from, to) {
			result = append(result, log)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *StepLogRepository) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.StepLog{}
	for key, log := range r.logs {
		if key.account == accountID {
			result = append(result, log)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}
