package memory

import (
	"context"
	"sync"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileRepository is the in-memory repository.ProfileRepository.
type ProfileRepository struct {
	mu        sync.RWMutex
	byAccount map[primitive.ObjectID]*domain.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byAccount: make(map[primitive.ObjectID]*domain.Profile)}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byAccount[profile.AccountID]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	profile.ID = primitive.NewObjectID()
	ts := now()
	profile.CreatedAt = ts
	profile.UpdatedAt = ts

	r.byAccount[profile.AccountID] = cloneProfile(profile)
	return profile.ID, nil
}

func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.byAccount[accountID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.byAccount[profile.AccountID]
	if !exists || existing.ID != profile.ID {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = now()
	r.byAccount[profile.AccountID] = cloneProfile(profile)
	return nil
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	c.Height = clonePtr(p.Height)
	c.Weight = clonePtr(p.Weight)
	c.TargetWeight = clonePtr(p.TargetWeight)
	c.Age = clonePtr(p.Age)
	c.FitnessLevel = clonePtr(p.FitnessLevel)
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
