package service

import (
	"context"
	"errors"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadOrCreateProfile returns the account's profile, creating an empty one
// with the default step goal on first access.
func loadOrCreateProfile(ctx context.Context, profiles repository.ProfileRepository, accountID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := profiles.GetByAccountID(ctx, accountID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile = &domain.Profile{AccountID: accountID, DailyStepGoal: domain.DefaultDailyStepGoal}
	if _, err = profiles.Create(ctx, profile); err != nil {
		// Another request created it first.
		if errors.Is(err, repository.ErrDuplicate) {
			return profiles.GetByAccountID(ctx, accountID)
		}
		return nil, err
	}
	return profile, nil
}
