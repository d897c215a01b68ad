package service

import (
	"context"
	"fmt"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/recommend"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProfileUpdate is a partial profile change. Nil fields are left alone.
// FitnessLevel set to "" clears a user chosen level.
type ProfileUpdate struct {
	Height        *float64       `json:"height"`
	Weight        *float64       `json:"weight"`
	TargetWeight  *float64       `json:"targetWeight"`
	Age           *int           `json:"age"`
	Gender        *domain.Gender `json:"gender"`
	FitnessLevel  *string        `json:"fitnessLevel"`
	DailyStepGoal *int           `json:"dailyStepGoal"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, accountID primitive.ObjectID) (*domain.Profile, error)
	// UpdateProfile applies the patch and regenerates the workout
	// recommendation when a generator input changed.
	UpdateProfile(ctx context.Context, accountID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error)
}

// Regenerator rebuilds the recommendation of a complete profile.
type Regenerator interface {
	Regenerate(ctx context.Context, profile *domain.Profile) (*domain.WorkoutRecommendation, error)
}

type profileService struct {
	profiles    repository.ProfileRepository
	regenerator Regenerator
	logger      *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, regenerator Regenerator, logger *zap.Logger) ProfileService {
	return &profileService{profiles: profiles, regenerator: regenerator, logger: logger}
}

func (s *profileService) GetProfile(ctx context.Context, accountID primitive.ObjectID) (*domain.Profile, error) {
	return loadOrCreateProfile(ctx, s.profiles, accountID)
}

func (s *profileService) UpdateProfile(ctx context.Context, accountID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}

	profile, err := loadOrCreateProfile(ctx, s.profiles, accountID)
	if err != nil {
		return nil, err
	}

	triggered := update.apply(profile)
	if profile.Weight != nil && profile.TargetWeight != nil {
		profile.FitnessGoal = recommend.WorkoutGoal(*profile.Weight, *profile.TargetWeight)
	}
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	if !triggered || len(profile.MissingFields()) > 0 {
		return profile, nil
	}

	// A failed regeneration leaves the old plan in place. The stored profile
	// already differs from its snapshot, so the next read retries.
	if _, err = s.regenerator.Regenerate(ctx, profile); err != nil {
		s.logger.Warn("Regenerating recommendation after profile update failed",
			zap.String("accountId", accountID.Hex()), zap.Error(err))
	}
	return profile, nil
}

func (u ProfileUpdate) validate() error {
	positive := map[string]*float64{"height": u.Height, "weight": u.Weight, "targetWeight": u.TargetWeight}
	for name, v := range positive {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidProfile, name)
		}
	}
	if u.Age != nil && *u.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidProfile)
	}
	if u.DailyStepGoal != nil && *u.DailyStepGoal <= 0 {
		return fmt.Errorf("%w: dailyStepGoal must be positive", ErrInvalidProfile)
	}
	if u.Gender != nil && *u.Gender != domain.GenderMale && *u.Gender != domain.GenderFemale {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidProfile)
	}
	if u.FitnessLevel != nil && *u.FitnessLevel != "" {
		switch domain.ParseLevel(*u.FitnessLevel) {
		case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced, domain.LevelExpert:
		default:
			return fmt.Errorf("%w: unknown fitness level %q", ErrInvalidProfile, *u.FitnessLevel)
		}
	}
	return nil
}

// apply patches p and reports whether a plan generator input changed.
func (u ProfileUpdate) apply(p *domain.Profile) bool {
	triggered := false
	setFloat := func(dst **float64, v *float64) {
		if v != nil && (*dst == nil || **dst != *v) {
			val := *v
			*dst = &val
			triggered = true
		}
	}
	setFloat(&p.Height, u.Height)
	setFloat(&p.Weight, u.Weight)
	setFloat(&p.TargetWeight, u.TargetWeight)

	if u.Age != nil && (p.Age == nil || *p.Age != *u.Age) {
		age := *u.Age
		p.Age = &age
		triggered = true
	}
	if u.FitnessLevel != nil {
		if *u.FitnessLevel == "" {
			if p.FitnessLevel != nil && p.FitnessLevel.IsUserChosen() {
				p.FitnessLevel = nil
				triggered = true
			}
		} else {
			chosen := domain.UserChosenLevel(domain.ParseLevel(*u.FitnessLevel))
			if p.FitnessLevel == nil || *p.FitnessLevel != chosen {
				p.FitnessLevel = &chosen
				triggered = true
			}
		}
	}

	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.DailyStepGoal != nil {
		p.DailyStepGoal = *u.DailyStepGoal
	}
	return triggered
}
