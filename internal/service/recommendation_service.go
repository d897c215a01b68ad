package service

import (
	"context"
	"errors"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/metrics"
	"reprise/backend/internal/recommend"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PlanGenerator produces a raw weekly plan from a validated profile snapshot.
type PlanGenerator interface {
	Generate(ctx context.Context, in recommend.Input) (*recommend.Plan, error)
}

// PlanEnricher turns a raw schedule into the persisted document.
type PlanEnricher interface {
	Enrich(ctx context.Context, schedule domain.Schedule) domain.PlanDocument
}

type RecommendationService interface {
	// GetRecommendation returns the current plan, generating it when none
	// exists or the stored one is stale.
	GetRecommendation(ctx context.Context, accountID primitive.ObjectID) (*domain.WorkoutRecommendation, error)
	RegenerateForAccount(ctx context.Context, accountID primitive.ObjectID) (*domain.WorkoutRecommendation, error)
	Regenerate(ctx context.Context, profile *domain.Profile) (*domain.WorkoutRecommendation, error)
	// UpdateProgress marks one day done or not done without regenerating.
	UpdateProgress(ctx context.Context, accountID primitive.ObjectID, day string, done bool) (*domain.WorkoutRecommendation, error)
}

type recommendationService struct {
	profiles        repository.ProfileRepository
	recommendations repository.RecommendationRepository
	generator       PlanGenerator
	enricher        PlanEnricher
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewRecommendationService(
	profiles repository.ProfileRepository,
	recommendations repository.RecommendationRepository,
	generator PlanGenerator,
	enricher PlanEnricher,
	m *metrics.Metrics,
	logger *zap.Logger,
) RecommendationService {
	return &recommendationService{
		profiles:        profiles,
		recommendations: recommendations,
		generator:       generator,
		enricher:        enricher,
		metrics:         m,
		logger:          logger,
	}
}

func (s *recommendationService) GetRecommendation(ctx context.Context, accountID primitive.ObjectID) (*domain.WorkoutRecommendation, error) {
	profile, err := loadOrCreateProfile(ctx, s.profiles, accountID)
	if err != nil {
		return nil, err
	}
	if missing := profile.MissingFields(); len(missing) > 0 {
		return nil, &IncompleteProfileError{Missing: missing}
	}

	rec, err := s.recommendations.GetByProfileID(ctx, profile.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.Regenerate(ctx, profile)
	case err != nil:
		return nil, err
	case rec.IsStale(profile):
		s.logger.Info("Recommendation is stale, regenerating", zap.String("profileId", profile.ID.Hex()))
		return s.Regenerate(ctx, profile)
	}
	return rec, nil
}

func (s *recommendationService) RegenerateForAccount(ctx context.Context, accountID primitive.ObjectID) (*domain.WorkoutRecommendation, error) {
	profile, err := loadOrCreateProfile(ctx, s.profiles, accountID)
	if err != nil {
		return nil, err
	}
	return s.Regenerate(ctx, profile)
}

// Regenerate replaces the profile's recommendation wholesale and records the
// derived goal (and computed level) on the profile.
func (s *recommendationService) Regenerate(ctx context.Context, profile *domain.Profile) (*domain.WorkoutRecommendation, error) {
	if missing := profile.MissingFields(); len(missing) > 0 {
		return nil, &IncompleteProfileError{Missing: missing}
	}

	in := recommend.Input{
		Age:         *profile.Age,
		Height:      *profile.Height,
		Weight:      *profile.Weight,
		IdealWeight: *profile.TargetWeight,
	}
	if level, ok := profile.LevelOverride(); ok {
		in.LevelOverride = &level
	}

	plan, err := s.generator.Generate(ctx, in)
	if err != nil {
		var genErr *recommend.GenerationError
		if errors.As(err, &genErr) {
			s.metrics.PlanGenerated(string(genErr.Kind))
		} else {
			s.metrics.PlanGenerated(string(recommend.KindInternal))
		}
		s.logger.Error("Plan generation failed", zap.String("profileId", profile.ID.Hex()), zap.Error(err))
		return nil, err
	}

	rec := &domain.WorkoutRecommendation{
		ProfileID: profile.ID,
		AccountID: profile.AccountID,
		Data:      s.enricher.Enrich(ctx, plan.Schedule),
		Snapshot: domain.RecommendationSnapshot{
			Weight: in.Weight,
			Goal:   plan.Meta.Goal,
			Level:  plan.Meta.FitnessLevel,
			BMI:    plan.Meta.BMI,
		},
	}
	if err = s.recommendations.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	profile.FitnessGoal = plan.Meta.Goal
	if !plan.Meta.FitnessLevel.IsUserChosen() {
		level := plan.Meta.FitnessLevel
		profile.FitnessLevel = &level
	}
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.metrics.PlanGenerated(metrics.ResultOK)
	s.logger.Info("Workout recommendation generated",
		zap.String("profileId", profile.ID.Hex()),
		zap.String("level", string(plan.Meta.FitnessLevel.Value)),
		zap.String("goal", string(plan.Meta.Goal)),
		zap.Int("days", len(plan.Schedule)))
	return rec, nil
}

func (s *recommendationService) UpdateProgress(ctx context.Context, accountID primitive.ObjectID, day string, done bool) (*domain.WorkoutRecommendation, error) {
	profile, err := s.profiles.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}

	rec, err := s.recommendations.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}
	if _, ok := rec.Data.Schedule.Day(day); !ok {
		return nil, ErrUnknownDay
	}

	if err = s.recommendations.SetDayProgress(ctx, profile.ID, day, done); err != nil {
		return nil, err
	}
	return s.recommendations.GetByProfileID(ctx, profile.ID)
}
