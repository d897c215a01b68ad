package service

import (
	"math/rand"
	"testing"
	"time"

	"reprise/backend/internal/dataset"
	"reprise/backend/internal/domain"
	"reprise/backend/internal/recommend"
	"reprise/backend/internal/repository/memory"

	"go.uber.org/zap"
)

var catalogRows = []dataset.ExerciseRow{
	{Workout: "Bench Press", BodyPart: "Chest", MuscleType: "Pectorals"},
	{Workout: "Push Up", BodyPart: "Chest", MuscleType: "Pectorals"},
	{Workout: "Pull Up", BodyPart: "Back", MuscleType: "Lats"},
	{Workout: "Squat", BodyPart: "Legs", MuscleType: "Quadriceps"},
	{Workout: "Lunge", BodyPart: "Legs", MuscleType: "Glutes"},
	{Workout: "Shoulder Press", BodyPart: "Shoulders", MuscleType: "Deltoids"},
	{Workout: "Curl", BodyPart: "Arms", MuscleType: "Biceps"},
	{Workout: "Pushdown", BodyPart: "Arms", MuscleType: "Triceps"},
	{Workout: "Crunch", BodyPart: "Abs", MuscleType: "Rectus Abdominis"},
}

type fixture struct {
	profiles  *memory.ProfileRepository
	recs      *memory.RecommendationRepository
	logs      *memory.StepLogRepository
	overrides *memory.StepGoalOverrideRepository
	plans     *memory.StepGoalPlanRepository

	recommendations RecommendationService
	profileService  ProfileService
	steps           StepService
	goals           GoalService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCatalog(t, dataset.NewStaticCatalog(catalogRows))
}

func newFixtureWithCatalog(t *testing.T, catalog recommend.CatalogSource) *fixture {
	t.Helper()
	logger := zap.NewNop()
	f := &fixture{
		profiles:  memory.NewProfileRepository(),
		recs:      memory.NewRecommendationRepository(),
		logs:      memory.NewStepLogRepository(),
		overrides: memory.NewStepGoalOverrideRepository(),
		plans:     memory.NewStepGoalPlanRepository(),
	}
	generator := recommend.NewGenerator(catalog, recommend.NewSelector(rand.New(rand.NewSource(11))), logger)
	enricher := recommend.NewEnricher(dataset.NewStaticVideoLinks(map[string]string{"Squat": "https://video.example/squat"}), logger)

	f.recommendations = NewRecommendationService(f.profiles, f.recs, generator, enricher, nil, logger)
	f.profileService = NewProfileService(f.profiles, f.recommendations, logger)
	f.steps = NewStepService(f.profiles, f.logs, nil, logger)
	f.goals = NewGoalService(f.profiles, f.logs, f.overrides, f.plans, logger)
	return f
}

func ptr[T any](v T) *T { return &v }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func completeProfile(weight float64) ProfileUpdate {
	return ProfileUpdate{
		Height:       ptr(175.0),
		Weight:       ptr(weight),
		TargetWeight: ptr(70.0),
		Age:          ptr(30),
	}
}
