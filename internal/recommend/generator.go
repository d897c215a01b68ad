package recommend

import (
	"context"
	"errors"
	"fmt"

	"reprise/backend/internal/dataset"
	"reprise/backend/internal/domain"

	"go.uber.org/zap"
)

// ErrorKind classifies a failed generation.
type ErrorKind string

const (
	// KindDatasetMissing means the exercise catalog could not be found.
	KindDatasetMissing ErrorKind = "dataset_missing"
	// KindInternal covers everything unexpected, including recovered panics.
	KindInternal ErrorKind = "internal"
)

// GenerationError is the failure result of Generate.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

// CatalogSource provides the exercise rows.
type CatalogSource interface {
	Rows(ctx context.Context) ([]dataset.ExerciseRow, error)
}

// Input is a validated profile snapshot. Callers check completeness first.
type Input struct {
	Age         int
	Height      float64 // cm
	Weight      float64 // kg
	IdealWeight float64 // kg
	// LevelOverride, when set, replaces the computed level everywhere
	// downstream. It never affects the goal.
	LevelOverride *domain.Level
}

// Meta describes how a plan was derived.
type Meta struct {
	BMI          float64             `json:"bmi"`
	FitnessLevel domain.FitnessLevel `json:"fitness_level"`
	Goal         domain.Goal         `json:"goal"`
}

// Plan is a successful generation.
type Plan struct {
	Schedule domain.Schedule `json:"schedule"`
	Meta     Meta            `json:"meta"`
}

// Generator turns a profile snapshot into a weekly plan.
type Generator struct {
	catalog  CatalogSource
	selector *Selector
	logger   *zap.Logger
}

// NewGenerator wires the catalog and selector into a generator.
func NewGenerator(catalog CatalogSource, selector *Selector, logger *zap.Logger) *Generator {
	if selector == nil {
		selector = NewSelector(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{catalog: catalog, selector: selector, logger: logger}
}

// Generate builds the plan. Every failure is a *GenerationError; a panic
// while generating is recovered and reported as KindInternal.
func (g *Generator) Generate(ctx context.Context, in Input) (plan *Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("plan generation panicked", zap.Any("panic", r))
			plan = nil
			err = &GenerationError{Kind: KindInternal, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	rows, err := g.catalog.Rows(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetMissing) {
			return nil, &GenerationError{Kind: KindDatasetMissing, Message: err.Error(), Err: err}
		}
		return nil, &GenerationError{Kind: KindInternal, Message: err.Error(), Err: err}
	}

	bmi, _ := BMI(in.Weight, in.Height)
	goal := WorkoutGoal(in.Weight, in.IdealWeight)

	level := domain.ComputedLevel(ClassifyLevel(in.Age, bmi))
	if in.LevelOverride != nil && *in.LevelOverride != "" {
		level = domain.UserChosenLevel(domain.ParseLevel(string(*in.LevelOverride)))
	}

	split := Split(goal, level.Value)
	maxExercises := ExerciseCount(level.Value)
	sets, reps := SetsReps(bmi, goal)

	schedule := make(domain.Schedule, 0, len(split))
	for _, day := range split {
		entries := []domain.ExerciseEntry{}
		for _, part := range day.BodyParts {
			for _, row := range g.selector.Select(rows, part, maxExercises) {
				entries = append(entries, domain.ExerciseEntry{
					Exercise:     row.Workout,
					TargetMuscle: row.MuscleType,
					BodyPart:     part,
					Sets:         sets,
					Reps:         reps,
					RestTime:     RestTime,
				})
			}
		}
		schedule = append(schedule, domain.DayPlan{Day: day.Day, Exercises: entries})
	}

	return &Plan{
		Schedule: schedule,
		Meta:     Meta{BMI: bmi, FitnessLevel: level, Goal: goal},
	}, nil
}
