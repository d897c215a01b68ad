package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"reprise/backend/internal/dataset"
	"reprise/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingCatalog struct{ err error }

func (f failingCatalog) Rows(context.Context) ([]dataset.ExerciseRow, error) { return nil, f.err }

type panickingCatalog struct{}

func (panickingCatalog) Rows(context.Context) ([]dataset.ExerciseRow, error) { panic("boom") }

func newTestGenerator(source CatalogSource) *Generator {
	return NewGenerator(source, NewSelector(rand.New(rand.NewSource(3))), zap.NewNop())
}

func TestGenerate_IntermediateFatLoss(t *testing.T) {
	g := newTestGenerator(dataset.NewStaticCatalog(testRows))

	plan, err := g.Generate(context.Background(), Input{Age: 30, Height: 175, Weight: 70, IdealWeight: 65})
	require.NoError(t, err)

	assert.Equal(t, 22.86, plan.Meta.BMI)
	assert.Equal(t, domain.GoalFatLoss, plan.Meta.Goal)
	assert.Equal(t, domain.ComputedLevel(domain.LevelIntermediate), plan.Meta.FitnessLevel)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3", "Day 4"}, plan.Schedule.Days())

	day1, ok := plan.Schedule.Day("Day 1")
	require.True(t, ok)
	// 4 of 5 chest rows plus the single back row.
	assert.Len(t, day1.Exercises, 5)
	for _, e := range day1.Exercises {
		assert.Equal(t, "3", e.Sets)
		assert.Equal(t, "12-20", e.Reps)
		assert.Equal(t, RestTime, e.RestTime)
		assert.Nil(t, e.VideoURL)
	}

	// Shoulders has no rows; arms has three.
	day3, _ := plan.Schedule.Day("Day 3")
	assert.Len(t, day3.Exercises, 3)
	for _, e := range day3.Exercises {
		assert.Equal(t, "arms", e.BodyPart)
	}
}

func TestGenerate_AdvancedOverrideEchoesLabel(t *testing.T) {
	g := newTestGenerator(dataset.NewStaticCatalog(testRows))
	level := domain.LevelAdvanced

	plan, err := g.Generate(context.Background(), Input{Age: 50, Height: 175, Weight: 70, IdealWeight: 70, LevelOverride: &level})
	require.NoError(t, err)

	assert.Equal(t, domain.UserChosenLevel(domain.LevelAdvanced), plan.Meta.FitnessLevel)
	assert.Equal(t, domain.GoalMaintenance, plan.Meta.Goal)
	assert.Len(t, plan.Schedule, 5)

	day1, _ := plan.Schedule.Day("Day 1")
	var triceps int
	for _, e := range day1.Exercises {
		if e.BodyPart == "triceps" {
			triceps++
			assert.Equal(t, "triceps", e.TargetMuscle)
		}
	}
	assert.Equal(t, 2, triceps)
}

func TestGenerate_DatasetMissing(t *testing.T) {
	g := newTestGenerator(failingCatalog{err: fmt.Errorf("open Workout.csv: %w", dataset.ErrDatasetMissing)})

	plan, err := g.Generate(context.Background(), Input{Age: 30, Height: 175, Weight: 70, IdealWeight: 65})
	assert.Nil(t, plan)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindDatasetMissing, genErr.Kind)
	assert.ErrorIs(t, err, dataset.ErrDatasetMissing)
}

func TestGenerate_OtherLoadErrorIsInternal(t *testing.T) {
	g := newTestGenerator(failingCatalog{err: errors.New("bad header")})

	_, err := g.Generate(context.Background(), Input{Age: 30, Height: 175, Weight: 70, IdealWeight: 65})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindInternal, genErr.Kind)
}

func TestGenerate_RecoversPanic(t *testing.T) {
	g := newTestGenerator(panickingCatalog{})

	plan, err := g.Generate(context.Background(), Input{Age: 30, Height: 175, Weight: 70, IdealWeight: 65})
	assert.Nil(t, plan)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindInternal, genErr.Kind)
	assert.Contains(t, genErr.Message, "boom")
}
