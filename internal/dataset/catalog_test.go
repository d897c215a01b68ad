package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reprise/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `Workout,Body Part,Type of Muscle
Bench Press, Chest ,Upper Chest
Squat,LEGS,Quads
Skull Crusher,Arms,Triceps
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestCatalog_LoadsAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Workout.csv", catalogCSV)

	catalog := NewCatalog(storage.NewLocalStore(dir), "Workout.csv", nil, nil)
	rows, err := catalog.Rows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, ExerciseRow{Workout: "Bench Press", BodyPart: "chest", MuscleType: "upper chest"}, rows[0])
	assert.Equal(t, "legs", rows[1].BodyPart)
	assert.Equal(t, "triceps", rows[2].MuscleType)
}

func TestCatalog_MissingFile(t *testing.T) {
	catalog := NewCatalog(storage.NewLocalStore(t.TempDir()), "Workout.csv", nil, nil)

	_, err := catalog.Rows(context.Background())
	assert.ErrorIs(t, err, ErrDatasetMissing)
}

func TestCatalog_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Workout.csv", "Name,Group\nSquat,legs\n")

	catalog := NewCatalog(storage.NewLocalStore(dir), "Workout.csv", nil, nil)
	_, err := catalog.Rows(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDatasetMissing)
}

func TestCatalog_CachesUntilReload(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Workout.csv", catalogCSV)
	catalog := NewCatalog(storage.NewLocalStore(dir), "Workout.csv", nil, nil)
	ctx := context.Background()

	_, err := catalog.Rows(ctx)
	require.NoError(t, err)

	writeFile(t, dir, "Workout.csv", "Workout,Body Part\nPlank,abs\n")
	rows, err := catalog.Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "cached rows are served until reload")

	require.NoError(t, catalog.Reload(ctx))
	rows, err = catalog.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Plank", rows[0].Workout)
	assert.Equal(t, "", rows[0].MuscleType, "muscle type column is optional")
}

func TestCatalog_ReloadFailureKeepsRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Workout.csv", catalogCSV)
	catalog := NewCatalog(storage.NewLocalStore(dir), "Workout.csv", nil, nil)
	ctx := context.Background()

	_, err := catalog.Rows(ctx)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "Workout.csv")))

	assert.ErrorIs(t, catalog.Reload(ctx), ErrDatasetMissing)
	rows, err := catalog.Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	catalog.Invalidate()
	_, err = catalog.Rows(ctx)
	assert.ErrorIs(t, err, ErrDatasetMissing)
}

func TestStaticCatalog(t *testing.T) {
	catalog := NewStaticCatalog([]ExerciseRow{{Workout: " Curl ", BodyPart: " ARMS", MuscleType: "Biceps "}})
	ctx := context.Background()

	require.NoError(t, catalog.Reload(ctx))
	catalog.Invalidate()
	rows, err := catalog.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ExerciseRow{{Workout: "Curl", BodyPart: "arms", MuscleType: "biceps"}}, rows)
}
