package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"reprise/backend/internal/metrics"
	"reprise/backend/internal/storage"

	"go.uber.org/zap"
)

// Column names of the exercise catalog table.
const (
	ColumnWorkout    = "Workout"
	ColumnBodyPart   = "Body Part"
	ColumnMuscleType = "Type of Muscle"
	ColumnLinks      = "Links"
)

// ErrDatasetMissing is returned when the exercise catalog table cannot be found.
var ErrDatasetMissing = errors.New("exercise dataset not found")

// ExerciseRow is one catalog entry. BodyPart and MuscleType are lower-cased
// and trimmed at load time.
type ExerciseRow struct {
	Workout    string
	BodyPart   string
	MuscleType string
}

// Catalog is the process-wide cache of the exercise table. The first call to
// Rows loads the table; later calls reuse it until Reload or Invalidate.
// Concurrent first access may load the table more than once, the stored
// result is the same every time.
type Catalog struct {
	store   storage.ObjectStore
	key     string
	logger  *zap.Logger
	metrics *metrics.Metrics
	fixture []ExerciseRow

	rows atomic.Pointer[[]ExerciseRow]
}

// NewCatalog creates a catalog cache reading key from store.
func NewCatalog(store storage.ObjectStore, key string, logger *zap.Logger, m *metrics.Metrics) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{store: store, key: key, logger: logger, metrics: m}
}

// NewStaticCatalog returns a catalog preloaded with rows, normalized the same
// way as a file load. Reload keeps serving the same rows.
func NewStaticCatalog(rows []ExerciseRow) *Catalog {
	normalized := make([]ExerciseRow, len(rows))
	for i, r := range rows {
		normalized[i] = normalizeRow(r)
	}
	c := &Catalog{logger: zap.NewNop(), fixture: normalized}
	c.rows.Store(&normalized)
	return c
}

// Rows returns the cached catalog, loading it on first use.
func (c *Catalog) Rows(ctx context.Context) ([]ExerciseRow, error) {
	if rows := c.rows.Load(); rows != nil {
		return *rows, nil
	}
	rows, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.rows.Store(&rows)
	return rows, nil
}

// Reload re-reads the table and replaces the cached rows. On failure the
// previously cached rows are kept.
func (c *Catalog) Reload(ctx context.Context) error {
	rows, err := c.load(ctx)
	if err != nil {
		return err
	}
	c.rows.Store(&rows)
	return nil
}

// Invalidate drops the cached rows so the next Rows call reloads.
func (c *Catalog) Invalidate() {
	c.rows.Store(nil)
}

func (c *Catalog) load(ctx context.Context) ([]ExerciseRow, error) {
	if c.store == nil {
		return c.fixture, nil
	}

	rc, err := c.store.Open(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.metrics.DatasetLoaded("catalog", "missing")
			return nil, fmt.Errorf("%w at %s, check the dataset location", ErrDatasetMissing, c.key)
		}
		c.metrics.DatasetLoaded("catalog", "error")
		return nil, fmt.Errorf("open catalog %s: %w", c.key, err)
	}
	defer rc.Close()

	table, err := ReadTable(rc, c.key)
	if err != nil {
		c.metrics.DatasetLoaded("catalog", "error")
		return nil, err
	}
	if !table.HasColumn(ColumnWorkout) || !table.HasColumn(ColumnBodyPart) {
		c.metrics.DatasetLoaded("catalog", "error")
		return nil, fmt.Errorf("catalog %s: missing %q or %q column", c.key, ColumnWorkout, ColumnBodyPart)
	}

	rows := make([]ExerciseRow, 0, len(table.Rows))
	for _, rec := range table.Rows {
		rows = append(rows, normalizeRow(ExerciseRow{
			Workout:    table.Value(rec, ColumnWorkout),
			BodyPart:   table.Value(rec, ColumnBodyPart),
			MuscleType: table.Value(rec, ColumnMuscleType),
		}))
	}

	c.metrics.DatasetLoaded("catalog", metrics.ResultOK)
	c.logger.Info("exercise catalog loaded", zap.String("key", c.key), zap.Int("rows", len(rows)))
	return rows, nil
}

func normalizeRow(r ExerciseRow) ExerciseRow {
	return ExerciseRow{
		Workout:    strings.TrimSpace(r.Workout),
		BodyPart:   strings.ToLower(strings.TrimSpace(r.BodyPart)),
		MuscleType: strings.ToLower(strings.TrimSpace(r.MuscleType)),
	}
}
