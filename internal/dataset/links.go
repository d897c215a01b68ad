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

// LinkIndex maps a normalized exercise name to its video URL.
type LinkIndex map[string]string

// Lookup finds the URL for name. The name is trimmed and lower-cased first.
func (idx LinkIndex) Lookup(name string) (string, bool) {
	key := normalizeName(name)
	if key == "" {
		return "", false
	}
	url, ok := idx[key]
	return url, ok
}

// VideoLinks is the process-wide cache of the exercise video table. A
// missing table is not an error: the index is empty and nothing gets a link.
// The cache has no expiry, call Reload or Invalidate when the table changes.
type VideoLinks struct {
	store   storage.ObjectStore
	key     string
	logger  *zap.Logger
	metrics *metrics.Metrics
	fixture LinkIndex

	index atomic.Pointer[LinkIndex]
}

// NewVideoLinks creates a link cache reading key from store.
func NewVideoLinks(store storage.ObjectStore, key string, logger *zap.Logger, m *metrics.Metrics) *VideoLinks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoLinks{store: store, key: key, logger: logger, metrics: m}
}

// NewStaticVideoLinks returns a link cache preloaded from name -> URL pairs.
func NewStaticVideoLinks(links map[string]string) *VideoLinks {
	idx := make(LinkIndex, len(links))
	for name, url := range links {
		addLink(idx, name, url)
	}
	v := &VideoLinks{logger: zap.NewNop(), fixture: idx}
	v.index.Store(&idx)
	return v
}

// Index returns the cached link index, loading it on first use.
func (v *VideoLinks) Index(ctx context.Context) (LinkIndex, error) {
	if idx := v.index.Load(); idx != nil {
		return *idx, nil
	}
	idx, err := v.load(ctx)
	if err != nil {
		return nil, err
	}
	v.index.Store(&idx)
	return idx, nil
}

// Reload re-reads the link table and replaces the cached index.
func (v *VideoLinks) Reload(ctx context.Context) error {
	idx, err := v.load(ctx)
	if err != nil {
		return err
	}
	v.index.Store(&idx)
	return nil
}

// Invalidate drops the cached index so the next Index call reloads.
func (v *VideoLinks) Invalidate() {
	v.index.Store(nil)
}

func (v *VideoLinks) load(ctx context.Context) (LinkIndex, error) {
	if v.store == nil {
		return v.fixture, nil
	}

	rc, err := v.store.Open(ctx, v.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			v.metrics.DatasetLoaded("links", "missing")
			v.logger.Warn("links dataset not found, video links disabled", zap.String("key", v.key))
			return LinkIndex{}, nil
		}
		v.metrics.DatasetLoaded("links", "error")
		return nil, fmt.Errorf("open links %s: %w", v.key, err)
	}
	defer rc.Close()

	table, err := ReadTable(rc, v.key)
	if err != nil {
		v.metrics.DatasetLoaded("links", "error")
		return nil, err
	}

	idx := LinkIndex{}
	if table.HasColumn(ColumnWorkout) && table.HasColumn(ColumnLinks) {
		for _, rec := range table.Rows {
			addLink(idx, table.Value(rec, ColumnWorkout), table.Value(rec, ColumnLinks))
		}
	} else {
		v.logger.Warn("links dataset has no Workout/Links columns", zap.String("key", v.key))
	}

	v.metrics.DatasetLoaded("links", metrics.ResultOK)
	v.logger.Info("video links loaded", zap.String("key", v.key), zap.Int("links", len(idx)))
	return idx, nil
}

// addLink drops rows with an empty name or URL.
func addLink(idx LinkIndex, name, url string) {
	key := normalizeName(name)
	url = strings.TrimSpace(url)
	if key == "" || url == "" {
		return
	}
	idx[key] = url
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
