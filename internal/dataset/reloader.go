package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"
)

// Reloadable is a cache that can re-read its backing table.
type Reloadable interface {
	Reload(ctx context.Context) error
}

// Reloader refreshes the dataset caches on a cron schedule so edits to the
// backing tables are picked up without a restart.
type Reloader struct {
	cron    *cron.Cron
	targets map[string]Reloadable
	logger  *zap.Logger
	timeout time.Duration
}

// NewReloader schedules a reload of every target. The schedule uses the
// robfig/cron syntax, e.g. "@every 1h" or "0 0 3 * * *".
func NewReloader(schedule string, targets map[string]Reloadable, logger *zap.Logger) (*Reloader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reloader{
		cron:    cron.New(),
		targets: targets,
		logger:  logger,
		timeout: time.Minute,
	}
	if err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.ReloadAll(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	return r, nil
}

// ReloadAll reloads every target once and returns how many failed. A failed
// target keeps serving its previous contents.
func (r *Reloader) ReloadAll(ctx context.Context) int {
	failed := 0
	for name, target := range r.targets {
		if err := target.Reload(ctx); err != nil {
			failed++
			r.logger.Error("dataset reload failed", zap.String("table", name), zap.Error(err))
			continue
		}
		r.logger.Debug("dataset reloaded", zap.String("table", name))
	}
	return failed
}

func (r *Reloader) Start() { r.cron.Start() }

func (r *Reloader) Stop() { r.cron.Stop() }
