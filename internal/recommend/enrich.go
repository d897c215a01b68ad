package recommend

import (
	"context"

	"reprise/backend/internal/dataset"
	"reprise/backend/internal/domain"

	"go.uber.org/zap"
)

// LinkLookup resolves an exercise name to a video URL.
type LinkLookup interface {
	Lookup(name string) (string, bool)
}

// AttachVideoLinks returns a copy of schedule where every entry carries the
// video URL of its exercise, or nil when there is none.
func AttachVideoLinks(schedule domain.Schedule, links LinkLookup) domain.Schedule {
	out := make(domain.Schedule, len(schedule))
	for i, day := range schedule {
		entries := make([]domain.ExerciseEntry, len(day.Exercises))
		for j, entry := range day.Exercises {
			entry.VideoURL = nil
			if links != nil {
				if url, ok := links.Lookup(entry.Exercise); ok {
					entry.VideoURL = &url
				}
			}
			entries[j] = entry
		}
		out[i] = domain.DayPlan{Day: day.Day, Exercises: entries}
	}
	return out
}

// WrapWithProgress builds the persisted document: the schedule plus a
// progress flag per day, all false.
func WrapWithProgress(schedule domain.Schedule) domain.PlanDocument {
	progress := make(domain.Progress, len(schedule))
	for _, day := range schedule {
		progress[day.Day] = false
	}
	return domain.PlanDocument{Schedule: schedule, Progress: progress}
}

// Enricher runs both post-processing stages.
type Enricher struct {
	links  *dataset.VideoLinks
	logger *zap.Logger
}

// NewEnricher creates an Enricher reading video links from links. A nil
// logger discards output.
func NewEnricher(links *dataset.VideoLinks, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{links: links, logger: logger}
}

// Enrich attaches video links and wraps the schedule with progress flags.
// A link table that fails to load only means no links are injected.
func (e *Enricher) Enrich(ctx context.Context, schedule domain.Schedule) domain.PlanDocument {
	var lookup LinkLookup
	if e.links != nil {
		idx, err := e.links.Index(ctx)
		if err != nil {
			e.logger.Warn("video links unavailable", zap.Error(err))
		} else {
			lookup = idx
		}
	}
	return WrapWithProgress(AttachVideoLinks(schedule, lookup))
}
