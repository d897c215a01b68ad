package service

import (
	"context"
	"errors"
	"math"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/metrics"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Step metric constants.
const (
	strideFactor       = 0.414 // stride length as a share of height
	calorieFactor      = 1.036 // kcal per kg per km walked
	stepsPerMinute     = 100
	historyDaily       = "daily"
	historyWeekly      = "weekly"
	historyMonthly     = "monthly"
	defaultHistoryKind = historyDaily
)

// WriteOutcome says what LogSteps did to the stored log.
type WriteOutcome string

const (
	OutcomeCreated   WriteOutcome = "created"
	OutcomeUpdated   WriteOutcome = "updated"
	OutcomeUnchanged WriteOutcome = "unchanged"
)

// StepMetrics are the values derived from a step count.
type StepMetrics struct {
	DistanceMeters  float64
	CaloriesBurned  float64
	DurationMinutes int
}

// ComputeStepMetrics derives distance, calories and duration. Without height
// or weight the distance and calories are zero.
func ComputeStepMetrics(steps int, heightCm, weightKg *float64) StepMetrics {
	m := StepMetrics{DurationMinutes: steps / stepsPerMinute}
	if heightCm == nil || weightKg == nil || *heightCm <= 0 || *weightKg <= 0 {
		return m
	}
	stride := *heightCm * strideFactor / 100
	distance := float64(steps) * stride
	m.DistanceMeters = round2(distance)
	m.CaloriesBurned = round2(distance / 1000 * *weightKg * calorieFactor)
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PeriodTotal is one row of the step history.
type PeriodTotal struct {
	Period     string `json:"period"` // YYYY-MM-DD of the day, week (Monday) or month start
	TotalSteps int    `json:"totalSteps"`
}

type StepHistory struct {
	Period  string        `json:"period"`
	Results []PeriodTotal `json:"results"`
}

type StepService interface {
	// LogSteps stores the step count of one day. Writing the stored count
	// again is a no-op.
	LogSteps(ctx context.Context, accountID primitive.ObjectID, date time.Time, stepCount int) (*domain.StepLog, WriteOutcome, error)
	// History groups logged steps by day, week or month, newest first.
	History(ctx context.Context, accountID primitive.ObjectID, period string) (*StepHistory, error)
}

type stepService struct {
	profiles repository.ProfileRepository
	logs     repository.StepLogRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewStepService(profiles repository.ProfileRepository, logs repository.StepLogRepository, m *metrics.Metrics, logger *zap.Logger) StepService {
	return &stepService{profiles: profiles, logs: logs, metrics: m, logger: logger}
}

func (s *stepService) LogSteps(ctx context.Context, accountID primitive.ObjectID, date time.Time, stepCount int) (*domain.StepLog, WriteOutcome, error) {
	if stepCount < 0 {
		return nil, "", ErrInvalidStepCount
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	date = domain.DateOf(date)

	log, outcome, err := s.write(ctx, accountID, date, stepCount)
	if err != nil {
		return nil, "", err
	}
	s.metrics.StepLogWritten(string(outcome))
	s.logger.Debug("Step log written",
		zap.String("accountId", accountID.Hex()),
		zap.String("date", date.Format(domain.DateLayout)),
		zap.Int("steps", stepCount),
		zap.String("outcome", string(outcome)))
	return log, outcome, nil
}

func (s *stepService) write(ctx context.Context, accountID primitive.ObjectID, date time.Time, stepCount int) (*domain.StepLog, WriteOutcome, error) {
	existing, err := s.logs.GetByDate(ctx, accountID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return s.update(ctx, existing, stepCount)
	}

	derived, err := s.metricsFor(ctx, accountID, stepCount)
	if err != nil {
		return nil, "", err
	}
	log := &domain.StepLog{
		AccountID:       accountID,
		Date:            date,
		StepCount:       stepCount,
		DistanceMeters:  derived.DistanceMeters,
		CaloriesBurned:  derived.CaloriesBurned,
		DurationMinutes: derived.DurationMinutes,
	}
	if _, err = s.logs.Create(ctx, log); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, "", err
		}
		// Lost a race with a concurrent writer for the same day: update their row.
		existing, err = s.logs.GetByDate(ctx, accountID, date)
		if err != nil {
			return nil, "", err
		}
		return s.update(ctx, existing, stepCount)
	}
	return log, OutcomeCreated, nil
}

func (s *stepService) update(ctx context.Context, log *domain.StepLog, stepCount int) (*domain.StepLog, WriteOutcome, error) {
	if log.StepCount == stepCount {
		return log, OutcomeUnchanged, nil
	}
	derived, err := s.metricsFor(ctx, log.AccountID, stepCount)
	if err != nil {
		return nil, "", err
	}
	log.StepCount = stepCount
	log.DistanceMeters = derived.DistanceMeters
	log.CaloriesBurned = derived.CaloriesBurned
	log.DurationMinutes = derived.DurationMinutes
	if err = s.logs.Update(ctx, log); err != nil {
		return nil, "", err
	}
	return log, OutcomeUpdated, nil
}

// metricsFor uses the profile as it is now; a missing profile yields zero
// distance and calories.
func (s *stepService) metricsFor(ctx context.Context, accountID primitive.ObjectID, stepCount int) (StepMetrics, error) {
	profile, err := s.profiles.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ComputeStepMetrics(stepCount, nil, nil), nil
		}
		return StepMetrics{}, err
	}
	return ComputeStepMetrics(stepCount, profile.Height, profile.Weight), nil
}

func (s *stepService) History(ctx context.Context, accountID primitive.ObjectID, period string) (*StepHistory, error) {
	if period == "" {
		period = defaultHistoryKind
	}
	var bucket func(time.Time) time.Time
	switch period {
	case historyDaily:
		bucket = func(d time.Time) time.Time { return d }
	case historyWeekly:
		bucket = weekStart
	case historyMonthly:
		bucket = func(d time.Time) time.Time {
			return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	default:
		return nil, ErrInvalidPeriod
	}

	logs, err := s.logs.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// logs are newest first, so buckets come out newest first too.
	results := []PeriodTotal{}
	index := map[time.Time]int{}
	for _, l := range logs {
		key := bucket(domain.DateOf(l.Date))
		i, seen := index[key]
		if !seen {
			i = len(results)
			index[key] = i
			results = append(results, PeriodTotal{Period: key.Format(domain.DateLayout)})
		}
		results[i].TotalSteps += l.StepCount
	}
	return &StepHistory{Period: period, Results: results}, nil
}

// weekStart returns the Monday of d's week.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
