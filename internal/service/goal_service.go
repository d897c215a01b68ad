package service

import (
	"context"
	"errors"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GoalSource names which rule produced an effective goal.
type GoalSource string

const (
	GoalFromOverride GoalSource = "override"
	GoalFromPlan     GoalSource = "plan"
	GoalFromDefault  GoalSource = "default"
)

// EffectiveGoal is the winning step target of one day.
type EffectiveGoal struct {
	Target int        `json:"target"`
	Source GoalSource `json:"source"`
}

// DailyGoalView compares logged steps with the goal of one day.
type DailyGoalView struct {
	Date      string     `json:"date"`
	Steps     int        `json:"steps"`
	Goal      int        `json:"goal"`
	Remaining int        `json:"remaining"`
	Source    GoalSource `json:"source"`
}

// MonthlyGoalView aggregates one calendar month.
type MonthlyGoalView struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Days        int `json:"days"`
	TotalSteps  int `json:"totalSteps"`
	TotalGoal   int `json:"totalGoal"`
	AverageGoal int `json:"averageGoal"`
}

// PlanInput carries the editable fields of a goal plan.
type PlanInput struct {
	StartDate   time.Time
	EndDate     time.Time
	TargetSteps int
	Description string
}

type GoalService interface {
	// EffectiveGoal applies override > covering plan > profile default.
	EffectiveGoal(ctx context.Context, accountID primitive.ObjectID, date time.Time) (EffectiveGoal, error)
	DailyView(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*DailyGoalView, error)
	// WeeklyView covers the days from the Sunday on or before anchor up to,
	// not including, anchor itself.
	WeeklyView(ctx context.Context, accountID primitive.ObjectID, anchor time.Time) ([]DailyGoalView, error)
	MonthlyView(ctx context.Context, accountID primitive.ObjectID, year, month int) (*MonthlyGoalView, error)

	SetOverride(ctx context.Context, accountID primitive.ObjectID, date time.Time, target int) (*domain.StepGoalOverride, error)
	DeleteOverride(ctx context.Context, accountID primitive.ObjectID, date time.Time) error

	ListPlans(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepGoalPlan, error)
	CreatePlan(ctx context.Context, accountID primitive.ObjectID, in PlanInput) (*domain.StepGoalPlan, error)
	UpdatePlan(ctx context.Context, accountID, planID primitive.ObjectID, in PlanInput) (*domain.StepGoalPlan, error)
	DeletePlan(ctx context.Context, accountID, planID primitive.ObjectID) error
}

type goalService struct {
	profiles  repository.ProfileRepository
	logs      repository.StepLogRepository
	overrides repository.StepGoalOverrideRepository
	plans     repository.StepGoalPlanRepository
	logger    *zap.Logger
}

func NewGoalService(
	profiles repository.ProfileRepository,
	logs repository.StepLogRepository,
	overrides repository.StepGoalOverrideRepository,
	plans repository.StepGoalPlanRepository,
	logger *zap.Logger,
) GoalService {
	return &goalService{profiles: profiles, logs: logs, overrides: overrides, plans: plans, logger: logger}
}

// goalResolver answers effective goal queries for a date range from data
// loaded once.
type goalResolver struct {
	overrides   map[time.Time]int
	plans       []domain.StepGoalPlan
	defaultGoal int
}

func (r *goalResolver) resolve(date time.Time) EffectiveGoal {
	date = domain.DateOf(date)
	if target, ok := r.overrides[date]; ok {
		return EffectiveGoal{Target: target, Source: GoalFromOverride}
	}
	for i := range r.plans {
		if r.plans[i].Covers(date) {
			return EffectiveGoal{Target: r.plans[i].TargetSteps, Source: GoalFromPlan}
		}
	}
	return EffectiveGoal{Target: r.defaultGoal, Source: GoalFromDefault}
}

func (s *goalService) defaultGoal(ctx context.Context, accountID primitive.ObjectID) (int, error) {
	profile, err := s.profiles.GetByAccountID(ctx, accountID)
	switch {
	case err == nil:
		return profile.StepGoal(), nil
	case errors.Is(err, repository.ErrNotFound):
		return domain.DefaultDailyStepGoal, nil
	default:
		return 0, err
	}
}

func (s *goalService) resolverFor(ctx context.Context, accountID primitive.ObjectID, from, to time.Time) (*goalResolver, error) {
	defaultGoal, err := s.defaultGoal(ctx, accountID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrides.ListRange(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	byDate := make(map[time.Time]int, len(overrides))
	for _, o := range overrides {
		byDate[domain.DateOf(o.Date)] = o.TargetSteps
	}

	plans, err := s.plans.FindOverlapping(ctx, accountID, from, to, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	return &goalResolver{overrides: byDate, plans: plans, defaultGoal: defaultGoal}, nil
}

// EffectiveGoal resolves a single day with point lookups; range views go
// through goalResolver instead.
func (s *goalService) EffectiveGoal(ctx context.Context, accountID primitive.ObjectID, date time.Time) (EffectiveGoal, error) {
	date = domain.DateOf(date)

	override, err := s.overrides.GetByDate(ctx, accountID, date)
	switch {
	case err == nil:
		return EffectiveGoal{Target: override.TargetSteps, Source: GoalFromOverride}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return EffectiveGoal{}, err
	}

	plan, err := s.plans.FindCovering(ctx, accountID, date)
	switch {
	case err == nil:
		return EffectiveGoal{Target: plan.TargetSteps, Source: GoalFromPlan}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return EffectiveGoal{}, err
	}

	target, err := s.defaultGoal(ctx, accountID)
	if err != nil {
		return EffectiveGoal{}, err
	}
	return EffectiveGoal{Target: target, Source: GoalFromDefault}, nil
}

func (s *goalService) DailyView(ctx context.Context, accountID primitive.ObjectID, date time.Time) (*DailyGoalView, error) {
	date = domain.DateOf(date)
	goal, err := s.EffectiveGoal(ctx, accountID, date)
	if err != nil {
		return nil, err
	}

	steps := 0
	log, err := s.logs.GetByDate(ctx, accountID, date)
	switch {
	case err == nil:
		steps = log.StepCount
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	view := dayView(date, steps, goal)
	return &view, nil
}

func (s *goalService) WeeklyView(ctx context.Context, accountID primitive.ObjectID, anchor time.Time) ([]DailyGoalView, error) {
	anchor = domain.DateOf(anchor)
	start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	views := []DailyGoalView{}
	if !start.Before(anchor) {
		return views, nil
	}
	end := anchor.AddDate(0, 0, -1)

	r, err := s.resolverFor(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListRange(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	steps := make(map[time.Time]int, len(logs))
	for _, l := range logs {
		steps[domain.DateOf(l.Date)] = l.StepCount
	}

	for d := start; d.Before(anchor); d = d.AddDate(0, 0, 1) {
		views = append(views, dayView(d, steps[d], r.resolve(d)))
	}
	return views, nil
}

func (s *goalService) MonthlyView(ctx context.Context, accountID primitive.ObjectID, year, month int) (*MonthlyGoalView, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	totalSteps, err := s.logs.SumSteps(ctx, accountID, first, last)
	if err != nil {
		return nil, err
	}
	r, err := s.resolverFor(ctx, accountID, first, last)
	if err != nil {
		return nil, err
	}

	totalGoal := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		totalGoal += r.resolve(d).Target
	}
	days := last.Day()
	return &MonthlyGoalView{
		Year:        year,
		Month:       month,
		Days:        days,
		TotalSteps:  totalSteps,
		TotalGoal:   totalGoal,
		AverageGoal: totalGoal / days,
	}, nil
}

func dayView(date time.Time, steps int, goal EffectiveGoal) DailyGoalView {
	return DailyGoalView{
		Date:      date.Format(domain.DateLayout),
		Steps:     steps,
		Goal:      goal.Target,
		Remaining: max(0, goal.Target-steps),
		Source:    goal.Source,
	}
}

func (s *goalService) SetOverride(ctx context.Context, accountID primitive.ObjectID, date time.Time, target int) (*domain.StepGoalOverride, error) {
	if target <= 0 {
		return nil, ErrInvalidTarget
	}
	override := &domain.StepGoalOverride{AccountID: accountID, Date: domain.DateOf(date), TargetSteps: target}
	if err := s.overrides.Upsert(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

func (s *goalService) DeleteOverride(ctx context.Context, accountID primitive.ObjectID, date time.Time) error {
	err := s.overrides.Delete(ctx, accountID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOverrideNotFound
	}
	return err
}

func (s *goalService) ListPlans(ctx context.Context, accountID primitive.ObjectID) ([]domain.StepGoalPlan, error) {
	return s.plans.ListByAccount(ctx, accountID)
}

func (s *goalService) CreatePlan(ctx context.Context, accountID primitive.ObjectID, in PlanInput) (*domain.StepGoalPlan, error) {
	if err := s.checkPlan(ctx, accountID, in, primitive.NilObjectID); err != nil {
		return nil, err
	}
	plan := &domain.StepGoalPlan{
		AccountID:   accountID,
		StartDate:   domain.DateOf(in.StartDate),
		EndDate:     domain.DateOf(in.EndDate),
		TargetSteps: in.TargetSteps,
		Description: in.Description,
	}
	if _, err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *goalService) UpdatePlan(ctx context.Context, accountID, planID primitive.ObjectID, in PlanInput) (*domain.StepGoalPlan, error) {
	plan, err := s.plans.GetByID(ctx, accountID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalPlanNotFound
		}
		return nil, err
	}
	if err = s.checkPlan(ctx, accountID, in, planID); err != nil {
		return nil, err
	}

	plan.StartDate = domain.DateOf(in.StartDate)
	plan.EndDate = domain.DateOf(in.EndDate)
	plan.TargetSteps = in.TargetSteps
	plan.Description = in.Description
	if err = s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *goalService) DeletePlan(ctx context.Context, accountID, planID primitive.ObjectID) error {
	err := s.plans.Delete(ctx, accountID, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalPlanNotFound
	}
	return err
}

// checkPlan validates the range and rejects overlap with any other plan of
// the account. Boundaries are inclusive.
func (s *goalService) checkPlan(ctx context.Context, accountID primitive.ObjectID, in PlanInput, self primitive.ObjectID) error {
	if in.TargetSteps <= 0 {
		return ErrInvalidTarget
	}
	if domain.DateOf(in.StartDate).After(domain.DateOf(in.EndDate)) {
		return ErrInvalidDateRange
	}
	overlapping, err := s.plans.FindOverlapping(ctx, accountID, in.StartDate, in.EndDate, self)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		s.logger.Info("Rejected overlapping goal plan",
			zap.String("accountId", accountID.Hex()),
			zap.String("conflictId", overlapping[0].ID.Hex()))
		return &OverlapError{Existing: overlapping[0]}
	}
	return nil
}
