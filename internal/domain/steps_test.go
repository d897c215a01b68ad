package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	got := DateOf(time.Date(2026, 1, 5, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestStepGoalPlan_CoversAndOverlaps(t *testing.T) {
	plan := &StepGoalPlan{StartDate: day(t, "2026-01-01"), EndDate: day(t, "2026-01-10")}

	assert.True(t, plan.Covers(day(t, "2026-01-01")))
	assert.True(t, plan.Covers(day(t, "2026-01-10")))
	assert.False(t, plan.Covers(day(t, "2026-01-11")))

	assert.True(t, plan.Overlaps(day(t, "2026-01-05"), day(t, "2026-01-15")))
	assert.True(t, plan.Overlaps(day(t, "2026-01-10"), day(t, "2026-01-12")), "shared boundary day overlaps")
	assert.True(t, plan.Overlaps(day(t, "2025-12-01"), day(t, "2026-02-01")), "enclosing range overlaps")
	assert.False(t, plan.Overlaps(day(t, "2026-01-11"), day(t, "2026-01-20")))
	assert.False(t, plan.Overlaps(day(t, "2025-12-20"), day(t, "2025-12-31")))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2026-13-01")
	assert.Error(t, err)
}
