package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYorkGate(t *testing.T, targets []string, tolerance time.Duration) *Gate {
	t.Helper()
	g, err := NewGate("America/New_York", targets, tolerance)
	require.NoError(t, err)
	return g
}

// 2024-01-10 is a Wednesday.
func nyTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return time.Date(2024, 1, 10, hour, min, 0, 0, loc)
}

func TestShouldRun_InsideWindow(t *testing.T) {
	g := newYorkGate(t, []string{"17:45"}, 90*time.Minute)

	for _, tc := range []struct {
		hour, min int
	}{
		{17, 45}, // exact target
		{16, 15}, // lower edge
		{19, 15}, // upper edge
		{18, 30},
	} {
		ok, reason := g.ShouldRun(nyTime(t, tc.hour, tc.min))
		assert.True(t, ok, "%02d:%02d should be allowed: %s", tc.hour, tc.min, reason)
	}
}

func TestShouldRun_OutsideWindow(t *testing.T) {
	g := newYorkGate(t, []string{"17:45"}, 90*time.Minute)

	for _, tc := range []struct {
		hour, min int
	}{
		{9, 30},
		{16, 14},
		{19, 16},
		{23, 59},
	} {
		ok, reason := g.ShouldRun(nyTime(t, tc.hour, tc.min))
		assert.False(t, ok, "%02d:%02d should be denied", tc.hour, tc.min)
		assert.NotEmpty(t, reason)
	}
}

func TestShouldRun_WeekendDeniedEvenInsideWindow(t *testing.T) {
	g := newYorkGate(t, []string{"17:45"}, 90*time.Minute)
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-01-13 is a Saturday, 2024-01-14 a Sunday.
	for _, day := range []int{13, 14} {
		ok, reason := g.ShouldRun(time.Date(2024, 1, day, 17, 45, 0, 0, loc))
		assert.False(t, ok)
		assert.Contains(t, reason, "weekend")
	}
}

func TestShouldRun_NoTargetsAllowsWeekdays(t *testing.T) {
	g := newYorkGate(t, nil, 0)
	ok, _ := g.ShouldRun(nyTime(t, 3, 0))
	assert.True(t, ok)
}

func TestShouldRun_MultipleTargets(t *testing.T) {
	g := newYorkGate(t, []string{"08:30", "17:45"}, 30*time.Minute)

	ok, _ := g.ShouldRun(nyTime(t, 8, 45))
	assert.True(t, ok)
	ok, _ = g.ShouldRun(nyTime(t, 12, 0))
	assert.False(t, ok)
}

func TestShouldRun_WeekendCheckUsesGateTimezone(t *testing.T) {
	g := newYorkGate(t, nil, 0)

	// Saturday 01:00 UTC is still Friday evening in New York.
	ok, _ := g.ShouldRun(time.Date(2024, 1, 13, 1, 0, 0, 0, time.UTC))
	assert.True(t, ok)
}

func TestNewGate_BadTimezone(t *testing.T) {
	_, err := NewGate("Mars/Olympus_Mons", nil, 0)
	require.Error(t, err)
}

func TestNewGate_BadTarget(t *testing.T) {
	_, err := NewGate("America/New_York", []string{"17:45", "quarter past"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quarter past")
}
