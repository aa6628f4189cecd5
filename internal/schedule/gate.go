package schedule

import (
	"fmt"
	"time"
)

// Gate decides whether a pipeline run should proceed at all. Runs are allowed
// only within a tolerance window around configured target times in a fixed
// reference timezone, and never on weekends there. A denied gate is a normal
// outcome, not an error.
type Gate struct {
	Location  *time.Location
	Targets   []string // "15:04" wall-clock times in Location
	Tolerance time.Duration
}

// NewGate resolves the timezone and parses every target up front so a bad
// config fails fast instead of producing a gate that never opens.
func NewGate(timezone string, targets []string, tolerance time.Duration) (*Gate, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	for _, target := range targets {
		if _, err := time.Parse("15:04", target); err != nil {
			return nil, fmt.Errorf("parse target time %q: %w", target, err)
		}
	}
	return &Gate{Location: loc, Targets: targets, Tolerance: tolerance}, nil
}

// ShouldRun reports whether now falls inside a run window, with a reason for
// the log when it does not.
func (g *Gate) ShouldRun(now time.Time) (bool, string) {
	local := now.In(g.Location)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false, fmt.Sprintf("weekend in %s", g.Location)
	}
	if len(g.Targets) == 0 {
		return true, ""
	}
	for _, target := range g.Targets {
		t, err := time.Parse("15:04", target)
		if err != nil {
			continue
		}
		at := time.Date(local.Year(), local.Month(), local.Day(),
			t.Hour(), t.Minute(), 0, 0, g.Location)
		diff := local.Sub(at)
		if diff < 0 {
			diff = -diff
		}
		if diff <= g.Tolerance {
			return true, ""
		}
	}
	return false, fmt.Sprintf("outside run windows %v (±%v) in %s", g.Targets, g.Tolerance, g.Location)
}
