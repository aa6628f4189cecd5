package series

import "time"

const dateLayout = "2006-01-02"

// FetchWindow computes the observation start date for an incremental sync.
// With a last persisted date, the fetch reaches back backfillYears so recent
// upstream revisions are still caught; the start never precedes
// fallbackStart, and an empty table starts there.
func FetchWindow(lastDate string, backfillYears int, fallbackStart string) string {
	if lastDate == "" {
		return fallbackStart
	}
	t, err := time.Parse(dateLayout, lastDate)
	if err != nil {
		return fallbackStart
	}
	start := t.AddDate(-backfillYears, 0, 0).Format(dateLayout)
	if start < fallbackStart {
		return fallbackStart
	}
	return start
}
