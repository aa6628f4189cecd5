package recorder

import "time"

// RunRecord summarizes one pipeline run.
type RunRecord struct {
	Task      string // "tape", "heatmap", "fred", "ratio", "news"
	Succeeded int
	Failed    int
	Duration  time.Duration
	Note      string
}

// ItemRecord is the outcome of one watch item within a run.
type ItemRecord struct {
	Task   string
	Symbol string
	Ok     bool
	Error  string
}

// SeriesRecord is the outcome of one economic-series sync.
type SeriesRecord struct {
	SeriesID string
	Fetched  int
	Changed  int
}

// Recorder persists run history for operator forensics (e.g. spotting when an
// upstream source starts blocking requests).
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordItem(rec *ItemRecord) error
	RecordSeries(rec *SeriesRecord) error
	Close() error
}
