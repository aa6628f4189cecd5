package recorder

// NoopRecorder is used when no database path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error       { return nil }
func (n *NoopRecorder) RecordItem(_ *ItemRecord) error     { return nil }
func (n *NoopRecorder) RecordSeries(_ *SeriesRecord) error { return nil }
func (n *NoopRecorder) Close() error                       { return nil }
