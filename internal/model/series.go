package model

import "github.com/shopspring/decimal"

// Observation is one (date, value) pair within a series. Date is an ISO 8601
// calendar day; lexicographic order on dates matches chronological order.
type Observation struct {
	Date  string
	Value decimal.Decimal
}

// SeriesSpec names one upstream indicator to sync.
type SeriesSpec struct {
	ID   string `yaml:"id"`   // upstream series identifier, e.g. CPIAUCSL
	File string `yaml:"file"` // output CSV basename; defaults to ID
}
