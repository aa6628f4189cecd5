// Package series maintains date-keyed indicator tables and the revision-aware
// merge that reconciles fresh observations with a persisted table.
package series

import (
	"sort"

	"MarketPress/internal/model"

	"github.com/shopspring/decimal"
)

// Table maps ISO dates to values. Dates are unique and kept sorted ascending,
// which for ISO dates is also chronological order.
type Table struct {
	values map[string]decimal.Decimal
	dates  []string
}

func NewTable() *Table {
	return &Table{values: make(map[string]decimal.Decimal)}
}

func (t *Table) Len() int { return len(t.dates) }

// Dates returns the sorted dates. The slice is shared; callers must not modify it.
func (t *Table) Dates() []string { return t.dates }

func (t *Table) Value(date string) (decimal.Decimal, bool) {
	v, ok := t.values[date]
	return v, ok
}

// LastDate returns the most recent date in the table, or "" when empty.
func (t *Table) LastDate() string {
	if len(t.dates) == 0 {
		return ""
	}
	return t.dates[len(t.dates)-1]
}

// Set upserts one observation, keeping the date index sorted.
func (t *Table) Set(date string, v decimal.Decimal) {
	if _, exists := t.values[date]; !exists {
		i := sort.SearchStrings(t.dates, date)
		t.dates = append(t.dates, "")
		copy(t.dates[i+1:], t.dates[i:])
		t.dates[i] = date
	}
	t.values[date] = v
}

// Merge upserts fetched observations into the table and reports how many
// entries changed. A later duplicate date within obs wins. Values that are
// numerically equal to the persisted entry are left untouched, so a cosmetic
// upstream reformat does not count as a revision. Dates absent from obs are
// never removed.
func (t *Table) Merge(obs []model.Observation) (changed int) {
	for _, o := range obs {
		if o.Date == "" {
			continue
		}
		if old, ok := t.values[o.Date]; ok && old.Equal(o.Value) {
			continue
		}
		t.Set(o.Date, o.Value)
		changed++
	}
	return changed
}

// AsOf returns the latest value whose date is <= date, or false when every
// entry is newer than date.
func (t *Table) AsOf(date string) (decimal.Decimal, bool) {
	i := sort.SearchStrings(t.dates, date)
	if i < len(t.dates) && t.dates[i] == date {
		return t.values[t.dates[i]], true
	}
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return t.values[t.dates[i-1]], true
}

// Observations returns the table contents sorted ascending by date.
func (t *Table) Observations() []model.Observation {
	out := make([]model.Observation, 0, len(t.dates))
	for _, d := range t.dates {
		out = append(out, model.Observation{Date: d, Value: t.values[d]})
	}
	return out
}
