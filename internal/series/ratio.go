package series

// ratioPlaces bounds the precision of derived ratio values.
const ratioPlaces = 4

// Ratio derives anchor[d] / other.AsOf(d) on the anchor's date grid. The
// as-of lookup forward-fills the most recent known divisor, aligning series
// of different frequencies. Dates with no divisor yet, or a zero divisor,
// are skipped rather than zero-filled.
func Ratio(anchor, other *Table) *Table {
	out := NewTable()
	for _, d := range anchor.Dates() {
		num, _ := anchor.Value(d)
		den, ok := other.AsOf(d)
		if !ok || den.IsZero() {
			continue
		}
		out.Set(d, num.DivRound(den, ratioPlaces))
	}
	return out
}
