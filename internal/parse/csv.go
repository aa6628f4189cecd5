package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"MarketPress/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNoData signals a response with a header but no data rows. Callers treat
// it differently from a malformed response (see the tape fallback chain).
var ErrNoData = errors.New("no data rows")

// DateValueCSV parses a two-column date,value CSV. The header row is skipped,
// fields are trimmed, and rows with an empty date or a non-numeric value are
// discarded. Rows come back in file order; callers sort if order matters.
func DateValueCSV(text string) ([]model.Observation, error) {
	records, err := readAll(text)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	obs := make([]model.Observation, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		date := strings.TrimSpace(rec[0])
		raw := strings.TrimSpace(rec[1])
		if date == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		obs = append(obs, model.Observation{Date: date, Value: v})
	}
	return obs, nil
}

// Daily is the parsed tail of a Date,Open,High,Low,Close,Volume CSV.
type Daily struct {
	Date      string
	Close     float64
	PrevDate  string
	PrevClose float64
	HasPrev   bool
}

// DailyCSV parses a daily OHLC history and returns the last row's date and
// close plus, when at least two data rows exist, the second-to-last row as
// "previous". A non-numeric previous close resolves to an absent previous
// rather than failing the parse. A header-only CSV fails with ErrNoData.
func DailyCSV(text string) (Daily, error) {
	records, err := readAll(text)
	if err != nil {
		return Daily{}, err
	}
	var rows [][]string
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) < 5 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return Daily{}, fmt.Errorf("daily csv: %w", ErrNoData)
	}

	last := rows[len(rows)-1]
	close, err := parseFinite(last[4])
	if err != nil {
		return Daily{}, fmt.Errorf("daily csv: last close %q: %w", last[4], err)
	}
	d := Daily{Date: strings.TrimSpace(last[0]), Close: close}

	if len(rows) >= 2 {
		prev := rows[len(rows)-2]
		if pc, err := parseFinite(prev[4]); err == nil {
			d.PrevDate = strings.TrimSpace(prev[0])
			d.PrevClose = pc
			d.HasPrev = true
		}
	}
	return d, nil
}

// QuoteCSV parses a one-row Symbol,Date,Time,Close quote response.
func QuoteCSV(text string) (date string, close float64, err error) {
	records, err := readAll(text)
	if err != nil {
		return "", 0, err
	}
	if len(records) < 2 {
		return "", 0, fmt.Errorf("quote csv: %w", ErrNoData)
	}
	rec := records[1]
	if len(rec) < 4 {
		return "", 0, fmt.Errorf("quote csv: want 4 columns, got %d", len(rec))
	}
	c, err := parseFinite(rec[3])
	if err != nil {
		return "", 0, fmt.Errorf("quote csv: close %q: %w", rec[3], err)
	}
	return strings.TrimSpace(rec[1]), c, nil
}

func readAll(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
