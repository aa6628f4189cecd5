package parse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyThreeRows = `Date,Open,High,Low,Close,Volume
2024-01-02,100,102,99,101.5,1000
2024-01-03,101,103,100,102.25,1100
2024-01-04,102,104,101,103.75,900
`

func TestDailyCSV_LastAndPrevious(t *testing.T) {
	d, err := DailyCSV(dailyThreeRows)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-04", d.Date)
	assert.Equal(t, 103.75, d.Close)
	require.True(t, d.HasPrev)
	assert.Equal(t, "2024-01-03", d.PrevDate)
	assert.Equal(t, 102.25, d.PrevClose)
}

func TestDailyCSV_SingleRowHasNoPrevious(t *testing.T) {
	d, err := DailyCSV("Date,Open,High,Low,Close,Volume\n2024-01-04,102,104,101,103.75,900\n")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-04", d.Date)
	assert.Equal(t, 103.75, d.Close)
	assert.False(t, d.HasPrev)
}

func TestDailyCSV_HeaderOnlyFails(t *testing.T) {
	_, err := DailyCSV("Date,Open,High,Low,Close,Volume\n")
	require.ErrorIs(t, err, ErrNoData)

	_, err = DailyCSV("")
	require.Error(t, err)
}

func TestDailyCSV_BadPreviousCloseResolvesToAbsent(t *testing.T) {
	text := "Date,Open,High,Low,Close,Volume\n" +
		"2024-01-03,101,103,100,N/D,1100\n" +
		"2024-01-04,102,104,101,103.75,900\n"
	d, err := DailyCSV(text)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-04", d.Date)
	assert.False(t, d.HasPrev, "non-numeric previous close must resolve to absent, not fail")
}

func TestDailyCSV_BadLastCloseFails(t *testing.T) {
	text := "Date,Open,High,Low,Close,Volume\n2024-01-04,102,104,101,N/D,900\n"
	_, err := DailyCSV(text)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoData)
}

func TestQuoteCSV(t *testing.T) {
	date, close, err := QuoteCSV("Symbol,Date,Time,Close\n^SPX,2024-01-04,22:02:01,4700.25\n")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-04", date)
	assert.Equal(t, 4700.25, close)
}

func TestQuoteCSV_NoDataRow(t *testing.T) {
	_, _, err := QuoteCSV("Symbol,Date,Time,Close\n")
	require.ErrorIs(t, err, ErrNoData)
}

func TestQuoteCSV_BadClose(t *testing.T) {
	_, _, err := QuoteCSV("Symbol,Date,Time,Close\n^SPX,2024-01-04,22:02:01,N/D\n")
	require.Error(t, err)
}

func TestDateValueCSV_FiltersAndPreservesOrder(t *testing.T) {
	text := "date,value\n" +
		"2024-02-01, 2.0\n" +
		"2024-01-01,1.0\n" +
		",9.9\n" +
		"2024-03-01,.\n" +
		"2024-04-01,notanumber\n"
	obs, err := DateValueCSV(text)
	require.NoError(t, err)

	require.Len(t, obs, 2)
	assert.Equal(t, "2024-02-01", obs[0].Date)
	assert.True(t, obs[0].Value.Equal(decimal.RequireFromString("2.0")))
	assert.Equal(t, "2024-01-01", obs[1].Date)
}
