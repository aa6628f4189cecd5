package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MarketPress/internal/httpx"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fredBody = `{
  "observations": [
    {"date": "2024-01-01", "value": "308.417"},
    {"date": "2024-02-01", "value": "."},
    {"date": "2024-03-01", "value": "not-a-number"},
    {"date": "2024-04-01", "value": "312.332"}
  ]
}`

func TestFREDObservations(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(fredBody))
	}))
	defer srv.Close()

	f := NewFREDFetcher("test-key", httpx.New(5*time.Second, ""))
	f.BaseURL = srv.URL

	obs, err := f.Observations(context.Background(), "CPIAUCSL", "2020-01-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"CPIAUCSL"}, gotQuery["series_id"])
	assert.Equal(t, []string{"test-key"}, gotQuery["api_key"])
	assert.Equal(t, []string{"json"}, gotQuery["file_type"])
	assert.Equal(t, []string{"asc"}, gotQuery["sort_order"])
	assert.Equal(t, []string{"2020-01-01"}, gotQuery["observation_start"])

	require.Len(t, obs, 2, "missing marker and malformed value are dropped")
	assert.Equal(t, "2024-01-01", obs[0].Date)
	assert.True(t, obs[0].Value.Equal(decimal.RequireFromString("308.417")))
	assert.Equal(t, "2024-04-01", obs[1].Date)
}

func TestFREDObservations_NoStartDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("observation_start") {
			http.Error(w, "unexpected observation_start", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"observations": []}`))
	}))
	defer srv.Close()

	f := NewFREDFetcher("test-key", httpx.New(5*time.Second, ""))
	f.BaseURL = srv.URL

	obs, err := f.Observations(context.Background(), "UNRATE", "")
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestFREDObservations_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	f := NewFREDFetcher("test-key", httpx.New(5*time.Second, ""))
	f.BaseURL = srv.URL

	_, err := f.Observations(context.Background(), "GS10", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
