package series

import (
	"os"
	"path/filepath"
	"testing"

	"MarketPress/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmptyTable(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, "", table.LastDate())
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpi.csv")
	table := NewTable()
	table.Merge([]model.Observation{obs("2024-01-01", "308.417"), obs("2024-02-01", "310.326")})
	require.NoError(t, os.WriteFile(path, EncodeCSV(table), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EncodeCSV(table), EncodeCSV(loaded))
}
