package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"MarketPress/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tape.json")
	snap := &model.TapeSnapshot{
		GeneratedAt: "2024-01-04T22:05:00Z",
		Source:      "stooq",
		Items: []model.Quote{
			{Symbol: "^spx", DisplayName: "S&P 500", Date: "2024-01-04", Close: 4688.68, Ok: true},
		},
	}
	require.NoError(t, WriteJSON(path, snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"), "pretty JSON with trailing newline")
	assert.Contains(t, string(data), "  \"source\": \"stooq\"")

	got, err := ReadTape(path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Items, got.Items)
}

func TestWriteFile_ReplacesWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, WriteFile(path, []byte("date,value\n2024-01-01,1\n2024-02-01,2\n")))
	require.NoError(t, WriteFile(path, []byte("date,value\n2024-01-01,1\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,value\n2024-01-01,1\n", string(data), "old content never survives a rewrite")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadTape_MissingFile(t *testing.T) {
	snap, err := ReadTape(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestReadTape_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := ReadTape(path)
	require.Error(t, err)
}
