// Package snapshot writes the flattened artifacts the site is rendered from.
// Files are rewritten whole each run; nothing appends and nothing deletes.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"MarketPress/internal/model"
)

// WriteJSON writes v as pretty-printed JSON with a trailing newline.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return WriteFile(path, append(data, '\n'))
}

// WriteFile replaces path with data via a temp file and rename, so a reader
// never observes a half-written artifact.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ReadTape loads a previous run's tape snapshot. A missing file returns nil
// with no error: the first run has no prior artifact to fall back on.
func ReadTape(path string) (*model.TapeSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read prior snapshot %s: %w", path, err)
	}
	var snap model.TapeSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse prior snapshot %s: %w", path, err)
	}
	return &snap, nil
}
