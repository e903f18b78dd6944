package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath is notes.json under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "orbital-notes", "notes.json"), nil
}

// Load reads the notes saved at path. A missing file is an empty list.
func Load(path string) ([]Note, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decode notes %s: %w", path, err)
	}
	return notes, nil
}

// Save replaces the file at path via a temporary file and a rename.
func Save(path string, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".notes-*.json")
	if err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save notes: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}
