package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"benchguard/internal/measure"
)

// FileStore keeps one JSON file per label in a directory. Writes go through
// a temp file and an atomic rename, so an interrupted Put leaves the label
// untouched.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(label string) string {
	return filepath.Join(s.dir, encodeLabel(label)+".json")
}

// encodeLabel makes a label safe to use as a file name.
func encodeLabel(label string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return r.Replace(label)
}

// Put writes the set under its label, replacing any previous set.
func (s *FileStore) Put(_ context.Context, set measure.Set) error {
	if err := set.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal measurement set: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".put-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write measurement set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(set.Label)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store label %q: %w", set.Label, err)
	}
	return nil
}

// Get loads the set stored under label.
func (s *FileStore) Get(_ context.Context, label string) (*measure.Set, error) {
	data, err := os.ReadFile(s.path(label))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("label %q: %w", label, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read label %q: %w", label, err)
	}

	var set measure.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal label %q: %w", label, err)
	}
	return &set, nil
}

// Labels returns the stored labels in sorted order.
func (s *FileStore) Labels(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var labels []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		// The label inside the file is authoritative; the file name is a
		// sanitized encoding of it.
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var set measure.Set
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", name, err)
		}
		labels = append(labels, set.Label)
	}

	sort.Strings(labels)
	return labels, nil
}

// Delete removes the set stored under label.
func (s *FileStore) Delete(_ context.Context, label string) error {
	err := os.Remove(s.path(label))
	if os.IsNotExist(err) {
		return fmt.Errorf("label %q: %w", label, ErrNotFound)
	}
	return err
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
