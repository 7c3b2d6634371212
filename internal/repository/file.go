package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/sirupsen/logrus"
)

// FileStore persists the application collection as a single JSON array file.
// Every save rewrites the whole file via a temp file and rename.
type FileStore struct {
	path string
	log  *logrus.Logger
}

// NewFileStore initializes a file-backed store at the given path
func NewFileStore(path string, log *logrus.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// LoadAll reads the full collection. A missing file is an empty collection;
// a corrupt file is logged and treated as empty.
func (s *FileStore) LoadAll(_ context.Context) []models.ApplicationRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Errorf("Failed to read applications file %s: %v", s.path, err)
		}
		return nil
	}

	var records []models.ApplicationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Errorf("Failed to parse applications file %s: %v", s.path, err)
		return nil
	}
	return records
}

// SaveAll overwrites the persisted collection with the given records.
func (s *FileStore) SaveAll(_ context.Context, records []models.ApplicationRecord) error {
	if records == nil {
		records = []models.ApplicationRecord{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode applications: %w", err)
	}

	// Write to a temp file in the same directory, then rename over the
	// target so readers never observe a partial write.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write applications: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace applications file: %w", err)
	}
	return nil
}
