// Package storage provides the file-backed last-known-good snapshot store.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/interfaces"
	"github.com/antigravity-io/antigravity/internal/models"
)

// ErrSnapshotNotFound is returned by Load when no usable snapshot exists.
// Missing, empty, and malformed files all map here so callers never have to
// distinguish corruption from absence.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// FileSnapshotStore persists a single MoversResponse as JSON on disk.
// Writes are full-buffer temp-file-then-rename so a concurrent Load never
// observes a partially written snapshot.
type FileSnapshotStore struct {
	path   string
	logger *common.Logger
}

// NewFileSnapshotStore creates a snapshot store at path, ensuring the parent
// directory exists.
func NewFileSnapshotStore(path string, logger *common.Logger) (*FileSnapshotStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	return &FileSnapshotStore{
		path:   path,
		logger: logger,
	}, nil
}

// Path returns the snapshot file location.
func (s *FileSnapshotStore) Path() string {
	return s.path
}

// Save persists the response verbatim, overwriting any prior snapshot.
func (s *FileSnapshotStore) Save(_ context.Context, response *models.MoversResponse) error {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	// Atomic write: temp file in the same directory, then rename.
	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Int("movers", len(response.Movers)).Msg("Snapshot saved")
	return nil
}

// Load returns the last saved response, or ErrSnapshotNotFound if none
// exists or the backing file is unreadable or malformed.
func (s *FileSnapshotStore) Load(_ context.Context) (*models.MoversResponse, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Str("path", s.path).Err(err).Msg("Snapshot unreadable")
		}
		return nil, ErrSnapshotNotFound
	}
	if len(data) == 0 {
		return nil, ErrSnapshotNotFound
	}

	var response models.MoversResponse
	if err := json.Unmarshal(data, &response); err != nil {
		s.logger.Warn().Str("path", s.path).Err(err).Msg("Snapshot malformed")
		return nil, ErrSnapshotNotFound
	}

	return &response, nil
}

var _ interfaces.SnapshotStore = (*FileSnapshotStore)(nil)
