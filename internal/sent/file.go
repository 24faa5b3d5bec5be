package sent

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
)

// FileStore persists sent IDs as a JSON array of integers in a single
// file, matching the layout used between scheduled runs.
type FileStore struct {
	path     string
	capacity int
	logger   *slog.Logger
}

// NewFileStore creates a file-backed store at path. A capacity of zero or
// less falls back to DefaultCapacity.
func NewFileStore(path string, capacity int, logger *slog.Logger) *FileStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:     path,
		capacity: capacity,
		logger:   logger,
	}
}

// Load reads the persisted ID list. A missing or unparseable file yields
// an empty list: losing history risks re-notifying old transactions but
// must never fail the run.
func (s *FileStore) Load(_ context.Context) ([]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read sent file")
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("Sent file is corrupt, starting fresh", "path", s.path, "error", err)
		return nil, nil
	}

	return ids, nil
}

// Save writes the newest capacity IDs, replacing any previous state. The
// write goes through a temp file and rename so a partial write cannot
// leave a corrupt file behind.
func (s *FileStore) Save(_ context.Context, ids []int64) error {
	data, err := json.Marshal(tail(ids, s.capacity))
	if err != nil {
		return errors.Wrap(err, "failed to marshal sent ids")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create state directory")
	}

	tmp, err := os.CreateTemp(dir, ".sent-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write sent file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close sent file")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to replace sent file")
	}

	return nil
}
