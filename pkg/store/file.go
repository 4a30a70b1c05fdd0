// Package store persists the scanner's repository set and rotation
// status. Two backends are provided: a JSON file store for the default
// single-machine setup and a MongoDB store for shared deployments.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/errors"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
)

const (
	reposFile  = "repos.json"
	statusFile = "scan-status.json"
)

// FileStore keeps both documents as JSON files under a data directory.
// Writes are atomic: the document is written to a temp file in the same
// directory and renamed over the target, so a crash mid-write leaves
// the previous version intact.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "creating data directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) LoadRepos(_ context.Context) (map[string]scan.RepoRecord, error) {
	repos := make(map[string]scan.RepoRecord)
	if err := s.readJSON(reposFile, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (s *FileStore) SaveRepos(_ context.Context, repos map[string]scan.RepoRecord) error {
	return s.writeJSON(reposFile, repos)
}

func (s *FileStore) LoadStatus(_ context.Context) (*scan.Status, error) {
	status := scan.NewStatus()
	if err := s.readJSON(statusFile, status); err != nil {
		return nil, err
	}
	if status.LastScanned == nil {
		status.LastScanned = scan.NewStatus().LastScanned
	}
	return status, nil
}

func (s *FileStore) SaveStatus(_ context.Context, status *scan.Status) error {
	return s.writeJSON(statusFile, status)
}

func (s *FileStore) Close(context.Context) error { return nil }

// readJSON decodes the named file into v. A missing file is not an
// error: v keeps its zero state and a first run starts fresh.
func (s *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeStateIO, err, "reading %s", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "parsing %s", name)
	}
	return nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "encoding %s", name)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".%s-*", name))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "creating temp file for %s", name)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStateIO, err, "writing %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStateIO, err, "closing %s", name)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStateIO, err, "replacing %s", name)
	}
	return nil
}
