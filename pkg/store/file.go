package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/manuscript/pkg/models"
)

// FileStore keeps a project in a single YAML file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the YAML file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the project file, or returns ErrNoProject when it does not
// exist.
func (s *FileStore) Load() (*models.Project, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoProject
	}
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p models.Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", s.path, err)
	}
	return loaded(&p), nil
}

// Save writes the project to a temp file next to the target and renames
// it into place, so readers never see a partial file.
func (s *FileStore) Save(p *models.Project) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".manuscript-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace project: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
