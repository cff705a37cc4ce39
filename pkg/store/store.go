// Package store persists the project aggregate as a whole object.
package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/grovetools/manuscript/pkg/models"
)

// ErrNoProject is returned by Load when nothing has been saved yet.
var ErrNoProject = errors.New("no project")

// Store loads and saves a complete project.
type Store interface {
	Load() (*models.Project, error)
	Save(p *models.Project) error
	Close() error
}

// Kind selects a Store implementation.
type Kind string

const (
	KindYAML Kind = "yaml"
	KindBolt Kind = "bolt"
)

// Open returns the store for project name under dataDir. YAML projects
// live in <name>.yaml; bolt projects share manuscript.db keyed by name.
func Open(kind Kind, dataDir, name string) (Store, error) {
	if name == "" {
		return nil, fmt.Errorf("open store: project name is empty")
	}
	switch kind {
	case KindYAML, "":
		return NewFileStore(filepath.Join(dataDir, name+".yaml")), nil
	case KindBolt:
		return NewBoltStore(filepath.Join(dataDir, "manuscript.db"), name)
	}
	return nil, fmt.Errorf("open store: unknown kind %q", kind)
}

// loaded normalizes a freshly decoded project.
func loaded(p *models.Project) *models.Project {
	p.EnsureRoots()
	return p
}
