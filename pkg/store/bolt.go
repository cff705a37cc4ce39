package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/grovetools/manuscript/pkg/models"
)

var bucketProjects = []byte("projects")

// BoltStore keeps projects as JSON values in a bbolt database, one key per
// project name.
type BoltStore struct {
	db   *bbolt.DB
	name string
}

// NewBoltStore opens or creates the bbolt database at path. Projects are
// keyed by name inside it.
func NewBoltStore(path, name string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketProjects)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &BoltStore{db: db, name: name}, nil
}

// Load reads the project, or returns ErrNoProject when none was saved.
func (s *BoltStore) Load() (*models.Project, error) {
	var p *models.Project
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketProjects).Get([]byte(s.name))
		if data == nil {
			return ErrNoProject
		}
		p = &models.Project{}
		return json.Unmarshal(data, p)
	})
	if errors.Is(err, ErrNoProject) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", s.name, err)
	}
	return loaded(p), nil
}

// Save writes the whole project in one transaction.
func (s *BoltStore) Save(p *models.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProjects).Put([]byte(s.name), data)
	})
}

// Names lists the projects stored in the database.
func (s *BoltStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProjects).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
