package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/manuscript/pkg/metrics"
	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/search"
	"github.com/grovetools/manuscript/pkg/selection"
	"github.com/grovetools/manuscript/pkg/snapshot"
	"github.com/grovetools/manuscript/pkg/store"
	"github.com/grovetools/manuscript/pkg/tree"
	"github.com/grovetools/manuscript/pkg/xref"
)

// ErrProjectExists is returned by Create when the store already holds a
// project.
var ErrProjectExists = errors.New("project already exists")

// Service is the owner of one loaded project. Every mutation is applied
// copy-and-replace: the engine returns new roots and the service swaps them
// into the aggregate. A Service is not safe for concurrent use.
type Service struct {
	Config  *Config
	Logger  *logrus.Entry
	Metrics *metrics.Metrics
	Index   *search.Index

	store   store.Store
	project *models.Project
	sel     *selection.Tracker
	now     func() time.Time
}

// Config holds service configuration
type Config struct {
	Author          string
	DebugAssertions bool
	IndexPath       string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics shares a metrics set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.Metrics = m }
}

func newService(cfg *Config, st store.Store, logger *logrus.Entry, opts []Option) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Service{
		Config: cfg,
		Logger: logger.WithField("component", "service"),
		store:  st,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Metrics == nil {
		s.Metrics = metrics.New()
	}
	return s
}

// Open loads the project held by st. It returns an error wrapping
// store.ErrNoProject when the store is empty.
func Open(cfg *Config, st store.Store, logger *logrus.Entry, opts ...Option) (*Service, error) {
	s := newService(cfg, st, logger, opts)
	p, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if err := s.attach(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Create starts a new project in an empty store and saves it.
func Create(cfg *Config, st store.Store, logger *logrus.Entry, title, author string, opts ...Option) (*Service, error) {
	s := newService(cfg, st, logger, opts)
	if _, err := st.Load(); err == nil {
		return nil, ErrProjectExists
	} else if !errors.Is(err, store.ErrNoProject) {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if author == "" {
		author = s.Config.Author
	}
	if err := s.attach(models.NewProject(title, author, s.now())); err != nil {
		return nil, err
	}
	if err := s.Save(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) attach(p *models.Project) error {
	s.project = p
	s.sel = selection.Load(p.State, selection.ForProject(p))
	if s.Config.IndexPath != "" {
		idx, err := search.NewIndex(s.Config.IndexPath)
		if err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		s.Index = idx
		if err := idx.Sync(search.Entries(s.Forest())); err != nil {
			return fmt.Errorf("sync index: %w", err)
		}
	}
	s.refreshGauges()
	if s.Config.DebugAssertions {
		s.assertInvariants("load")
	}
	return nil
}

// Project returns the live aggregate. Callers must not modify it.
func (s *Service) Project() *models.Project {
	return s.project
}

// Forest returns the current hierarchy roots.
func (s *Service) Forest() tree.Forest {
	return tree.FromProject(s.project)
}

// Save persists the whole aggregate, selection and expansion included,
// and resyncs the search index.
func (s *Service) Save() error {
	s.project.State = s.sel.Save(s.project.State)
	start := time.Now()
	err := s.store.Save(s.project)
	s.Metrics.RecordSave(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.Sync(search.Entries(s.Forest())); err != nil {
			s.Logger.WithError(err).Warn("Failed to sync search index")
		}
	}
	return nil
}

// Autosaver returns an autosaver writing to the service's store.
func (s *Service) Autosaver(delay time.Duration) *store.Autosaver {
	return store.NewAutosaver(s.store, delay, s.Logger)
}

// ScheduleSave queues the aggregate on a instead of saving it now. The
// search index is left alone until the next Save.
func (s *Service) ScheduleSave(a *store.Autosaver) {
	s.project.State = s.sel.Save(s.project.State)
	a.Schedule(s.project)
}

// Close releases the store and the index.
func (s *Service) Close() error {
	var errs []error
	if s.Index != nil {
		errs = append(errs, s.Index.Close())
	}
	errs = append(errs, s.store.Close())
	return errors.Join(errs...)
}

// Validate runs the structural and cross-reference checks.
func (s *Service) Validate() error {
	return errors.Join(tree.Validate(s.Forest()), xref.Check(xref.FromProject(s.project)))
}

// Repair renumbers sibling orders and rebuilds appearance lists. It
// reports whether anything changed.
func (s *Service) Repair() bool {
	before := xref.FromProject(s.project)
	after := before
	after.Forest = tree.Normalize(after.Forest)
	after = xref.Rebuild(after)
	changed := !after.Forest.Same(before.Forest) || xref.Check(before) != nil
	if changed {
		after.ApplyTo(s.project)
		s.touch()
	}
	s.Metrics.RecordMutation("repair", changed)
	return changed
}

// applyTree runs a tree operation and swaps in its result. It reports
// whether the tree changed.
func (s *Service) applyTree(op, id string, fn func(tree.Forest) tree.Forest) bool {
	before := s.Forest()
	after := fn(before)
	if after.Same(before) {
		s.noop(op, id)
		return false
	}
	after.ApplyTo(s.project)
	s.applied(op)
	return true
}

// applySet runs an operation over the tree and the entity collections.
func (s *Service) applySet(op, id string, fn func(xref.Set) xref.Set) bool {
	before := xref.FromProject(s.project)
	after := fn(before)
	if sameSet(before, after) {
		s.noop(op, id)
		return false
	}
	after.ApplyTo(s.project)
	s.applied(op)
	return true
}

func sameSet(a, b xref.Set) bool {
	return a.Forest.Same(b.Forest) && sameSlice(a.Characters, b.Characters) && sameSlice(a.Locations, b.Locations)
}

// sameSlice reports whether a and b share their backing array. Engine
// operations always copy a collection they change.
func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func (s *Service) noop(op, id string) {
	s.Logger.WithFields(logrus.Fields{"op": op, "id": id}).Debug("No change")
	s.Metrics.RecordMutation(op, false)
}

func (s *Service) applied(op string) {
	s.touch()
	s.Metrics.RecordMutation(op, true)
	s.refreshGauges()
	if s.Config.DebugAssertions {
		s.assertInvariants(op)
	}
}

func (s *Service) touch() {
	s.project.ModifiedAt = s.now()
}

func (s *Service) assertInvariants(op string) {
	if err := s.Validate(); err != nil {
		s.Logger.WithField("op", op).WithError(err).Warn("Invariant check failed")
	}
}

func (s *Service) refreshGauges() {
	f := s.Forest()
	s.Metrics.SetDraftWords(tree.DraftWordCount(f))
	for _, h := range tree.Hierarchies {
		s.Metrics.SetTreeNodes(h.String(), len(f.Items(h))-1)
	}
}

// forget drops everything that refers to permanently deleted documents:
// entity appearances, snapshots and index rows. The selection is cleared
// if it no longer resolves.
func (s *Service) forget(docIDs []string) {
	if len(docIDs) > 0 {
		set := xref.ForgetDocuments(xref.FromProject(s.project), docIDs...)
		set.ApplyTo(s.project)

		var n int
		s.project.Snapshots, n = snapshot.RemoveForDocuments(s.project.Snapshots, docIDs...)
		if n > 0 {
			s.Logger.WithField("count", n).Debug("Removed snapshots of deleted documents")
		}
		if s.Index != nil {
			for _, id := range docIDs {
				if err := s.Index.RemoveDocument(id); err != nil {
					s.Logger.WithError(err).WithField("id", id).Warn("Failed to remove document from index")
				}
			}
		}
	}
	s.reconcile()
}

func (s *Service) reconcile() {
	if s.sel.Reconcile(selection.ForProject(s.project)) {
		s.Logger.Debug("Cleared stale selection")
	}
}
