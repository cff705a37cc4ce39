package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/manuscript/pkg/models"
)

// DefaultAutosaveDelay is the quiet window before a scheduled save runs.
const DefaultAutosaveDelay = 2 * time.Second

// Autosaver coalesces rapid saves. Each Schedule restarts the quiet window;
// only the most recently scheduled project is written when it expires.
type Autosaver struct {
	store Store
	delay time.Duration
	log   *logrus.Entry

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.Project
	saves   int
	err     error
}

// NewAutosaver returns an autosaver writing to s after delay of quiet.
func NewAutosaver(s Store, delay time.Duration, log *logrus.Entry) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Autosaver{store: s, delay: delay, log: log.WithField("sub-component", "autosave")}
}

// Schedule queues p for saving after the quiet window. The project header
// is copied; tree nodes are shared because mutations never modify them in
// place.
func (a *Autosaver) Schedule(p *models.Project) {
	snapshot := *p
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = &snapshot
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		if err := a.Flush(); err != nil {
			a.log.WithError(err).Warn("autosave failed")
		}
	})
}

// Pending reports whether a save is waiting for its quiet window.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush writes the pending project now, if there is one.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	p := a.pending
	if p == nil {
		return nil
	}
	a.pending = nil
	if err := a.store.Save(p); err != nil {
		a.err = err
		return err
	}
	a.saves++
	a.log.WithField("saves", a.saves).Debug("project saved")
	return nil
}

// Saves returns how many writes have completed.
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

// Err returns the last save error.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Stop flushes any pending save. The autosaver may be reused afterwards.
func (a *Autosaver) Stop() error {
	return a.Flush()
}
