package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/manuscript/pkg/history"
	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/snapshot"
	"github.com/grovetools/manuscript/pkg/tree"
)

// UpdateContent replaces a document's text. A positive change in word
// count is added to today's writing history along with the new draft
// total. It returns the word delta and whether the document changed.
func (s *Service) UpdateContent(id, content string) (int, bool) {
	d, _, ok := s.Forest().Document(id)
	if !ok {
		s.noop("updateContent", id)
		return 0, false
	}
	if d.Content == content {
		s.noop("updateContent", id)
		return 0, false
	}
	delta := history.Delta(d.Content, content)
	now := s.now()
	if !s.applyTree("updateContent", id, func(f tree.Forest) tree.Forest {
		return tree.UpdateDocument(f, id, func(d *models.Document) {
			d.Content = content
			d.ModifiedAt = now
		})
	}) {
		return 0, false
	}
	if delta > 0 {
		s.RecordWords(delta)
	}
	return delta, true
}

// RecordWords adds delta to today's history entry with the current draft
// word count. Deltas that are not positive are ignored.
func (s *Service) RecordWords(delta int) bool {
	if delta <= 0 {
		return false
	}
	total := tree.DraftWordCount(s.Forest())
	s.project.History = history.Record(s.project.History, delta, &total, s.now())
	s.Metrics.RecordWords(delta)
	s.Logger.WithFields(logrus.Fields{"words": delta, "draft_total": total}).Debug("Recorded writing")
	return true
}

// RecordSession adds time spent writing to today's entry. Sessions are
// only recorded on days with words written; it returns false otherwise.
func (s *Service) RecordSession(d time.Duration) bool {
	next := history.AddSession(s.project.History, d, s.now())
	if sameSlice(next, s.project.History) {
		s.noop("recordSession", "")
		return false
	}
	s.project.History = next
	return true
}

// HistoryStats derives writing statistics as of now.
func (s *Service) HistoryStats() history.Stats {
	return history.Compute(s.project.History, s.now())
}

// TakeSnapshot captures the document's text. It returns false when the
// document does not exist.
func (s *Service) TakeSnapshot(docID, title string, kind models.SnapshotKind) (models.DocumentSnapshot, bool) {
	d, _, ok := s.Forest().Document(docID)
	if !ok {
		s.noop("takeSnapshot", docID)
		return models.DocumentSnapshot{}, false
	}
	var snap models.DocumentSnapshot
	s.project.Snapshots, snap = snapshot.Take(s.project.Snapshots, d, title, kind, s.now())
	s.Metrics.RecordSnapshot(string(snap.Kind))
	s.touch()
	return snap, true
}

// AutoSnapshot takes an automatic snapshot unless the document's text is
// unchanged since its newest snapshot.
func (s *Service) AutoSnapshot(docID string) (models.DocumentSnapshot, bool) {
	d, _, ok := s.Forest().Document(docID)
	if !ok || !snapshot.Differs(s.project.Snapshots, d) {
		s.noop("autoSnapshot", docID)
		return models.DocumentSnapshot{}, false
	}
	return s.TakeSnapshot(docID, "", models.SnapshotAuto)
}

// Snapshots lists a document's snapshots, newest first.
func (s *Service) Snapshots(docID string) []models.DocumentSnapshot {
	return snapshot.List(s.project.Snapshots, docID)
}

// RestoreSnapshot writes a snapshot's text back onto its document. The
// snapshot is kept.
func (s *Service) RestoreSnapshot(id string) bool {
	snap, ok := snapshot.Find(s.project.Snapshots, id)
	if !ok {
		s.noop("restoreSnapshot", id)
		return false
	}
	return s.applyTree("restoreSnapshot", id, func(f tree.Forest) tree.Forest {
		return snapshot.Restore(f, snap)
	})
}

// RemoveSnapshot deletes one snapshot.
func (s *Service) RemoveSnapshot(id string) bool {
	next := snapshot.Remove(s.project.Snapshots, id)
	if len(next) == len(s.project.Snapshots) {
		s.noop("removeSnapshot", id)
		return false
	}
	s.project.Snapshots = next
	s.touch()
	s.Metrics.RecordMutation("removeSnapshot", true)
	return true
}
