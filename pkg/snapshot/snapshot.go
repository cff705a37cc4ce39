// Package snapshot captures and restores point-in-time copies of a
// document's text. Snapshots live in one flat list shared by every
// document of a project.
package snapshot

import (
	"encoding/hex"
	"slices"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/textstat"
	"github.com/grovetools/manuscript/pkg/tree"
)

// Digest hashes the fields a snapshot captures. Equal digests mean a
// restore would not change the document.
func Digest(content, notes, synopsis string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(content))
	h.Write([]byte{0})
	h.Write([]byte(notes))
	h.Write([]byte{0})
	h.Write([]byte(synopsis))
	return hex.EncodeToString(h.Sum(nil))
}

// Take captures doc and appends the snapshot to snaps. An invalid kind is
// recorded as manual.
func Take(snaps []models.DocumentSnapshot, doc *models.Document, title string, kind models.SnapshotKind, at time.Time) ([]models.DocumentSnapshot, models.DocumentSnapshot) {
	if !kind.Valid() {
		kind = models.SnapshotManual
	}
	s := models.DocumentSnapshot{
		ID:             models.NewID(),
		DocumentID:     doc.ID,
		Timestamp:      at,
		Title:          title,
		Kind:           kind,
		Content:        doc.Content,
		Notes:          doc.Notes,
		Synopsis:       doc.Synopsis,
		WordCount:      textstat.Words(doc.Content),
		CharacterCount: textstat.Characters(doc.Content),
		Digest:         Digest(doc.Content, doc.Notes, doc.Synopsis),
	}
	next := make([]models.DocumentSnapshot, len(snaps), len(snaps)+1)
	copy(next, snaps)
	return append(next, s), s
}

// List returns the snapshots of docID, newest first. Snapshots with equal
// timestamps keep their insertion order reversed.
func List(snaps []models.DocumentSnapshot, docID string) []models.DocumentSnapshot {
	var out []models.DocumentSnapshot
	for i := len(snaps) - 1; i >= 0; i-- {
		if snaps[i].DocumentID == docID {
			out = append(out, snaps[i])
		}
	}
	slices.SortStableFunc(out, func(a, b models.DocumentSnapshot) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// Latest returns the newest snapshot of docID.
func Latest(snaps []models.DocumentSnapshot, docID string) (models.DocumentSnapshot, bool) {
	list := List(snaps, docID)
	if len(list) == 0 {
		return models.DocumentSnapshot{}, false
	}
	return list[0], true
}

// Find looks a snapshot up by id.
func Find(snaps []models.DocumentSnapshot, id string) (models.DocumentSnapshot, bool) {
	i := slices.IndexFunc(snaps, func(s models.DocumentSnapshot) bool { return s.ID == id })
	if i < 0 {
		return models.DocumentSnapshot{}, false
	}
	return snaps[i], true
}

// Differs reports whether doc's text differs from its newest snapshot.
// A document without snapshots always differs.
func Differs(snaps []models.DocumentSnapshot, doc *models.Document) bool {
	latest, ok := Latest(snaps, doc.ID)
	if !ok {
		return true
	}
	digest := latest.Digest
	if digest == "" {
		digest = Digest(latest.Content, latest.Notes, latest.Synopsis)
	}
	return digest != Digest(doc.Content, doc.Notes, doc.Synopsis)
}

// Restore writes the snapshot's content, notes and synopsis back onto its
// document, wherever it lives. Every other field is left alone. The
// snapshot stays in the list.
func Restore(f tree.Forest, s models.DocumentSnapshot) tree.Forest {
	d, _, ok := f.Document(s.DocumentID)
	if !ok {
		return f
	}
	if d.Content == s.Content && d.Notes == s.Notes && d.Synopsis == s.Synopsis {
		return f
	}
	return tree.UpdateDocument(f, s.DocumentID, func(d *models.Document) {
		d.Content = s.Content
		d.Notes = s.Notes
		d.Synopsis = s.Synopsis
	})
}

// Remove deletes one snapshot. An unknown id leaves snaps as it is.
func Remove(snaps []models.DocumentSnapshot, id string) []models.DocumentSnapshot {
	i := slices.IndexFunc(snaps, func(s models.DocumentSnapshot) bool { return s.ID == id })
	if i < 0 {
		return snaps
	}
	return slices.Delete(slices.Clone(snaps), i, i+1)
}

// RemoveForDocuments drops every snapshot owned by one of docIDs and
// returns the new list with the number removed.
func RemoveForDocuments(snaps []models.DocumentSnapshot, docIDs ...string) ([]models.DocumentSnapshot, int) {
	if len(docIDs) == 0 {
		return snaps, 0
	}
	gone := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		gone[id] = true
	}
	next := make([]models.DocumentSnapshot, 0, len(snaps))
	for _, s := range snaps {
		if !gone[s.DocumentID] {
			next = append(next, s)
		}
	}
	if len(next) == len(snaps) {
		return snaps, 0
	}
	return next, len(snaps) - len(next)
}
