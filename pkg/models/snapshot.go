package models

import "time"

// SnapshotKind records why a snapshot was taken.
type SnapshotKind string

const (
	SnapshotManual    SnapshotKind = "manual"
	SnapshotAuto      SnapshotKind = "auto"
	SnapshotMilestone SnapshotKind = "milestone"
)

// Valid reports whether k is a known snapshot kind.
func (k SnapshotKind) Valid() bool {
	switch k {
	case SnapshotManual, SnapshotAuto, SnapshotMilestone:
		return true
	}
	return false
}

// DocumentSnapshot is a captured copy of a document's text fields.
type DocumentSnapshot struct {
	ID             string       `json:"id" yaml:"id"`
	DocumentID     string       `json:"document_id" yaml:"document_id"`
	Timestamp      time.Time    `json:"timestamp" yaml:"timestamp"`
	Title          string       `json:"title,omitempty" yaml:"title,omitempty"`
	Kind           SnapshotKind `json:"kind" yaml:"kind"`
	Content        string       `json:"content" yaml:"content"`
	Notes          string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Synopsis       string       `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`
	WordCount      int          `json:"word_count" yaml:"word_count"`
	CharacterCount int          `json:"character_count" yaml:"character_count"`
	Digest         string       `json:"digest,omitempty" yaml:"digest,omitempty"`
}
