package models

import (
	"slices"
	"time"
)

// Comment is an inline comment anchored to a range of document content.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Location  int       `json:"location" yaml:"location"`
	Length    int       `json:"length" yaml:"length"`
	Resolved  bool      `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Document is a unit of manuscript text.
type Document struct {
	ID               string         `json:"id" yaml:"id"`
	Title            string         `json:"title" yaml:"title"`
	Synopsis         string         `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`
	Notes            string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	Content          string         `json:"content,omitempty" yaml:"content,omitempty"`
	Order            int            `json:"order" yaml:"order"`
	Color            string         `json:"color,omitempty" yaml:"color,omitempty"`
	Icon             string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	LabelID          string         `json:"label_id,omitempty" yaml:"label_id,omitempty"`
	StatusID         string         `json:"status_id,omitempty" yaml:"status_id,omitempty"`
	Keywords         []string       `json:"keywords,omitempty" yaml:"keywords,omitempty,flow"`
	IncludeInCompile bool           `json:"include_in_compile" yaml:"include_in_compile"`
	CharacterIDs     []string       `json:"character_ids,omitempty" yaml:"character_ids,omitempty,flow"`
	LocationIDs      []string       `json:"location_ids,omitempty" yaml:"location_ids,omitempty,flow"`
	Comments         []Comment      `json:"comments,omitempty" yaml:"comments,omitempty"`
	Trash            *TrashMetadata `json:"trash,omitempty" yaml:"trash,omitempty"`
	CreatedAt        time.Time      `json:"created_at" yaml:"created_at"`
	ModifiedAt       time.Time      `json:"modified_at" yaml:"modified_at"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	cp := *d
	cp.Keywords = slices.Clone(d.Keywords)
	cp.CharacterIDs = slices.Clone(d.CharacterIDs)
	cp.LocationIDs = slices.Clone(d.LocationIDs)
	cp.Comments = slices.Clone(d.Comments)
	if d.Trash != nil {
		t := *d.Trash
		cp.Trash = &t
	}
	return &cp
}

// HasKeyword reports whether the document carries the exact keyword.
func (d *Document) HasKeyword(keyword string) bool {
	return slices.Contains(d.Keywords, keyword)
}

// MediaKind is the type of an imported media file.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindPDF   MediaKind = "pdf"
)

// MediaItem is an imported image or PDF stored alongside the project.
type MediaItem struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Kind     MediaKind      `json:"kind" yaml:"kind"`
	Filename string         `json:"filename" yaml:"filename"`
	Size     int64          `json:"size" yaml:"size"`
	Order    int            `json:"order" yaml:"order"`
	Caption  string         `json:"caption,omitempty" yaml:"caption,omitempty"`
	Trash    *TrashMetadata `json:"trash,omitempty" yaml:"trash,omitempty"`

	// Image only
	Width  *int `json:"width,omitempty" yaml:"width,omitempty"`
	Height *int `json:"height,omitempty" yaml:"height,omitempty"`

	// PDF only
	PageCount *int `json:"page_count,omitempty" yaml:"page_count,omitempty"`

	ImportedAt time.Time `json:"imported_at" yaml:"imported_at"`
}

// Clone returns a copy of the media item.
func (m *MediaItem) Clone() *MediaItem {
	cp := *m
	if m.Trash != nil {
		t := *m.Trash
		cp.Trash = &t
	}
	return &cp
}
