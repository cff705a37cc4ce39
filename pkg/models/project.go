package models

import "time"

// SelectionState is the persisted form of the current sidebar selection.
type SelectionState struct {
	Kind    string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	ItemID  *string `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	Keyword *string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// SplitEditorState describes the optional second editor pane.
type SplitEditorState struct {
	Enabled             bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SecondaryDocumentID string  `json:"secondary_document_id,omitempty" yaml:"secondary_document_id,omitempty"`
	Vertical            bool    `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	Ratio               float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`
}

// ProjectState is UI-facing state saved with the project. Expanded folder
// ids may reference folders that no longer exist.
type ProjectState struct {
	Selection         SelectionState   `json:"selection" yaml:"selection"`
	ExpandedFolderIDs []string         `json:"expanded_folder_ids,omitempty" yaml:"expanded_folder_ids,omitempty,flow"`
	CursorLocation    int              `json:"cursor_location,omitempty" yaml:"cursor_location,omitempty"`
	SelectionLength   int              `json:"selection_length,omitempty" yaml:"selection_length,omitempty"`
	SplitEditor       SplitEditorState `json:"split_editor" yaml:"split_editor"`
}

// Project is the whole persisted aggregate.
type Project struct {
	Title      string                `json:"title" yaml:"title"`
	Author     string                `json:"author,omitempty" yaml:"author,omitempty"`
	CreatedAt  time.Time             `json:"created_at" yaml:"created_at"`
	ModifiedAt time.Time             `json:"modified_at" yaml:"modified_at"`
	Draft      *Folder               `json:"draft" yaml:"draft"`
	Research   *Folder               `json:"research" yaml:"research"`
	Trash      *Folder               `json:"trash" yaml:"trash"`
	Characters []Character           `json:"characters,omitempty" yaml:"characters,omitempty"`
	Locations  []Location            `json:"locations,omitempty" yaml:"locations,omitempty"`
	Snapshots  []DocumentSnapshot    `json:"snapshots,omitempty" yaml:"snapshots,omitempty"`
	History    []WritingHistoryEntry `json:"history,omitempty" yaml:"history,omitempty"`
	State      ProjectState          `json:"state" yaml:"state"`
}

// NewProject creates an empty project with its three hierarchy roots.
func NewProject(title, author string, now time.Time) *Project {
	return &Project{
		Title:      title,
		Author:     author,
		CreatedAt:  now,
		ModifiedAt: now,
		Draft:      NewRoot(FolderKindDraftRoot),
		Research:   NewRoot(FolderKindResearchRoot),
		Trash:      NewRoot(FolderKindTrashRoot),
	}
}

// EnsureRoots creates any missing hierarchy root. Freshly decoded projects
// from older files may lack the research or trash root.
func (p *Project) EnsureRoots() {
	if p.Draft == nil {
		p.Draft = NewRoot(FolderKindDraftRoot)
	}
	if p.Research == nil {
		p.Research = NewRoot(FolderKindResearchRoot)
	}
	if p.Trash == nil {
		p.Trash = NewRoot(FolderKindTrashRoot)
	}
}

// Character returns the character with the given id.
func (p *Project) Character(id string) (Character, bool) {
	for _, c := range p.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// Location returns the location with the given id.
func (p *Project) Location(id string) (Location, bool) {
	for _, l := range p.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}
