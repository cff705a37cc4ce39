package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// FolderKind distinguishes the three hierarchy roots from ordinary folders.
type FolderKind string

const (
	FolderKindDraftRoot    FolderKind = "draft-root"
	FolderKindResearchRoot FolderKind = "research-root"
	FolderKindTrashRoot    FolderKind = "trash-root"
	FolderKindSubfolder    FolderKind = "subfolder"
)

// IsRoot reports whether the kind names one of the hierarchy roots.
func (k FolderKind) IsRoot() bool {
	return k == FolderKindDraftRoot || k == FolderKindResearchRoot || k == FolderKindTrashRoot
}

// TrashMetadata remembers where an item lived before it was moved to the trash.
type TrashMetadata struct {
	OriginalParentFolderID string    `json:"original_parent_folder_id" yaml:"original_parent_folder_id"`
	OriginalOrder          int       `json:"original_order" yaml:"original_order"`
	TrashedDate            time.Time `json:"trashed_date" yaml:"trashed_date"`
}

// Folder is a node in one of the project hierarchies.
//
// Folders are treated as immutable once they are reachable from a project
// root: the tree engine replaces nodes instead of editing them, so a
// *Folder handed out by a lookup may be shared between project versions.
type Folder struct {
	ID         string         `json:"id" yaml:"id"`
	Title      string         `json:"title" yaml:"title"`
	Kind       FolderKind     `json:"kind" yaml:"kind"`
	Order      int            `json:"order" yaml:"order"`
	Expanded   bool           `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Icon       string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Trash      *TrashMetadata `json:"trash,omitempty" yaml:"trash,omitempty"`
	Subfolders []*Folder      `json:"subfolders,omitempty" yaml:"subfolders,omitempty"`
	Documents  []*Document    `json:"documents,omitempty" yaml:"documents,omitempty"`
	Media      []*MediaItem   `json:"media,omitempty" yaml:"media,omitempty"`
}

// Copy returns a copy of the folder whose child slices are fresh slices
// pointing at the same (shared) children. Editing the returned folder's
// slices never affects the original.
func (f *Folder) Copy() *Folder {
	cp := *f
	cp.Subfolders = slices.Clone(f.Subfolders)
	cp.Documents = slices.Clone(f.Documents)
	cp.Media = slices.Clone(f.Media)
	if f.Trash != nil {
		t := *f.Trash
		cp.Trash = &t
	}
	return &cp
}

// IsRoot reports whether the folder is a hierarchy root.
func (f *Folder) IsRoot() bool {
	return f.Kind.IsRoot()
}

// ChildCount is the number of direct children of any kind.
func (f *Folder) ChildCount() int {
	return len(f.Subfolders) + len(f.Documents) + len(f.Media)
}

// NewFolder creates a subfolder with a fresh id.
func NewFolder(title string, order int) *Folder {
	return &Folder{
		ID:    NewID(),
		Title: title,
		Kind:  FolderKindSubfolder,
		Order: order,
	}
}

// NewRoot creates an empty hierarchy root of the given kind.
func NewRoot(kind FolderKind) *Folder {
	title := map[FolderKind]string{
		FolderKindDraftRoot:    "Draft",
		FolderKindResearchRoot: "Research",
		FolderKindTrashRoot:    "Trash",
	}[kind]
	return &Folder{
		ID:       NewID(),
		Title:    title,
		Kind:     kind,
		Expanded: true,
	}
}

// NewID returns a new globally unique identifier.
func NewID() string {
	return uuid.NewString()
}
