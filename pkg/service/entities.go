package service

import (
	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
	"github.com/grovetools/manuscript/pkg/xref"
)

// AddCharacter stores a new character and returns its id.
func (s *Service) AddCharacter(c models.Character) string {
	var id string
	s.applySet("addCharacter", "", func(set xref.Set) xref.Set {
		set, id = xref.AddCharacter(set, c)
		return set
	})
	return id
}

// UpdateCharacter edits a copy of the character through fn. Its
// appearances are kept as they were.
func (s *Service) UpdateCharacter(id string, fn func(*models.Character)) bool {
	return s.applySet("updateCharacter", id, func(set xref.Set) xref.Set {
		return xref.UpdateCharacter(set, id, fn)
	})
}

// DeleteCharacter removes a character and scrubs its id from every
// document in every hierarchy.
func (s *Service) DeleteCharacter(id string) bool {
	if !s.applySet("deleteCharacter", id, func(set xref.Set) xref.Set {
		return xref.DeleteCharacter(set, id)
	}) {
		return false
	}
	s.reconcile()
	return true
}

// AddLocation stores a new location and returns its id.
func (s *Service) AddLocation(l models.Location) string {
	var id string
	s.applySet("addLocation", "", func(set xref.Set) xref.Set {
		set, id = xref.AddLocation(set, l)
		return set
	})
	return id
}

// UpdateLocation edits a copy of the location through fn.
func (s *Service) UpdateLocation(id string, fn func(*models.Location)) bool {
	return s.applySet("updateLocation", id, func(set xref.Set) xref.Set {
		return xref.UpdateLocation(set, id, fn)
	})
}

// DeleteLocation removes a location and scrubs its id from every document.
func (s *Service) DeleteLocation(id string) bool {
	if !s.applySet("deleteLocation", id, func(set xref.Set) xref.Set {
		return xref.DeleteLocation(set, id)
	}) {
		return false
	}
	s.reconcile()
	return true
}

// LinkCharacter records that the character appears in the document.
func (s *Service) LinkCharacter(docID, charID string) bool {
	return s.applySet("linkCharacter", docID, func(set xref.Set) xref.Set {
		return xref.LinkCharacter(set, docID, charID)
	})
}

// UnlinkCharacter removes the character from the document.
func (s *Service) UnlinkCharacter(docID, charID string) bool {
	return s.applySet("unlinkCharacter", docID, func(set xref.Set) xref.Set {
		return xref.UnlinkCharacter(set, docID, charID)
	})
}

// LinkLocation records that the document is set at the location.
func (s *Service) LinkLocation(docID, locID string) bool {
	return s.applySet("linkLocation", docID, func(set xref.Set) xref.Set {
		return xref.LinkLocation(set, docID, locID)
	})
}

// UnlinkLocation removes the location from the document.
func (s *Service) UnlinkLocation(docID, locID string) bool {
	return s.applySet("unlinkLocation", docID, func(set xref.Set) xref.Set {
		return xref.UnlinkLocation(set, docID, locID)
	})
}

// Target is something that can be renamed: one of FolderTarget,
// DocumentTarget, MediaTarget, CharacterTarget or LocationTarget.
type Target interface {
	TargetID() string
	isTarget()
}

type FolderTarget struct{ Folder *models.Folder }
type DocumentTarget struct{ Document *models.Document }
type MediaTarget struct{ Media *models.MediaItem }
type CharacterTarget struct{ Character models.Character }
type LocationTarget struct{ Location models.Location }

func (t FolderTarget) TargetID() string    { return t.Folder.ID }
func (t DocumentTarget) TargetID() string  { return t.Document.ID }
func (t MediaTarget) TargetID() string     { return t.Media.ID }
func (t CharacterTarget) TargetID() string { return t.Character.ID }
func (t LocationTarget) TargetID() string  { return t.Location.ID }

func (FolderTarget) isTarget()    {}
func (DocumentTarget) isTarget()  {}
func (MediaTarget) isTarget()     {}
func (CharacterTarget) isTarget() {}
func (LocationTarget) isTarget()  {}

// ResolveTarget finds whatever id names, searching the tree first and the
// entity collections second.
func (s *Service) ResolveTarget(id string) (Target, bool) {
	f := s.Forest()
	if folder, _, ok := f.Folder(id); ok {
		return FolderTarget{Folder: folder}, true
	}
	if d, _, ok := f.Document(id); ok {
		return DocumentTarget{Document: d}, true
	}
	if m, _, ok := f.MediaItem(id); ok {
		return MediaTarget{Media: m}, true
	}
	if c, ok := s.project.Character(id); ok {
		return CharacterTarget{Character: c}, true
	}
	if l, ok := s.project.Location(id); ok {
		return LocationTarget{Location: l}, true
	}
	return nil, false
}

// Rename commits a new title (or name, for entities) to the target.
func (s *Service) Rename(t Target, title string) bool {
	switch t := t.(type) {
	case FolderTarget:
		return s.RenameFolder(t.Folder.ID, title)
	case DocumentTarget:
		return s.RenameDocument(t.Document.ID, title)
	case MediaTarget:
		return s.RenameMediaItem(t.Media.ID, title)
	case CharacterTarget:
		return s.UpdateCharacter(t.Character.ID, func(c *models.Character) { c.Name = title })
	case LocationTarget:
		return s.UpdateLocation(t.Location.ID, func(l *models.Location) { l.Name = title })
	}
	return false
}

// Lookup flattens the node id into its place in the tree.
func (s *Service) Lookup(id string) (tree.Item, bool) {
	return s.Forest().Lookup(id)
}
