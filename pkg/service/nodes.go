package service

import (
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
	"github.com/grovetools/manuscript/pkg/xref"
)

// AddFolder creates a folder under parentID and returns its id, or "" when
// parentID does not resolve.
func (s *Service) AddFolder(parentID, title string) string {
	var id string
	s.applyTree("addFolder", parentID, func(f tree.Forest) tree.Forest {
		f, id = tree.AddFolder(f, parentID, title)
		return f
	})
	return id
}

// RenameFolder sets a folder's title.
func (s *Service) RenameFolder(id, title string) bool {
	return s.applyTree("renameFolder", id, func(f tree.Forest) tree.Forest {
		return tree.RenameFolder(f, id, title)
	})
}

// SetFolderIcon sets a folder's icon name.
func (s *Service) SetFolderIcon(id, icon string) bool {
	return s.applyTree("setFolderIcon", id, func(f tree.Forest) tree.Forest {
		return tree.SetFolderIcon(f, id, icon)
	})
}

// DeleteFolder permanently removes a folder and its subtree. Hierarchy
// roots cannot be deleted.
func (s *Service) DeleteFolder(id string) bool {
	folder, _, ok := s.Forest().Folder(id)
	if !ok {
		s.noop("deleteFolder", id)
		return false
	}
	removed := tree.Collect(folder)
	if !s.applyTree("deleteFolder", id, func(f tree.Forest) tree.Forest {
		return tree.DeleteFolder(f, id)
	}) {
		return false
	}
	s.forget(removed.DocumentIDs)
	return true
}

// MoveFolder re-parents a folder. Moves into itself, into a descendant or
// into its current parent are refused.
func (s *Service) MoveFolder(id, targetParentID string) bool {
	return s.applyTree("moveFolder", id, func(f tree.Forest) tree.Forest {
		return tree.MoveFolder(f, id, targetParentID)
	})
}

// ReorderFolders moves the subfolders at indices from to position to
// within parentID.
func (s *Service) ReorderFolders(parentID string, from []int, to int) bool {
	return s.applyTree("reorderFolders", parentID, func(f tree.Forest) tree.Forest {
		return tree.ReorderFolders(f, parentID, from, to)
	})
}

// TrashFolder moves a folder and its subtree to the trash.
func (s *Service) TrashFolder(id string) bool {
	return s.applyTree("trashFolder", id, func(f tree.Forest) tree.Forest {
		return tree.TrashFolder(f, id)
	})
}

// AddDocument creates a document under parentID from the given fields and
// returns its id.
func (s *Service) AddDocument(parentID string, fields models.Document) string {
	now := s.now()
	if fields.CreatedAt.IsZero() {
		fields.CreatedAt = now
	}
	fields.ModifiedAt = now
	var id string
	s.applyTree("addDocument", parentID, func(f tree.Forest) tree.Forest {
		f, id = tree.AddDocument(f, parentID, fields)
		return f
	})
	return id
}

// UpdateDocument edits a copy of the document through fn. The id, order
// and trash metadata cannot be changed this way, and neither can the
// character and location links, which go through the Link and Unlink
// methods. A content change made by fn is applied with UpdateContent so
// it reaches the writing history.
func (s *Service) UpdateDocument(id string, fn func(*models.Document)) bool {
	now := s.now()
	var content string
	var edited bool
	changed := s.applyTree("updateDocument", id, func(f tree.Forest) tree.Forest {
		return tree.UpdateDocument(f, id, func(d *models.Document) {
			chars, locs, text := slices.Clone(d.CharacterIDs), slices.Clone(d.LocationIDs), d.Content
			fn(d)
			if d.Content != text {
				content, edited = d.Content, true
			}
			d.CharacterIDs, d.LocationIDs, d.Content = chars, locs, text
			d.ModifiedAt = now
		})
	})
	if changed && edited {
		s.UpdateContent(id, content)
	}
	return changed
}

// RenameDocument sets a document's title.
func (s *Service) RenameDocument(id, title string) bool {
	return s.UpdateDocument(id, func(d *models.Document) { d.Title = title })
}

// MoveDocument files a document at the end of another folder, possibly
// in a different hierarchy.
func (s *Service) MoveDocument(id, targetFolderID string) bool {
	return s.applyTree("moveDocument", id, func(f tree.Forest) tree.Forest {
		return tree.MoveDocument(f, id, targetFolderID)
	})
}

// ReorderDocuments moves the documents at indices from to position to
// within folderID.
func (s *Service) ReorderDocuments(folderID string, from []int, to int) bool {
	return s.applyTree("reorderDocuments", folderID, func(f tree.Forest) tree.Forest {
		return tree.ReorderDocuments(f, folderID, from, to)
	})
}

// DeleteDocument permanently removes a document together with its
// appearances, snapshots and index entry.
func (s *Service) DeleteDocument(id string) bool {
	if !s.applySet("deleteDocument", id, func(set xref.Set) xref.Set {
		return xref.DeleteDocument(set, id)
	}) {
		return false
	}
	s.forget([]string{id})
	return true
}

// TrashDocument moves a document to the trash, remembering where it was.
func (s *Service) TrashDocument(id string) bool {
	return s.applyTree("trashDocument", id, func(f tree.Forest) tree.Forest {
		return tree.TrashDocument(f, id)
	})
}

// AddMediaItem files a media item under parentID and returns its id.
func (s *Service) AddMediaItem(parentID string, item models.MediaItem) string {
	if item.ImportedAt.IsZero() {
		item.ImportedAt = s.now()
	}
	var id string
	s.applyTree("addMediaItem", parentID, func(f tree.Forest) tree.Forest {
		f, id = tree.AddMediaItem(f, parentID, item)
		return f
	})
	return id
}

// RenameMediaItem sets a media item's title.
func (s *Service) RenameMediaItem(id, title string) bool {
	return s.applyTree("renameMediaItem", id, func(f tree.Forest) tree.Forest {
		return tree.RenameMediaItem(f, id, title)
	})
}

// DeleteMediaItem permanently removes a media item.
func (s *Service) DeleteMediaItem(id string) bool {
	if !s.applyTree("deleteMediaItem", id, func(f tree.Forest) tree.Forest {
		return tree.DeleteMediaItem(f, id)
	}) {
		return false
	}
	s.reconcile()
	return true
}

// MoveMediaItem files a media item under another folder.
func (s *Service) MoveMediaItem(id, targetFolderID string) bool {
	return s.applyTree("moveMediaItem", id, func(f tree.Forest) tree.Forest {
		return tree.MoveMediaItem(f, id, targetFolderID)
	})
}

// ReorderMedia moves the media items at indices from to position to
// within folderID.
func (s *Service) ReorderMedia(folderID string, from []int, to int) bool {
	return s.applyTree("reorderMedia", folderID, func(f tree.Forest) tree.Forest {
		return tree.ReorderMedia(f, folderID, from, to)
	})
}

// TrashMediaItem moves a media item to the trash.
func (s *Service) TrashMediaItem(id string) bool {
	return s.applyTree("trashMediaItem", id, func(f tree.Forest) tree.Forest {
		return tree.TrashMediaItem(f, id)
	})
}

// Restore moves a trashed item back to where it was trashed from.
func (s *Service) Restore(id string) bool {
	return s.applyTree("restore", id, func(f tree.Forest) tree.Forest {
		return tree.Restore(f, id)
	})
}

// EmptyTrash permanently deletes everything in the trash and returns what
// was removed.
func (s *Service) EmptyTrash() tree.Subtree {
	var removed tree.Subtree
	if !s.applyTree("emptyTrash", "", func(f tree.Forest) tree.Forest {
		f, removed = tree.EmptyTrash(f)
		return f
	}) {
		return tree.Subtree{}
	}
	s.forget(removed.DocumentIDs)
	return removed
}

// TrashItems lists the top-level trashed items with their metadata.
func (s *Service) TrashItems() []tree.Item {
	var out []tree.Item
	for _, it := range s.Forest().Items(tree.Trash) {
		if it.Depth == 1 {
			out = append(out, it)
		}
	}
	return out
}
