package tree

import "github.com/grovetools/manuscript/pkg/models"

// TrashDocument moves a draft or research document to the trash root.
func TrashDocument(f Forest, id string) Forest {
	if h, ok := f.Locate(id); !ok || h == Trash || f.Trash == nil {
		return f
	}
	return MoveDocument(f, id, f.Trash.ID)
}

// TrashMediaItem moves a draft or research media item to the trash root.
func TrashMediaItem(f Forest, id string) Forest {
	if h, ok := f.Locate(id); !ok || h == Trash || f.Trash == nil {
		return f
	}
	return MoveMediaItem(f, id, f.Trash.ID)
}

// TrashFolder moves a draft or research folder and its subtree to the
// trash root.
func TrashFolder(f Forest, id string) Forest {
	if h, ok := f.Locate(id); !ok || h == Trash || f.Trash == nil {
		return f
	}
	return MoveFolder(f, id, f.Trash.ID)
}

// Restore returns a trashed item to the folder it was trashed from, at its
// original position clamped to the current sibling count. If that folder
// no longer exists outside the trash, the item goes to the draft root.
// Trash metadata is cleared from the item and everything below it.
func Restore(f Forest, id string) Forest {
	h, ok := f.Locate(id)
	if !ok || h != Trash || f.IsRoot(id) {
		return f
	}
	meta, ok := trashMetadata(f, id)
	if !ok {
		return f
	}

	targetID, to := f.Draft.ID, Draft
	if parent, ph, ok := f.Folder(meta.OriginalParentFolderID); ok && ph != Trash {
		targetID, to = parent.ID, ph
	}
	return relocate(f, id, Trash, targetID, to, meta.OriginalOrder)
}

func trashMetadata(f Forest, id string) (models.TrashMetadata, bool) {
	var meta *models.TrashMetadata
	if folder, _, ok := f.Folder(id); ok {
		meta = folder.Trash
	} else if d, _, ok := f.Document(id); ok {
		meta = d.Trash
	} else if m, _, ok := f.MediaItem(id); ok {
		meta = m.Trash
	}
	if meta == nil {
		return models.TrashMetadata{}, false
	}
	return *meta, true
}

// EmptyTrash permanently removes everything in the trash and reports the
// ids that were removed, so references to them can be cleaned up.
func EmptyTrash(f Forest) (Forest, Subtree) {
	if f.Trash == nil || f.Trash.ChildCount() == 0 {
		return f, Subtree{}
	}
	removed := Collect(f.Trash)
	removed.FolderIDs = removed.FolderIDs[1:] // the root stays

	root := f.Trash.Copy()
	root.Subfolders, root.Documents, root.Media = nil, nil, nil
	return f.withRoot(Trash, root), removed
}
