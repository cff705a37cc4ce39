package tree

import "github.com/grovetools/manuscript/pkg/models"

// MoveDocument moves document docID to the end of folder targetFolderID,
// possibly across hierarchies. Moving a document into the folder that
// already holds it is a no-op.
func MoveDocument(f Forest, docID, targetFolderID string) Forest {
	return moveLeaf(f, docID, slotDocument, targetFolderID)
}

// MoveMediaItem moves media item id to the end of folder targetFolderID.
func MoveMediaItem(f Forest, id, targetFolderID string) Forest {
	return moveLeaf(f, id, slotMedia, targetFolderID)
}

func moveLeaf(f Forest, id string, want slot, targetFolderID string) Forest {
	from, ok := f.Locate(id)
	if !ok {
		return f
	}
	source, ok := f.Parent(id)
	if !ok {
		return f
	}
	if s, _, _ := childIndex(source, id); s != want {
		return f
	}
	if source.ID == targetFolderID {
		return f
	}
	if _, to, ok := f.Folder(targetFolderID); ok {
		return relocate(f, id, from, targetFolderID, to, -1)
	}
	return f
}

// MoveFolder moves folder folderID, with its subtree, to the end of
// targetParentID's subfolders. The move is refused when it would create a
// cycle (target is the folder itself or one of its descendants) or when
// folderID is a hierarchy root. Moving a folder into its current parent is
// a no-op.
func MoveFolder(f Forest, folderID, targetParentID string) Forest {
	if folderID == targetParentID || f.IsRoot(folderID) {
		return f
	}
	folder, from, ok := f.Folder(folderID)
	if !ok {
		return f
	}
	_, to, ok := f.Folder(targetParentID)
	if !ok {
		return f
	}
	if IsDescendant(folder, targetParentID) {
		return f
	}
	if parent, ok := f.Parent(folderID); ok && parent.ID == targetParentID {
		return f
	}
	return relocate(f, folderID, from, targetParentID, to, -1)
}

// ReorderDocuments moves the documents at the from indices of folderID so
// they sit before the document currently at index to (len moves them to
// the end), then renumbers the list.
func ReorderDocuments(f Forest, folderID string, from []int, to int) Forest {
	return reorder(f, folderID, func(folder *models.Folder) bool {
		docs, ok := moveOffsets(folder.Documents, from, to)
		if !ok {
			return false
		}
		folder.Documents = docs
		renumberDocuments(folder.Documents)
		return true
	})
}

// ReorderFolders reorders folderID's subfolders like ReorderDocuments.
func ReorderFolders(f Forest, folderID string, from []int, to int) Forest {
	return reorder(f, folderID, func(folder *models.Folder) bool {
		subs, ok := moveOffsets(folder.Subfolders, from, to)
		if !ok {
			return false
		}
		folder.Subfolders = subs
		renumberFolders(folder.Subfolders)
		return true
	})
}

// ReorderMedia reorders folderID's media items like ReorderDocuments.
func ReorderMedia(f Forest, folderID string, from []int, to int) Forest {
	return reorder(f, folderID, func(folder *models.Folder) bool {
		media, ok := moveOffsets(folder.Media, from, to)
		if !ok {
			return false
		}
		folder.Media = media
		renumberMedia(folder.Media)
		return true
	})
}

func reorder(f Forest, folderID string, fn func(*models.Folder) bool) Forest {
	h, ok := f.Locate(folderID)
	if !ok {
		return f
	}
	root, ok := rewriteFolder(f.Root(h), folderID, fn)
	if !ok {
		return f
	}
	return f.withRoot(h, root)
}
