package tree

import (
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
)

// AddFolder appends a new subfolder titled title to parentID. It returns
// the new folder's id, or "" when parentID does not resolve.
func AddFolder(f Forest, parentID, title string) (Forest, string) {
	folder := models.NewFolder(title, 0)
	next, ok := addChild(f, parentID, detached{folder: folder})
	if !ok {
		return f, ""
	}
	return next, folder.ID
}

// AddDocument appends a document built from fields to parentID. The id,
// order and trash metadata of fields are assigned by the engine.
func AddDocument(f Forest, parentID string, fields models.Document) (Forest, string) {
	doc := fields.Clone()
	doc.ID = models.NewID()
	doc.Trash = nil
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = clock()
	}
	if doc.ModifiedAt.IsZero() {
		doc.ModifiedAt = doc.CreatedAt
	}
	next, ok := addChild(f, parentID, detached{document: doc})
	if !ok {
		return f, ""
	}
	return next, doc.ID
}

// AddMediaItem appends a media item to parentID.
func AddMediaItem(f Forest, parentID string, item models.MediaItem) (Forest, string) {
	m := item.Clone()
	m.ID = models.NewID()
	m.Trash = nil
	if m.ImportedAt.IsZero() {
		m.ImportedAt = clock()
	}
	next, ok := addChild(f, parentID, detached{media: m})
	if !ok {
		return f, ""
	}
	return next, m.ID
}

func addChild(f Forest, parentID string, n detached) (Forest, bool) {
	parent, h, ok := f.Folder(parentID)
	if !ok {
		return f, false
	}
	if h == Trash {
		n.parentID = parent.ID
		switch {
		case n.folder != nil:
			n.order = len(parent.Subfolders)
		case n.document != nil:
			n.order = len(parent.Documents)
		case n.media != nil:
			n.order = len(parent.Media)
		}
		n = stampTrash(n)
	}
	root, ok := attach(f.Root(h), parentID, n, -1)
	if !ok {
		return f, false
	}
	return f.withRoot(h, root), true
}

// UpdateFolder applies fn to a copy of folder id and rebuilds its
// ancestors. fn should only touch the folder's own fields; use the
// structural operations to change children.
func UpdateFolder(f Forest, id string, fn func(*models.Folder)) Forest {
	h, ok := f.Locate(id)
	if !ok {
		return f
	}
	root, ok := rewriteFolder(f.Root(h), id, func(folder *models.Folder) bool {
		kind, order, trash := folder.Kind, folder.Order, folder.Trash
		subs, docs, media := folder.Subfolders, folder.Documents, folder.Media
		fn(folder)
		folder.ID, folder.Kind, folder.Order, folder.Trash = id, kind, order, trash
		folder.Subfolders, folder.Documents, folder.Media = subs, docs, media
		return true
	})
	if !ok {
		return f
	}
	return f.withRoot(h, root)
}

// UpdateDocument applies fn to a copy of document id.
func UpdateDocument(f Forest, id string, fn func(*models.Document)) Forest {
	h, ok := f.Locate(id)
	if !ok {
		return f
	}
	root, ok := rewriteParent(f.Root(h), id, func(parent *models.Folder, s slot, idx int) bool {
		if s != slotDocument {
			return false
		}
		orig := parent.Documents[idx]
		d := orig.Clone()
		fn(d)
		// identity and placement belong to the engine
		d.ID, d.Order, d.Trash = orig.ID, orig.Order, orig.Trash
		parent.Documents[idx] = d
		return true
	})
	if !ok {
		return f
	}
	return f.withRoot(h, root)
}

// UpdateMediaItem applies fn to a copy of media item id.
func UpdateMediaItem(f Forest, id string, fn func(*models.MediaItem)) Forest {
	h, ok := f.Locate(id)
	if !ok {
		return f
	}
	root, ok := rewriteParent(f.Root(h), id, func(parent *models.Folder, s slot, idx int) bool {
		if s != slotMedia {
			return false
		}
		orig := parent.Media[idx]
		m := orig.Clone()
		fn(m)
		m.ID, m.Order, m.Trash = orig.ID, orig.Order, orig.Trash
		parent.Media[idx] = m
		return true
	})
	if !ok {
		return f
	}
	return f.withRoot(h, root)
}

// RenameFolder sets a folder's title. Roots can be renamed.
func RenameFolder(f Forest, id, title string) Forest {
	return UpdateFolder(f, id, func(folder *models.Folder) { folder.Title = title })
}

// SetFolderIcon sets a folder's icon descriptor.
func SetFolderIcon(f Forest, id, icon string) Forest {
	return UpdateFolder(f, id, func(folder *models.Folder) { folder.Icon = icon })
}

// SetFolderExpanded sets a folder's stored expanded flag.
func SetFolderExpanded(f Forest, id string, expanded bool) Forest {
	return UpdateFolder(f, id, func(folder *models.Folder) { folder.Expanded = expanded })
}

// RenameDocument sets a document's title.
func RenameDocument(f Forest, id, title string) Forest {
	return UpdateDocument(f, id, func(d *models.Document) { d.Title = title })
}

// SetDocumentColor sets a document's color descriptor.
func SetDocumentColor(f Forest, id, color string) Forest {
	return UpdateDocument(f, id, func(d *models.Document) { d.Color = color })
}

// SetDocumentIcon sets a document's icon descriptor.
func SetDocumentIcon(f Forest, id, icon string) Forest {
	return UpdateDocument(f, id, func(d *models.Document) { d.Icon = icon })
}

// RenameMediaItem sets a media item's title.
func RenameMediaItem(f Forest, id, title string) Forest {
	return UpdateMediaItem(f, id, func(m *models.MediaItem) { m.Title = title })
}

// DeleteFolder permanently removes folder id and its subtree. Roots cannot
// be deleted.
func DeleteFolder(f Forest, id string) Forest {
	if f.IsRoot(id) {
		return f
	}
	return remove(f, id, slotFolder)
}

// DeleteDocument permanently removes document id from whichever hierarchy
// holds it. Cross-references are the caller's concern (see package xref).
func DeleteDocument(f Forest, id string) Forest {
	return remove(f, id, slotDocument)
}

// DeleteMediaItem permanently removes media item id.
func DeleteMediaItem(f Forest, id string) Forest {
	return remove(f, id, slotMedia)
}

func remove(f Forest, id string, want slot) Forest {
	h, ok := f.Locate(id)
	if !ok {
		return f
	}
	root, ok := rewriteParent(f.Root(h), id, func(parent *models.Folder, s slot, idx int) bool {
		if s != want {
			return false
		}
		switch s {
		case slotFolder:
			parent.Subfolders = slices.Delete(parent.Subfolders, idx, idx+1)
			renumberFolders(parent.Subfolders)
		case slotDocument:
			parent.Documents = slices.Delete(parent.Documents, idx, idx+1)
			renumberDocuments(parent.Documents)
		case slotMedia:
			parent.Media = slices.Delete(parent.Media, idx, idx+1)
			renumberMedia(parent.Media)
		}
		return true
	})
	if !ok {
		return f
	}
	return f.withRoot(h, root)
}

// Subtree reports the ids held in folder's subtree, folder itself included.
type Subtree struct {
	FolderIDs   []string
	DocumentIDs []string
	MediaIDs    []string
}

// Collect gathers the ids in folder's subtree.
func Collect(folder *models.Folder) Subtree {
	var s Subtree
	Walk(folder, func(node *models.Folder, depth int) {
		s.FolderIDs = append(s.FolderIDs, node.ID)
		for _, d := range node.Documents {
			s.DocumentIDs = append(s.DocumentIDs, d.ID)
		}
		for _, m := range node.Media {
			s.MediaIDs = append(s.MediaIDs, m.ID)
		}
	})
	return s
}

// MapDocuments rebuilds every document for which match returns true by
// applying fn to a copy. Folders without matching documents are shared.
func MapDocuments(f Forest, match func(*models.Document) bool, fn func(*models.Document)) Forest {
	var mapFolder func(node *models.Folder) (*models.Folder, bool)
	mapFolder = func(node *models.Folder) (*models.Folder, bool) {
		var cp *models.Folder
		for i, d := range node.Documents {
			if !match(d) {
				continue
			}
			if cp == nil {
				cp = node.Copy()
			}
			nd := d.Clone()
			fn(nd)
			nd.ID, nd.Order = d.ID, d.Order
			cp.Documents[i] = nd
		}
		for i, sub := range node.Subfolders {
			nsub, changed := mapFolder(sub)
			if !changed {
				continue
			}
			if cp == nil {
				cp = node.Copy()
			}
			cp.Subfolders[i] = nsub
		}
		if cp == nil {
			return node, false
		}
		return cp, true
	}

	out := f
	for _, h := range Hierarchies {
		root := f.Root(h)
		if root == nil {
			continue
		}
		if nroot, changed := mapFolder(root); changed {
			out = out.withRoot(h, nroot)
		}
	}
	return out
}
