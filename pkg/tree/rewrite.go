package tree

import (
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
)

// slot says which child list of a folder holds a node.
type slot int

const (
	slotFolder slot = iota
	slotDocument
	slotMedia
)

// childIndex finds id among the direct children of node.
func childIndex(node *models.Folder, id string) (slot, int, bool) {
	for i, sub := range node.Subfolders {
		if sub.ID == id {
			return slotFolder, i, true
		}
	}
	for i, d := range node.Documents {
		if d.ID == id {
			return slotDocument, i, true
		}
	}
	for i, m := range node.Media {
		if m.ID == id {
			return slotMedia, i, true
		}
	}
	return 0, 0, false
}

// rewriteFolder finds the folder id below (or at) node and replaces it by a
// copy passed to fn. Every ancestor on the path is copied; siblings are
// shared. When fn returns false, or id is absent, node is returned as is.
func rewriteFolder(node *models.Folder, id string, fn func(*models.Folder) bool) (*models.Folder, bool) {
	if node.ID == id {
		cp := node.Copy()
		if !fn(cp) {
			return node, false
		}
		return cp, true
	}
	for i, sub := range node.Subfolders {
		if nsub, ok := rewriteFolder(sub, id, fn); ok {
			cp := node.Copy()
			cp.Subfolders[i] = nsub
			return cp, true
		}
	}
	return node, false
}

// rewriteParent finds the folder directly containing childID and replaces
// it by a copy passed to fn together with the child's position. Direct
// children of node are checked before descending.
func rewriteParent(node *models.Folder, childID string, fn func(parent *models.Folder, s slot, idx int) bool) (*models.Folder, bool) {
	if s, idx, ok := childIndex(node, childID); ok {
		cp := node.Copy()
		if !fn(cp, s, idx) {
			return node, false
		}
		return cp, true
	}
	for i, sub := range node.Subfolders {
		if nsub, ok := rewriteParent(sub, childID, fn); ok {
			cp := node.Copy()
			cp.Subfolders[i] = nsub
			return cp, true
		}
	}
	return node, false
}

// detached is a node removed from its parent.
type detached struct {
	folder   *models.Folder
	document *models.Document
	media    *models.MediaItem
	parentID string
	order    int
}

// detach removes id from its parent in root and renumbers the remaining
// siblings of the same kind.
func detach(root *models.Folder, id string) (*models.Folder, detached, bool) {
	var out detached
	nroot, ok := rewriteParent(root, id, func(parent *models.Folder, s slot, idx int) bool {
		out.parentID = parent.ID
		switch s {
		case slotFolder:
			out.folder = parent.Subfolders[idx]
			out.order = out.folder.Order
			parent.Subfolders = slices.Delete(parent.Subfolders, idx, idx+1)
			renumberFolders(parent.Subfolders)
		case slotDocument:
			out.document = parent.Documents[idx]
			out.order = out.document.Order
			parent.Documents = slices.Delete(parent.Documents, idx, idx+1)
			renumberDocuments(parent.Documents)
		case slotMedia:
			out.media = parent.Media[idx]
			out.order = out.media.Order
			parent.Media = slices.Delete(parent.Media, idx, idx+1)
			renumberMedia(parent.Media)
		}
		return true
	})
	return nroot, out, ok
}

// attach inserts a detached node into the folder targetID of root at
// position at (clamped to the sibling count; a negative value appends) and
// renumbers that sibling list.
func attach(root *models.Folder, targetID string, n detached, at int) (*models.Folder, bool) {
	return rewriteFolder(root, targetID, func(target *models.Folder) bool {
		switch {
		case n.folder != nil:
			target.Subfolders = slices.Insert(target.Subfolders, clampIndex(at, len(target.Subfolders)), n.folder)
			renumberFolders(target.Subfolders)
		case n.document != nil:
			target.Documents = slices.Insert(target.Documents, clampIndex(at, len(target.Documents)), n.document)
			renumberDocuments(target.Documents)
		case n.media != nil:
			target.Media = slices.Insert(target.Media, clampIndex(at, len(target.Media)), n.media)
			renumberMedia(target.Media)
		default:
			return false
		}
		return true
	})
}

func clampIndex(at, n int) int {
	if at < 0 || at > n {
		return n
	}
	return at
}

// The renumber helpers make a list's order fields the dense sequence
// 0..n-1, replacing only the elements whose order actually changes.

func renumberFolders(list []*models.Folder) {
	for i, f := range list {
		if f.Order != i {
			cp := f.Copy()
			cp.Order = i
			list[i] = cp
		}
	}
}

func renumberDocuments(list []*models.Document) {
	for i, d := range list {
		if d.Order != i {
			cp := d.Clone()
			cp.Order = i
			list[i] = cp
		}
	}
}

func renumberMedia(list []*models.MediaItem) {
	for i, m := range list {
		if m.Order != i {
			cp := m.Clone()
			cp.Order = i
			list[i] = cp
		}
	}
}

// moveOffsets moves the elements at the from indices so they end up, in
// their original relative order, before the element that was at index to.
// to == len(list) moves them to the end. Out-of-range from indices are
// ignored.
func moveOffsets[T any](list []T, from []int, to int) ([]T, bool) {
	picked := make(map[int]bool, len(from))
	for _, i := range from {
		if i >= 0 && i < len(list) {
			picked[i] = true
		}
	}
	if len(picked) == 0 {
		return list, false
	}
	if to < 0 {
		to = 0
	}
	if to > len(list) {
		to = len(list)
	}

	var moving, rest []T
	insertAt := to
	for i, v := range list {
		if picked[i] {
			moving = append(moving, v)
			if i < to {
				insertAt--
			}
			continue
		}
		rest = append(rest, v)
	}
	out := make([]T, 0, len(list))
	out = append(out, rest[:insertAt]...)
	out = append(out, moving...)
	out = append(out, rest[insertAt:]...)
	return out, true
}

// stampTrash marks a node that just entered the trash and every node below
// it. The top node remembers its pre-trash parent and order; descendants
// remember their position inside the trashed subtree.
func stampTrash(n detached) detached {
	meta := models.TrashMetadata{
		OriginalParentFolderID: n.parentID,
		OriginalOrder:          n.order,
		TrashedDate:            clock(),
	}
	switch {
	case n.folder != nil:
		n.folder = stampFolder(n.folder, meta)
	case n.document != nil:
		d := n.document.Clone()
		d.Trash = &meta
		n.document = d
	case n.media != nil:
		m := n.media.Clone()
		m.Trash = &meta
		n.media = m
	}
	return n
}

func stampFolder(folder *models.Folder, meta models.TrashMetadata) *models.Folder {
	cp := folder.Copy()
	cp.Trash = &meta
	inner := func(order int) *models.TrashMetadata {
		return &models.TrashMetadata{
			OriginalParentFolderID: folder.ID,
			OriginalOrder:          order,
			TrashedDate:            meta.TrashedDate,
		}
	}
	for i, sub := range cp.Subfolders {
		cp.Subfolders[i] = stampFolder(sub, *inner(sub.Order))
	}
	for i, d := range cp.Documents {
		nd := d.Clone()
		nd.Trash = inner(d.Order)
		cp.Documents[i] = nd
	}
	for i, m := range cp.Media {
		nm := m.Clone()
		nm.Trash = inner(m.Order)
		cp.Media[i] = nm
	}
	return cp
}

// clearTrash removes trash metadata from a node leaving the trash and from
// everything below it.
func clearTrash(n detached) detached {
	switch {
	case n.folder != nil:
		n.folder = clearFolder(n.folder)
	case n.document != nil && n.document.Trash != nil:
		d := n.document.Clone()
		d.Trash = nil
		n.document = d
	case n.media != nil && n.media.Trash != nil:
		m := n.media.Clone()
		m.Trash = nil
		n.media = m
	}
	return n
}

func clearFolder(folder *models.Folder) *models.Folder {
	cp := folder.Copy()
	cp.Trash = nil
	for i, sub := range cp.Subfolders {
		cp.Subfolders[i] = clearFolder(sub)
	}
	for i, d := range cp.Documents {
		if d.Trash != nil {
			nd := d.Clone()
			nd.Trash = nil
			cp.Documents[i] = nd
		}
	}
	for i, m := range cp.Media {
		if m.Trash != nil {
			nm := m.Clone()
			nm.Trash = nil
			cp.Media[i] = nm
		}
	}
	return cp
}

// crossing applies the trash-metadata rule for a node moving from one
// hierarchy to another.
func crossing(n detached, from, to Hierarchy) detached {
	switch {
	case to == Trash && from != Trash:
		return stampTrash(n)
	case to != Trash && from == Trash:
		return clearTrash(n)
	}
	return n
}

// relocate detaches id from hierarchy from and attaches it to folder
// targetID in hierarchy to at position at.
func relocate(f Forest, id string, from Hierarchy, targetID string, to Hierarchy, at int) Forest {
	src, n, ok := detach(f.Root(from), id)
	if !ok {
		return f
	}
	next := f.withRoot(from, src)
	n = crossing(n, from, to)
	dst, ok := attach(next.Root(to), targetID, n, at)
	if !ok {
		return f
	}
	return next.withRoot(to, dst)
}
