package tree

import "github.com/grovetools/manuscript/pkg/models"

// FindFolder searches root depth-first for a folder. A nil result means
// not found.
func FindFolder(root *models.Folder, id string) *models.Folder {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, sub := range root.Subfolders {
		if f := FindFolder(sub, id); f != nil {
			return f
		}
	}
	return nil
}

// FindDocument searches root depth-first for a document.
func FindDocument(root *models.Folder, id string) *models.Document {
	if root == nil {
		return nil
	}
	for _, d := range root.Documents {
		if d.ID == id {
			return d
		}
	}
	for _, sub := range root.Subfolders {
		if d := FindDocument(sub, id); d != nil {
			return d
		}
	}
	return nil
}

// FindMediaItem searches root depth-first for a media item.
func FindMediaItem(root *models.Folder, id string) *models.MediaItem {
	if root == nil {
		return nil
	}
	for _, m := range root.Media {
		if m.ID == id {
			return m
		}
	}
	for _, sub := range root.Subfolders {
		if m := FindMediaItem(sub, id); m != nil {
			return m
		}
	}
	return nil
}

// Folder looks a folder up across all hierarchies.
func (f Forest) Folder(id string) (*models.Folder, Hierarchy, bool) {
	for _, h := range Hierarchies {
		if folder := FindFolder(f.Root(h), id); folder != nil {
			return folder, h, true
		}
	}
	return nil, 0, false
}

// Document looks a document up across all hierarchies.
func (f Forest) Document(id string) (*models.Document, Hierarchy, bool) {
	for _, h := range Hierarchies {
		if d := FindDocument(f.Root(h), id); d != nil {
			return d, h, true
		}
	}
	return nil, 0, false
}

// MediaItem looks a media item up across all hierarchies.
func (f Forest) MediaItem(id string) (*models.MediaItem, Hierarchy, bool) {
	for _, h := range Hierarchies {
		if m := FindMediaItem(f.Root(h), id); m != nil {
			return m, h, true
		}
	}
	return nil, 0, false
}

// PathTo returns the folders from root down to the direct parent of id.
// The second result is false when id is not in root's tree. For root's own
// id the path is empty.
func PathTo(root *models.Folder, id string) ([]*models.Folder, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID == id {
		return []*models.Folder{}, true
	}
	var walk func(node *models.Folder) []*models.Folder
	walk = func(node *models.Folder) []*models.Folder {
		if _, _, ok := childIndex(node, id); ok {
			return []*models.Folder{node}
		}
		for _, sub := range node.Subfolders {
			if p := walk(sub); p != nil {
				return append([]*models.Folder{node}, p...)
			}
		}
		return nil
	}
	p := walk(root)
	return p, p != nil
}

// Ancestors returns the ids of every folder from the owning root down to,
// but excluding, id.
func (f Forest) Ancestors(id string) ([]string, bool) {
	h, ok := f.Locate(id)
	if !ok {
		return nil, false
	}
	path, _ := PathTo(f.Root(h), id)
	ids := make([]string, len(path))
	for i, folder := range path {
		ids[i] = folder.ID
	}
	return ids, true
}

// Parent returns the folder directly containing id.
func (f Forest) Parent(id string) (*models.Folder, bool) {
	h, ok := f.Locate(id)
	if !ok {
		return nil, false
	}
	path, _ := PathTo(f.Root(h), id)
	if len(path) == 0 {
		return nil, false
	}
	return path[len(path)-1], true
}

// IsDescendant reports whether id lies anywhere below folder.
func IsDescendant(folder *models.Folder, id string) bool {
	if folder == nil || folder.ID == id {
		return false
	}
	return contains(folder, id)
}

// Documents returns every document under root in pre-order.
func Documents(root *models.Folder) []*models.Document {
	var docs []*models.Document
	Walk(root, func(folder *models.Folder, depth int) {
		docs = append(docs, folder.Documents...)
	})
	return docs
}

// AllDocuments returns the documents of all hierarchies.
func (f Forest) AllDocuments() []*models.Document {
	var docs []*models.Document
	for _, h := range Hierarchies {
		docs = append(docs, Documents(f.Root(h))...)
	}
	return docs
}

// Walk visits root and every folder below it in pre-order, subfolders in
// sibling order. The root has depth 0.
func Walk(root *models.Folder, fn func(folder *models.Folder, depth int)) {
	if root == nil {
		return
	}
	var walk func(node *models.Folder, depth int)
	walk = func(node *models.Folder, depth int) {
		fn(node, depth)
		for _, sub := range node.Subfolders {
			walk(sub, depth+1)
		}
	}
	walk(root, 0)
}
