package tree

import (
	"github.com/grovetools/manuscript/pkg/models"
)

// ItemType categorizes the different kinds of nodes in a hierarchy.
type ItemType string

const (
	TypeRoot     ItemType = "root"
	TypeFolder   ItemType = "folder"
	TypeDocument ItemType = "document"
	TypeMedia    ItemType = "media"
)

// Item is a flattened view of a single node: what it is and where it sits.
type Item struct {
	ID        string
	Title     string
	Type      ItemType
	Hierarchy Hierarchy
	ParentID  string
	Depth     int
	Order     int
	Trashed   bool
}

// Items flattens hierarchy h in pre-order. Each folder is followed by its
// subfolders, then its documents, then its media items.
func (f Forest) Items(h Hierarchy) []Item {
	root := f.Root(h)
	if root == nil {
		return nil
	}
	var items []Item
	var walk func(folder *models.Folder, parentID string, depth int)
	walk = func(folder *models.Folder, parentID string, depth int) {
		typ := TypeFolder
		if folder.IsRoot() {
			typ = TypeRoot
		}
		items = append(items, Item{
			ID:        folder.ID,
			Title:     folder.Title,
			Type:      typ,
			Hierarchy: h,
			ParentID:  parentID,
			Depth:     depth,
			Order:     folder.Order,
			Trashed:   folder.Trash != nil,
		})
		for _, sub := range folder.Subfolders {
			walk(sub, folder.ID, depth+1)
		}
		for _, d := range folder.Documents {
			items = append(items, Item{
				ID:        d.ID,
				Title:     d.Title,
				Type:      TypeDocument,
				Hierarchy: h,
				ParentID:  folder.ID,
				Depth:     depth + 1,
				Order:     d.Order,
				Trashed:   d.Trash != nil,
			})
		}
		for _, m := range folder.Media {
			items = append(items, Item{
				ID:        m.ID,
				Title:     m.Title,
				Type:      TypeMedia,
				Hierarchy: h,
				ParentID:  folder.ID,
				Depth:     depth + 1,
				Order:     m.Order,
				Trashed:   m.Trash != nil,
			})
		}
	}
	walk(root, "", 0)
	return items
}

// Lookup describes the node id, wherever it lives.
func (f Forest) Lookup(id string) (Item, bool) {
	h, ok := f.Locate(id)
	if !ok {
		return Item{}, false
	}
	for _, it := range f.Items(h) {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
