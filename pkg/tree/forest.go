// Package tree implements copy-on-write mutations over the three project
// hierarchies (draft, research and trash).
//
// Every operation takes a Forest and returns a Forest. Nodes reachable from
// the input are never modified; only the path from a root to the changed
// node is rebuilt, and untouched subtrees are shared with the input.
// Addressing an id that does not exist, or asking for a change that would
// break a structural invariant, returns the input Forest unchanged. Callers
// can detect that case with Forest.Same.
package tree

import (
	"time"

	"github.com/grovetools/manuscript/pkg/models"
)

// Hierarchy names one of the three root folders.
type Hierarchy int

const (
	Draft Hierarchy = iota
	Research
	Trash
)

// Hierarchies lists every hierarchy in search order.
var Hierarchies = []Hierarchy{Draft, Research, Trash}

func (h Hierarchy) String() string {
	switch h {
	case Draft:
		return "draft"
	case Research:
		return "research"
	case Trash:
		return "trash"
	}
	return "unknown"
}

// ParseHierarchy maps a hierarchy name back to its value.
func ParseHierarchy(s string) (Hierarchy, bool) {
	for _, h := range Hierarchies {
		if h.String() == s {
			return h, true
		}
	}
	return 0, false
}

// clock stamps trash metadata. Tests replace it.
var clock = time.Now

// Forest holds the three hierarchy roots of a project.
type Forest struct {
	Draft    *models.Folder
	Research *models.Folder
	Trash    *models.Folder
}

// FromProject returns the forest currently stored in p.
func FromProject(p *models.Project) Forest {
	return Forest{Draft: p.Draft, Research: p.Research, Trash: p.Trash}
}

// ApplyTo stores the forest's roots in p, replacing the previous roots.
func (f Forest) ApplyTo(p *models.Project) {
	p.Draft = f.Draft
	p.Research = f.Research
	p.Trash = f.Trash
}

// Root returns the root folder of h.
func (f Forest) Root(h Hierarchy) *models.Folder {
	switch h {
	case Research:
		return f.Research
	case Trash:
		return f.Trash
	default:
		return f.Draft
	}
}

func (f Forest) withRoot(h Hierarchy, root *models.Folder) Forest {
	switch h {
	case Research:
		f.Research = root
	case Trash:
		f.Trash = root
	default:
		f.Draft = root
	}
	return f
}

// Same reports whether both forests share all three roots, meaning no
// operation changed anything between them.
func (f Forest) Same(other Forest) bool {
	return f.Draft == other.Draft && f.Research == other.Research && f.Trash == other.Trash
}

// IsRoot reports whether id names one of the three root folders.
func (f Forest) IsRoot(id string) bool {
	for _, h := range Hierarchies {
		if r := f.Root(h); r != nil && r.ID == id {
			return true
		}
	}
	return false
}

// Locate returns the hierarchy whose tree contains id.
func (f Forest) Locate(id string) (Hierarchy, bool) {
	for _, h := range Hierarchies {
		if r := f.Root(h); r != nil && contains(r, id) {
			return h, true
		}
	}
	return 0, false
}

func contains(node *models.Folder, id string) bool {
	if node.ID == id {
		return true
	}
	if _, _, ok := childIndex(node, id); ok {
		return true
	}
	for _, sub := range node.Subfolders {
		if contains(sub, id) {
			return true
		}
	}
	return false
}
