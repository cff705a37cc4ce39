package selection

import (
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

// Tracker holds the current selection and the set of expanded folder ids.
// Expanded ids are not required to exist; readers must tolerate dangling
// ids.
type Tracker struct {
	current  Selection
	expanded map[string]struct{}
}

// NewTracker returns a tracker with nothing selected or expanded.
func NewTracker() *Tracker {
	return &Tracker{expanded: make(map[string]struct{})}
}

// Load rebuilds a tracker from persisted project state. The selection is
// re-resolved through r; expanded ids are taken as they are.
func Load(st models.ProjectState, r Resolver) *Tracker {
	t := NewTracker()
	t.current = Rehydrate(st.Selection, r)
	for _, id := range st.ExpandedFolderIDs {
		if id != "" {
			t.expanded[id] = struct{}{}
		}
	}
	return t
}

// Save writes the selection and expanded set into st, leaving the other
// fields as they are.
func (t *Tracker) Save(st models.ProjectState) models.ProjectState {
	st.Selection = t.current.Persist()
	st.ExpandedFolderIDs = t.ExpandedIDs()
	return st
}

// Current returns the selection.
func (t *Tracker) Current() Selection {
	return t.current
}

// Select replaces the selection.
func (t *Tracker) Select(s Selection) {
	t.current = s
}

// Clear drops the selection.
func (t *Tracker) Clear() {
	t.current = None()
}

// Reconcile clears the selection if it no longer resolves and reports
// whether it did.
func (t *Tracker) Reconcile(r Resolver) bool {
	if t.current.IsNone() || t.current.Valid(r) {
		return false
	}
	t.current = None()
	return true
}

// Expand marks a folder id expanded.
func (t *Tracker) Expand(id string) {
	if id != "" {
		t.expanded[id] = struct{}{}
	}
}

// Collapse marks a folder id collapsed.
func (t *Tracker) Collapse(id string) {
	delete(t.expanded, id)
}

// Toggle flips a folder's expanded state and returns the new state.
func (t *Tracker) Toggle(id string) bool {
	if t.IsExpanded(id) {
		t.Collapse(id)
		return false
	}
	t.Expand(id)
	return true
}

// IsExpanded reports whether id is in the expanded set.
func (t *Tracker) IsExpanded(id string) bool {
	_, ok := t.expanded[id]
	return ok
}

// ExpandedIDs returns the expanded set, sorted for stable output.
func (t *Tracker) ExpandedIDs() []string {
	ids := make([]string, 0, len(t.expanded))
	for id := range t.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ExpandTo expands every folder from the owning hierarchy's root down to,
// but excluding, targetID, so the target becomes visible. It returns false
// and changes nothing when targetID does not resolve.
func (t *Tracker) ExpandTo(f tree.Forest, targetID string) bool {
	ancestors, ok := f.Ancestors(targetID)
	if !ok {
		return false
	}
	for _, id := range ancestors {
		t.expanded[id] = struct{}{}
	}
	return true
}

// Prune drops expanded ids that are not folders of f and returns how many
// were dropped.
func (t *Tracker) Prune(f tree.Forest) int {
	n := 0
	for id := range t.expanded {
		if _, _, ok := f.Folder(id); !ok {
			delete(t.expanded, id)
			n++
		}
	}
	return n
}
