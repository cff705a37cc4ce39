package tree

import (
	"errors"
	"fmt"

	"github.com/grovetools/manuscript/pkg/models"
)

var (
	ErrMissingRoot     = errors.New("missing hierarchy root")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrOrderNotDense   = errors.New("sibling order is not dense")
	ErrTrashMetadata   = errors.New("trash metadata mismatch")
	ErrMisplacedRoot   = errors.New("root kind below the top level")
	ErrUnexpectedChild = errors.New("unexpected node")
)

// Validate checks the structural invariants of f: all three roots exist
// with the right kinds, ids are unique across hierarchies, every sibling
// list is ordered 0..n-1, and trash metadata is present exactly on the
// items inside the trash. It returns the first violation found.
func Validate(f Forest) error {
	kinds := map[Hierarchy]models.FolderKind{
		Draft:    models.FolderKindDraftRoot,
		Research: models.FolderKindResearchRoot,
		Trash:    models.FolderKindTrashRoot,
	}
	seen := make(map[string]bool)
	for _, h := range Hierarchies {
		root := f.Root(h)
		if root == nil {
			return fmt.Errorf("%w: %s", ErrMissingRoot, h)
		}
		if root.Kind != kinds[h] {
			return fmt.Errorf("%w: %s root has kind %q", ErrMissingRoot, h, root.Kind)
		}
		if root.Trash != nil {
			return fmt.Errorf("%w: %s root carries trash metadata", ErrTrashMetadata, h)
		}
		if err := validateFolder(root, h == Trash, seen); err != nil {
			return fmt.Errorf("%s: %w", h, err)
		}
	}
	return nil
}

func validateFolder(folder *models.Folder, inTrash bool, seen map[string]bool) error {
	if seen[folder.ID] {
		return fmt.Errorf("%w: %s", ErrDuplicateID, folder.ID)
	}
	seen[folder.ID] = true

	for i, sub := range folder.Subfolders {
		if sub == nil {
			return fmt.Errorf("%w: nil subfolder in %s", ErrUnexpectedChild, folder.ID)
		}
		if sub.Kind.IsRoot() {
			return fmt.Errorf("%w: %s", ErrMisplacedRoot, sub.ID)
		}
		if sub.Order != i {
			return fmt.Errorf("%w: subfolder %s of %s has order %d at index %d", ErrOrderNotDense, sub.ID, folder.ID, sub.Order, i)
		}
		if err := checkTrash(sub.ID, sub.Trash, inTrash); err != nil {
			return err
		}
		if err := validateFolder(sub, inTrash, seen); err != nil {
			return err
		}
	}
	for i, d := range folder.Documents {
		if d == nil {
			return fmt.Errorf("%w: nil document in %s", ErrUnexpectedChild, folder.ID)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		seen[d.ID] = true
		if d.Order != i {
			return fmt.Errorf("%w: document %s of %s has order %d at index %d", ErrOrderNotDense, d.ID, folder.ID, d.Order, i)
		}
		if err := checkTrash(d.ID, d.Trash, inTrash); err != nil {
			return err
		}
	}
	for i, m := range folder.Media {
		if m == nil {
			return fmt.Errorf("%w: nil media item in %s", ErrUnexpectedChild, folder.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, m.ID)
		}
		seen[m.ID] = true
		if m.Order != i {
			return fmt.Errorf("%w: media %s of %s has order %d at index %d", ErrOrderNotDense, m.ID, folder.ID, m.Order, i)
		}
		if err := checkTrash(m.ID, m.Trash, inTrash); err != nil {
			return err
		}
	}
	return nil
}

func checkTrash(id string, meta *models.TrashMetadata, inTrash bool) error {
	if inTrash && meta == nil {
		return fmt.Errorf("%w: %s is in the trash without metadata", ErrTrashMetadata, id)
	}
	if !inTrash && meta != nil {
		return fmt.Errorf("%w: %s has metadata outside the trash", ErrTrashMetadata, id)
	}
	return nil
}

// Normalize repairs a freshly loaded forest: it renumbers every sibling
// list. It does not touch ids or trash metadata.
func Normalize(f Forest) Forest {
	var fix func(node *models.Folder) (*models.Folder, bool)
	fix = func(node *models.Folder) (*models.Folder, bool) {
		var cp *models.Folder
		ensure := func() {
			if cp == nil {
				cp = node.Copy()
			}
		}
		for i, sub := range node.Subfolders {
			nsub, changed := fix(sub)
			if changed || sub.Order != i {
				ensure()
				cp.Subfolders[i] = nsub
			}
		}
		for i, d := range node.Documents {
			if d.Order != i {
				ensure()
			}
		}
		for i, m := range node.Media {
			if m.Order != i {
				ensure()
			}
		}
		if cp == nil {
			return node, false
		}
		renumberFolders(cp.Subfolders)
		renumberDocuments(cp.Documents)
		renumberMedia(cp.Media)
		return cp, true
	}

	out := f
	for _, h := range Hierarchies {
		if root := f.Root(h); root != nil {
			if nroot, changed := fix(root); changed {
				out = out.withRoot(h, nroot)
			}
		}
	}
	return out
}
