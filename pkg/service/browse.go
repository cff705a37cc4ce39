package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/manuscript/pkg/frontmatter"
	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/search"
	"github.com/grovetools/manuscript/pkg/selection"
	"github.com/grovetools/manuscript/pkg/textstat"
	"github.com/grovetools/manuscript/pkg/tree"
)

// Selection returns the current sidebar selection.
func (s *Service) Selection() selection.Selection {
	return s.sel.Current()
}

// Select replaces the selection. A selection whose target does not
// resolve is refused. Selecting a tree node expands its ancestors.
func (s *Service) Select(sel selection.Selection) bool {
	if !sel.Valid(selection.ForProject(s.project)) {
		s.noop("select", sel.ID)
		return false
	}
	s.sel.Select(sel)
	switch sel.Kind {
	case selection.KindFolder, selection.KindDocument, selection.KindMediaItem:
		s.sel.ExpandTo(s.Forest(), sel.ID)
	}
	return true
}

// Expanded lists the expanded folder ids.
func (s *Service) Expanded() []string {
	return s.sel.ExpandedIDs()
}

// IsExpanded reports whether a folder is disclosed in the sidebar.
func (s *Service) IsExpanded(id string) bool {
	return s.sel.IsExpanded(id)
}

// SetExpanded records a folder's disclosure state in both the tracker and
// the folder itself.
func (s *Service) SetExpanded(id string, expanded bool) bool {
	if _, _, ok := s.Forest().Folder(id); !ok {
		s.noop("setExpanded", id)
		return false
	}
	if expanded {
		s.sel.Expand(id)
	} else {
		s.sel.Collapse(id)
	}
	s.applyTree("setExpanded", id, func(f tree.Forest) tree.Forest {
		return tree.SetFolderExpanded(f, id, expanded)
	})
	return true
}

// PruneExpanded drops expanded ids that no longer name a folder.
func (s *Service) PruneExpanded() int {
	return s.sel.Prune(s.Forest())
}

// Keywords lists the distinct keywords of draft and research documents.
func (s *Service) Keywords() []string {
	return tree.Keywords(s.Forest())
}

// DocumentsWithKeyword lists the draft and research documents carrying kw.
func (s *Service) DocumentsWithKeyword(kw string) []*models.Document {
	return tree.DocumentsWithKeyword(s.Forest(), kw)
}

// DraftWordCount sums the words of the draft hierarchy.
func (s *Service) DraftWordCount() int {
	return tree.DraftWordCount(s.Forest())
}

// CompileEntries is the flattened draft, filtered on include-in-compile.
func (s *Service) CompileEntries() []tree.CompileEntry {
	return tree.CompileWalk(s.project.Draft)
}

// Compile renders the draft as a single Markdown manuscript. A heading is
// written each time the enclosing folder changes.
func (s *Service) Compile() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", s.project.Title)
	if s.project.Author != "" {
		fmt.Fprintf(&sb, "\n_%s_\n", s.project.Author)
	}
	parent := ""
	for _, e := range s.CompileEntries() {
		if e.Depth > 0 && e.ParentTitle != parent {
			fmt.Fprintf(&sb, "\n## %s\n", textstat.TitleCase(e.ParentTitle))
		}
		parent = e.ParentTitle
		fmt.Fprintf(&sb, "\n### %s\n\n%s\n", e.Title, strings.TrimSpace(e.Content))
	}
	return sb.String()
}

// Export writes each compile entry to a numbered Markdown file in dir.
// Files already present keep any frontmatter keys export does not own.
func (s *Service) Export(dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}
	f := s.Forest()
	entries := s.CompileEntries()
	for i, e := range entries {
		d, _, _ := f.Document(e.ID)
		fm := s.frontmatterFor(d, e)
		path := filepath.Join(dir, frontmatter.Filename(i+1, e.Title))

		data := []byte(frontmatter.BuildContent(fm, e.Content))
		existing, err := os.ReadFile(path)
		switch {
		case err == nil:
			if data, err = mergeExport(existing, fm, e.Content); err != nil {
				return i, fmt.Errorf("merge %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return i, fmt.Errorf("read %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return i, fmt.Errorf("write %s: %w", path, err)
		}
	}
	s.Logger.WithField("count", len(entries)).Info("Exported draft")
	return len(entries), nil
}

func (s *Service) frontmatterFor(d *models.Document, e tree.CompileEntry) *frontmatter.Frontmatter {
	fm := &frontmatter.Frontmatter{
		ID:         e.ID,
		Title:      e.Title,
		Parent:     e.ParentTitle,
		Depth:      e.Depth,
		Order:      e.Order,
		Keywords:   []string{},
		Characters: []string{},
		Locations:  []string{},
		Words:      textstat.Words(e.Content),
	}
	if d == nil {
		return fm
	}
	fm.Synopsis = d.Synopsis
	fm.Status = d.StatusID
	fm.Label = d.LabelID
	fm.Keywords = append(fm.Keywords, d.Keywords...)
	for _, id := range d.CharacterIDs {
		if c, ok := s.project.Character(id); ok {
			fm.Characters = append(fm.Characters, c.Name)
		}
	}
	for _, id := range d.LocationIDs {
		if l, ok := s.project.Location(id); ok {
			fm.Locations = append(fm.Locations, l.Name)
		}
	}
	fm.Created = frontmatter.FormatTimestamp(d.CreatedAt)
	fm.Modified = frontmatter.FormatTimestamp(d.ModifiedAt)
	return fm
}

// Search queries the document index. It fails when indexing is disabled.
func (s *Service) Search(query string, opts *search.Options) ([]search.Result, error) {
	if s.Index == nil {
		return nil, fmt.Errorf("search index is disabled")
	}
	return s.Index.Search(query, opts)
}
