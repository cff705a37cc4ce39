package tree

import (
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/textstat"
)

// CompileEntry is one document in the compile walk.
type CompileEntry struct {
	ID          string
	Title       string
	Content     string
	Depth       int
	ParentTitle string
	Order       int
}

// CompileWalk flattens the draft hierarchy in pre-order, keeping only the
// documents marked for compile. Within a folder its documents come before
// its subfolders. Documents directly in the draft root have depth 0.
func CompileWalk(draft *models.Folder) []CompileEntry {
	var entries []CompileEntry
	var walk func(folder *models.Folder, depth int)
	walk = func(folder *models.Folder, depth int) {
		for _, d := range folder.Documents {
			if !d.IncludeInCompile {
				continue
			}
			entries = append(entries, CompileEntry{
				ID:          d.ID,
				Title:       d.Title,
				Content:     d.Content,
				Depth:       depth,
				ParentTitle: folder.Title,
				Order:       d.Order,
			})
		}
		for _, sub := range folder.Subfolders {
			walk(sub, depth+1)
		}
	}
	if draft != nil {
		walk(draft, 0)
	}
	return entries
}

// DraftWordCount sums the words of every document in the draft hierarchy.
func DraftWordCount(f Forest) int {
	total := 0
	for _, d := range Documents(f.Draft) {
		total += textstat.Words(d.Content)
	}
	return total
}

// Keywords lists the distinct keywords used by draft and research
// documents, compared case-insensitively. The first spelling seen wins.
func Keywords(f Forest) []string {
	seen := make(map[string]bool)
	var out []string
	for _, h := range []Hierarchy{Draft, Research} {
		for _, d := range Documents(f.Root(h)) {
			for _, kw := range d.Keywords {
				key := textstat.FoldKeyword(kw)
				if key == "" || seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, kw)
			}
		}
	}
	slices.SortFunc(out, func(a, b string) int {
		ka, kb := textstat.FoldKeyword(a), textstat.FoldKeyword(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	return out
}

// DocumentsWithKeyword returns the draft and research documents carrying
// keyword, compared case-insensitively.
func DocumentsWithKeyword(f Forest, keyword string) []*models.Document {
	key := textstat.FoldKeyword(keyword)
	if key == "" {
		return nil
	}
	var out []*models.Document
	for _, h := range []Hierarchy{Draft, Research} {
		for _, d := range Documents(f.Root(h)) {
			for _, kw := range d.Keywords {
				if textstat.FoldKeyword(kw) == key {
					out = append(out, d)
					break
				}
			}
		}
	}
	return out
}
