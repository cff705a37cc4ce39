package search

import (
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	_ "github.com/mattn/go-sqlite3"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/textstat"
	"github.com/grovetools/manuscript/pkg/tree"
)

// Entry is one indexed document.
type Entry struct {
	ID         string
	Hierarchy  string
	Title      string
	Synopsis   string
	Notes      string
	Content    string
	WordCount  int
	ModifiedAt time.Time
}

// EntryFor builds the index entry of a document living in hierarchy h.
func EntryFor(d *models.Document, h tree.Hierarchy) Entry {
	return Entry{
		ID:         d.ID,
		Hierarchy:  h.String(),
		Title:      d.Title,
		Synopsis:   d.Synopsis,
		Notes:      d.Notes,
		Content:    d.Content,
		WordCount:  textstat.Words(d.Content),
		ModifiedAt: d.ModifiedAt,
	}
}

// Entries lists every document of the forest as index entries.
func Entries(f tree.Forest) []Entry {
	var out []Entry
	for _, h := range tree.Hierarchies {
		for _, d := range tree.Documents(f.Root(h)) {
			out = append(out, EntryFor(d, h))
		}
	}
	return out
}

// Result is a search hit.
type Result struct {
	ID        string
	Hierarchy string
	Title     string
	Snippet   string
	WordCount int
}

// Index manages the search index
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex creates a new search index
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// FTS reports whether the index uses FTS5.
func (idx *Index) FTS() bool {
	return idx.useFTS
}

// init creates the database schema
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS documents_meta (
		id TEXT PRIMARY KEY,
		hierarchy TEXT,
		title TEXT,
		synopsis TEXT,
		notes TEXT,
		content TEXT,
		word_count INTEGER,
		modified_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_meta_hierarchy ON documents_meta(hierarchy);
	CREATE INDEX IF NOT EXISTS idx_documents_meta_title ON documents_meta(title);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			id UNINDEXED,
			title,
			synopsis,
			notes,
			content,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (idx *Index) remove(tx execer, id string) error {
	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM documents_fts WHERE id = ?", id); err != nil {
			return err
		}
	}
	_, err := tx.Exec("DELETE FROM documents_meta WHERE id = ?", id)
	return err
}

func (idx *Index) insert(tx execer, e Entry) error {
	if idx.useFTS {
		_, err := tx.Exec(`
			INSERT INTO documents_fts (id, title, synopsis, notes, content)
			VALUES (?, ?, ?, ?, ?)
		`, e.ID, e.Title, e.Synopsis, e.Notes, e.Content)
		if err != nil {
			return err
		}
	}
	_, err := tx.Exec(`
		INSERT INTO documents_meta (id, hierarchy, title, synopsis, notes, content, word_count, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Hierarchy, e.Title, e.Synopsis, e.Notes, e.Content, e.WordCount, e.ModifiedAt)
	return err
}

// IndexDocument indexes or reindexes one document
func (idx *Index) IndexDocument(e Entry) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := idx.remove(tx, e.ID); err != nil {
		return err
	}
	if err := idx.insert(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

// Sync replaces the whole index with entries.
func (idx *Index) Sync(entries []Entry) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM documents_fts"); err != nil {
			return fmt.Errorf("clear index: %w", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM documents_meta"); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	for _, e := range entries {
		if err := idx.insert(tx, e); err != nil {
			return fmt.Errorf("index %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// RemoveDocument removes a document from the index
func (idx *Index) RemoveDocument(id string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := idx.remove(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Count returns the number of indexed documents.
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow("SELECT COUNT(*) FROM documents_meta").Scan(&n)
	return n, err
}

// Options for searching
type Options struct {
	Hierarchy    string
	IncludeTrash bool
	Limit        int
}

// Search performs a full-text search
func (idx *Index) Search(query string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, nil
	}

	var conditions []string
	var args []any
	if opts.Hierarchy != "" {
		conditions = append(conditions, "m.hierarchy = ?")
		args = append(args, opts.Hierarchy)
	} else if !opts.IncludeTrash {
		conditions = append(conditions, "m.hierarchy <> ?")
		args = append(args, tree.Trash.String())
	}

	if idx.useFTS {
		return idx.searchWithFTS(terms, conditions, args, opts.Limit)
	}
	return idx.searchWithoutFTS(terms, conditions, args, opts.Limit)
}

// ftsQuery quotes each term so user input never reaches the FTS5 query
// syntax.
func ftsQuery(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

func (idx *Index) searchWithFTS(terms []string, conditions []string, args []any, limit int) ([]Result, error) {
	conditions = append(conditions, "documents_fts MATCH ?")
	args = append(args, ftsQuery(terms), limit)

	searchQuery := fmt.Sprintf(`
		SELECT
			m.id, m.hierarchy, m.title, m.word_count,
			snippet(documents_fts, 4, '<match>', '</match>', '...', 16) as snippet
		FROM documents_fts f
		JOIN documents_meta m ON f.id = m.id
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.Hierarchy, &r.Title, &r.WordCount, &r.Snippet); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// searchWithoutFTS performs search using LIKE queries on metadata table
func (idx *Index) searchWithoutFTS(terms []string, conditions []string, args []any, limit int) ([]Result, error) {
	searchPattern := "%" + strings.Join(terms, "%") + "%"
	conditions = append(conditions, "(m.title LIKE ? OR m.synopsis LIKE ? OR m.notes LIKE ? OR m.content LIKE ?)")
	args = append(args, searchPattern, searchPattern, searchPattern, searchPattern, limit)

	searchQuery := fmt.Sprintf(`
		SELECT m.id, m.hierarchy, m.title, m.word_count, m.content
		FROM documents_meta m
		WHERE %s
		ORDER BY m.modified_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var content string
		if err := rows.Scan(&r.ID, &r.Hierarchy, &r.Title, &r.WordCount, &content); err != nil {
			return nil, err
		}
		r.Snippet = excerpt(content, terms[0])
		results = append(results, r)
	}
	return results, rows.Err()
}

// excerpt returns a short window of content around the first occurrence
// of term.
func excerpt(content, term string) string {
	const width = 40
	runes := []rune(content)
	start := foldIndex(runes, []rune(term))
	if start < 0 {
		if len(runes) > width {
			return string(runes[:width]) + "..."
		}
		return content
	}
	lo, hi := max(0, start-width/2), min(len(runes), start+width)
	s := string(runes[lo:hi])
	if lo > 0 {
		s = "..." + s
	}
	if hi < len(runes) {
		s += "..."
	}
	return s
}

// foldIndex is the rune offset of the first case-insensitive match of
// needle in haystack, or -1. Runes are lowered one by one so offsets stay
// aligned with haystack.
func foldIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
	lower := func(rs []rune) []rune {
		out := make([]rune, len(rs))
		for i, r := range rs {
			out[i] = unicode.ToLower(r)
		}
		return out
	}
	h, n := lower(haystack), lower(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		if slices.Equal(h[i:i+len(n)], n) {
			return i
		}
	}
	return -1
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
