package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

func sampleProject(t *testing.T) *models.Project {
	t.Helper()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	p := models.NewProject("Novel", "Ann", now)
	f := tree.FromProject(p)
	f, part := tree.AddFolder(f, f.Draft.ID, "Part 1")
	f, doc := tree.AddDocument(f, part, models.Document{Title: "Opening", Content: "It begins.", Keywords: []string{"storm"}})
	f = tree.TrashDocument(f, doc)
	f.ApplyTo(p)

	words, session := 120, 25*time.Minute
	p.History = []models.WritingHistoryEntry{{Date: models.DayOf(now), WordsWritten: 120, DraftWordCount: &words, SessionDuration: &session}}
	p.Characters = []models.Character{{ID: "c1", Name: "Ada"}}
	p.State.ExpandedFolderIDs = []string{part}
	return p
}

func TestStoresRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindYAML, KindBolt} {
		t.Run(string(kind), func(t *testing.T) {
			s, err := Open(kind, t.TempDir(), "novel")
			require.NoError(t, err)
			defer s.Close()

			_, err = s.Load()
			assert.True(t, errors.Is(err, ErrNoProject))

			p := sampleProject(t)
			require.NoError(t, s.Save(p))

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, p.Title, got.Title)
			assert.Equal(t, p.Author, got.Author)
			assert.Equal(t, p.State.ExpandedFolderIDs, got.State.ExpandedFolderIDs)
			require.Len(t, got.History, 1)
			assert.Equal(t, 25*time.Minute, *got.History[0].SessionDuration)
			assert.True(t, got.History[0].Date.Equal(p.History[0].Date))

			require.NoError(t, tree.Validate(tree.FromProject(got)))
			assert.Len(t, got.Draft.Subfolders, 1)
			require.Len(t, got.Trash.Documents, 1)
			d := got.Trash.Documents[0]
			assert.Equal(t, "It begins.", d.Content)
			require.NotNil(t, d.Trash)
			assert.Equal(t, got.Draft.Subfolders[0].ID, d.Trash.OriginalParentFolderID)
		})
	}
}

func TestOpenRejectsBadInput(t *testing.T) {
	_, err := Open(KindYAML, t.TempDir(), "")
	assert.Error(t, err)
	_, err = Open(Kind("csv"), t.TempDir(), "novel")
	assert.Error(t, err)
}

func TestFileStoreLoadMissingRoots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Bare\n"), 0o644))

	p, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Bare", p.Title)
	require.NoError(t, tree.Validate(tree.FromProject(p)))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed\n"), 0o644))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoProject))
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "novel.yaml"))
	require.NoError(t, s.Save(sampleProject(t)))
	require.NoError(t, s.Save(sampleProject(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "novel.yaml", entries[0].Name())
}

func TestBoltStoreNames(t *testing.T) {
	dir := t.TempDir()
	a, err := NewBoltStore(filepath.Join(dir, "m.db"), "a")
	require.NoError(t, err)
	require.NoError(t, a.Save(sampleProject(t)))
	require.NoError(t, a.Close())

	b, err := NewBoltStore(filepath.Join(dir, "m.db"), "b")
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.Save(sampleProject(t)))

	names, err := b.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

type memStore struct {
	mu    sync.Mutex
	saved []*models.Project
	err   error
}

func (m *memStore) Load() (*models.Project, error) { return nil, ErrNoProject }
func (m *memStore) Close() error                   { return nil }
func (m *memStore) Save(p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, p)
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func TestAutosaverCoalesces(t *testing.T) {
	m := &memStore{}
	a := NewAutosaver(m, 20*time.Millisecond, nil)
	p := models.NewProject("Novel", "", time.Now())

	for i := 0; i < 5; i++ {
		p.Title = "Draft " + string(rune('A'+i))
		a.Schedule(p)
	}
	assert.True(t, a.Pending())

	require.Eventually(t, func() bool { return m.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, a.Pending())
	assert.Equal(t, "Draft E", m.saved[0].Title)
	assert.Equal(t, 1, a.Saves())
}

func TestAutosaverScheduleCopiesHeader(t *testing.T) {
	m := &memStore{}
	a := NewAutosaver(m, time.Hour, nil)
	p := models.NewProject("Before", "", time.Now())
	a.Schedule(p)
	p.Title = "After"

	require.NoError(t, a.Stop())
	require.Equal(t, 1, m.count())
	assert.Equal(t, "Before", m.saved[0].Title)

	require.NoError(t, a.Flush(), "flushing with nothing pending is fine")
	assert.Equal(t, 1, m.count())
}

func TestAutosaverRecordsError(t *testing.T) {
	m := &memStore{err: errors.New("disk full")}
	a := NewAutosaver(m, time.Hour, nil)
	a.Schedule(models.NewProject("Novel", "", time.Now()))

	assert.EqualError(t, a.Flush(), "disk full")
	assert.EqualError(t, a.Err(), "disk full")
	assert.False(t, a.Pending())
}
