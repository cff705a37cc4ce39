package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (tree.Forest, string) {
	t.Helper()
	p := models.NewProject("Novel", "", base)
	f := tree.FromProject(p)
	f, id := tree.AddDocument(f, f.Draft.ID, models.Document{
		Title:    "Opening",
		Content:  "It was a dark night.",
		Notes:    "rewrite",
		Synopsis: "Storm arrives",
		Keywords: []string{"storm"},
	})
	require.NotEmpty(t, id)
	return f, id
}

func TestTakeCapturesCounts(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)

	snaps, s := Take(nil, doc, "First pass", models.SnapshotMilestone, base)
	require.Len(t, snaps, 1)
	assert.Equal(t, s, snaps[0])
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, id, s.DocumentID)
	assert.Equal(t, "First pass", s.Title)
	assert.Equal(t, models.SnapshotMilestone, s.Kind)
	assert.Equal(t, 5, s.WordCount)
	assert.Equal(t, 20, s.CharacterCount)
	assert.Equal(t, Digest(doc.Content, doc.Notes, doc.Synopsis), s.Digest)

	_, s = Take(snaps, doc, "", models.SnapshotKind("bogus"), base)
	assert.Equal(t, models.SnapshotManual, s.Kind)
}

func TestTakeDoesNotAliasInput(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)

	first, _ := Take(make([]models.DocumentSnapshot, 0, 4), doc, "", models.SnapshotManual, base)
	a, _ := Take(first, doc, "a", models.SnapshotManual, base)
	b, _ := Take(first, doc, "b", models.SnapshotManual, base)
	assert.Equal(t, "a", a[1].Title)
	assert.Equal(t, "b", b[1].Title)
	assert.Len(t, first, 1)
}

func TestListNewestFirst(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)
	other := &models.Document{ID: "other", Content: "x"}

	var snaps []models.DocumentSnapshot
	snaps, s1 := Take(snaps, doc, "one", models.SnapshotManual, base)
	snaps, s3 := Take(snaps, doc, "three", models.SnapshotManual, base.Add(2*time.Hour))
	snaps, _ = Take(snaps, other, "", models.SnapshotManual, base.Add(3*time.Hour))
	snaps, s2 := Take(snaps, doc, "two", models.SnapshotAuto, base.Add(time.Hour))

	list := List(snaps, id)
	require.Len(t, list, 3)
	assert.Equal(t, []string{s3.ID, s2.ID, s1.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	latest, ok := Latest(snaps, id)
	require.True(t, ok)
	assert.Equal(t, s3.ID, latest.ID)

	_, ok = Latest(snaps, "missing")
	assert.False(t, ok)
	assert.Empty(t, List(snaps, "missing"))
}

func TestRestoreOnlyTextFields(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)
	snaps, s := Take(nil, doc, "", models.SnapshotManual, base)

	edited := tree.UpdateDocument(f, id, func(d *models.Document) {
		d.Content = "Rewritten."
		d.Notes = ""
		d.Synopsis = "Calm"
		d.Title = "Renamed"
		d.Keywords = []string{"calm"}
	})

	restored := Restore(edited, s)
	got, _, ok := restored.Document(id)
	require.True(t, ok)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Notes, got.Notes)
	assert.Equal(t, doc.Synopsis, got.Synopsis)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, []string{"calm"}, got.Keywords)

	_, ok = Find(snaps, s.ID)
	assert.True(t, ok, "restoring does not consume the snapshot")

	assert.True(t, Restore(restored, s).Same(restored), "restoring identical text is a no-op")
}

func TestRestoreMissingDocumentIsNoop(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)
	_, s := Take(nil, doc, "", models.SnapshotManual, base)

	gone := tree.DeleteDocument(f, id)
	assert.True(t, Restore(gone, s).Same(gone))
}

func TestDiffers(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)

	assert.True(t, Differs(nil, doc))
	snaps, _ := Take(nil, doc, "", models.SnapshotAuto, base)
	assert.False(t, Differs(snaps, doc))

	changed := doc.Clone()
	changed.Content += " Again."
	assert.True(t, Differs(snaps, changed))
}

func TestRemove(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)
	snaps, s1 := Take(nil, doc, "", models.SnapshotManual, base)
	snaps, s2 := Take(snaps, doc, "", models.SnapshotManual, base)

	next := Remove(snaps, s1.ID)
	require.Len(t, next, 1)
	assert.Equal(t, s2.ID, next[0].ID)
	assert.Len(t, snaps, 2, "input is not modified")

	assert.Equal(t, next, Remove(next, "missing"))
}

func TestRemoveForDocuments(t *testing.T) {
	f, id := setup(t)
	doc, _, _ := f.Document(id)
	other := &models.Document{ID: "other"}

	var snaps []models.DocumentSnapshot
	snaps, _ = Take(snaps, doc, "", models.SnapshotManual, base)
	snaps, keep := Take(snaps, other, "", models.SnapshotManual, base)
	snaps, _ = Take(snaps, doc, "", models.SnapshotAuto, base)

	next, n := RemoveForDocuments(snaps, id)
	assert.Equal(t, 2, n)
	require.Len(t, next, 1)
	assert.Equal(t, keep.ID, next[0].ID)

	same, n := RemoveForDocuments(next, "missing")
	assert.Zero(t, n)
	assert.Equal(t, next, same)
}
