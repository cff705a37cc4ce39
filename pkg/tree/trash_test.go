package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrashDocumentRecordsOrigin(t *testing.T) {
	f, ids := fixture(t)

	next := TrashDocument(f, ids["B"])
	require.False(t, next.Same(f))

	d, h, ok := next.Document(ids["B"])
	require.True(t, ok)
	assert.Equal(t, Trash, h)
	require.NotNil(t, d.Trash)
	assert.Equal(t, ids["ch1"], d.Trash.OriginalParentFolderID)
	assert.Equal(t, 1, d.Trash.OriginalOrder)
	assert.Equal(t, fixedNow, d.Trash.TrashedDate)
	assert.Equal(t, []string{"A", "C"}, titles(FindFolder(next.Draft, ids["ch1"]).Documents))
	require.NoError(t, Validate(next))

	// trashing again is a no-op
	assert.True(t, TrashDocument(next, ids["B"]).Same(next))
}

func TestRestoreDocumentReturnsToOriginalPosition(t *testing.T) {
	f, ids := fixture(t)

	trashed := TrashDocument(f, ids["B"])
	restored := Restore(trashed, ids["B"])
	require.False(t, restored.Same(trashed))

	ch1 := FindFolder(restored.Draft, ids["ch1"])
	assert.Equal(t, []string{"A", "B", "C"}, titles(ch1.Documents))
	assert.Nil(t, ch1.Documents[1].Trash)
	assert.Empty(t, restored.Trash.Documents)
	require.NoError(t, Validate(restored))
}

func TestRestoreFallsBackToDraftRoot(t *testing.T) {
	f, ids := fixture(t)

	f = TrashDocument(f, ids["D"])
	f = DeleteFolder(f, ids["part2"])
	f = Restore(f, ids["D"])

	d, h, ok := f.Document(ids["D"])
	require.True(t, ok)
	assert.Equal(t, Draft, h)
	assert.Nil(t, d.Trash)
	assert.Equal(t, ids["D"], f.Draft.Documents[0].ID)
	require.NoError(t, Validate(f))
}

func TestRestoreClampsOrder(t *testing.T) {
	f, ids := fixture(t)

	f = TrashDocument(f, ids["C"]) // original order 2
	f = DeleteDocument(f, ids["A"])
	f = DeleteDocument(f, ids["B"])
	f = Restore(f, ids["C"])

	ch1 := FindFolder(f.Draft, ids["ch1"])
	assert.Equal(t, []string{"C"}, titles(ch1.Documents))
	assert.Equal(t, 0, ch1.Documents[0].Order)
}

func TestRestoreOutsideTrashIsNoop(t *testing.T) {
	f, ids := fixture(t)

	assert.True(t, Restore(f, ids["A"]).Same(f))
	assert.True(t, Restore(f, "missing").Same(f))
	assert.True(t, Restore(f, f.Trash.ID).Same(f))
}

func TestTrashFolderStampsSubtree(t *testing.T) {
	f, ids := fixture(t)

	next := TrashFolder(f, ids["part1"])
	require.False(t, next.Same(f))
	require.NoError(t, Validate(next))

	part1, h, ok := next.Folder(ids["part1"])
	require.True(t, ok)
	assert.Equal(t, Trash, h)
	assert.Equal(t, f.Draft.ID, part1.Trash.OriginalParentFolderID)
	assert.Equal(t, 0, part1.Trash.OriginalOrder)

	ch1 := FindFolder(next.Trash, ids["ch1"])
	require.NotNil(t, ch1.Trash)
	assert.Equal(t, ids["part1"], ch1.Trash.OriginalParentFolderID)
	for _, d := range ch1.Documents {
		require.NotNil(t, d.Trash)
		assert.Equal(t, ids["ch1"], d.Trash.OriginalParentFolderID)
	}

	// the remaining draft folder is renumbered
	require.Len(t, next.Draft.Subfolders, 1)
	assert.Equal(t, 0, next.Draft.Subfolders[0].Order)
}

func TestTrashFolderRefusesRoots(t *testing.T) {
	f, _ := fixture(t)

	assert.True(t, TrashFolder(f, f.Draft.ID).Same(f))
	assert.True(t, TrashFolder(f, f.Trash.ID).Same(f))
}

func TestRestoreFolderClearsSubtree(t *testing.T) {
	f, ids := fixture(t)

	f = TrashFolder(f, ids["part1"])
	f = Restore(f, ids["part1"])
	require.NoError(t, Validate(f))

	require.Len(t, f.Draft.Subfolders, 2)
	assert.Equal(t, ids["part1"], f.Draft.Subfolders[0].ID)
	assert.Nil(t, FindDocument(f.Draft, ids["A"]).Trash)
}

func TestRestoreChildOfTrashedFolder(t *testing.T) {
	f, ids := fixture(t)

	f = TrashFolder(f, ids["part1"])
	// the document's recorded parent is still in the trash
	f = Restore(f, ids["A"])
	require.NoError(t, Validate(f))

	d, h, ok := f.Document(ids["A"])
	require.True(t, ok)
	assert.Equal(t, Draft, h)
	assert.Nil(t, d.Trash)
}

func TestMoveIntoAndOutOfTrash(t *testing.T) {
	f, ids := fixture(t)

	f, bin := AddFolder(f, f.Trash.ID, "Cuts")
	f = MoveDocument(f, ids["A"], bin)
	require.NoError(t, Validate(f))
	assert.Equal(t, ids["ch1"], FindDocument(f.Trash, ids["A"]).Trash.OriginalParentFolderID)

	f = MoveDocument(f, ids["A"], ids["part2"])
	require.NoError(t, Validate(f))
	assert.Nil(t, FindDocument(f.Draft, ids["A"]).Trash)
}

func TestEmptyTrash(t *testing.T) {
	f, ids := fixture(t)

	same, removed := EmptyTrash(f)
	assert.True(t, same.Same(f))
	assert.Empty(t, removed.DocumentIDs)

	f = TrashFolder(f, ids["part1"])
	f = TrashDocument(f, ids["D"])
	next, removed := EmptyTrash(f)

	assert.Equal(t, 0, next.Trash.ChildCount())
	assert.Equal(t, f.Trash.ID, next.Trash.ID)
	assert.ElementsMatch(t, []string{ids["A"], ids["B"], ids["C"], ids["D"]}, removed.DocumentIDs)
	assert.ElementsMatch(t, []string{ids["part1"], ids["ch1"]}, removed.FolderIDs)
	assert.Same(t, f.Draft, next.Draft)
	require.NoError(t, Validate(next))
}
