package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/manuscript/pkg/models"
)

func TestMoveDocumentToFolder(t *testing.T) {
	f, ids := fixture(t)

	next := MoveDocument(f, ids["A"], ids["part2"])
	require.False(t, next.Same(f))

	ch1 := FindFolder(next.Draft, ids["ch1"])
	assert.Equal(t, []string{"B", "C"}, titles(ch1.Documents))
	assert.Equal(t, 0, ch1.Documents[0].Order)
	assert.Equal(t, 1, ch1.Documents[1].Order)

	part2 := FindFolder(next.Draft, ids["part2"])
	assert.Equal(t, []string{"D", "A"}, titles(part2.Documents))
	assert.Equal(t, 1, part2.Documents[1].Order)
	require.NoError(t, Validate(next))
}

func TestMoveDocumentSameFolderIsNoop(t *testing.T) {
	f, ids := fixture(t)
	assert.True(t, MoveDocument(f, ids["A"], ids["ch1"]).Same(f))
}

func TestMoveDocumentStaleTargets(t *testing.T) {
	f, ids := fixture(t)

	assert.True(t, MoveDocument(f, "missing", ids["part2"]).Same(f))
	assert.True(t, MoveDocument(f, ids["A"], "missing").Same(f))
	// a document id is not a folder
	assert.True(t, MoveDocument(f, ids["A"], ids["D"]).Same(f))
	// a folder id is not a document
	assert.True(t, MoveDocument(f, ids["ch1"], ids["part2"]).Same(f))
}

func TestMoveDocumentAcrossHierarchies(t *testing.T) {
	f, ids := fixture(t)

	next := MoveDocument(f, ids["notes"], ids["ch1"])
	require.False(t, next.Same(f))
	assert.Empty(t, next.Research.Documents)

	ch1 := FindFolder(next.Draft, ids["ch1"])
	assert.Equal(t, []string{"A", "B", "C", "Notes"}, titles(ch1.Documents))
	assert.Equal(t, 3, ch1.Documents[3].Order)
	assert.Same(t, f.Trash, next.Trash)
	require.NoError(t, Validate(next))
}

func TestMoveFolderToParent(t *testing.T) {
	f, ids := fixture(t)

	next := MoveFolder(f, ids["ch1"], ids["part2"])
	require.False(t, next.Same(f))
	assert.Empty(t, FindFolder(next.Draft, ids["part1"]).Subfolders)

	part2 := FindFolder(next.Draft, ids["part2"])
	require.Len(t, part2.Subfolders, 1)
	assert.Equal(t, ids["ch1"], part2.Subfolders[0].ID)
	assert.Equal(t, []string{"A", "B", "C"}, titles(part2.Subfolders[0].Documents))
	require.NoError(t, Validate(next))
}

func TestMoveFolderRejectsSelf(t *testing.T) {
	f, ids := fixture(t)

	// Part 1 (order 0) and Part 2 (order 1) under the draft root
	next := MoveFolder(f, ids["part2"], ids["part2"])
	assert.True(t, next.Same(f))
	assert.Equal(t, 0, FindFolder(next.Draft, ids["part1"]).Order)
	assert.Equal(t, 1, FindFolder(next.Draft, ids["part2"]).Order)
}

func TestMoveFolderRejectsCycles(t *testing.T) {
	f, ids := fixture(t)

	assert.True(t, MoveFolder(f, ids["part1"], ids["ch1"]).Same(f), "into child")

	f, deep := AddFolder(f, ids["ch1"], "Scene")
	assert.True(t, MoveFolder(f, ids["part1"], deep).Same(f), "into grandchild")
}

func TestMoveFolderRejectsRootsAndStaleIDs(t *testing.T) {
	f, ids := fixture(t)

	assert.True(t, MoveFolder(f, f.Draft.ID, ids["part1"]).Same(f))
	assert.True(t, MoveFolder(f, f.Research.ID, f.Draft.ID).Same(f))
	assert.True(t, MoveFolder(f, "missing", ids["part1"]).Same(f))
	assert.True(t, MoveFolder(f, ids["ch1"], "missing").Same(f))
	assert.True(t, MoveFolder(f, ids["ch1"], ids["part1"]).Same(f), "already there")
}

func TestMoveFolderNeverCreatesCycles(t *testing.T) {
	f, ids := fixture(t)
	f, scene := AddFolder(f, ids["ch1"], "Scene")

	folders := []string{f.Draft.ID, f.Research.ID, ids["part1"], ids["part2"], ids["ch1"], scene}
	for _, src := range folders {
		for _, dst := range folders {
			next := MoveFolder(f, src, dst)
			require.NoError(t, Validate(next), "%s -> %s", src, dst)
			for _, id := range folders {
				folder, _, ok := next.Folder(id)
				require.True(t, ok)
				Walk(folder, func(node *models.Folder, depth int) {
					if depth > 0 && node.ID == id {
						t.Fatalf("folder %s is its own descendant after %s -> %s", id, src, dst)
					}
				})
			}
		}
	}
}

func TestMoveFolderAcrossHierarchies(t *testing.T) {
	f, ids := fixture(t)

	next := MoveFolder(f, ids["part2"], f.Research.ID)
	require.False(t, next.Same(f))
	require.Len(t, next.Research.Subfolders, 1)
	assert.Equal(t, []string{"D"}, titles(next.Research.Subfolders[0].Documents))
	require.Len(t, next.Draft.Subfolders, 1)
	require.NoError(t, Validate(next))
}

func TestReorderDocumentsToEnd(t *testing.T) {
	f, ids := fixture(t)

	// A(0) B(1) C(2): move A from index 0 to index 3
	next := ReorderDocuments(f, ids["ch1"], []int{0}, 3)
	ch1 := FindFolder(next.Draft, ids["ch1"])
	assert.Equal(t, []string{"B", "C", "A"}, titles(ch1.Documents))
	for i, d := range ch1.Documents {
		assert.Equal(t, i, d.Order)
	}
}

func TestReorderDocumentsTable(t *testing.T) {
	tests := []struct {
		name string
		from []int
		to   int
		want []string
	}{
		{"to front", []int{2}, 0, []string{"C", "A", "B"}},
		{"middle", []int{0}, 2, []string{"B", "A", "C"}},
		{"several", []int{0, 2}, 1, []string{"A", "C", "B"}},
		{"in place", []int{1}, 1, []string{"A", "B", "C"}},
		{"destination past end clamps", []int{0}, 99, []string{"B", "C", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ids := fixture(t)
			next := ReorderDocuments(f, ids["ch1"], tt.from, tt.to)
			ch1 := FindFolder(next.Draft, ids["ch1"])
			assert.Equal(t, tt.want, titles(ch1.Documents))
			require.NoError(t, Validate(next))
		})
	}
}

func TestReorderInvalidIsNoop(t *testing.T) {
	f, ids := fixture(t)

	assert.True(t, ReorderDocuments(f, ids["ch1"], []int{7}, 0).Same(f))
	assert.True(t, ReorderDocuments(f, ids["ch1"], nil, 0).Same(f))
	assert.True(t, ReorderDocuments(f, "missing", []int{0}, 1).Same(f))
}

func TestReorderFolders(t *testing.T) {
	f, ids := fixture(t)

	next := ReorderFolders(f, f.Draft.ID, []int{1}, 0)
	require.Len(t, next.Draft.Subfolders, 2)
	assert.Equal(t, ids["part2"], next.Draft.Subfolders[0].ID)
	assert.Equal(t, 0, next.Draft.Subfolders[0].Order)
	assert.Equal(t, ids["part1"], next.Draft.Subfolders[1].ID)
	assert.Equal(t, 1, next.Draft.Subfolders[1].Order)
	require.NoError(t, Validate(next))
}

func TestReorderMedia(t *testing.T) {
	f, _ := fixture(t)
	f, a := AddMediaItem(f, f.Research.ID, models.MediaItem{Title: "a"})
	f, b := AddMediaItem(f, f.Research.ID, models.MediaItem{Title: "b"})

	next := ReorderMedia(f, f.Research.ID, []int{1}, 0)
	assert.Equal(t, b, next.Research.Media[0].ID)
	assert.Equal(t, a, next.Research.Media[1].ID)
	require.NoError(t, Validate(next))
}
