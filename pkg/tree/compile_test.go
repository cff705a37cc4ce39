package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/manuscript/pkg/models"
)

func TestCompileWalk(t *testing.T) {
	f, ids := fixture(t)
	f = UpdateDocument(f, ids["B"], func(d *models.Document) { d.IncludeInCompile = false })
	f, _ = AddDocument(f, f.Draft.ID, models.Document{Title: "Prologue", IncludeInCompile: true})

	entries := CompileWalk(f.Draft)
	var got []string
	for _, e := range entries {
		got = append(got, e.Title)
	}
	assert.Equal(t, []string{"Prologue", "A", "C", "D"}, got)

	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, "Draft", entries[0].ParentTitle)
	assert.Equal(t, 2, entries[1].Depth)
	assert.Equal(t, "Chapter 1", entries[1].ParentTitle)
	assert.Equal(t, 2, entries[2].Order)
	assert.Equal(t, 1, entries[3].Depth)
	assert.Equal(t, "four five", entries[3].Content)

	assert.Empty(t, CompileWalk(nil))
}

func TestDraftWordCount(t *testing.T) {
	f, _ := fixture(t)
	// three documents of three words and one of two; research is excluded
	assert.Equal(t, 11, DraftWordCount(f))
}

func TestKeywords(t *testing.T) {
	f, ids := fixture(t)
	f = UpdateDocument(f, ids["A"], func(d *models.Document) { d.Keywords = []string{"Villain", "night"} })
	f = UpdateDocument(f, ids["D"], func(d *models.Document) { d.Keywords = []string{"villain"} })
	f = UpdateDocument(f, ids["notes"], func(d *models.Document) { d.Keywords = []string{"Archive"} })

	assert.Equal(t, []string{"Archive", "night", "Villain"}, Keywords(f))

	docs := DocumentsWithKeyword(f, "VILLAIN")
	require.Len(t, docs, 2)
	assert.Equal(t, "A", docs[0].Title)
	assert.Equal(t, "D", docs[1].Title)
	assert.Empty(t, DocumentsWithKeyword(f, "  "))
}

func TestValidateDetectsViolations(t *testing.T) {
	f, ids := fixture(t)

	gap := UpdateFolder(f, ids["ch1"], func(*models.Folder) {})
	ch1 := FindFolder(gap.Draft, ids["ch1"])
	ch1.Documents[1] = ch1.Documents[1].Clone()
	ch1.Documents[1].Order = 5
	assert.True(t, errors.Is(Validate(gap), ErrOrderNotDense))

	dup := UpdateFolder(f, ids["part2"], func(*models.Folder) {})
	part2 := FindFolder(dup.Draft, ids["part2"])
	clone := part2.Documents[0].Clone()
	clone.ID = ids["A"]
	part2.Documents[0] = clone
	assert.True(t, errors.Is(Validate(dup), ErrDuplicateID))

	stray := UpdateDocument(f, ids["C"], func(*models.Document) {})
	FindDocument(stray.Draft, ids["C"]).Trash = &models.TrashMetadata{}
	assert.True(t, errors.Is(Validate(stray), ErrTrashMetadata))

	missing := f
	missing.Research = nil
	assert.True(t, errors.Is(Validate(missing), ErrMissingRoot))
}

func TestNormalizeRenumbers(t *testing.T) {
	f, ids := fixture(t)

	broken := UpdateFolder(f, ids["ch1"], func(*models.Folder) {})
	ch1 := FindFolder(broken.Draft, ids["ch1"])
	for i := range ch1.Documents {
		d := ch1.Documents[i].Clone()
		d.Order = 10 + i
		ch1.Documents[i] = d
	}
	require.Error(t, Validate(broken))

	fixed := Normalize(broken)
	require.NoError(t, Validate(fixed))
	assert.Equal(t, []string{"A", "B", "C"}, titles(FindFolder(fixed.Draft, ids["ch1"]).Documents))

	assert.True(t, Normalize(fixed).Same(fixed))
}
