package xref

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

type fixtureIDs struct {
	chapter, d1, d2, research string
	c1, c2, loc               string
}

func fixture(t *testing.T) (Set, fixtureIDs) {
	t.Helper()
	var ids fixtureIDs
	p := models.NewProject("Novel", "", time.Now())
	s := FromProject(p)

	s.Forest, ids.chapter = tree.AddFolder(s.Forest, s.Forest.Draft.ID, "Chapter 1")
	s.Forest, ids.d1 = tree.AddDocument(s.Forest, ids.chapter, models.Document{Title: "Scene 1"})
	s.Forest, ids.d2 = tree.AddDocument(s.Forest, ids.chapter, models.Document{Title: "Scene 2"})
	s.Forest, ids.research = tree.AddDocument(s.Forest, s.Forest.Research.ID, models.Document{Title: "Background"})

	s, ids.c1 = AddCharacter(s, models.Character{Name: "Ada"})
	s, ids.c2 = AddCharacter(s, models.Character{Name: "Brook"})
	s, ids.loc = AddLocation(s, models.Location{Name: "Harbor"})

	s = LinkCharacter(s, ids.d1, ids.c1)
	s = LinkCharacter(s, ids.d1, ids.c2)
	s = LinkCharacter(s, ids.d2, ids.c1)
	s = LinkCharacter(s, ids.research, ids.c1)
	s = LinkLocation(s, ids.d1, ids.loc)
	s = LinkLocation(s, ids.research, ids.loc)
	require.NoError(t, Check(s))
	return s, ids
}

func character(t *testing.T, s Set, id string) models.Character {
	t.Helper()
	for _, c := range s.Characters {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("character %s not found", id)
	return models.Character{}
}

func document(t *testing.T, s Set, id string) *models.Document {
	t.Helper()
	d, _, ok := s.Forest.Document(id)
	require.True(t, ok)
	return d
}

func TestLinkIsMirroredAndIdempotent(t *testing.T) {
	s, ids := fixture(t)

	assert.Equal(t, []string{ids.c1, ids.c2}, document(t, s, ids.d1).CharacterIDs)
	assert.Equal(t, []string{ids.d1, ids.d2, ids.research}, character(t, s, ids.c1).Appearances)

	again := LinkCharacter(s, ids.d1, ids.c1)
	assert.Equal(t, []string{ids.c1, ids.c2}, document(t, again, ids.d1).CharacterIDs)
	assert.Equal(t, character(t, s, ids.c1).Appearances, character(t, again, ids.c1).Appearances)
}

func TestLinkUnknownIDsIsNoop(t *testing.T) {
	s, ids := fixture(t)

	next := LinkCharacter(s, "missing", ids.c1)
	assert.True(t, next.Forest.Same(s.Forest))
	next = LinkCharacter(s, ids.d2, "missing")
	assert.True(t, next.Forest.Same(s.Forest))
	next = LinkLocation(s, ids.d2, "missing")
	assert.True(t, next.Forest.Same(s.Forest))
}

func TestDeleteCharacterScrubsDocuments(t *testing.T) {
	s, ids := fixture(t)

	next := DeleteCharacter(s, ids.c1)
	require.NoError(t, Check(next))

	assert.Equal(t, []string{ids.c2}, document(t, next, ids.d1).CharacterIDs)
	assert.Empty(t, document(t, next, ids.d2).CharacterIDs)
	assert.Empty(t, document(t, next, ids.research).CharacterIDs, "research hierarchy is scrubbed too")
	require.Len(t, next.Characters, 1)
	assert.Equal(t, ids.c2, next.Characters[0].ID)

	// the input set is unchanged
	assert.Equal(t, []string{ids.c1, ids.c2}, document(t, s, ids.d1).CharacterIDs)
	assert.Len(t, s.Characters, 2)
}

func TestDeleteCharacterInTrash(t *testing.T) {
	s, ids := fixture(t)
	s.Forest = tree.TrashDocument(s.Forest, ids.d2)

	next := DeleteCharacter(s, ids.c1)
	d, h, ok := next.Forest.Document(ids.d2)
	require.True(t, ok)
	assert.Equal(t, tree.Trash, h)
	assert.Empty(t, d.CharacterIDs)
}

func TestDeleteLocationScrubsDocuments(t *testing.T) {
	s, ids := fixture(t)

	next := DeleteLocation(s, ids.loc)
	require.NoError(t, Check(next))
	assert.Empty(t, document(t, next, ids.d1).LocationIDs)
	assert.Empty(t, document(t, next, ids.research).LocationIDs)
	assert.Empty(t, next.Locations)
	// character references are untouched
	assert.Equal(t, []string{ids.c1, ids.c2}, document(t, next, ids.d1).CharacterIDs)
}

func TestDeleteDocumentScrubsEntities(t *testing.T) {
	s, ids := fixture(t)

	next := DeleteDocument(s, ids.d1)
	require.NoError(t, Check(next))

	assert.Equal(t, []string{ids.d2, ids.research}, character(t, next, ids.c1).Appearances)
	assert.Empty(t, character(t, next, ids.c2).Appearances)
	assert.Equal(t, []string{ids.research}, next.Locations[0].Appearances)

	// deleting again is a no-op
	again := DeleteDocument(next, ids.d1)
	assert.True(t, again.Forest.Same(next.Forest))
	assert.Equal(t, next.Characters, again.Characters)
}

func TestForgetDocumentsLeavesUnrelatedEntities(t *testing.T) {
	s, ids := fixture(t)

	next := ForgetDocuments(s, ids.d2)
	assert.Equal(t, []string{ids.d1, ids.research}, character(t, next, ids.c1).Appearances)
	assert.Equal(t, character(t, s, ids.c2), character(t, next, ids.c2))
	assert.Equal(t, s.Locations, next.Locations)
}

func TestUnlink(t *testing.T) {
	s, ids := fixture(t)

	next := UnlinkCharacter(s, ids.d1, ids.c1)
	require.NoError(t, Check(next))
	assert.Equal(t, []string{ids.c2}, document(t, next, ids.d1).CharacterIDs)
	assert.Equal(t, []string{ids.d2, ids.research}, character(t, next, ids.c1).Appearances)

	next = UnlinkLocation(next, ids.research, ids.loc)
	require.NoError(t, Check(next))
	assert.Equal(t, []string{ids.d1}, next.Locations[0].Appearances)
}

func TestUpdateCharacterProtectsAppearances(t *testing.T) {
	s, ids := fixture(t)

	next := UpdateCharacter(s, ids.c1, func(c *models.Character) {
		c.Name = "Ada Lovelace"
		c.Appearances = nil
	})
	c := character(t, next, ids.c1)
	assert.Equal(t, "Ada Lovelace", c.Name)
	assert.Len(t, c.Appearances, 3)
	assert.Equal(t, "Ada", character(t, s, ids.c1).Name)

	next = UpdateLocation(s, ids.loc, func(l *models.Location) { l.Description = "Foggy" })
	assert.Equal(t, "Foggy", next.Locations[0].Description)
}

func TestCheckAndRebuild(t *testing.T) {
	s, ids := fixture(t)

	broken := s
	broken.Characters = append([]models.Character(nil), s.Characters...)
	broken.Characters[1].Appearances = nil
	err := Check(broken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistent))

	repaired := Rebuild(broken)
	require.NoError(t, Check(repaired))
	assert.Equal(t, []string{ids.d1}, character(t, repaired, ids.c2).Appearances)
}

func TestRebuildDropsDanglingReferences(t *testing.T) {
	s, ids := fixture(t)
	s.Forest = tree.UpdateDocument(s.Forest, ids.d2, func(d *models.Document) {
		d.CharacterIDs = append(d.CharacterIDs, "ghost")
	})
	require.Error(t, Check(s))

	repaired := Rebuild(s)
	require.NoError(t, Check(repaired))
	assert.Equal(t, []string{ids.c1}, document(t, repaired, ids.d2).CharacterIDs)
}
