// Package xref keeps document references to characters and locations
// consistent with the entities' appearance lists.
//
// A document lists the characters and locations it mentions; each
// character and location lists the documents it appears in. Every function
// here takes a Set and returns a new Set in which both sides agree. Like
// the tree engine, unknown ids are silent no-ops.
package xref

import (
	"errors"
	"fmt"
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

// ErrInconsistent reports a reference present on only one side.
var ErrInconsistent = errors.New("inconsistent cross-reference")

// Set is the part of a project that cross-references span.
type Set struct {
	Forest     tree.Forest
	Characters []models.Character
	Locations  []models.Location
}

// FromProject extracts the reference set of p.
func FromProject(p *models.Project) Set {
	return Set{Forest: tree.FromProject(p), Characters: p.Characters, Locations: p.Locations}
}

// ApplyTo stores s back into p.
func (s Set) ApplyTo(p *models.Project) {
	s.Forest.ApplyTo(p)
	p.Characters = s.Characters
	p.Locations = s.Locations
}

// AddCharacter appends a character with a fresh id and no appearances.
func AddCharacter(s Set, c models.Character) (Set, string) {
	c = c.Clone()
	c.ID = models.NewID()
	c.Appearances = nil
	s.Characters = append(slices.Clone(s.Characters), c)
	return s, c.ID
}

// AddLocation appends a location with a fresh id and no appearances.
func AddLocation(s Set, l models.Location) (Set, string) {
	l = l.Clone()
	l.ID = models.NewID()
	l.Appearances = nil
	s.Locations = append(slices.Clone(s.Locations), l)
	return s, l.ID
}

// UpdateCharacter applies fn to a copy of character id. The id and the
// appearance list are not editable through fn.
func UpdateCharacter(s Set, id string, fn func(*models.Character)) Set {
	i := slices.IndexFunc(s.Characters, func(c models.Character) bool { return c.ID == id })
	if i < 0 {
		return s
	}
	chars := slices.Clone(s.Characters)
	c := chars[i].Clone()
	fn(&c)
	c.ID, c.Appearances = id, chars[i].Appearances
	chars[i] = c
	s.Characters = chars
	return s
}

// UpdateLocation applies fn to a copy of location id.
func UpdateLocation(s Set, id string, fn func(*models.Location)) Set {
	i := slices.IndexFunc(s.Locations, func(l models.Location) bool { return l.ID == id })
	if i < 0 {
		return s
	}
	locs := slices.Clone(s.Locations)
	l := locs[i].Clone()
	fn(&l)
	l.ID, l.Appearances = id, locs[i].Appearances
	locs[i] = l
	s.Locations = locs
	return s
}

// DeleteCharacter removes character id from the collection and from the
// character list of every document in all hierarchies.
func DeleteCharacter(s Set, id string) Set {
	i := slices.IndexFunc(s.Characters, func(c models.Character) bool { return c.ID == id })
	if i >= 0 {
		s.Characters = slices.Delete(slices.Clone(s.Characters), i, i+1)
	}
	s.Forest = tree.MapDocuments(s.Forest,
		func(d *models.Document) bool { return slices.Contains(d.CharacterIDs, id) },
		func(d *models.Document) { d.CharacterIDs = without(d.CharacterIDs, id) })
	return s
}

// DeleteLocation removes location id from the collection and from the
// location list of every document in all hierarchies.
func DeleteLocation(s Set, id string) Set {
	i := slices.IndexFunc(s.Locations, func(l models.Location) bool { return l.ID == id })
	if i >= 0 {
		s.Locations = slices.Delete(slices.Clone(s.Locations), i, i+1)
	}
	s.Forest = tree.MapDocuments(s.Forest,
		func(d *models.Document) bool { return slices.Contains(d.LocationIDs, id) },
		func(d *models.Document) { d.LocationIDs = without(d.LocationIDs, id) })
	return s
}

// ForgetDocuments removes the given document ids from every character's
// and location's appearance list. Call it after a document leaves the tree
// for good.
func ForgetDocuments(s Set, docIDs ...string) Set {
	if len(docIDs) == 0 {
		return s
	}
	gone := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		gone[id] = true
	}
	drop := func(ids []string) ([]string, bool) {
		if !slices.ContainsFunc(ids, func(id string) bool { return gone[id] }) {
			return ids, false
		}
		return slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return gone[id] }), true
	}

	var chars []models.Character
	for i, c := range s.Characters {
		if next, changed := drop(c.Appearances); changed {
			if chars == nil {
				chars = slices.Clone(s.Characters)
			}
			chars[i].Appearances = next
		}
	}
	if chars != nil {
		s.Characters = chars
	}

	var locs []models.Location
	for i, l := range s.Locations {
		if next, changed := drop(l.Appearances); changed {
			if locs == nil {
				locs = slices.Clone(s.Locations)
			}
			locs[i].Appearances = next
		}
	}
	if locs != nil {
		s.Locations = locs
	}
	return s
}

// DeleteDocument removes document id from the tree and from every
// appearance list.
func DeleteDocument(s Set, id string) Set {
	next := tree.DeleteDocument(s.Forest, id)
	if next.Same(s.Forest) {
		return s
	}
	s.Forest = next
	return ForgetDocuments(s, id)
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(x string) bool { return x == id })
}

// Check verifies that document references and appearance lists mirror
// each other exactly.
func Check(s Set) error {
	docChars := make(map[string]map[string]bool)
	docLocs := make(map[string]map[string]bool)
	for _, d := range s.Forest.AllDocuments() {
		docChars[d.ID] = toSet(d.CharacterIDs)
		docLocs[d.ID] = toSet(d.LocationIDs)
	}

	chars := make(map[string]map[string]bool)
	for _, c := range s.Characters {
		chars[c.ID] = toSet(c.Appearances)
		for docID := range chars[c.ID] {
			if !docChars[docID][c.ID] {
				return fmt.Errorf("%w: character %s lists document %s", ErrInconsistent, c.ID, docID)
			}
		}
	}
	locs := make(map[string]map[string]bool)
	for _, l := range s.Locations {
		locs[l.ID] = toSet(l.Appearances)
		for docID := range locs[l.ID] {
			if !docLocs[docID][l.ID] {
				return fmt.Errorf("%w: location %s lists document %s", ErrInconsistent, l.ID, docID)
			}
		}
	}
	for docID, ids := range docChars {
		for charID := range ids {
			if !chars[charID][docID] {
				return fmt.Errorf("%w: document %s lists character %s", ErrInconsistent, docID, charID)
			}
		}
	}
	for docID, ids := range docLocs {
		for locID := range ids {
			if !locs[locID][docID] {
				return fmt.Errorf("%w: document %s lists location %s", ErrInconsistent, docID, locID)
			}
		}
	}
	return nil
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
