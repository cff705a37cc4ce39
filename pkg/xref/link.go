package xref

import (
	"slices"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

// LinkCharacter records that document docID features character charID, on
// both sides. Linking twice changes nothing.
func LinkCharacter(s Set, docID, charID string) Set {
	i := slices.IndexFunc(s.Characters, func(c models.Character) bool { return c.ID == charID })
	if i < 0 {
		return s
	}
	if _, _, ok := s.Forest.Document(docID); !ok {
		return s
	}
	s.Forest = tree.UpdateDocument(s.Forest, docID, func(d *models.Document) {
		d.CharacterIDs = appendMissing(d.CharacterIDs, charID)
	})
	chars := slices.Clone(s.Characters)
	chars[i].Appearances = appendMissing(slices.Clone(chars[i].Appearances), docID)
	s.Characters = chars
	return s
}

// UnlinkCharacter removes the link between docID and charID on both sides.
func UnlinkCharacter(s Set, docID, charID string) Set {
	s.Forest = tree.MapDocuments(s.Forest,
		func(d *models.Document) bool { return d.ID == docID && slices.Contains(d.CharacterIDs, charID) },
		func(d *models.Document) { d.CharacterIDs = without(d.CharacterIDs, charID) })
	i := slices.IndexFunc(s.Characters, func(c models.Character) bool { return c.ID == charID })
	if i >= 0 && slices.Contains(s.Characters[i].Appearances, docID) {
		chars := slices.Clone(s.Characters)
		chars[i].Appearances = without(chars[i].Appearances, docID)
		s.Characters = chars
	}
	return s
}

// LinkLocation records that document docID is set at location locID.
func LinkLocation(s Set, docID, locID string) Set {
	i := slices.IndexFunc(s.Locations, func(l models.Location) bool { return l.ID == locID })
	if i < 0 {
		return s
	}
	if _, _, ok := s.Forest.Document(docID); !ok {
		return s
	}
	s.Forest = tree.UpdateDocument(s.Forest, docID, func(d *models.Document) {
		d.LocationIDs = appendMissing(d.LocationIDs, locID)
	})
	locs := slices.Clone(s.Locations)
	locs[i].Appearances = appendMissing(slices.Clone(locs[i].Appearances), docID)
	s.Locations = locs
	return s
}

// UnlinkLocation removes the link between docID and locID on both sides.
func UnlinkLocation(s Set, docID, locID string) Set {
	s.Forest = tree.MapDocuments(s.Forest,
		func(d *models.Document) bool { return d.ID == docID && slices.Contains(d.LocationIDs, locID) },
		func(d *models.Document) { d.LocationIDs = without(d.LocationIDs, locID) })
	i := slices.IndexFunc(s.Locations, func(l models.Location) bool { return l.ID == locID })
	if i >= 0 && slices.Contains(s.Locations[i].Appearances, docID) {
		locs := slices.Clone(s.Locations)
		locs[i].Appearances = without(locs[i].Appearances, docID)
		s.Locations = locs
	}
	return s
}

// Rebuild recomputes every appearance list from the documents' reference
// lists, dropping references to entities that no longer exist. It repairs
// projects written by older versions or edited by hand.
func Rebuild(s Set) Set {
	charIdx := make(map[string]int, len(s.Characters))
	chars := make([]models.Character, len(s.Characters))
	for i, c := range s.Characters {
		c = c.Clone()
		c.Appearances = nil
		chars[i] = c
		charIdx[c.ID] = i
	}
	locIdx := make(map[string]int, len(s.Locations))
	locs := make([]models.Location, len(s.Locations))
	for i, l := range s.Locations {
		l = l.Clone()
		l.Appearances = nil
		locs[i] = l
		locIdx[l.ID] = i
	}

	dangling := func(d *models.Document) bool {
		for _, id := range d.CharacterIDs {
			if _, ok := charIdx[id]; !ok {
				return true
			}
		}
		for _, id := range d.LocationIDs {
			if _, ok := locIdx[id]; !ok {
				return true
			}
		}
		return false
	}
	s.Forest = tree.MapDocuments(s.Forest, dangling, func(d *models.Document) {
		d.CharacterIDs = slices.DeleteFunc(d.CharacterIDs, func(id string) bool { _, ok := charIdx[id]; return !ok })
		d.LocationIDs = slices.DeleteFunc(d.LocationIDs, func(id string) bool { _, ok := locIdx[id]; return !ok })
	})

	for _, d := range s.Forest.AllDocuments() {
		for _, id := range d.CharacterIDs {
			i := charIdx[id]
			chars[i].Appearances = appendMissing(chars[i].Appearances, d.ID)
		}
		for _, id := range d.LocationIDs {
			i := locIdx[id]
			locs[i].Appearances = appendMissing(locs[i].Appearances, d.ID)
		}
	}
	s.Characters, s.Locations = chars, locs
	return s
}

func appendMissing(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}
