// Package selection tracks which sidebar item is selected and which
// folders are expanded, and round-trips both through the project state.
package selection

import (
	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/tree"
)

// Kind tags what a Selection points at.
type Kind string

const (
	KindNone              Kind = ""
	KindProjectInfo       Kind = "projectInfo"
	KindCharacters        Kind = "characters"
	KindLocations         Kind = "locations"
	KindWorldMap          Kind = "worldMap"
	KindWritingHistory    Kind = "writingHistory"
	KindFavorites         Kind = "favorites"
	KindKeywordCollection Kind = "keywordCollection"
	KindFolder            Kind = "folder"
	KindDocument          Kind = "document"
	KindCharacter         Kind = "character"
	KindLocation          Kind = "location"
	KindMediaItem         Kind = "mediaItem"
)

// Kinds lists every selectable kind.
var Kinds = []Kind{
	KindProjectInfo, KindCharacters, KindLocations, KindWorldMap, KindWritingHistory,
	KindFavorites, KindKeywordCollection, KindFolder, KindDocument, KindCharacter,
	KindLocation, KindMediaItem,
}

// NeedsID reports whether selections of kind k carry an item id.
func (k Kind) NeedsID() bool {
	switch k {
	case KindFolder, KindDocument, KindCharacter, KindLocation, KindMediaItem:
		return true
	}
	return false
}

// ParseKind validates a persisted kind tag.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return KindNone, false
}

// Selection is a tagged value: Kind says which of ID or Keyword is
// meaningful. The zero value is "no selection".
type Selection struct {
	Kind    Kind
	ID      string
	Keyword string
}

// Constructors, one per kind.

func None() Selection { return Selection{} }
func ProjectInfo() Selection { return Selection{Kind: KindProjectInfo} }
func Characters() Selection { return Selection{Kind: KindCharacters} }
func Locations() Selection { return Selection{Kind: KindLocations} }
func WorldMap() Selection { return Selection{Kind: KindWorldMap} }
func WritingHistory() Selection { return Selection{Kind: KindWritingHistory} }
func Favorites() Selection { return Selection{Kind: KindFavorites} }
func KeywordCollection(kw string) Selection {
	return Selection{Kind: KindKeywordCollection, Keyword: kw}
}
func Folder(id string) Selection { return Selection{Kind: KindFolder, ID: id} }
func Document(id string) Selection { return Selection{Kind: KindDocument, ID: id} }
func Character(id string) Selection { return Selection{Kind: KindCharacter, ID: id} }
func Location(id string) Selection { return Selection{Kind: KindLocation, ID: id} }
func MediaItem(id string) Selection { return Selection{Kind: KindMediaItem, ID: id} }

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return s.Kind == KindNone
}

// Persist converts the selection to its stored shape.
func (s Selection) Persist() models.SelectionState {
	st := models.SelectionState{Kind: string(s.Kind)}
	if s.Kind.NeedsID() {
		id := s.ID
		st.ItemID = &id
	}
	if s.Kind == KindKeywordCollection {
		kw := s.Keyword
		st.Keyword = &kw
	}
	return st
}

// Resolver answers whether an id of the given kind still exists.
type Resolver interface {
	Resolves(kind Kind, id string) bool
}

// Rehydrate rebuilds a selection from its stored shape. Unknown tags,
// missing ids and ids that no longer resolve yield None.
func Rehydrate(st models.SelectionState, r Resolver) Selection {
	kind, ok := ParseKind(st.Kind)
	if !ok {
		return None()
	}
	switch {
	case kind.NeedsID():
		if st.ItemID == nil || *st.ItemID == "" || r == nil || !r.Resolves(kind, *st.ItemID) {
			return None()
		}
		return Selection{Kind: kind, ID: *st.ItemID}
	case kind == KindKeywordCollection:
		if st.Keyword == nil || *st.Keyword == "" {
			return None()
		}
		return KeywordCollection(*st.Keyword)
	}
	return Selection{Kind: kind}
}

// Valid reports whether s still points at something that exists.
func (s Selection) Valid(r Resolver) bool {
	switch {
	case s.Kind.NeedsID():
		return r != nil && r.Resolves(s.Kind, s.ID)
	case s.Kind == KindKeywordCollection:
		return s.Keyword != ""
	}
	return true
}

type projectResolver struct {
	forest tree.Forest
	p      *models.Project
}

// ForProject resolves ids against the live tree and entity lists of p.
func ForProject(p *models.Project) Resolver {
	return projectResolver{forest: tree.FromProject(p), p: p}
}

func (r projectResolver) Resolves(kind Kind, id string) bool {
	switch kind {
	case KindFolder:
		_, _, ok := r.forest.Folder(id)
		return ok
	case KindDocument:
		_, _, ok := r.forest.Document(id)
		return ok
	case KindMediaItem:
		_, _, ok := r.forest.MediaItem(id)
		return ok
	case KindCharacter:
		_, ok := r.p.Character(id)
		return ok
	case KindLocation:
		_, ok := r.p.Location(id)
		return ok
	}
	return false
}
