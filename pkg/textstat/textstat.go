// Package textstat counts words and characters the way the writing
// statistics and snapshots report them.
package textstat

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words counts the non-empty whitespace or newline delimited tokens in s.
func Words(s string) int {
	return len(strings.Fields(s))
}

// Characters counts user-perceived characters (grapheme clusters), so an
// emoji with modifiers or a letter with combining marks counts once.
func Characters(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// FoldKeyword returns the comparison key for a keyword. Keywords differing
// only in case or surrounding space belong to the same collection.
func FoldKeyword(keyword string) string {
	return cases.Fold().String(strings.TrimSpace(keyword))
}

// TitleCase capitalizes each word of s.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
