package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"only whitespace", "  \n\t ", 0},
		{"single", "hello", 1},
		{"mixed separators", "one two\nthree\t four  ", 4},
		{"punctuation stays attached", "Hello, world!", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestCharactersCountsGraphemes(t *testing.T) {
	assert.Equal(t, 0, Characters(""))
	assert.Equal(t, 5, Characters("hello"))
	// e + combining acute accent is one character
	assert.Equal(t, 4, Characters("café"))
	assert.Equal(t, 1, Characters("👍🏽"))
}

func TestFoldKeyword(t *testing.T) {
	assert.Equal(t, FoldKeyword("Villain"), FoldKeyword(" villain "))
	assert.NotEqual(t, FoldKeyword("villain"), FoldKeyword("hero"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Part One", TitleCase("part one"))
}
