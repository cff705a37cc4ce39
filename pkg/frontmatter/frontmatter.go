// Package frontmatter renders compiled documents as Markdown files with a
// YAML header, and reads such files back.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// Frontmatter is the metadata written at the top of an exported document.
type Frontmatter struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Parent     string   `yaml:"parent,omitempty"`
	Depth      int      `yaml:"depth"`
	Order      int      `yaml:"order"`
	Synopsis   string   `yaml:"synopsis,omitempty"`
	Keywords   []string `yaml:"keywords,flow"`
	Characters []string `yaml:"characters,flow"`
	Locations  []string `yaml:"locations,flow"`
	Status     string   `yaml:"status,omitempty"`
	Label      string   `yaml:"label,omitempty"`
	Words      int      `yaml:"words"`
	Created    string   `yaml:"created"`
	Modified   string   `yaml:"modified"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Ensure arrays are never nil
	if fm.Keywords == nil {
		fm.Keywords = []string{}
	}
	if fm.Characters == nil {
		fm.Characters = []string{}
	}
	if fm.Locations == nil {
		fm.Locations = []string{}
	}

	return &fm, matches[2], nil
}

// Build creates the YAML frontmatter string from a Frontmatter struct
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")

	// Always include these fields in a consistent order
	fmt.Fprintf(&sb, "id: %s\n", fm.ID)
	fmt.Fprintf(&sb, "title: %s\n", formatScalar(fm.Title))
	if fm.Parent != "" {
		fmt.Fprintf(&sb, "parent: %s\n", formatScalar(fm.Parent))
	}
	fmt.Fprintf(&sb, "depth: %d\n", fm.Depth)
	fmt.Fprintf(&sb, "order: %d\n", fm.Order)
	if fm.Synopsis != "" {
		fmt.Fprintf(&sb, "synopsis: %s\n", formatScalar(fm.Synopsis))
	}
	fmt.Fprintf(&sb, "keywords: %s\n", formatYAMLArray(fm.Keywords))
	fmt.Fprintf(&sb, "characters: %s\n", formatYAMLArray(fm.Characters))
	fmt.Fprintf(&sb, "locations: %s\n", formatYAMLArray(fm.Locations))
	if fm.Status != "" {
		fmt.Fprintf(&sb, "status: %s\n", formatScalar(fm.Status))
	}
	if fm.Label != "" {
		fmt.Fprintf(&sb, "label: %s\n", formatScalar(fm.Label))
	}
	fmt.Fprintf(&sb, "words: %d\n", fm.Words)

	// Timestamps
	fmt.Fprintf(&sb, "created: %s\n", fm.Created)
	fmt.Fprintf(&sb, "modified: %s\n", fm.Modified)

	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body content into a complete document
func BuildContent(fm *Frontmatter, bodyContent string) string {
	frontmatterStr := Build(fm)

	// Ensure proper spacing between frontmatter and body
	if !strings.HasPrefix(bodyContent, "\n") {
		return frontmatterStr + "\n\n" + bodyContent
	}
	return frontmatterStr + "\n" + bodyContent
}

// FormatTimestamp formats a time.Time into the standard frontmatter timestamp format
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// ParseTimestamp parses a frontmatter timestamp string into time.Time
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s)
}

// Filename names the n-th exported file, e.g. "003-the-storm.md".
func Filename(n int, title string) string {
	slug := Slug(title)
	if slug == "" {
		slug = "untitled"
	}
	return fmt.Sprintf("%03d-%s.md", n, slug)
}

// Slug lowercases title and joins its letters and digits with hyphens.
func Slug(title string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			hyphen = false
			continue
		}
		hyphen = true
	}
	return sb.String()
}

// formatYAMLArray formats a string slice as a YAML flow-style array
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	quotedItems := make([]string, len(items))
	for i, item := range items {
		quotedItems[i] = formatScalar(item)
	}

	return fmt.Sprintf("[%s]", strings.Join(quotedItems, ", "))
}

func formatScalar(s string) string {
	if needsQuoting(s) {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// needsQuoting checks if a string needs to be quoted in YAML
func needsQuoting(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return true
	}
	return strings.ContainsAny(s, ",:[]{}\"'#&*!|>%@`\n")
}
