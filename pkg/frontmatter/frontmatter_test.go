package frontmatter

import (
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFM   *Frontmatter
		wantBody string
		wantErr  bool
	}{
		{
			name: "valid frontmatter",
			content: `---
id: doc-123
title: The Storm
parent: Chapter 1
depth: 2
order: 0
keywords: [storm, night]
characters: [Ada]
locations: []
words: 412
created: 2023-01-01 10:00:00
modified: 2023-01-02 11:00:00
---

Rain hammered the harbor.`,
			wantFM: &Frontmatter{
				ID:         "doc-123",
				Title:      "The Storm",
				Parent:     "Chapter 1",
				Depth:      2,
				Keywords:   []string{"storm", "night"},
				Characters: []string{"Ada"},
				Locations:  []string{},
				Words:      412,
				Created:    "2023-01-01 10:00:00",
				Modified:   "2023-01-02 11:00:00",
			},
			wantBody: "\nRain hammered the harbor.",
		},
		{
			name:     "no frontmatter",
			content:  "# Just a title\n\nSome content.",
			wantBody: "# Just a title\n\nSome content.",
		},
		{
			name: "invalid yaml",
			content: `---
id: test
title: [invalid
---

Body`,
			wantBody: `---
id: test
title: [invalid
---

Body`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFM, gotBody, err := Parse(tt.content)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotFM, tt.wantFM) {
				t.Errorf("Parse() gotFM = %+v, want %+v", gotFM, tt.wantFM)
			}
			if gotBody != tt.wantBody {
				t.Errorf("Parse() gotBody = %q, want %q", gotBody, tt.wantBody)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		fm   *Frontmatter
		want string
	}{
		{
			name: "complete frontmatter",
			fm: &Frontmatter{
				ID:         "doc-1",
				Title:      "Opening",
				Parent:     "Part 1",
				Depth:      1,
				Order:      3,
				Synopsis:   "The town wakes",
				Keywords:   []string{"dawn"},
				Characters: []string{"Ada", "Brook"},
				Status:     "draft",
				Words:      12,
				Created:    "2023-01-01 10:00:00",
				Modified:   "2023-01-02 11:00:00",
			},
			want: `---
id: doc-1
title: Opening
parent: Part 1
depth: 1
order: 3
synopsis: The town wakes
keywords: [dawn]
characters: [Ada, Brook]
locations: []
status: draft
words: 12
created: 2023-01-01 10:00:00
modified: 2023-01-02 11:00:00
---`,
		},
		{
			name: "with special characters",
			fm: &Frontmatter{
				ID:       "special",
				Title:    "Act I: Arrival",
				Keywords: []string{"storm, night", "plain"},
				Created:  "2023-01-01 10:00:00",
				Modified: "2023-01-01 10:00:00",
			},
			want: `---
id: special
title: "Act I: Arrival"
depth: 0
order: 0
keywords: ["storm, night", plain]
characters: []
locations: []
words: 0
created: 2023-01-01 10:00:00
modified: 2023-01-01 10:00:00
---`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.fm)
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildContent(t *testing.T) {
	fm := &Frontmatter{ID: "test", Title: "Test"}

	tests := []struct {
		name        string
		body        string
		wantSpacing bool
	}{
		{
			name:        "body without leading newline",
			body:        "# Title\n\nContent",
			wantSpacing: true,
		},
		{
			name:        "body with leading newline",
			body:        "\n# Title\n\nContent",
			wantSpacing: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildContent(fm, tt.body)
			want := Build(fm) + "\n" + tt.body
			if tt.wantSpacing {
				want = Build(fm) + "\n\n" + tt.body
			}
			if got != want {
				t.Errorf("BuildContent() spacing incorrect, got = %q, want = %q", got, want)
			}
		})
	}
}

func TestFormatAndParseTimestamp(t *testing.T) {
	now := time.Date(2023, 1, 15, 14, 30, 45, 0, time.UTC)

	formatted := FormatTimestamp(now)
	if formatted != "2023-01-15 14:30:45" {
		t.Errorf("FormatTimestamp() = %q", formatted)
	}

	parsed, err := ParseTimestamp(formatted)
	if err != nil {
		t.Errorf("ParseTimestamp() error = %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("ParseTimestamp() = %v, want %v", parsed, now)
	}

	if got := FormatTimestamp(time.Time{}); got != "" {
		t.Errorf("FormatTimestamp(zero) = %q, want empty", got)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		n     int
		title string
		want  string
	}{
		{1, "The Storm", "001-the-storm.md"},
		{12, "  Act I: Arrival!  ", "012-act-i-arrival.md"},
		{3, "Café au lait", "003-café-au-lait.md"},
		{4, "???", "004-untitled.md"},
		{5, "", "005-untitled.md"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Filename(tt.n, tt.title); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	original := &Frontmatter{
		ID:         "roundtrip-123",
		Title:      "Chapter: One",
		Parent:     "Part 1",
		Depth:      2,
		Order:      1,
		Synopsis:   "Ada's arrival",
		Keywords:   []string{"arrival", "a,b"},
		Characters: []string{"Ada"},
		Locations:  []string{"Harbor"},
		Status:     "revised",
		Label:      "red",
		Words:      1200,
		Created:    "2023-01-01 10:00:00",
		Modified:   "2023-01-02 11:00:00",
	}

	body := "It was a dark night."
	parsed, parsedBody, err := Parse(BuildContent(original, body))
	if err != nil {
		t.Fatalf("Failed to parse round-trip content: %v", err)
	}
	if !reflect.DeepEqual(parsed, original) {
		t.Errorf("Round trip frontmatter mismatch\noriginal: %+v\nparsed: %+v", original, parsed)
	}
	if parsedBody != "\n"+body {
		t.Errorf("Round trip body mismatch: %q", parsedBody)
	}
}
