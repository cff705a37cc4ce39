package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/manuscript/pkg/frontmatter"
	"github.com/grovetools/manuscript/pkg/models"
)

var mediaKinds = map[string]models.MediaKind{
	".png":  models.MediaKindImage,
	".jpg":  models.MediaKindImage,
	".jpeg": models.MediaKindImage,
	".gif":  models.MediaKindImage,
	".heic": models.MediaKindImage,
	".webp": models.MediaKindImage,
	".pdf":  models.MediaKindPDF,
}

// Import files the file at path under parentID. Markdown and plain text
// become documents; images and PDFs become media items. It returns the new
// node's id.
func (s *Service) Import(parentID, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("import: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("import: %s is a directory", path)
	}
	if _, _, ok := s.Forest().Folder(parentID); !ok {
		return "", fmt.Errorf("import: no folder %q", parentID)
	}

	ext := strings.ToLower(filepath.Ext(info.Name()))
	if kind, ok := mediaKinds[ext]; ok {
		id := s.AddMediaItem(parentID, models.MediaItem{
			Title:    strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())),
			Kind:     kind,
			Filename: path,
			Size:     info.Size(),
		})
		return id, nil
	}

	doc, err := documentFromFile(path, info)
	if err != nil {
		return "", err
	}
	return s.AddDocument(parentID, doc), nil
}

// documentFromFile reads a text file into document fields. Frontmatter
// supplies the title, synopsis and keywords when present; otherwise the
// first H1 or the file name is the title.
func documentFromFile(path string, info os.FileInfo) (models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("import: %w", err)
	}
	doc := models.Document{IncludeInCompile: true}

	fm, body, err := frontmatter.Parse(string(content))
	if err == nil && fm != nil {
		doc.Title = fm.Title
		doc.Synopsis = fm.Synopsis
		doc.Keywords = fm.Keywords
		doc.StatusID = fm.Status
		doc.LabelID = fm.Label
		doc.Content = strings.TrimPrefix(body, "\n")
		if created, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
			doc.CreatedAt = created
		}
	} else {
		doc.Content = string(content)
		doc.Title = extractTitle(doc.Content)
	}
	if doc.Title == "" || doc.Title == "Untitled" {
		doc.Title = strings.TrimSuffix(info.Name(), filepath.Ext(info.Name()))
	}
	if len(doc.Keywords) == 0 {
		doc.Keywords = nil
	}
	return doc, nil
}

// extractTitle returns the first H1 of content.
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return "Untitled"
}
