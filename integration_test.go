//go:build integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/service"
	"github.com/grovetools/manuscript/pkg/store"
	"github.com/grovetools/manuscript/pkg/tree"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	logger := logrus.NewEntry(logrus.New())
	config := &service.Config{
		DebugAssertions: true,
		IndexPath:       filepath.Join(tmpDir, "index.db"),
	}

	var chapterID string

	// Test 1: Create a project in a bolt store
	t.Run("CreateProject", func(t *testing.T) {
		st, err := store.Open(store.KindBolt, tmpDir, "voyage")
		if err != nil {
			t.Fatalf("Failed to open store: %v", err)
		}
		svc, err := service.Create(config, st, logger, "Voyage", "Ann")
		if err != nil {
			t.Fatalf("Failed to create project: %v", err)
		}
		defer svc.Close()

		chapterID = svc.AddFolder(svc.Forest().Draft.ID, "Chapter 1")
		for _, title := range []string{"Arrival", "Market", "Storm"} {
			if id := svc.AddDocument(chapterID, models.Document{Title: title, Content: title + " scene.", IncludeInCompile: true}); id == "" {
				t.Fatalf("Failed to add %s", title)
			}
		}
		if err := svc.Save(); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}
	})

	// Test 2: Export the draft and import it back into research
	t.Run("ExportImport", func(t *testing.T) {
		st, err := store.Open(store.KindBolt, tmpDir, "voyage")
		if err != nil {
			t.Fatalf("Failed to open store: %v", err)
		}
		svc, err := service.Open(config, st, logger)
		if err != nil {
			t.Fatalf("Failed to open project: %v", err)
		}
		defer svc.Close()

		exportDir := filepath.Join(tmpDir, "export")
		n, err := svc.Export(exportDir)
		if err != nil {
			t.Fatalf("Failed to export: %v", err)
		}
		if n != 3 {
			t.Errorf("Expected 3 exported documents, got %d", n)
		}

		files, _ := filepath.Glob(filepath.Join(exportDir, "*.md"))
		research := svc.Forest().Research.ID
		for _, f := range files {
			if _, err := svc.Import(research, f); err != nil {
				t.Fatalf("Failed to import %s: %v", f, err)
			}
		}
		if got := len(tree.Documents(svc.Forest().Research)); got != 3 {
			t.Errorf("Expected 3 research documents, got %d", got)
		}
		if err := svc.Validate(); err != nil {
			t.Errorf("Project invalid after import: %v", err)
		}
		if err := svc.Save(); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}

		results, err := svc.Search("storm", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("Expected the draft and research copies of Storm, got %d results", len(results))
		}
	})
}
