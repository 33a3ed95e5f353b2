package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/highercomve/timegrid/internal/models"
)

func sampleSchedule() *models.Schedule {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return &models.Schedule{
		Title: "Sprint 12",
		Start: start,
		End:   start.AddDate(0, 0, 14),
		Groups: []models.Group{
			{ID: "dev", Title: "Development", OrderIndex: 0},
			{ID: "qa", Title: "QA", OrderIndex: 1},
		},
		Items: []models.Item{
			{ID: "a", GroupID: "dev", Title: "API work", Start: start.Add(9 * time.Hour), End: start.Add(17 * time.Hour), Movable: true},
			{ID: "b", GroupID: "qa", Title: "Regression", Start: start.AddDate(0, 0, 2), End: start.AddDate(0, 0, 3)},
		},
	}
}

func TestLoadMissingFileYieldsEmptySchedule(t *testing.T) {
	s := NewStorage(t.TempDir())

	sched, err := s.LoadSchedule()
	if err != nil {
		t.Fatalf("LoadSchedule: %v", err)
	}
	if len(sched.Groups) != 0 || len(sched.Items) != 0 {
		t.Fatalf("expected empty schedule, got %+v", sched)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())
	want := sampleSchedule()

	if err := s.SaveSchedule(want); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	got, err := s.LoadSchedule()
	if err != nil {
		t.Fatalf("LoadSchedule: %v", err)
	}

	if got.Title != want.Title {
		t.Errorf("title = %q, want %q", got.Title, want.Title)
	}
	if len(got.Groups) != 2 || len(got.Items) != 2 {
		t.Fatalf("got %d groups / %d items", len(got.Groups), len(got.Items))
	}
	if !got.Items[0].Start.Equal(want.Items[0].Start) {
		t.Errorf("item start = %v, want %v", got.Items[0].Start, want.Items[0].Start)
	}
	if !got.Items[0].Movable {
		t.Error("movable flag lost in round trip")
	}
}

func TestSaveItemUpdatesExisting(t *testing.T) {
	s := NewStorage(t.TempDir())
	if err := s.SaveSchedule(sampleSchedule()); err != nil {
		t.Fatal(err)
	}

	moved := sampleSchedule().Items[0]
	moved.GroupID = "qa"
	moved.Start = moved.Start.Add(2 * time.Hour)
	moved.End = moved.End.Add(2 * time.Hour)
	if err := s.SaveItem(moved); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	got, err := s.LoadSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("update must not append, got %d items", len(got.Items))
	}
	stored := got.ItemByID("a")
	if stored == nil {
		t.Fatal("item a disappeared")
	}
	if stored.GroupID != "qa" || !stored.Start.Equal(moved.Start) {
		t.Errorf("stored = %+v, want group qa at %v", stored, moved.Start)
	}
}

func TestSaveItemAppendsNew(t *testing.T) {
	s := NewStorage(t.TempDir())
	if err := s.SaveSchedule(sampleSchedule()); err != nil {
		t.Fatal(err)
	}

	item := models.Item{
		ID:      "c",
		GroupID: "dev",
		Title:   "Code review",
		Start:   time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 3, 6, 11, 0, 0, 0, time.UTC),
	}
	if err := s.SaveItem(item); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	got, err := s.LoadSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 items after append, got %d", len(got.Items))
	}
	if got.ItemByID("c") == nil {
		t.Fatal("appended item not found")
	}
}

func TestDeleteItem(t *testing.T) {
	s := NewStorage(t.TempDir())
	if err := s.SaveSchedule(sampleSchedule()); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteItem("a"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	got, err := s.LoadSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if got.ItemByID("a") != nil {
		t.Error("item a still present after delete")
	}
	if got.ItemByID("b") == nil {
		t.Error("delete removed the wrong item")
	}
}

func TestImportYAMLSkipsInvalidItems(t *testing.T) {
	doc := `
title: Imported plan
start: 2024-03-04T00:00:00Z
end: 2024-03-18T00:00:00Z
groups:
  - id: dev
    title: Development
    order_index: 0
items:
  - id: ok
    group_id: dev
    title: Fine
    start: 2024-03-05T09:00:00Z
    end: 2024-03-05T17:00:00Z
  - id: orphan
    group_id: nosuch
    title: Wrong group
    start: 2024-03-05T09:00:00Z
    end: 2024-03-05T17:00:00Z
  - id: inverted
    group_id: dev
    title: Ends before it starts
    start: 2024-03-06T17:00:00Z
    end: 2024-03-06T09:00:00Z
`
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStorage(dir)
	sched, warnings, err := s.ImportYAML(path)
	if err != nil {
		t.Fatalf("ImportYAML: %v", err)
	}
	if len(sched.Items) != 1 || sched.Items[0].ID != "ok" {
		t.Fatalf("expected only the valid item, got %+v", sched.Items)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "skipping item") {
			t.Errorf("warning lacks context: %q", w)
		}
	}

	// Import persists immediately.
	stored, err := s.LoadSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if stored.Title != "Imported plan" || len(stored.Items) != 1 {
		t.Fatalf("import not persisted, got %+v", stored)
	}
}

func TestImportYAMLRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("items: [not, a, schedule"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStorage(dir)
	if _, _, err := s.ImportYAML(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestMoveData(t *testing.T) {
	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "nested", "data")

	s := NewStorage(oldDir)
	if err := s.SaveSchedule(sampleSchedule()); err != nil {
		t.Fatal(err)
	}

	if err := s.MoveData(newDir); err != nil {
		t.Fatalf("MoveData: %v", err)
	}
	if s.BaseDir != newDir {
		t.Fatalf("BaseDir = %q, want %q", s.BaseDir, newDir)
	}
	if _, err := os.Stat(filepath.Join(oldDir, "schedule.json")); !os.IsNotExist(err) {
		t.Error("old file should be gone after the move")
	}

	got, err := s.LoadSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("schedule lost in move, got %d items", len(got.Items))
	}
}

func TestMoveDataWithoutExistingFile(t *testing.T) {
	s := NewStorage(t.TempDir())
	target := t.TempDir()

	if err := s.MoveData(target); err != nil {
		t.Fatalf("MoveData with nothing stored: %v", err)
	}
	if s.BaseDir != target {
		t.Fatalf("BaseDir = %q, want %q", s.BaseDir, target)
	}
}

func TestDeleteAllData(t *testing.T) {
	s := NewStorage(t.TempDir())
	if err := s.SaveSchedule(sampleSchedule()); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteAllData(); err != nil {
		t.Fatalf("DeleteAllData: %v", err)
	}
	// Idempotent on an already-empty store.
	if err := s.DeleteAllData(); err != nil {
		t.Fatalf("second DeleteAllData: %v", err)
	}

	got, err := s.LoadSchedule()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 0 {
		t.Fatal("data survived erase")
	}
}
