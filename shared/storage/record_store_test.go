package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"content-dna/internal/models"
)

func newTestStore(t *testing.T) (*RecordStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewRecordStore(dir)
	if err != nil {
		t.Fatalf("Failed to create record store: %v", err)
	}
	return store, dir
}

func record(id, niche, title string) *models.VideoRecord {
	return &models.VideoRecord{
		ID:        id,
		Niche:     niche,
		Title:     title,
		ViewCount: 1000,
		Tags:      []string{"tag"},
	}
}

func ids(records []*models.VideoRecord) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestAddAndListByNiche(t *testing.T) {
	store, _ := newTestStore(t)

	for _, r := range []*models.VideoRecord{
		record("vid-1", "productivity", "How I Doubled My Output to Save Time"),
		record("vid-2", "ai_tech", "I Built an AI that Writes Code | Here's How"),
		record("vid-3", "productivity", "5 Tools to Focus in 10 Minutes"),
	} {
		if err := store.Add(r); err != nil {
			t.Fatalf("Add(%s) error: %v", r.ID, err)
		}
	}

	got := ids(store.ListByNiche("productivity"))
	if len(got) != 2 || got[0] != "vid-1" || got[1] != "vid-3" {
		t.Errorf("ListByNiche(productivity) = %v, want [vid-1 vid-3]", got)
	}

	empty := store.ListByNiche("health_fitness")
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByNiche(health_fitness) = %v, want empty non-nil slice", empty)
	}

	if store.Count() != 3 {
		t.Errorf("Count() = %d, want 3", store.Count())
	}
	if !store.Contains("vid-2") {
		t.Error("Contains(vid-2) = false")
	}
}

func TestAddStampsAddedAt(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Add(record("vid-1", "productivity", "t")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	got, err := store.Get("vid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.AddedAt.IsZero() {
		t.Error("AddedAt was not stamped")
	}

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := record("vid-2", "productivity", "t")
	r.AddedAt = fixed
	if err := store.Add(r); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	got, _ = store.Get("vid-2")
	if !got.AddedAt.Equal(fixed) {
		t.Errorf("AddedAt = %v, want %v", got.AddedAt, fixed)
	}
}

func TestAddRejectsInvalidRecords(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name   string
		record *models.VideoRecord
	}{
		{"Nil", nil},
		{"EmptyID", record("", "productivity", "t")},
		{"EmptyNiche", record("vid-1", " ", "t")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Add(tt.record); err == nil {
				t.Error("expected error")
			}
		})
	}

	if store.Count() != 0 {
		t.Errorf("Count() = %d after rejected adds, want 0", store.Count())
	}
}

func TestDuplicateAddLeavesStoreUnchanged(t *testing.T) {
	store, dir := newTestStore(t)

	if err := store.Add(record("vid-1", "productivity", "original")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	before, err := os.ReadFile(filepath.Join(dir, recordsFileName))
	if err != nil {
		t.Fatalf("read record file: %v", err)
	}

	err = store.Add(record("vid-1", "ai_tech", "replacement"))
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
	var dup *DuplicateRecordError
	if !errors.As(err, &dup) || dup.ID != "vid-1" || dup.Niche != "productivity" {
		t.Errorf("unexpected duplicate error: %#v", err)
	}

	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
	got, _ := store.Get("vid-1")
	if got.Title != "original" || got.Niche != "productivity" {
		t.Errorf("stored record changed: %+v", got)
	}
	if len(store.ListByNiche("ai_tech")) != 0 {
		t.Error("duplicate record leaked into ai_tech")
	}

	after, err := os.ReadFile(filepath.Join(dir, recordsFileName))
	if err != nil {
		t.Fatalf("read record file: %v", err)
	}
	if string(before) != string(after) {
		t.Error("record file changed after failed duplicate add")
	}
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)

	for _, id := range []string{"vid-1", "vid-2", "vid-3"} {
		if err := store.Add(record(id, "productivity", id)); err != nil {
			t.Fatalf("Add(%s) error: %v", id, err)
		}
	}

	if err := store.Remove("vid-2"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	got := ids(store.ListByNiche("productivity"))
	if len(got) != 2 || got[0] != "vid-1" || got[1] != "vid-3" {
		t.Errorf("ListByNiche after remove = %v, want [vid-1 vid-3]", got)
	}
	if store.Contains("vid-2") {
		t.Error("vid-2 still present after Remove")
	}
	if _, err := store.Get("vid-3"); err != nil {
		t.Errorf("Get(vid-3) after reindex error: %v", err)
	}

	err := store.Remove("vid-2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "vid-2" {
		t.Errorf("unexpected not found error: %#v", err)
	}

	// Re-adding a removed ID is allowed
	if err := store.Add(record("vid-2", "productivity", "again")); err != nil {
		t.Errorf("re-Add after Remove error: %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	store, dir := newTestStore(t)

	if err := store.Add(record("vid-1", "productivity", "first")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := store.Add(record("vid-2", "health_fitness", "second")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := store.Add(record("vid-3", "productivity", "third")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := store.Remove("vid-1"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	reopened, err := NewRecordStore(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}

	got := ids(reopened.List())
	if len(got) != 2 || got[0] != "vid-2" || got[1] != "vid-3" {
		t.Errorf("List() after reopen = %v, want [vid-2 vid-3]", got)
	}
	r, err := reopened.Get("vid-3")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if r.Title != "third" || r.ViewCount != 1000 || len(r.Tags) != 1 {
		t.Errorf("reloaded record = %+v", r)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	store, _ := newTestStore(t)

	original := record("vid-1", "productivity", "title")
	if err := store.Add(original); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	original.Title = "mutated by caller"
	original.Tags[0] = "mutated"

	listed := store.ListByNiche("productivity")
	listed[0].Title = "mutated by reader"

	got, _ := store.Get("vid-1")
	if got.Title != "title" || got.Tags[0] != "tag" {
		t.Errorf("stored record was mutated: %+v", got)
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	store, dir := newTestStore(t)

	if err := store.Add(record("vid-1", "productivity", "kept")); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	// Replace the data directory with a regular file so writes fail.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	if err := os.WriteFile(dir, []byte("not a directory"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	if err := store.Add(record("vid-2", "productivity", "lost")); err == nil {
		t.Fatal("expected Add to fail when the record file cannot be written")
	}
	if store.Contains("vid-2") || store.Count() != 1 {
		t.Error("failed Add was not rolled back")
	}

	if err := store.Remove("vid-1"); err == nil {
		t.Fatal("expected Remove to fail when the record file cannot be written")
	}
	if !store.Contains("vid-1") {
		t.Error("failed Remove was not rolled back")
	}
}

func TestCorruptRecordFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"InvalidJSON", "{not json"},
		{"NullEntry", `{"version": "1", "records": [null]}`},
		{"MissingID", `{"version": "1", "records": [{"id": "", "niche": "productivity", "title": "t"}]}`},
		{"DuplicateID", `{"version": "1", "records": [{"id": "a", "niche": "productivity"}, {"id": "a", "niche": "ai_tech"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, recordsFileName)
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := NewRecordStore(dir); err == nil {
				t.Errorf("expected error loading %s record file", tt.name)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != tt.data {
				t.Error("record file was modified by a failed load")
			}
		})
	}
}
