package store

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/models"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_SeedsDefaultsWhenEmpty(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	got := s.Load(ctx)
	if len(got) != len(SeedTasks()) {
		t.Fatalf("expected %d seeded tasks, got %d", len(SeedTasks()), len(got))
	}

	// The seed must have been persisted, not just returned.
	var data string
	err := s.db.QueryRow(`SELECT data FROM collections WHERE key = ?`, StorageKey).Scan(&data)
	if err != nil {
		t.Fatalf("expected persisted seed blob: %v", err)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	tasks := []models.Task{
		{
			ID:          "t1",
			Title:       "Test task",
			Description: "A task used by the round trip test",
			Status:      models.StatusPending,
			DueDate:     "2025-07-20",
			CreatedAt:   time.Date(2025, 7, 8, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 7, 8, 10, 0, 0, 0, time.UTC),
		},
	}
	s.Save(ctx, tasks)

	got := s.Load(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	if got[0].ID != "t1" {
		t.Errorf("expected id t1, got %s", got[0].ID)
	}
	if got[0].Status != models.StatusPending {
		t.Errorf("expected status pending, got %s", got[0].Status)
	}
	if !got[0].CreatedAt.Equal(tasks[0].CreatedAt) {
		t.Errorf("createdAt changed across round trip: %v", got[0].CreatedAt)
	}
}

func TestLoad_FallsBackOnCorruptBlob(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`
		INSERT INTO collections (key, data) VALUES (?, ?)
	`, StorageKey, "{not valid json")
	if err != nil {
		t.Fatalf("failed to plant corrupt blob: %v", err)
	}

	got := s.Load(ctx)
	if len(got) != len(SeedTasks()) {
		t.Errorf("expected default dataset on corrupt blob, got %d tasks", len(got))
	}
}

func TestClear_RemovesPersistedState(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	s.Save(ctx, []models.Task{{ID: "t1"}})
	s.Clear(ctx)

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM collections`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no rows after Clear, got %d", n)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got := s.Load(ctx)
	if len(got) != len(SeedTasks()) {
		t.Fatalf("expected seeded defaults, got %d tasks", len(got))
	}

	s.Save(ctx, []models.Task{{ID: "only"}})
	got = s.Load(ctx)
	if len(got) != 1 || got[0].ID != "only" {
		t.Errorf("expected saved collection, got %v", got)
	}

	// Saving empty must stick, not re-seed.
	s.Save(ctx, []models.Task{})
	if got = s.Load(ctx); len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}

	s.Clear(ctx)
	if got = s.Load(ctx); len(got) != len(SeedTasks()) {
		t.Errorf("expected re-seeded defaults after Clear, got %d tasks", len(got))
	}

	// Callers must not be able to mutate the stored collection.
	s.Save(ctx, []models.Task{{ID: "a", Title: "original"}})
	leaked := s.Load(ctx)
	leaked[0].Title = "mutated"
	if got = s.Load(ctx); got[0].Title != "original" {
		t.Error("Load leaked internal state")
	}
}
