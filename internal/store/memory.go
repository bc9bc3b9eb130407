package store

import (
	"context"
	"sync"

	"taskboard/internal/models"
)

// MemoryStore implements the Store interface without durable storage.
// It is the fallback when no database is available and doubles as the
// test store.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []models.Task
}

// NewMemoryStore creates an empty in-memory store; the first Load seeds it
// with the default dataset.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held collection, seeding the default dataset on first use.
func (s *MemoryStore) Load(ctx context.Context) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks == nil {
		s.tasks = SeedTasks()
	}
	return models.CloneTasks(s.tasks)
}

// Save replaces the held collection.
func (s *MemoryStore) Save(ctx context.Context, tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = models.CloneTasks(tasks)
	if s.tasks == nil {
		s.tasks = []models.Task{}
	}
}

// Clear drops the held collection; the next Load re-seeds it.
func (s *MemoryStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
