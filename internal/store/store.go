package store

import (
	"context"

	"taskboard/internal/models"
)

// StorageKey is the well-known key the task collection is persisted under.
const StorageKey = "tasks-app-data"

// Store defines the interface for durable task collection persistence.
//
// The contract trades durability for availability: Load never fails and
// always returns a usable collection (seeding the default dataset when
// nothing is stored or the stored blob is unreadable), and Save degrades
// to a no-op when the backing storage is unavailable. Absorbed faults are
// logged so persistence bugs remain visible in server output.
type Store interface {
	// Load returns the persisted collection, seeding and persisting the
	// default dataset if none exists.
	Load(ctx context.Context) []models.Task

	// Save overwrites the persisted collection.
	Save(ctx context.Context, tasks []models.Task)

	// Clear removes all persisted state.
	Clear(ctx context.Context)

	// Close releases any resources held by the store.
	Close() error
}
