package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
	"taskboard/internal/store"
)

// Default window for the simulated network delay.
const (
	DefaultMinDelay = 300 * time.Millisecond
	DefaultMaxDelay = 800 * time.Millisecond
)

// NotFoundError reports that a task id does not exist in the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "task not found: " + e.ID
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Service simulates a remote task API on top of a Store. Every call incurs
// an artificial delay drawn from [minDelay, maxDelay] before touching the
// store, emulating network latency.
type Service struct {
	store    store.Store
	minDelay time.Duration
	maxDelay time.Duration
}

// New creates a service with the default delay window.
func New(st store.Store) *Service {
	return NewWithDelay(st, DefaultMinDelay, DefaultMaxDelay)
}

// NewWithDelay creates a service with a custom delay window. Tests pass
// zero delays.
func NewWithDelay(st store.Store, minDelay, maxDelay time.Duration) *Service {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Service{store: st, minDelay: minDelay, maxDelay: maxDelay}
}

// delay blocks for a random duration within the configured window,
// returning early if the context is canceled.
func (s *Service) delay(ctx context.Context) error {
	d := s.minDelay
	if s.maxDelay > s.minDelay {
		d += time.Duration(rand.Int63n(int64(s.maxDelay-s.minDelay) + 1))
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FetchTasks returns the current stored collection.
func (s *Service) FetchTasks(ctx context.Context) ([]models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.store.Load(ctx), nil
}

// CreateTask appends a new task to the stored collection and returns it.
// The task gets a fresh unique id and equal createdAt/updatedAt timestamps.
func (s *Service) CreateTask(ctx context.Context, in models.CreateTaskInput) (models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tasks := s.store.Load(ctx)
	tasks = append(tasks, task)
	s.store.Save(ctx, tasks)

	return task, nil
}

// UpdateTask merges the supplied fields over the existing record, bumps
// updatedAt and persists the collection. Returns NotFoundError if the id
// is absent.
func (s *Service) UpdateTask(ctx context.Context, in models.UpdateTaskInput) (models.Task, error) {
	if err := s.delay(ctx); err != nil {
		return models.Task{}, err
	}

	tasks := s.store.Load(ctx)
	for i, t := range tasks {
		if t.ID == in.ID {
			tasks[i] = in.ApplyTo(t, time.Now().UTC())
			s.store.Save(ctx, tasks)
			return tasks[i], nil
		}
	}

	return models.Task{}, &NotFoundError{ID: in.ID}
}

// DeleteTask removes the task with the given id and persists the
// collection. Returns NotFoundError if the id is absent.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	tasks := s.store.Load(ctx)
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			s.store.Save(ctx, tasks)
			return nil
		}
	}

	return &NotFoundError{ID: id}
}
