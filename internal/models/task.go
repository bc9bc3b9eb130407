package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task represents a single unit of trackable work.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateTaskInput holds the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"`
}

// Validate checks that the input has valid field values and trims title
// and description to the forms that get stored.
func (in *CreateTaskInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) < 3 {
		return errors.New("title must be at least 3 characters")
	}
	if len(title) > 100 {
		return errors.New("title must not exceed 100 characters")
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return errors.New("description is required")
	}
	if len(desc) < 10 {
		return errors.New("description must be at least 10 characters")
	}
	if len(desc) > 500 {
		return errors.New("description must not exceed 500 characters")
	}

	if !in.Status.Valid() {
		return errors.New("status must be 'pending', 'in_progress', or 'completed'")
	}

	if in.DueDate == "" {
		return errors.New("due date is required")
	}
	if _, err := ParseDate(in.DueDate); err != nil {
		return errors.New("due date must be a valid date")
	}

	in.Title = title
	in.Description = desc
	return nil
}

// UpdateTaskInput holds a partial update for an existing task.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	ID          string      `json:"id"`
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	DueDate     *string     `json:"dueDate,omitempty"`
}

// Validate checks the supplied fields and trims them to their stored
// forms; absent fields are not validated.
func (in *UpdateTaskInput) Validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New("task id is required")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if len(title) < 3 {
			return errors.New("title must be at least 3 characters")
		}
		if len(title) > 100 {
			return errors.New("title must not exceed 100 characters")
		}
		in.Title = &title
	}

	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if len(desc) < 10 {
			return errors.New("description must be at least 10 characters")
		}
		if len(desc) > 500 {
			return errors.New("description must not exceed 500 characters")
		}
		in.Description = &desc
	}

	if in.Status != nil && !in.Status.Valid() {
		return errors.New("status must be 'pending', 'in_progress', or 'completed'")
	}

	if in.DueDate != nil {
		if _, err := ParseDate(*in.DueDate); err != nil {
			return errors.New("due date must be a valid date")
		}
	}

	return nil
}

// ApplyTo merges the update into a copy of the task. The id and createdAt
// fields never change; updatedAt is set to now.
func (in *UpdateTaskInput) ApplyTo(t Task, now time.Time) Task {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
	t.UpdatedAt = now
	return t
}

// ValidateStatusTransition checks whether a task may move between two
// statuses. Completed tasks may be reopened to in_progress.
func ValidateStatusTransition(current, next TaskStatus) error {
	allowed := map[TaskStatus][]TaskStatus{
		StatusPending:    {StatusPending, StatusInProgress},
		StatusInProgress: {StatusInProgress, StatusCompleted, StatusPending},
		StatusCompleted:  {StatusCompleted, StatusInProgress},
	}
	for _, s := range allowed[current] {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot change status from %s to %s", current, next)
}

// ParseDate parses a calendar date in YYYY-MM-DD or RFC 3339 form.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// IsOverdue reports whether the due date lies strictly before now.
// Unparseable dates are never overdue.
func IsOverdue(dueDate string, now time.Time) bool {
	due, err := ParseDate(dueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// Overdue reports whether the task should be shown as overdue.
// Completed tasks are never overdue regardless of their due date.
func (t *Task) Overdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return IsOverdue(t.DueDate, now)
}

// CloneTasks returns an independent copy of a task slice.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
