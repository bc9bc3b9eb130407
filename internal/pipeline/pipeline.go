// Package pipeline derives a filtered, sorted, paginated view of a task
// collection. Process is pure: it never mutates its input.
package pipeline

import (
	"sort"
	"strings"

	"taskboard/internal/models"
)

// SortField names a task attribute the view can be sorted by.
type SortField string

const (
	SortByTitle   SortField = "title"
	SortByDueDate SortField = "dueDate"
	SortByStatus  SortField = "status"
)

// Valid reports whether the sort field is one of the known values.
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByDueDate, SortByStatus:
		return true
	default:
		return false
	}
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FilterAll selects every status.
const FilterAll = "all"

// DefaultPageSize is the number of tasks per page unless overridden.
const DefaultPageSize = 10

// State holds the filter, sort and pagination settings for a view. It is
// created with defaults, mutated by user interaction, and never persisted.
type State struct {
	StatusFilter string
	SortBy       SortField
	SortOrder    SortOrder
	CurrentPage  int
	PageSize     int
}

// NewState returns the default view state: all statuses, sorted by due
// date ascending, first page.
func NewState() State {
	return State{
		StatusFilter: FilterAll,
		SortBy:       SortByDueDate,
		SortOrder:    OrderAsc,
		CurrentPage:  1,
		PageSize:     DefaultPageSize,
	}
}

// SetStatusFilter changes the status filter and resets to the first page.
func (s *State) SetStatusFilter(filter string) {
	s.StatusFilter = filter
	s.CurrentPage = 1
}

// ToggleSort sorts by the given field, flipping the direction when the
// field is already active, and resets to the first page.
func (s *State) ToggleSort(field SortField) {
	if s.SortBy == field {
		if s.SortOrder == OrderAsc {
			s.SortOrder = OrderDesc
		} else {
			s.SortOrder = OrderAsc
		}
	} else {
		s.SortBy = field
		s.SortOrder = OrderAsc
	}
	s.CurrentPage = 1
}

// SetPage moves to the given page without touching filter or sort.
func (s *State) SetPage(page int) {
	s.CurrentPage = page
}

// Reset restores the default state.
func (s *State) Reset() {
	*s = NewState()
}

// Result is one bounded page of the processed view.
type Result struct {
	Tasks      []models.Task `json:"tasks"`
	TotalTasks int           `json:"totalTasks"`
	TotalPages int           `json:"totalPages"`
}

// Process filters, sorts and paginates the collection. Sorting is stable:
// tasks with equal keys keep their input order. Pages past the end yield
// an empty slice; the caller is responsible for resetting the page when
// filter or sort change.
func Process(tasks []models.Task, state State) Result {
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if state.StatusFilter == FilterAll || string(t.Status) == state.StatusFilter {
			filtered = append(filtered, t)
		}
	}

	stableSort(filtered, state.SortBy, state.SortOrder)

	pageSize := state.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	page := state.CurrentPage
	if page < 1 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return Result{Tasks: []models.Task{}, TotalTasks: total, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Result{
		Tasks:      models.CloneTasks(filtered[start:end]),
		TotalTasks: total,
		TotalPages: totalPages,
	}
}

func stableSort(tasks []models.Task, field SortField, order SortOrder) {
	sort.SliceStable(tasks, func(i, j int) bool {
		cmp := compareTasks(tasks[i], tasks[j], field)
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareTasks orders two tasks by the given field: titles compare
// case-insensitively, due dates as calendar time, statuses by their
// literal string values.
func compareTasks(a, b models.Task, field SortField) int {
	switch field {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByDueDate:
		ad, _ := models.ParseDate(a.DueDate)
		bd, _ := models.ParseDate(b.DueDate)
		return ad.Compare(bd)
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	default:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
}
