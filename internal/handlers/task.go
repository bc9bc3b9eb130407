package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
	"taskboard/internal/pipeline"
	"taskboard/internal/service"
)

type listResponse struct {
	Tasks       []models.Task `json:"tasks"`
	TotalTasks  int           `json:"totalTasks"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// parseViewState builds the pipeline state from query parameters,
// starting from the defaults.
func parseViewState(r *http.Request) (pipeline.State, error) {
	state := pipeline.NewState()
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		if v != pipeline.FilterAll && !models.TaskStatus(v).Valid() {
			return state, errInvalidParam("status")
		}
		state.StatusFilter = v
	}
	if v := q.Get("sortBy"); v != "" {
		f := pipeline.SortField(v)
		if !f.Valid() {
			return state, errInvalidParam("sortBy")
		}
		state.SortBy = f
	}
	if v := q.Get("sortOrder"); v != "" {
		if v != string(pipeline.OrderAsc) && v != string(pipeline.OrderDesc) {
			return state, errInvalidParam("sortOrder")
		}
		state.SortOrder = pipeline.SortOrder(v)
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return state, errInvalidParam("page")
		}
		state.CurrentPage = page
	}
	if v := q.Get("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return state, errInvalidParam("pageSize")
		}
		state.PageSize = size
	}

	return state, nil
}

type paramError string

func (e paramError) Error() string { return "invalid " + string(e) + " parameter" }

func errInvalidParam(name string) error { return paramError(name) }

// ListTasks returns one page of the filtered, sorted task view.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	state, err := parseViewState(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.cache.Fetch(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch tasks")
		return
	}

	result := pipeline.Process(tasks, state)
	respondJSON(w, http.StatusOK, listResponse{
		Tasks:       result.Tasks,
		TotalTasks:  result.TotalTasks,
		TotalPages:  result.TotalPages,
		CurrentPage: state.CurrentPage,
	})
}

// CreateTask validates the input and creates a task through the cache's
// optimistic mutation path.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if due, err := models.ParseDate(in.DueDate); err == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if due.Before(today) {
			respondError(w, http.StatusBadRequest, "due date cannot be in the past")
			return
		}
	}

	task, err := h.cache.Create(r.Context(), in)
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update to an existing task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.ID = chi.URLParam(r, "id")

	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if in.Status != nil {
		tasks, err := h.cache.Fetch(r.Context())
		if err != nil {
			respondError(w, http.StatusBadGateway, "failed to fetch tasks")
			return
		}
		for _, t := range tasks {
			if t.ID == in.ID {
				if err := models.ValidateStatusTransition(t.Status, *in.Status); err != nil {
					respondError(w, http.StatusBadRequest, err.Error())
					return
				}
				break
			}
		}
	}

	task, err := h.cache.Update(r.Context(), in)
	if err != nil {
		if service.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.cache.Delete(r.Context(), id); err != nil {
		if service.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		respondServerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type statsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// TaskStats returns counts by status plus the number of overdue tasks.
func (h *Handlers) TaskStats(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.cache.Fetch(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch tasks")
		return
	}

	now := time.Now()
	stats := statsResponse{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		}
		if tasks[i].Overdue(now) {
			stats.Overdue++
		}
	}

	respondJSON(w, http.StatusOK, stats)
}
