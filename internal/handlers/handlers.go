package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/cache"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	cache *cache.Cache
}

// New creates a new Handlers instance over the session cache.
func New(c *cache.Cache) *Handlers {
	return &Handlers{cache: c}
}

// Routes returns the task API routes.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/tasks", h.ListTasks)
	r.Get("/api/tasks/stats", h.TaskStats)
	r.Post("/api/tasks", h.CreateTask)
	r.Put("/api/tasks/{id}", h.UpdateTask)
	r.Delete("/api/tasks/{id}", h.DeleteTask)
	return r
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError sends a JSON error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func respondServerError(w http.ResponseWriter, err error) {
	log.Printf("internal server error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
