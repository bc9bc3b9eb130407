package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"taskboard/internal/cache"
	"taskboard/internal/handlers"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/taskboard.db")

	st := openStore(dbPath)
	defer st.Close()

	svc := service.New(st)

	// One cache per session; the server itself counts as a subscriber so
	// the entry is never evicted while it runs.
	c := cache.New(svc, cache.Options{})
	c.Subscribe()
	defer c.Unsubscribe()

	h := handlers.New(c)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Mount("/", h.Routes())

	addr := ":" + port
	log.Printf("Starting server on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// openStore opens the durable store, falling back to the in-memory store
// when no durable storage is available in this environment.
func openStore(dbPath string) store.Store {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Printf("Durable storage unavailable, using in-memory store: %v", err)
		return store.NewMemoryStore()
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		log.Printf("Durable storage unavailable, using in-memory store: %v", err)
		return store.NewMemoryStore()
	}
	return s
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
