// Package cache holds the session-wide task collection cache. It layers
// staleness tracking, shared in-flight fetches, retry, and optimistic
// mutations with rollback over the simulated task service.
package cache

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/models"
)

// Service is the part of the task service the cache depends on.
type Service interface {
	FetchTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.CreateTaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, in models.UpdateTaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// RetryPolicy controls how a failed fetch is retried. MaxAttempts counts
// the initial attempt; Delay returns the pause before the given retry
// attempt (2-based).
type RetryPolicy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
}

// DefaultRetryPolicy retries a failed fetch once after a fixed one-second
// delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		Delay:       func(int) time.Duration { return time.Second },
	}
}

const (
	// DefaultStaleAfter is how long cached data is served without a refetch.
	DefaultStaleAfter = 5 * time.Minute
	// DefaultEvictAfter is how long unwatched cached data is kept at all.
	DefaultEvictAfter = 10 * time.Minute
)

// Options configures a Cache. Zero values fall back to the defaults above;
// Now is overridable for tests.
type Options struct {
	StaleAfter time.Duration
	EvictAfter time.Duration
	Retry      RetryPolicy
	Now        func() time.Time
}

// call is one in-flight service fetch, shared by every caller that needs
// fresh data while it runs.
type call struct {
	done  chan struct{}
	tasks []models.Task
	err   error
}

// Cache is the single client-side cache entry for the task collection.
// It is created once per session and passed explicitly to all consumers.
type Cache struct {
	svc        Service
	staleAfter time.Duration
	evictAfter time.Duration
	retry      RetryPolicy
	now        func() time.Time

	mu          sync.Mutex
	tasks       []models.Task
	hasData     bool
	fetchedAt   time.Time
	version     uint64 // bumped on every write to tasks
	fetchGen    uint64 // bumped when a fetch starts or the entry is invalidated
	inflight    *call
	subscribers int
}

// New creates a cache over the given service.
func New(svc Service, opts Options) *Cache {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	if opts.EvictAfter <= 0 {
		opts.EvictAfter = DefaultEvictAfter
	}
	if opts.Retry.MaxAttempts < 1 {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		svc:        svc,
		staleAfter: opts.StaleAfter,
		evictAfter: opts.EvictAfter,
		retry:      opts.Retry,
		now:        opts.Now,
	}
}

// Subscribe registers an active consumer; subscribed data is never evicted.
func (c *Cache) Subscribe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers++
}

// Unsubscribe drops a consumer registration.
func (c *Cache) Unsubscribe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribers > 0 {
		c.subscribers--
	}
}

// evictLocked drops data that outlived the eviction window with no active
// subscribers. Eviction is lazy: it runs on the next cache access.
func (c *Cache) evictLocked() {
	if c.hasData && c.subscribers == 0 && c.now().Sub(c.fetchedAt) > c.evictAfter {
		c.tasks = nil
		c.hasData = false
	}
}

// Cached returns the current cache contents without triggering a fetch.
// Callers use it for the last-good view when a fetch fails.
func (c *Cache) Cached() ([]models.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked()
	if !c.hasData {
		return nil, false
	}
	return models.CloneTasks(c.tasks), true
}

// Invalidate marks the cache entry stale and supersedes any in-flight
// fetch: a superseded fetch's late result is discarded when it arrives.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
	c.fetchGen++
	c.inflight = nil
}

// Fetch returns the cached collection if it is younger than the staleness
// threshold, otherwise it fetches from the service and replaces the cache
// entry. Concurrent callers share a single in-flight service call.
func (c *Cache) Fetch(ctx context.Context) ([]models.Task, error) {
	c.mu.Lock()
	c.evictLocked()

	if c.hasData && c.now().Sub(c.fetchedAt) < c.staleAfter {
		out := models.CloneTasks(c.tasks)
		c.mu.Unlock()
		return out, nil
	}

	if c.inflight != nil {
		cl := c.inflight
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-cl.done:
		}
		if cl.err != nil {
			return nil, cl.err
		}
		return models.CloneTasks(cl.tasks), nil
	}

	cl := &call{done: make(chan struct{})}
	c.inflight = cl
	c.fetchGen++
	gen := c.fetchGen
	c.mu.Unlock()

	tasks, err := c.fetchWithRetry(ctx)

	c.mu.Lock()
	if c.inflight == cl {
		c.inflight = nil
	}
	superseded := gen != c.fetchGen
	if err == nil && !superseded {
		c.tasks = models.CloneTasks(tasks)
		c.hasData = true
		c.fetchedAt = c.now()
		c.version++
	}
	if superseded && c.hasData {
		// A newer fetch or invalidation won; serve its view instead.
		tasks = models.CloneTasks(c.tasks)
		err = nil
	}
	c.mu.Unlock()

	cl.tasks = tasks
	cl.err = err
	close(cl.done)

	if err != nil {
		return nil, err
	}
	return models.CloneTasks(tasks), nil
}

// fetchWithRetry calls the service, retrying per the configured policy.
func (c *Cache) fetchWithRetry(ctx context.Context) ([]models.Task, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 && c.retry.Delay != nil {
			t := time.NewTimer(c.retry.Delay(attempt))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}
		tasks, err := c.svc.FetchTasks(ctx)
		if err == nil {
			return tasks, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// settle refreshes the cache from the authoritative source after a
// confirmed mutation, discarding the optimistic state in favor of the
// server view. A failed refetch just leaves the entry stale for the next
// read.
func (c *Cache) settle(ctx context.Context) {
	c.Invalidate()
	_, _ = c.Fetch(ctx)
}
