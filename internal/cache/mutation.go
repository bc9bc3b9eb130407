package cache

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

// mutation captures the optimistic effect of one in-flight write so it can
// be confirmed or rolled back independently of writes that land after it.
// Snapshots are keyed per invocation: a mutation that starts while another
// is unsettled snapshots the first one's optimistic state, not the
// original.
type mutation struct {
	snapshot []models.Task // cache contents before the optimistic apply
	had      bool          // whether the cache held data at apply time
	applied  uint64        // cache version right after the optimistic apply
	undo     func()        // targeted inverse of this mutation's own effect, run under c.mu
}

// beginLocked snapshots the current cache state for rollback.
func (c *Cache) beginLocked() *mutation {
	return &mutation{
		snapshot: models.CloneTasks(c.tasks),
		had:      c.hasData,
		applied:  c.version,
	}
}

// rollback restores the pre-mutation state. If other writes landed after
// this mutation's optimistic apply, only the mutation's own record is
// reverted, and only while it still carries this mutation's optimistic
// effect, so a later confirmed write is never clobbered.
func (c *Cache) rollback(m *mutation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version == m.applied {
		c.tasks = m.snapshot
		c.hasData = m.had
	} else if m.undo != nil {
		m.undo()
	}
	c.version++
}

// Create appends a provisional task to the cache immediately, then calls
// the service. On success the cache is refreshed from the authoritative
// source and the confirmed task returned; on failure the optimistic state
// is rolled back.
func (c *Cache) Create(ctx context.Context, in models.CreateTaskInput) (models.Task, error) {
	m := c.applyCreate(in)

	task, err := c.svc.CreateTask(ctx, in)
	if err != nil {
		c.rollback(m)
		return models.Task{}, err
	}

	c.settle(ctx)
	return task, nil
}

func (c *Cache) applyCreate(in models.CreateTaskInput) *mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.beginLocked()
	if !c.hasData {
		return m
	}

	now := c.now()
	provisional := models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.tasks = append(models.CloneTasks(c.tasks), provisional)
	c.version++
	m.applied = c.version

	id := provisional.ID
	m.undo = func() { c.removeLocked(id) }
	return m
}

// Update merges the patch into the matching cached record immediately,
// then calls the service; same snapshot, rollback and refresh discipline
// as Create.
func (c *Cache) Update(ctx context.Context, in models.UpdateTaskInput) (models.Task, error) {
	m := c.applyUpdate(in)

	task, err := c.svc.UpdateTask(ctx, in)
	if err != nil {
		c.rollback(m)
		return models.Task{}, err
	}

	c.settle(ctx)
	return task, nil
}

func (c *Cache) applyUpdate(in models.UpdateTaskInput) *mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.beginLocked()
	if !c.hasData {
		return m
	}

	for i, t := range c.tasks {
		if t.ID != in.ID {
			continue
		}
		before := t
		tasks := models.CloneTasks(c.tasks)
		tasks[i] = in.ApplyTo(t, c.now())
		optimistic := tasks[i]
		c.tasks = tasks
		c.version++
		m.applied = c.version
		m.undo = func() { c.restoreIfUnchangedLocked(before, optimistic) }
		break
	}
	return m
}

// Delete removes the matching record from the cache immediately, then
// calls the service; same snapshot, rollback and refresh discipline as
// Create.
func (c *Cache) Delete(ctx context.Context, id string) error {
	m := c.applyDelete(id)

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.rollback(m)
		return err
	}

	c.settle(ctx)
	return nil
}

func (c *Cache) applyDelete(id string) *mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.beginLocked()
	if !c.hasData {
		return m
	}

	for i, t := range c.tasks {
		if t.ID != id {
			continue
		}
		removed := t
		at := i
		tasks := models.CloneTasks(c.tasks)
		c.tasks = append(tasks[:i], tasks[i+1:]...)
		c.version++
		m.applied = c.version
		m.undo = func() { c.reinsertIfAbsentLocked(removed, at) }
		break
	}
	return m
}

// removeLocked drops the record with the given id, if present.
func (c *Cache) removeLocked(id string) {
	for i, t := range c.tasks {
		if t.ID == id {
			tasks := models.CloneTasks(c.tasks)
			c.tasks = append(tasks[:i], tasks[i+1:]...)
			return
		}
	}
}

// restoreIfUnchangedLocked puts a record back wherever its id currently
// sits, but only while the record still holds the optimistic value this
// mutation wrote; once a later confirmed write rewrote it, that write
// owns the record and the revert is skipped.
func (c *Cache) restoreIfUnchangedLocked(before, optimistic models.Task) {
	for i, t := range c.tasks {
		if t.ID == before.ID {
			if t != optimistic {
				return
			}
			tasks := models.CloneTasks(c.tasks)
			tasks[i] = before
			c.tasks = tasks
			return
		}
	}
}

// reinsertIfAbsentLocked re-inserts a removed record at its original
// position, clamped to the current collection size. If the record already
// came back through an authoritative refresh it is left alone.
func (c *Cache) reinsertIfAbsentLocked(task models.Task, at int) {
	for _, t := range c.tasks {
		if t.ID == task.ID {
			return
		}
	}
	if at > len(c.tasks) {
		at = len(c.tasks)
	}
	tasks := make([]models.Task, 0, len(c.tasks)+1)
	tasks = append(tasks, c.tasks[:at]...)
	tasks = append(tasks, task)
	tasks = append(tasks, c.tasks[at:]...)
	c.tasks = tasks
}
