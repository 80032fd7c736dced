// Package board owns the client's in-memory task collection.
//
// The collection is newest-first and never holds more than Capacity tasks
// after an insertion. Only the Controller mutates it, and only from a single
// goroutine (the UI event loop or a CLI command). The request halves
// (Fetch, SendComplete) touch no state and may run on any goroutine.
package board

import (
	"context"
	"fmt"

	"taskdeck/internal/logging"
	"taskdeck/internal/service"
)

// Capacity is the number of tasks kept in view.
const Capacity = 5

const (
	// LoadingMessage is shown while the initial load is outstanding.
	LoadingMessage = "Loading tasks..."

	// LoadFailedMessage is the page-level error after a failed load.
	LoadFailedMessage = "Failed to fetch tasks"
)

// Controller is the application state controller.
type Controller struct {
	svc service.Service
	log *logging.Logger

	tasks   []service.Task
	loading bool
	loadErr error
}

// New creates a controller over svc.
func New(svc service.Service, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{svc: svc, log: log.Named("board")}
}

// LoadInitial fetches the task list and replaces the collection.
// On failure the collection is left empty and Err reports the failure.
func (c *Controller) LoadInitial(ctx context.Context) error {
	c.BeginLoad()
	tasks, err := c.Fetch(ctx)
	c.ApplyLoad(tasks, err)
	return err
}

// BeginLoad marks the initial load as outstanding.
func (c *Controller) BeginLoad() {
	c.loading = true
	c.loadErr = nil
}

// Fetch issues the list request without touching state.
func (c *Controller) Fetch(ctx context.Context) ([]service.Task, error) {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// ApplyLoad records the outcome of a Fetch.
func (c *Controller) ApplyLoad(tasks []service.Task, err error) {
	c.loading = false
	if err != nil {
		c.log.Warnw("initial load failed", "error", err)
		c.loadErr = err
		c.tasks = nil
		return
	}
	c.loadErr = nil
	c.tasks = truncate(dedupe(tasks))
	c.log.Debugw("initial load", "count", len(c.tasks))
}

// RecordCreated prepends a task the form already created and drops
// whatever falls past Capacity.
func (c *Controller) RecordCreated(task service.Task) {
	next := make([]service.Task, 0, len(c.tasks)+1)
	next = append(next, task)
	for _, t := range c.tasks {
		if t.ID != task.ID {
			next = append(next, t)
		}
	}
	c.tasks = truncate(next)
	c.log.Debugw("task created", "id", task.ID, "count", len(c.tasks))
}

// Complete marks the task completed remotely and removes it locally.
// On failure the collection is unchanged.
func (c *Controller) Complete(ctx context.Context, id service.TaskID) error {
	if err := c.SendComplete(ctx, id); err != nil {
		return err
	}
	c.ApplyCompleted(id)
	return nil
}

// SendComplete issues the completion request without touching state.
func (c *Controller) SendComplete(ctx context.Context, id service.TaskID) error {
	if err := c.svc.CompleteTask(ctx, id); err != nil {
		c.log.Warnw("complete failed", "id", id, "error", err)
		return fmt.Errorf("complete task %s: %w", id, err)
	}
	return nil
}

// ApplyCompleted removes the task with the given id, wherever it is.
func (c *Controller) ApplyCompleted(id service.TaskID) {
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
			c.log.Debugw("task completed", "id", id, "count", len(c.tasks))
			return
		}
	}
}

// Tasks returns a copy of the collection, newest first.
func (c *Controller) Tasks() []service.Task {
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Len returns the number of tasks in view.
func (c *Controller) Len() int { return len(c.tasks) }

// Loading reports whether the initial load is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// Err returns the initial load failure, if any.
func (c *Controller) Err() error { return c.loadErr }

// Status returns the page-level message: loading, load failure, or "".
func (c *Controller) Status() string {
	switch {
	case c.loading:
		return LoadingMessage
	case c.loadErr != nil:
		return LoadFailedMessage
	}
	return ""
}

func truncate(tasks []service.Task) []service.Task {
	if len(tasks) > Capacity {
		return tasks[:Capacity:Capacity]
	}
	return tasks
}

// dedupe keeps the first occurrence of each id.
func dedupe(tasks []service.Task) []service.Task {
	seen := make(map[service.TaskID]bool, len(tasks))
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
