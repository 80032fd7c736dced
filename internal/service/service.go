package service

import (
	"context"
	"errors"
)

// Service defines the interface for task backend operations.
// Everything above the backend package talks to the remote task service
// through this interface only.
type Service interface {
	// ListTasks returns the open tasks in backend order (newest first).
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it as stored by the backend.
	CreateTask(ctx context.Context, in NewTask) (Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, id TaskID) error
}

// ErrNotFound reports that the backend has no task with the given id.
var ErrNotFound = errors.New("task not found")
