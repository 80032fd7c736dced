// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"taskdeck/internal/service"
)

// ListLimit mirrors the reference backend, which returns at most five open tasks.
const ListLimit = 5

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task // newest first
	nextID int
	now    time.Time

	// Error injection for testing
	ListErr     error
	CreateErr   error
	CompleteErr error

	// Call counters
	ListCalls     int
	CreateCalls   int
	CompleteCalls int

	// LastCreate is the most recent create request body.
	LastCreate service.NewTask
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		now:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// AddTask stores an open task as the newest one and returns it.
func (f *FakeService) AddTask(title, description string) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertLocked(title, description)
}

func (f *FakeService) insertLocked(title, description string) service.Task {
	task := service.Task{
		ID:          service.TaskID(strconv.Itoa(f.nextID)),
		Title:       title,
		Description: description,
		CreatedAt:   f.now,
	}
	f.nextID++
	f.now = f.now.Add(time.Minute)
	f.tasks = append([]service.Task{task}, f.tasks...)
	return task
}

// Task returns the stored task with the given id.
func (f *FakeService) Task(id service.TaskID) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	open := make([]service.Task, 0, ListLimit)
	for _, t := range f.tasks {
		if t.IsCompleted {
			continue
		}
		open = append(open, t)
		if len(open) == ListLimit {
			break
		}
	}
	return open, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.NewTask) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastCreate = in
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	return f.insertLocked(in.Title, in.Description), nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id service.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CompleteCalls++
	if f.CompleteErr != nil {
		return f.CompleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			completed := f.now
			f.tasks[i].IsCompleted = true
			f.tasks[i].CompletedAt = &completed
			return nil
		}
	}
	return service.ErrNotFound
}
