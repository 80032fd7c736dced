package tui

import "taskdeck/internal/service"

// tasksLoadedMsg carries the outcome of the initial load.
type tasksLoadedMsg struct {
	tasks []service.Task
	err   error
}

// taskCreatedMsg carries the outcome of a create request.
type taskCreatedMsg struct {
	task service.Task
	err  error
}

// taskCompletedMsg carries the outcome of a completion request.
type taskCompletedMsg struct {
	id  service.TaskID
	err error
}
