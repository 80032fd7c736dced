// Package form holds the task creation form's rules and submit lifecycle.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskdeck/internal/service"
)

const (
	EmptyFieldsMessage  = "Please fill in all fields"
	CreateFailedMessage = "Failed to create task"

	SubmitLabel     = "Create Task"
	SubmittingLabel = "Creating..."
)

var (
	// ErrEmptyFields rejects a submission locally.
	ErrEmptyFields = errors.New(EmptyFieldsMessage)

	// ErrCreateFailed wraps any failure of the create request.
	ErrCreateFailed = errors.New(CreateFailedMessage)

	// ErrSubmitting rejects a second submit while one is in flight.
	ErrSubmitting = errors.New("submission already in progress")
)

// Validate reports ErrEmptyFields if either field is blank after trimming.
func Validate(title, description string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return ErrEmptyFields
	}
	return nil
}

// Message returns the dialog text for a submit error.
func Message(err error) string {
	if errors.Is(err, ErrEmptyFields) {
		return EmptyFieldsMessage
	}
	return CreateFailedMessage
}

// Form is the creation form state.
type Form struct {
	Title       string
	Description string

	submitting bool
}

// Submitting reports whether a create request is outstanding.
func (f *Form) Submitting() bool { return f.submitting }

// Label is the submit control's caption.
func (f *Form) Label() string {
	if f.submitting {
		return SubmittingLabel
	}
	return SubmitLabel
}

// Begin validates the fields and marks the form as submitting.
// The returned request carries the text as entered.
func (f *Form) Begin() (service.NewTask, error) {
	if f.submitting {
		return service.NewTask{}, ErrSubmitting
	}
	if err := Validate(f.Title, f.Description); err != nil {
		return service.NewTask{}, err
	}
	f.submitting = true
	return service.NewTask{Title: f.Title, Description: f.Description}, nil
}

// Succeed clears the fields after a successful create.
func (f *Form) Succeed() {
	f.submitting = false
	f.Title = ""
	f.Description = ""
}

// Fail ends the submission and keeps the entered text for a retry.
func (f *Form) Fail() {
	f.submitting = false
}

// Create sends the request. It touches no form state.
func Create(ctx context.Context, svc service.Service, in service.NewTask) (service.Task, error) {
	task, err := svc.CreateTask(ctx, in)
	if err != nil {
		return service.Task{}, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}
	return task, nil
}

// Submit runs the whole lifecycle synchronously: validate, create, then
// clear on success or keep the text on failure.
func (f *Form) Submit(ctx context.Context, svc service.Service) (service.Task, error) {
	in, err := f.Begin()
	if err != nil {
		return service.Task{}, err
	}
	task, err := Create(ctx, svc, in)
	if err != nil {
		f.Fail()
		return service.Task{}, err
	}
	f.Succeed()
	return task, nil
}
