package testutil

import (
	"net"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskdeck/internal/service"
)

// RecordedRequest is one request seen by FakeServer.
type RecordedRequest struct {
	Method      string
	Path        string
	RequestID   string
	ContentType string
	Body        string
}

// FakeServer serves the task REST contract on a loopback listener.
type FakeServer struct {
	// URL is the base URL to hand to the REST client.
	URL string

	app *fiber.App

	mu       sync.Mutex
	tasks    []service.Task // newest first
	nextID   int
	now      time.Time
	requests []RecordedRequest

	listStatus     int
	createStatus   int
	completeStatus int
	rawList        string
}

// NewFakeServer starts a server and stops it when the test ends.
func NewFakeServer(t testing.TB) *FakeServer {
	t.Helper()

	s := &FakeServer{
		nextID: 1,
		now:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true})
	app.Use(s.record)
	app.Get("/api/tasks", s.handleList)
	app.Post("/api/tasks", s.handleCreate)
	app.Put("/api/tasks/:id/complete", s.handleComplete)
	s.app = app

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	s.URL = "http://" + ln.Addr().String()

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return s
}

// AddTask stores an open task as the newest one and returns it.
func (s *FakeServer) AddTask(title, description string) service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(title, description)
}

// AddTaskWithID stores an open task under a caller-chosen id.
func (s *FakeServer) AddTaskWithID(id service.TaskID, title, description string) service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.insertLocked(title, description)
	s.tasks[0].ID = id
	task.ID = id
	return task
}

// FailList makes GET /api/tasks answer with status. Zero restores normal behavior.
func (s *FakeServer) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
}

// FailCreate makes POST /api/tasks answer with status.
func (s *FakeServer) FailCreate(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createStatus = status
}

// FailComplete makes PUT /api/tasks/{id}/complete answer with status.
func (s *FakeServer) FailComplete(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completeStatus = status
}

// SetRawList makes GET /api/tasks return body verbatim with status 200.
func (s *FakeServer) SetRawList(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawList = body
}

// Requests returns a copy of the requests seen so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Completed reports whether the task was marked completed.
func (s *FakeServer) Completed(id service.TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.IsCompleted
		}
	}
	return false
}

func (s *FakeServer) insertLocked(title, description string) service.Task {
	task := service.Task{
		ID:          service.TaskID(strconv.Itoa(s.nextID)),
		Title:       title,
		Description: description,
		CreatedAt:   s.now,
	}
	s.nextID++
	s.now = s.now.Add(time.Minute)
	s.tasks = append([]service.Task{task}, s.tasks...)
	return task
}

func (s *FakeServer) record(c *fiber.Ctx) error {
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:      c.Method(),
		Path:        c.Path(),
		RequestID:   c.Get("X-Request-ID"),
		ContentType: c.Get(fiber.HeaderContentType),
		Body:        string(c.Body()),
	})
	s.mu.Unlock()
	return c.Next()
}

func (s *FakeServer) handleList(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listStatus != 0 {
		return c.Status(s.listStatus).JSON(fiber.Map{"detail": "list failed"})
	}
	if s.rawList != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(s.rawList)
	}

	open := make([]service.Task, 0, ListLimit)
	for _, t := range s.tasks {
		if t.IsCompleted {
			continue
		}
		open = append(open, t)
		if len(open) == ListLimit {
			break
		}
	}
	return c.JSON(open)
}

func (s *FakeServer) handleCreate(c *fiber.Ctx) error {
	var in service.NewTask
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createStatus != 0 {
		return c.Status(s.createStatus).JSON(fiber.Map{"detail": "create failed"})
	}
	return c.JSON(s.insertLocked(in.Title, in.Description))
}

func (s *FakeServer) handleComplete(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	id := service.TaskID(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completeStatus != 0 {
		return c.Status(s.completeStatus).JSON(fiber.Map{"detail": "complete failed"})
	}
	for i, t := range s.tasks {
		if t.ID == id {
			completed := s.now
			s.tasks[i].IsCompleted = true
			s.tasks[i].CompletedAt = &completed
			return c.JSON(s.tasks[i])
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Task not found"})
}
