// Package rest implements the service.Service interface against the task
// service's plain REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/service"
)

const (
	// TasksPath is the collection endpoint.
	TasksPath = "/api/tasks"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 512
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Is matches service.ErrNotFound for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == service.ErrNotFound && e.Code == http.StatusNotFound
}

// Client implements service.Service over HTTP/JSON.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	timeout    time.Duration
	log        *logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log.Named("rest") }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    u,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from the loaded configuration.
func NewFromConfig(cfg *config.Config, log *logging.Logger) (*Client, error) {
	return New(cfg.API.BaseURL, WithTimeout(cfg.API.RequestTimeout), WithLogger(log))
}

// ListTasks fetches GET /api/tasks.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, TasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask posts to /api/tasks and returns the stored task.
func (c *Client) CreateTask(ctx context.Context, in service.NewTask) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, TasksPath, in, &task); err != nil {
		return service.Task{}, err
	}
	if task.ID == "" {
		return service.Task{}, fmt.Errorf("create task: response has no id")
	}
	return task, nil
}

// CompleteTask issues PUT /api/tasks/{id}/complete. Any response body is ignored.
// The id is sent as a single escaped path segment.
func (c *Client) CompleteTask(ctx context.Context, id service.TaskID) error {
	path := TasksPath + "/" + url.PathEscape(string(id)) + "/complete"
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// endpoint resolves an escaped path against the base URL.
func (c *Client) endpoint(escapedPath string) (string, error) {
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + escapedPath
	p, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return "", err
	}
	u.Path = p
	return u.String(), nil
}

// do sends one request. path is already escaped.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target, err := c.endpoint(path)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.log.Debugw("request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapError turns transport failures into short messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	return fmt.Errorf("request failed: %w", err)
}
