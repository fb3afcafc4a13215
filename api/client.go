// Package api is the client of the external task service.
//
// The service is the system of record for tasks; this package forwards JSON
// payloads to its fixed endpoints and decodes the answers:
//
//  1. GET /ObtenerTareas - List every task
//  2. GET /ObtenerTareaPorId/{id} - Get a task by ID
//  3. POST /CrearTarea - Create a new task
//  4. PUT /EditarTarea/{id} - Replace an existing task
//  5. DELETE /EliminarTarea/{id} - Delete an existing task
//
// ListTasks and CreateTask tolerate empty or malformed bodies, which the
// service sends in normal operation. GetTaskByID and UpdateTask do not.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TareasWeb/models"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is where the task service listens when nothing else is configured.
const DefaultBaseURL = "http://localhost:5197/Tareas"

// Operation names used in logs and metrics.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Client talks to the task service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger calls are reported to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root every endpoint is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks retrieves all tasks.
//
// A non-success status, an empty body or a body that is not a JSON array of
// tasks all yield an empty slice. Only a transport failure is returned as an error.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	status, body, err := c.do(ctx, OpList, http.MethodGet, "/ObtenerTareas", nil)
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if !successful(status) || len(bytes.TrimSpace(body)) == 0 {
		return tasks, nil
	}
	if err := json.Unmarshal(body, &tasks); err != nil {
		c.log.WithFields(logrus.Fields{
			"task operation": OpList,
			"request":        "GET /ObtenerTareas",
		}).Warn("discarding malformed task list: " + err.Error())
		return []models.Task{}, nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// GetTaskByID retrieves the task with the given id.
// The body is decoded whatever the status; a body that is not a task is an error.
func (c *Client) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	_, body, err := c.do(ctx, OpGet, http.MethodGet, "/ObtenerTareaPorId/"+url.PathEscape(id), nil)
	if err != nil {
		return models.Task{}, err
	}
	var task models.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return models.Task{}, fmt.Errorf("decoding task %s: %w", id, err)
	}
	return task, nil
}

// CreateTask sends data to the service, which assigns the id.
// It returns the decoded answer, or an empty object when the answer is empty or not JSON.
func (c *Client) CreateTask(ctx context.Context, data models.TaskData) (any, error) {
	_, body, err := c.do(ctx, OpCreate, http.MethodPost, "/CrearTarea", data)
	if err != nil {
		return nil, err
	}
	var out any
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &out) != nil {
		return map[string]any{}, nil
	}
	return out, nil
}

// UpdateTask replaces every field of the task with the given id.
// It returns the decoded answer; an answer that is not JSON is an error.
func (c *Client) UpdateTask(ctx context.Context, id string, task models.Task) (any, error) {
	_, body, err := c.do(ctx, OpUpdate, http.MethodPut, "/EditarTarea/"+url.PathEscape(id), task)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding update answer for task %s: %w", id, err)
	}
	return out, nil
}

// DeleteTask deletes the task with the given id and reports whether the service accepted it.
// A non-success status is reported as false, not as an error.
func (c *Client) DeleteTask(ctx context.Context, id string) (bool, error) {
	status, _, err := c.do(ctx, OpDelete, http.MethodDelete, "/EliminarTarea/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	return successful(status), nil
}

// do performs one call and reads the whole answer.
// The error is non-nil only when the request could not be sent or the body could not be read.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) (int, []byte, error) {
	start := time.Now()
	fields := logrus.Fields{
		"task operation": op,
		"request":        method + " " + path,
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding %s payload: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("building %s request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(op, outcomeError, time.Since(start))
		c.log.WithFields(fields).Error(err.Error())
		return 0, nil, fmt.Errorf("calling task service (%s): %w", op, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.metrics.observe(op, outcomeError, time.Since(start))
		c.log.WithFields(fields).Error(err.Error())
		return 0, nil, fmt.Errorf("reading task service answer (%s): %w", op, err)
	}

	outcome := outcomeOK
	if !successful(res.StatusCode) {
		outcome = outcomeStatus
	}
	c.metrics.observe(op, outcome, time.Since(start))
	fields["status"] = res.StatusCode
	c.log.WithFields(fields).Debug("task service answered")
	return res.StatusCode, body, nil
}

func successful(status int) bool {
	return status >= 200 && status < 300
}
