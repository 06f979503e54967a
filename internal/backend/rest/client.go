// Package rest implements service.Gateway against the remote collection store
// HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"tasksync/internal/backend"
	"tasksync/internal/config"
	"tasksync/internal/logging"
	"tasksync/internal/service"
	"tasksync/internal/taskerr"
)

const (
	// tasksPath is the collection path under the base URL.
	tasksPath = "/tasks"

	// requestIDHeader carries a per-call correlation id.
	requestIDHeader = "X-Request-ID"

	// maxDetailLen caps non-JSON error bodies copied into Detail.
	maxDetailLen = 200
)

// Client implements service.Gateway over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// operation describes one gateway call for error classification.
type operation struct {
	verb    string
	noun    string
	allowed []taskerr.Kind
}

var (
	opList   = operation{"fetch", "tasks", []taskerr.Kind{taskerr.KindNotFound, taskerr.KindForbidden}}
	opCreate = operation{"create", "task", []taskerr.Kind{taskerr.KindForbidden, taskerr.KindValidation}}
	opUpdate = operation{"update", "task", []taskerr.Kind{taskerr.KindNotFound, taskerr.KindForbidden, taskerr.KindValidation}}
	opDelete = operation{"delete", "task", []taskerr.Kind{taskerr.KindNotFound, taskerr.KindForbidden}}
)

// failure is the prefix used when a call fails before a status is known.
func (op operation) failure() string {
	return fmt.Sprintf("Failed to %s %s", op.verb, op.noun)
}

// New creates a client from configuration. A configured token is attached as
// a bearer token on every request.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if err := checkBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	return NewWithHTTPClient(cfg.BaseURL, httpClient, logger), nil
}

// checkBaseURL requires an absolute http(s) URL with a host.
func checkBaseURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", raw)
	}
	return nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.OrDiscard(logger),
	}
}

// List returns every task in server order.
func (c *Client) List(ctx context.Context) (service.ListResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, tasksPath, nil)
	if err != nil {
		return service.ListResult{}, taskerr.Coerce(err, opList.failure())
	}
	if !isSuccess(status) {
		return service.ListResult{}, statusError(opList, status, body)
	}

	var tasks []service.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return service.ListResult{}, taskerr.Coerce(err, opList.failure())
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return service.ListResult{Success: true, Data: tasks}, nil
}

// Create validates input locally and posts it.
func (c *Client) Create(ctx context.Context, input service.TaskCreate) (service.Task, error) {
	if err := backend.CheckCreate(input); err != nil {
		return service.Task{}, err
	}
	return c.send(ctx, opCreate, http.MethodPost, tasksPath, input)
}

// Update validates the patch locally and sends the fields that are set.
func (c *Client) Update(ctx context.Context, patch service.TaskPatch) (service.Task, error) {
	if err := backend.CheckUpdate(patch); err != nil {
		return service.Task{}, err
	}
	return c.send(ctx, opUpdate, http.MethodPut, taskPath(patch.ID), patch)
}

// Delete removes a task. Any 2xx response is success; the body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := backend.CheckDelete(id); err != nil {
		return err
	}
	status, body, err := c.do(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return taskerr.Coerce(err, opDelete.failure())
	}
	if !isSuccess(status) {
		return statusError(opDelete, status, body)
	}
	return nil
}

// send performs a call whose success body is a single task.
func (c *Client) send(ctx context.Context, op operation, method, path string, payload any) (service.Task, error) {
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return service.Task{}, taskerr.Coerce(err, op.failure())
	}
	if !isSuccess(status) {
		return service.Task{}, statusError(op, status, body)
	}

	var task service.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return service.Task{}, taskerr.Coerce(err, op.failure())
	}
	return task, nil
}

// do issues one request and reads the whole response body.
func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// statusError classifies a non-2xx response for op.
func statusError(op operation, status int, body []byte) error {
	detail := decodeDetail(body)
	kind := taskerr.KindForStatus(status, op.allowed...)

	var msg string
	switch kind {
	case taskerr.KindNotFound:
		if op.noun == "tasks" {
			msg = "Tasks not found"
		} else {
			msg = "Task not found"
		}
	case taskerr.KindForbidden:
		msg = fmt.Sprintf("Not allowed to %s %s", op.verb, op.noun)
	case taskerr.KindValidation:
		msg = "Invalid task data"
		if detail != "" {
			msg += ": " + detail
		}
	case taskerr.KindRequest:
		msg = fmt.Sprintf("%s: %d %s", op.failure(), status, http.StatusText(status))
	}
	return taskerr.FromStatus(status, msg, detail, op.allowed...)
}

// truncate cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n])
}

// errorBody covers the error shapes seen from task stores:
// {"detail": "..."}, {"detail": [{"msg": "..."}]} and {"error": "..."}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
}

func decodeDetail(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return truncate(body, maxDetailLen)
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(eb.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, ", ")
		}
		return string(eb.Detail)
	}
	return eb.Error
}
