// Package googletasks implements service.Gateway using the Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasksync/internal/backend"
	"tasksync/internal/config"
	"tasksync/internal/logging"
	"tasksync/internal/service"
	"tasksync/internal/taskerr"
)

const (
	// PageSize is the number of tasks requested per page.
	PageSize = 100

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Gateway using Google Tasks API.
type Client struct {
	svc    *tasks.Service
	listID string
	logger *slog.Logger
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Token source refreshes on demand.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	return NewWithHTTPClient(ctx, httpClient, cfg.ListID, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// Extra options are passed to the Tasks service, e.g. option.WithEndpoint.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listID string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if listID == "" {
		listID = config.DefaultListID
	}
	return &Client{svc: svc, listID: listID, logger: logging.OrDiscard(logger)}, nil
}

// List returns every task in the configured list, completed and hidden ones
// included, in API order.
func (c *Client) List(ctx context.Context) (service.ListResult, error) {
	result := []service.Task{}
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, fromAPI(t))
			}
			return nil
		})
	if err != nil {
		return service.ListResult{}, classify(err, "Failed to fetch tasks", taskerr.KindNotFound, taskerr.KindForbidden)
	}
	c.logger.Debug("listed tasks", "list", c.listID, "count", len(result))
	return service.ListResult{Success: true, Data: result}, nil
}

// Create validates input locally and inserts it.
func (c *Client) Create(ctx context.Context, input service.TaskCreate) (service.Task, error) {
	if err := backend.CheckCreate(input); err != nil {
		return service.Task{}, err
	}
	t := &tasks.Task{
		Title:  input.Title,
		Notes:  input.Description,
		Status: statusFor(input.IsCompleted),
	}
	created, err := c.svc.Tasks.Insert(c.listID, t).Context(ctx).Do()
	if err != nil {
		return service.Task{}, classify(err, "Failed to create task", taskerr.KindForbidden, taskerr.KindValidation)
	}
	return fromAPI(created), nil
}

// Update patches only the fields set in patch.
func (c *Client) Update(ctx context.Context, patch service.TaskPatch) (service.Task, error) {
	if err := backend.CheckUpdate(patch); err != nil {
		return service.Task{}, err
	}
	t := &tasks.Task{}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Notes = *patch.Description
		t.ForceSendFields = append(t.ForceSendFields, "Notes")
	}
	if patch.IsCompleted != nil {
		t.Status = statusFor(*patch.IsCompleted)
		if !*patch.IsCompleted {
			// Reopening requires clearing the completion time.
			t.NullFields = append(t.NullFields, "Completed")
		}
	}
	updated, err := c.svc.Tasks.Patch(c.listID, patch.ID, t).Context(ctx).Do()
	if err != nil {
		return service.Task{}, classify(err, "Failed to update task",
			taskerr.KindNotFound, taskerr.KindForbidden, taskerr.KindValidation)
	}
	return fromAPI(updated), nil
}

// Delete deletes a task.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := backend.CheckDelete(id); err != nil {
		return err
	}
	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return classify(err, "Failed to delete task", taskerr.KindNotFound, taskerr.KindForbidden)
	}
	return nil
}

func statusFor(completed bool) string {
	if completed {
		return statusCompleted
	}
	return statusNeedsAction
}

func fromAPI(t *tasks.Task) service.Task {
	return service.Task{
		ID:          t.Id,
		Title:       t.Title,
		Description: t.Notes,
		IsCompleted: t.Status == statusCompleted,
		UpdatedAt:   t.Updated,
	}
}

// classify maps API errors onto the domain taxonomy. Google reports a
// rejected payload as 400, which is treated like a 422 for create and update.
func classify(err error, prefix string, allowed ...taskerr.Kind) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return taskerr.Coerce(err, prefix)
	}

	status := apiErr.Code
	if status == http.StatusBadRequest && slices.Contains(allowed, taskerr.KindValidation) {
		status = http.StatusUnprocessableEntity
	}
	detail := apiErr.Message

	switch taskerr.KindForStatus(status, allowed...) {
	case taskerr.KindNotFound:
		return taskerr.NotFound("Task not found", detail)
	case taskerr.KindForbidden:
		return taskerr.Forbidden("Access denied (run: tasksync login)", detail)
	case taskerr.KindValidation:
		return taskerr.Validation("Invalid task data: "+detail, detail)
	case taskerr.KindRequest:
		return taskerr.Request(fmt.Sprintf("%s: %d %s", prefix, apiErr.Code, http.StatusText(apiErr.Code)), detail)
	}
	return taskerr.Coerce(err, prefix)
}
