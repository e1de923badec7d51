package taiga

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riordanpawley/melia/internal/domain"
)

// disablePagination asks the service for the full task list instead of
// the default 30-item page.
var disablePagination = map[string]string{"x-disable-pagination": "1"}

// ListTasks fetches every task of a project, optionally narrowed to one
// user story.
func (c *Client) ListTasks(ctx context.Context, projectID int, storyID *int) ([]domain.Task, error) {
	path := fmt.Sprintf("/tasks?project=%d", projectID)
	if storyID != nil {
		path += fmt.Sprintf("&user_story=%d", *storyID)
	}

	var tasks []domain.Task
	if err := c.request(ctx, "listTasks", http.MethodGet, path, nil, disablePagination, &tasks); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched tasks", "project", projectID, "count", len(tasks))
	return tasks, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	var task domain.Task
	if err := c.requestTask(ctx, "getTask", id, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task and returns the server record, including the
// assigned id, ref and initial version.
func (c *Client) CreateTask(ctx context.Context, data domain.NewTask) (*domain.Task, error) {
	var task domain.Task
	if err := c.request(ctx, "createTask", http.MethodPost, "/tasks", data, nil, &task); err != nil {
		return nil, err
	}
	c.logger.Debug("task created", "id", task.ID, "ref", task.Ref)
	return &task, nil
}

// UpdateTask applies a partial patch. The patch always carries the
// version the task was read at; the service rejects stale versions with
// a conflict, surfaced as a RemoteError wrapping domain.ErrConflict.
func (c *Client) UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.requestTask(ctx, "updateTask", id, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), patch.Fields(), nil, &task); err != nil {
		return nil, err
	}
	c.logger.Debug("task updated", "id", id, "version", task.Version)
	return &task, nil
}

// DeleteTask deletes a task. Deleting twice fails the second time with
// not-found.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if err := c.requestTask(ctx, "deleteTask", id, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil); err != nil {
		return err
	}
	c.logger.Debug("task deleted", "id", id)
	return nil
}

type bulkCreateRequest struct {
	BulkTasks []domain.NewTask `json:"bulk_tasks"`
}

// BulkCreateTasks attempts one batched creation call. When the batch
// endpoint is unavailable (404/405) it falls back to one CreateTask per
// item, collecting per-position success or failure instead of aborting
// on the first error. The result slice always has the same length as
// the input.
func (c *Client) BulkCreateTasks(ctx context.Context, data []domain.NewTask) ([]domain.BulkResult, error) {
	var created []domain.Task
	err := c.request(ctx, "bulkCreateTasks", http.MethodPost, "/tasks/bulk_create", bulkCreateRequest{BulkTasks: data}, nil, &created)
	if err == nil {
		results := make([]domain.BulkResult, len(data))
		for i := range data {
			results[i].Data = data[i]
			if i < len(created) {
				task := created[i]
				results[i].Task = &task
			}
		}
		return results, nil
	}

	if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrNotSupported) {
		return nil, err
	}

	c.logger.Warn("bulk create endpoint unavailable, creating tasks individually", "count", len(data))
	results := make([]domain.BulkResult, len(data))
	for i, item := range data {
		results[i].Data = item
		task, err := c.CreateTask(ctx, item)
		if err != nil {
			c.logger.Warn("failed to create task", "subject", item.Subject, "error", err)
			results[i].Err = err
			continue
		}
		results[i].Task = task
	}
	return results, nil
}
