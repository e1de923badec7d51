package taiga

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/riordanpawley/melia/internal/domain"
)

// ListProjects fetches the projects visible to the logged-in user.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.request(ctx, "listProjects", http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched projects", "count", len(projects))
	return projects, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	var project domain.Project
	if err := c.request(ctx, "getProject", http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListUserStories fetches the user stories of a project.
func (c *Client) ListUserStories(ctx context.Context, projectID int) ([]domain.UserStory, error) {
	var stories []domain.UserStory
	path := fmt.Sprintf("/userstories?project=%d", projectID)
	if err := c.request(ctx, "listUserStories", http.MethodGet, path, nil, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// ListEpics fetches the epics of a project.
func (c *Client) ListEpics(ctx context.Context, projectID int) ([]domain.Epic, error) {
	var epics []domain.Epic
	path := fmt.Sprintf("/epics?project=%d", projectID)
	if err := c.request(ctx, "listEpics", http.MethodGet, path, nil, nil, &epics); err != nil {
		return nil, err
	}
	return epics, nil
}

// ListTaskStatuses fetches a project's ordered status list. The first
// entry is the default status for new tasks.
func (c *Client) ListTaskStatuses(ctx context.Context, projectID int) ([]domain.TaskStatus, error) {
	var statuses []domain.TaskStatus
	path := fmt.Sprintf("/task-statuses?project=%d", projectID)
	if err := c.request(ctx, "listTaskStatuses", http.MethodGet, path, nil, nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// ListMembers fetches a project's membership records. slug optionally
// narrows the query server-side.
func (c *Client) ListMembers(ctx context.Context, projectID int, slug string) ([]domain.Member, error) {
	path := fmt.Sprintf("/memberships?project=%d", projectID)
	if slug != "" {
		path += "&slug=" + url.QueryEscape(slug)
	}

	var members []domain.Member
	if err := c.request(ctx, "listMembers", http.MethodGet, path, nil, nil, &members); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched members", "project", projectID, "count", len(members))
	return members, nil
}
