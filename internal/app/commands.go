package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/melia/internal/services/tasks"
)

// requestTimeout bounds the foreground load commands; service calls
// that show the busy indicator manage their own deadlines.
func (m *Model) requestTimeout() time.Duration {
	seconds := m.cfg.Network.RequestTimeout
	if seconds <= 0 {
		seconds = 15
	}
	return time.Duration(seconds) * time.Second
}

// loadProjectsCmd fetches the project list and the local favorites.
func (m *Model) loadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout())
		defer cancel()

		projects, err := m.client.ListProjects(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}

		favIDs, err := m.favs.List(ctx)
		if err != nil {
			m.logger.Warn("failed to load favorites", "error", err)
		}
		return projectsLoadedMsg{projects: projects, favorites: favIDs}
	}
}

// loadStoriesCmd fetches everything the story screen shows. The story
// list is mandatory; the full project record (the list endpoint returns
// an abbreviated one) and the epics are best effort.
func (m *Model) loadStoriesCmd(projectID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout())
		defer cancel()

		stories, err := m.client.ListUserStories(ctx, projectID)
		if err != nil {
			return loadFailedMsg{err: err}
		}

		project, err := m.client.GetProject(ctx, projectID)
		if err != nil {
			m.logger.Warn("failed to refresh project", "id", projectID, "error", err)
		}
		epics, err := m.client.ListEpics(ctx, projectID)
		if err != nil {
			m.logger.Warn("failed to load epics", "project", projectID, "error", err)
		}

		return storiesLoadedMsg{project: project, stories: stories, epics: epics}
	}
}

func (m *Model) loadBoardCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout())
		defer cancel()

		if err := m.st.LoadBoard(ctx, m.client); err != nil {
			return loadFailedMsg{err: err}
		}
		return boardLoadedMsg{}
	}
}

func (m *Model) toggleFavoriteCmd(projectID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout())
		defer cancel()

		on, err := m.favs.Toggle(ctx, projectID)
		return favoriteToggledMsg{projectID: projectID, on: on, err: err}
	}
}

func (m *Model) saveCmd(card tasks.Card) tea.Cmd {
	return func() tea.Msg {
		return saveResultMsg{err: m.tasksSvc.Save(context.Background(), card)}
	}
}

func (m *Model) deleteCmd(card tasks.Card) tea.Cmd {
	return func() tea.Msg {
		return deleteResultMsg{err: m.tasksSvc.Delete(context.Background(), card)}
	}
}

func (m *Model) saveAllCmd() tea.Cmd {
	return func() tea.Msg {
		return saveAllResultMsg{err: m.tasksSvc.SaveAll(context.Background())}
	}
}

// bulkAssignCmd runs without a deadline: the coordinator blocks on the
// user's confirmation before touching the network.
func (m *Model) bulkAssignCmd(memberID *int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.bulkSvc.AssignAll(context.Background(), memberID)
		return bulkResultMsg{outcome: out, err: err}
	}
}

func (m *Model) bulkStatusCmd(statusID int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.bulkSvc.SetStatusAll(context.Background(), statusID)
		return bulkResultMsg{outcome: out, err: err}
	}
}
