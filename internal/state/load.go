package state

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/riordanpawley/melia/internal/domain"
)

// BoardGateway is the slice of the remote API the board loader needs.
type BoardGateway interface {
	ListTasks(ctx context.Context, projectID int, storyID *int) ([]domain.Task, error)
	ListTaskStatuses(ctx context.Context, projectID int) ([]domain.TaskStatus, error)
	ListMembers(ctx context.Context, projectID int, slug string) ([]domain.Member, error)
}

// LoadBoard fetches the task list, status list and member list for the
// selected project in parallel and installs them atomically. These three
// reads are independent and conflict-free, so this is the one place
// requests are dispatched concurrently.
func (s *Store) LoadBoard(ctx context.Context, gw BoardGateway) error {
	project := s.Project()
	if project == nil {
		return nil
	}
	var storyID *int
	if story := s.Story(); story != nil {
		id := story.ID
		storyID = &id
	}

	var (
		tasks    []domain.Task
		statuses []domain.TaskStatus
		members  []domain.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = gw.ListTasks(gctx, project.ID, storyID)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = gw.ListTaskStatuses(gctx, project.ID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = gw.ListMembers(gctx, project.ID, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.setBoard(tasks, statuses, members)
	return nil
}

// ReloadTasks refetches only the task list, keeping statuses and
// members. Used after a successful mutation so local state matches the
// server-computed record (ref, version, concurrent edits by others).
func (s *Store) ReloadTasks(ctx context.Context, gw BoardGateway) error {
	project := s.Project()
	if project == nil {
		return nil
	}
	var storyID *int
	if story := s.Story(); story != nil {
		id := story.ID
		storyID = &id
	}

	tasks, err := gw.ListTasks(ctx, project.ID, storyID)
	if err != nil {
		return err
	}
	s.SetTasks(tasks)
	return nil
}
