// Package bulk applies one field change (assignee or status) across
// every task in the currently loaded list: a confirmed, serial,
// partial-failure-tolerant loop over persisted tasks, plus in-memory
// pre-filling of pending-new-task cards.
package bulk

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/state"
	"github.com/riordanpawley/melia/internal/types"
)

// Gateway is the slice of the remote API bulk operations need.
type Gateway interface {
	UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error)
}

// Notifier surfaces transient notices to the user.
type Notifier interface {
	Notify(message string, level types.ToastLevel)
}

// Busy shows/hides the global busy indicator around the whole loop.
type Busy interface {
	ShowBusy()
	HideBusy()
}

// Reloader refetches the task list after a successful mutation.
type Reloader interface {
	ReloadTasks(ctx context.Context) error
}

// Confirmer asks the user for explicit confirmation before an operation
// that touches every visible task.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Outcome is the aggregate result of one bulk operation.
type Outcome struct {
	Updated   int // persisted tasks patched successfully
	Failed    int // persisted tasks whose patch failed
	Prefilled int // pending-new-task cards filled in memory only
}

// Service is the bulk operation coordinator.
type Service struct {
	gw      Gateway
	state   *state.Store
	notify  Notifier
	busy    Busy
	reload  Reloader
	confirm Confirmer
	logger  *slog.Logger
}

// NewService creates the coordinator.
func NewService(gw Gateway, st *state.Store, notify Notifier, busy Busy, reload Reloader, confirm Confirmer, logger *slog.Logger) *Service {
	return &Service{
		gw:      gw,
		state:   st,
		notify:  notify,
		busy:    busy,
		reload:  reload,
		confirm: confirm,
		logger:  logger,
	}
}

// AssignAll sets the assignee of every listed task to memberID (nil =
// unassign). Tasks already carrying the target value are skipped.
func (s *Service) AssignAll(ctx context.Context, memberID *int) (Outcome, error) {
	return s.apply(ctx, applySpec{
		confirmMessage: "Apply this assignment to ALL listed tasks?",
		skip: func(t domain.Task) bool {
			return domain.IntPtrEqual(t.AssignedTo, memberID)
		},
		patch: func(t domain.Task) domain.TaskPatch {
			return domain.TaskPatch{Version: t.Version, AssignedTo: memberID, AssignedToSet: true}
		},
		prefill: func(d *domain.Draft) {
			d.AssignedTo = memberID
		},
	})
}

// SetStatusAll sets the status of every listed task to statusID. Tasks
// already in the target status are skipped.
func (s *Service) SetStatusAll(ctx context.Context, statusID int) (Outcome, error) {
	if statusID == 0 {
		s.notify.Notify("Select a status to apply", types.ToastWarning)
		return Outcome{}, nil
	}
	return s.apply(ctx, applySpec{
		confirmMessage: "Apply this status to ALL listed tasks?",
		skip: func(t domain.Task) bool {
			return t.Status == statusID
		},
		patch: func(t domain.Task) domain.TaskPatch {
			status := statusID
			return domain.TaskPatch{Version: t.Version, Status: &status}
		},
		prefill: func(d *domain.Draft) {
			d.Status = statusID
		},
	})
}

type applySpec struct {
	confirmMessage string
	skip           func(domain.Task) bool
	patch          func(domain.Task) domain.TaskPatch
	prefill        func(*domain.Draft)
}

// apply runs the shared bulk algorithm. The persisted-task loop is
// deliberately serial: one outstanding request at a time keeps per-item
// version reads/writes race-free against each other and avoids flooding
// the service. A per-item failure is counted and never aborts the loop.
func (s *Service) apply(ctx context.Context, spec applySpec) (Outcome, error) {
	tasks := s.state.Tasks()
	drafts := s.state.Drafts()

	if len(tasks) == 0 && len(drafts) == 0 {
		s.notify.Notify("No tasks to update", types.ToastWarning)
		return Outcome{}, nil
	}

	ok, err := s.confirm.Confirm(ctx, "Bulk update", spec.confirmMessage)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{}, domain.ErrUserCanceled
	}

	s.busy.ShowBusy()
	defer s.busy.HideBusy()

	var out Outcome
	for _, task := range tasks {
		if spec.skip(task) {
			continue
		}
		// Each item carries its own last-known version, so a task that
		// was concurrently modified elsewhere fails alone.
		if _, err := s.gw.UpdateTask(ctx, task.ID, spec.patch(task)); err != nil {
			s.logger.Warn("bulk update failed for task", "id", task.ID, "error", err)
			out.Failed++
			continue
		}
		out.Updated++
	}

	out.Prefilled = s.state.MutateDrafts(spec.prefill)

	s.report(out)

	if out.Updated > 0 {
		if err := s.reload.ReloadTasks(ctx); err != nil {
			s.logger.Warn("task list reload failed after bulk update", "error", err)
			s.notify.Notify("Failed to reload tasks: "+err.Error(), types.ToastError)
			return out, err
		}
	}
	return out, nil
}

func (s *Service) report(out Outcome) {
	var parts []string
	if out.Updated > 0 {
		parts = append(parts, strconv.Itoa(out.Updated)+" updated.")
	}
	if out.Failed > 0 {
		parts = append(parts, strconv.Itoa(out.Failed)+" failed.")
	}
	if out.Prefilled > 0 {
		parts = append(parts, strconv.Itoa(out.Prefilled)+" new cards pre-filled.")
	}

	if len(parts) == 0 {
		s.notify.Notify("No changes needed.", types.ToastInfo)
		return
	}

	level := types.ToastSuccess
	if out.Failed > 0 {
		level = types.ToastWarning
	}
	s.notify.Notify(strings.Join(parts, " "), level)
}
