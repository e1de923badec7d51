// Package tasks implements the save workflow for task cards: minimal
// diffs against the snapshot captured at render time for existing
// tasks, full records for drafts, and the save-all path for pending
// cards.
package tasks

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/state"
	"github.com/riordanpawley/melia/internal/types"
)

// Gateway is the remote task API consumed by the save workflow.
type Gateway interface {
	CreateTask(ctx context.Context, data domain.NewTask) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int) error
	BulkCreateTasks(ctx context.Context, data []domain.NewTask) ([]domain.BulkResult, error)
}

// Notifier surfaces transient, dismissible notices to the user.
type Notifier interface {
	Notify(message string, level types.ToastLevel)
}

// Busy shows/hides the global busy indicator around an operation group.
type Busy interface {
	ShowBusy()
	HideBusy()
}

// Reloader refetches the task list from the server. Saves never merge
// the returned record into local state; they always refetch so
// server-computed fields (ref, version) stay authoritative.
type Reloader interface {
	ReloadTasks(ctx context.Context) error
}

// Card is one editable task card as handed over by the UI: the edited
// form values plus, for persisted tasks, the snapshot captured when the
// card was rendered.
type Card struct {
	TaskID   int    // 0 for a pending-new-task
	DraftKey string // set for a pending-new-task
	Version  int
	Original domain.Snapshot
	Form     domain.Form
}

// IsNew reports whether the card has no remote identifier yet.
func (c Card) IsNew() bool {
	return c.TaskID == 0
}

// Service is the diff-and-save engine.
type Service struct {
	gw     Gateway
	state  *state.Store
	notify Notifier
	busy   Busy
	reload Reloader
	logger *slog.Logger
}

// NewService creates the save workflow service.
func NewService(gw Gateway, st *state.Store, notify Notifier, busy Busy, reload Reloader, logger *slog.Logger) *Service {
	return &Service{
		gw:     gw,
		state:  st,
		notify: notify,
		busy:   busy,
		reload: reload,
		logger: logger,
	}
}

// Save persists one card. New cards send the full record; existing
// cards send only the fields that differ from the render-time snapshot,
// plus the version. A card whose edits cancel out issues no network
// call at all. Validation and remote failures both return an error so
// the card stays in editing state and the user's input is not lost; the
// returned error reflects what the notification already told the user.
func (s *Service) Save(ctx context.Context, card Card) error {
	form := trimmed(card.Form)

	if form.Subject == "" {
		s.notify.Notify("Task subject is required", types.ToastWarning)
		return &domain.ValidationError{Field: "subject", Message: "subject is required"}
	}

	s.busy.ShowBusy()
	defer s.busy.HideBusy()

	if card.IsNew() {
		return s.saveNew(ctx, card.DraftKey, form)
	}
	return s.saveExisting(ctx, card, form)
}

func (s *Service) saveNew(ctx context.Context, draftKey string, form domain.Form) error {
	project := s.state.Project()
	if project == nil {
		s.notify.Notify("No project selected", types.ToastWarning)
		return &domain.ValidationError{Field: "project", Message: "no project selected"}
	}

	status := form.Status
	if status == 0 {
		if def, ok := domain.DefaultStatus(s.state.Statuses()); ok {
			status = def
		}
	}

	data := domain.NewTask{
		Subject:     form.Subject,
		Description: form.Description,
		Project:     project.ID,
		Status:      status,
		AssignedTo:  form.AssignedTo,
	}
	if story := s.state.Story(); story != nil {
		id := story.ID
		data.UserStory = &id
	}

	task, err := s.gw.CreateTask(ctx, data)
	if err != nil {
		s.logger.Warn("task creation failed", "subject", form.Subject, "error", err)
		s.notify.Notify("Failed to save task: "+err.Error(), types.ToastError)
		return err
	}

	s.logger.Info("task created", "id", task.ID, "ref", task.Ref)
	s.state.RemoveDraft(draftKey)
	s.notify.Notify("Task created", types.ToastSuccess)
	return s.reloadList(ctx)
}

func (s *Service) saveExisting(ctx context.Context, card Card, form domain.Form) error {
	patch := card.Original.Diff(form, card.Version)
	if patch.Empty() {
		s.notify.Notify("No changes detected", types.ToastInfo)
		return nil
	}

	if _, err := s.gw.UpdateTask(ctx, card.TaskID, patch); err != nil {
		s.logger.Warn("task update failed", "id", card.TaskID, "error", err)
		if domain.IsConflict(err) {
			s.notify.Notify("Task changed since you loaded it; reload and retry", types.ToastError)
		} else {
			s.notify.Notify("Failed to save task: "+err.Error(), types.ToastError)
		}
		return err
	}

	s.logger.Info("task updated", "id", card.TaskID)
	s.notify.Notify("Task updated", types.ToastSuccess)
	return s.reloadList(ctx)
}

// Delete removes a card. Drafts are discarded locally; persisted tasks
// are deleted remotely and the list is reloaded.
func (s *Service) Delete(ctx context.Context, card Card) error {
	if card.IsNew() {
		s.state.RemoveDraft(card.DraftKey)
		return nil
	}

	s.busy.ShowBusy()
	defer s.busy.HideBusy()

	if err := s.gw.DeleteTask(ctx, card.TaskID); err != nil {
		s.logger.Warn("task deletion failed", "id", card.TaskID, "error", err)
		s.notify.Notify("Failed to delete task: "+err.Error(), types.ToastError)
		return err
	}

	s.notify.Notify("Task deleted", types.ToastSuccess)
	return s.reloadList(ctx)
}

// SaveAll persists every pending-new-task card in one bulk creation.
// Cards with an empty subject are skipped with a warning; per-item
// failures are reported in the summary and never abort the batch.
func (s *Service) SaveAll(ctx context.Context) error {
	project := s.state.Project()
	drafts := s.state.Drafts()
	if project == nil || len(drafts) == 0 {
		s.notify.Notify("No new tasks to save", types.ToastInfo)
		return nil
	}

	defaultStatus, _ := domain.DefaultStatus(s.state.Statuses())
	var storyID *int
	if story := s.state.Story(); story != nil {
		id := story.ID
		storyID = &id
	}

	var payloads []domain.NewTask
	var keys []string
	skipped := 0
	for _, d := range drafts {
		subject := strings.TrimSpace(d.Subject)
		if subject == "" {
			skipped++
			continue
		}
		status := d.Status
		if status == 0 {
			status = defaultStatus
		}
		payloads = append(payloads, domain.NewTask{
			Subject:     subject,
			Description: strings.TrimSpace(d.Description),
			Project:     project.ID,
			Status:      status,
			UserStory:   storyID,
			AssignedTo:  d.AssignedTo,
		})
		keys = append(keys, d.Key)
	}

	if len(payloads) == 0 {
		s.notify.Notify("Task subject is required", types.ToastWarning)
		return nil
	}

	s.busy.ShowBusy()
	defer s.busy.HideBusy()

	results, err := s.gw.BulkCreateTasks(ctx, payloads)
	if err != nil {
		s.logger.Warn("bulk create failed", "error", err)
		s.notify.Notify("Failed to create tasks: "+err.Error(), types.ToastError)
		return err
	}

	created, failed := 0, 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		created++
		s.state.RemoveDraft(keys[i])
	}

	level := types.ToastSuccess
	if failed > 0 {
		level = types.ToastWarning
	}
	s.notify.Notify(summarizeSaveAll(created, failed, skipped), level)

	if created > 0 {
		return s.reloadList(ctx)
	}
	return nil
}

func (s *Service) reloadList(ctx context.Context) error {
	if err := s.reload.ReloadTasks(ctx); err != nil {
		s.logger.Warn("task list reload failed", "error", err)
		s.notify.Notify("Failed to reload tasks: "+err.Error(), types.ToastError)
		return err
	}
	return nil
}

func summarizeSaveAll(created, failed, skipped int) string {
	var parts []string
	if created > 0 {
		parts = append(parts, plural(created, "task created.", "tasks created."))
	}
	if failed > 0 {
		parts = append(parts, plural(failed, "failure.", "failures."))
	}
	if skipped > 0 {
		parts = append(parts, plural(skipped, "card without subject skipped.", "cards without subject skipped."))
	}
	if len(parts) == 0 {
		return "Nothing to save."
	}
	return strings.Join(parts, " ")
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + pluralForm
}

func trimmed(f domain.Form) domain.Form {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Description = strings.TrimSpace(f.Description)
	return f
}
