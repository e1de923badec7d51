package tasks

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/state"
	"github.com/riordanpawley/melia/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	createdData []domain.NewTask
	createErr   error

	updateCalls []updateCall
	updateErr   error

	deleteIDs []int
	deleteErr error

	bulkData    []domain.NewTask
	bulkResults []domain.BulkResult
	bulkErr     error
}

type updateCall struct {
	id    int
	patch domain.TaskPatch
}

func (m *mockGateway) CreateTask(ctx context.Context, data domain.NewTask) (*domain.Task, error) {
	m.createdData = append(m.createdData, data)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &domain.Task{ID: 100 + len(m.createdData), Subject: data.Subject, Version: 1}, nil
}

func (m *mockGateway) UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	m.updateCalls = append(m.updateCalls, updateCall{id: id, patch: patch})
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &domain.Task{ID: id, Version: patch.Version + 1}, nil
}

func (m *mockGateway) DeleteTask(ctx context.Context, id int) error {
	m.deleteIDs = append(m.deleteIDs, id)
	return m.deleteErr
}

func (m *mockGateway) BulkCreateTasks(ctx context.Context, data []domain.NewTask) ([]domain.BulkResult, error) {
	m.bulkData = data
	if m.bulkErr != nil {
		return nil, m.bulkErr
	}
	if m.bulkResults != nil {
		return m.bulkResults, nil
	}
	results := make([]domain.BulkResult, len(data))
	for i := range data {
		results[i] = domain.BulkResult{Task: &domain.Task{ID: 200 + i}, Data: data[i]}
	}
	return results, nil
}

type mockNotifier struct {
	messages []string
	levels   []types.ToastLevel
}

func (m *mockNotifier) Notify(message string, level types.ToastLevel) {
	m.messages = append(m.messages, message)
	m.levels = append(m.levels, level)
}

func (m *mockNotifier) last() (string, types.ToastLevel) {
	if len(m.messages) == 0 {
		return "", types.ToastInfo
	}
	return m.messages[len(m.messages)-1], m.levels[len(m.levels)-1]
}

type mockBusy struct {
	shows, hides int
}

func (m *mockBusy) ShowBusy() { m.shows++ }
func (m *mockBusy) HideBusy() { m.hides++ }

type mockReloader struct {
	reloads int
	err     error
}

func (m *mockReloader) ReloadTasks(ctx context.Context) error {
	m.reloads++
	return m.err
}

type fixture struct {
	gw     *mockGateway
	st     *state.Store
	notify *mockNotifier
	busy   *mockBusy
	reload *mockReloader
	svc    *Service
}

func newFixture() *fixture {
	f := &fixture{
		gw:     &mockGateway{},
		st:     state.NewStore(),
		notify: &mockNotifier{},
		busy:   &mockBusy{},
		reload: &mockReloader{},
	}
	f.st.SetProject(&domain.Project{ID: 31, Name: "Melia"})
	f.svc = NewService(f.gw, f.st, f.notify, f.busy, f.reload, slog.Default())
	return f
}

func intPtr(i int) *int {
	return &i
}

func TestSave_EmptySubjectBlocksLocally(t *testing.T) {
	tests := []struct {
		name string
		card Card
	}{
		{
			name: "new card",
			card: Card{DraftKey: "new-1", Form: domain.Form{Subject: "   "}},
		},
		{
			name: "existing card",
			card: Card{
				TaskID:   5,
				Version:  2,
				Original: domain.Snapshot{Subject: "Old"},
				Form:     domain.Form{Subject: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			err := f.svc.Save(context.Background(), tt.card)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr, "validation failures must be distinguishable from success")
			assert.Equal(t, "subject", verr.Field)
			assert.Empty(t, f.gw.createdData)
			assert.Empty(t, f.gw.updateCalls)
			msg, level := f.notify.last()
			assert.Contains(t, msg, "subject")
			assert.Equal(t, types.ToastWarning, level)
			assert.Zero(t, f.reload.reloads)
		})
	}
}

func TestSave_NewWithoutProjectFailsValidation(t *testing.T) {
	f := newFixture()
	f.st.SetProject(nil)

	err := f.svc.Save(context.Background(), Card{
		DraftKey: "new-1",
		Form:     domain.Form{Subject: "Orphan"},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "project", verr.Field)
	assert.Empty(t, f.gw.createdData)
	assert.Zero(t, f.reload.reloads)
}

func TestSave_NoChangesShortCircuits(t *testing.T) {
	f := newFixture()
	card := Card{
		TaskID:  5,
		Version: 3,
		Original: domain.Snapshot{
			Subject:     "Same",
			Description: "Same desc",
			Status:      10,
			AssignedTo:  intPtr(7),
		},
		Form: domain.Form{
			Subject:     "Same",
			Description: "Same desc",
			Status:      10,
			AssignedTo:  intPtr(7),
		},
	}

	err := f.svc.Save(context.Background(), card)

	require.NoError(t, err)
	assert.Empty(t, f.gw.updateCalls, "no network write for an empty diff")
	msg, level := f.notify.last()
	assert.Contains(t, msg, "No changes")
	assert.Equal(t, types.ToastInfo, level)
	assert.Zero(t, f.reload.reloads)
}

func TestSave_ExistingSendsMinimalPatch(t *testing.T) {
	f := newFixture()
	card := Card{
		TaskID:  5,
		Version: 3,
		Original: domain.Snapshot{
			Subject:     "Old subject",
			Description: "Desc",
			Status:      10,
			AssignedTo:  nil,
		},
		Form: domain.Form{
			Subject:     "New subject",
			Description: "Desc",
			Status:      10,
			AssignedTo:  nil,
		},
	}

	err := f.svc.Save(context.Background(), card)

	require.NoError(t, err)
	require.Len(t, f.gw.updateCalls, 1)
	call := f.gw.updateCalls[0]
	assert.Equal(t, 5, call.id)
	fields := call.patch.Fields()
	assert.Equal(t, map[string]any{"version": 3, "subject": "New subject"}, fields)
	assert.Equal(t, 1, f.reload.reloads)
	msg, level := f.notify.last()
	assert.Contains(t, msg, "updated")
	assert.Equal(t, types.ToastSuccess, level)
}

func TestSave_NewSendsFullRecord(t *testing.T) {
	f := newFixture()
	story := &domain.UserStory{ID: 8, Project: 31}
	f.st.SetStory(story)
	key := f.st.NewDraft()

	card := Card{
		DraftKey: key,
		Form: domain.Form{
			Subject:     "  Brand new  ",
			Description: "details",
			AssignedTo:  nil,
		},
	}

	err := f.svc.Save(context.Background(), card)

	require.NoError(t, err)
	require.Len(t, f.gw.createdData, 1)
	data := f.gw.createdData[0]
	assert.Equal(t, "Brand new", data.Subject)
	assert.Equal(t, 31, data.Project)
	require.NotNil(t, data.UserStory)
	assert.Equal(t, 8, *data.UserStory)
	assert.Nil(t, data.AssignedTo)

	// Draft discarded, list reloaded from the server.
	assert.Empty(t, f.st.Drafts())
	assert.Equal(t, 1, f.reload.reloads)
}

func TestSave_NewUsesDefaultStatus(t *testing.T) {
	f := newFixture()
	// The first status of the project list is the default for new tasks.
	f.st.SetStatuses([]domain.TaskStatus{{ID: 4, Name: "New"}, {ID: 5, Name: "Done"}})
	key := f.st.NewDraft()

	card := Card{DraftKey: key, Form: domain.Form{Subject: "Task"}}
	err := f.svc.Save(context.Background(), card)

	require.NoError(t, err)
	require.Len(t, f.gw.createdData, 1)
	assert.Equal(t, 4, f.gw.createdData[0].Status)
}

func TestSave_FailureKeepsEditing(t *testing.T) {
	f := newFixture()
	f.gw.updateErr = &domain.RemoteError{Op: "updateTask", StatusCode: 500, Message: "boom"}

	card := Card{
		TaskID:   5,
		Version:  3,
		Original: domain.Snapshot{Subject: "Old"},
		Form:     domain.Form{Subject: "New"},
	}

	err := f.svc.Save(context.Background(), card)

	require.Error(t, err)
	msg, level := f.notify.last()
	assert.Equal(t, types.ToastError, level)
	assert.Contains(t, msg, "boom")
	assert.Zero(t, f.reload.reloads, "no reload on failure; the card stays editable")
	assert.Equal(t, f.busy.shows, f.busy.hides)
}

func TestSave_ConflictGetsDistinctMessage(t *testing.T) {
	f := newFixture()
	f.gw.updateErr = &domain.RemoteError{Op: "updateTask", StatusCode: 409, Err: domain.ErrConflict}

	card := Card{
		TaskID:   5,
		Version:  3,
		Original: domain.Snapshot{Subject: "Old"},
		Form:     domain.Form{Subject: "New"},
	}

	err := f.svc.Save(context.Background(), card)

	require.Error(t, err)
	msg, _ := f.notify.last()
	assert.Contains(t, msg, "changed since you loaded it")
}

func TestDelete(t *testing.T) {
	t.Run("draft removed locally", func(t *testing.T) {
		f := newFixture()
		key := f.st.NewDraft()

		err := f.svc.Delete(context.Background(), Card{DraftKey: key})

		require.NoError(t, err)
		assert.Empty(t, f.st.Drafts())
		assert.Empty(t, f.gw.deleteIDs)
	})

	t.Run("persisted deleted remotely", func(t *testing.T) {
		f := newFixture()

		err := f.svc.Delete(context.Background(), Card{TaskID: 9})

		require.NoError(t, err)
		assert.Equal(t, []int{9}, f.gw.deleteIDs)
		assert.Equal(t, 1, f.reload.reloads)
	})

	t.Run("remote failure reported", func(t *testing.T) {
		f := newFixture()
		f.gw.deleteErr = errors.New("gone already")

		err := f.svc.Delete(context.Background(), Card{TaskID: 9})

		require.Error(t, err)
		_, level := f.notify.last()
		assert.Equal(t, types.ToastError, level)
		assert.Zero(t, f.reload.reloads)
	})
}

func TestSaveAll(t *testing.T) {
	t.Run("creates all drafts and reloads", func(t *testing.T) {
		f := newFixture()
		k1 := f.st.NewDraft()
		k2 := f.st.NewDraft()
		f.st.UpdateDraft(k1, func(d *domain.Draft) { d.Subject = "One" })
		f.st.UpdateDraft(k2, func(d *domain.Draft) { d.Subject = "Two" })

		err := f.svc.SaveAll(context.Background())

		require.NoError(t, err)
		require.Len(t, f.gw.bulkData, 2)
		assert.Empty(t, f.st.Drafts())
		assert.Equal(t, 1, f.reload.reloads)
		_, level := f.notify.last()
		assert.Equal(t, types.ToastSuccess, level)
	})

	t.Run("partial failure keeps failed drafts", func(t *testing.T) {
		f := newFixture()
		k1 := f.st.NewDraft()
		k2 := f.st.NewDraft()
		f.st.UpdateDraft(k1, func(d *domain.Draft) { d.Subject = "One" })
		f.st.UpdateDraft(k2, func(d *domain.Draft) { d.Subject = "Two" })
		f.gw.bulkResults = []domain.BulkResult{
			{Task: &domain.Task{ID: 201}},
			{Err: errors.New("rejected")},
		}

		err := f.svc.SaveAll(context.Background())

		require.NoError(t, err)
		drafts := f.st.Drafts()
		require.Len(t, drafts, 1)
		assert.Equal(t, "Two", drafts[0].Subject)
		msg, level := f.notify.last()
		assert.Equal(t, types.ToastWarning, level)
		assert.Contains(t, msg, "1 task created.")
		assert.Contains(t, msg, "1 failure.")
	})

	t.Run("empty subjects are skipped", func(t *testing.T) {
		f := newFixture()
		k1 := f.st.NewDraft()
		f.st.NewDraft() // stays blank
		f.st.UpdateDraft(k1, func(d *domain.Draft) { d.Subject = "Only" })

		err := f.svc.SaveAll(context.Background())

		require.NoError(t, err)
		require.Len(t, f.gw.bulkData, 1)
		assert.Equal(t, "Only", f.gw.bulkData[0].Subject)
	})

	t.Run("nothing to save", func(t *testing.T) {
		f := newFixture()

		err := f.svc.SaveAll(context.Background())

		require.NoError(t, err)
		assert.Empty(t, f.gw.bulkData)
		assert.Zero(t, f.reload.reloads)
	})
}
