package overlay

import (
	"testing"

	"github.com/riordanpawley/melia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editFixture() *EditTask {
	statuses := []domain.TaskStatus{
		{ID: 100, Name: "New", Order: 1},
		{ID: 200, Name: "Done", Order: 2},
	}
	members := []domain.Member{
		{User: 7, FullName: "Anna"},
		{User: 9, FullName: "Marco"},
	}
	form := domain.Form{Subject: "Fix login", Status: 100}
	return NewEditTask(form, statuses, members, false)
}

func TestEditTask_PrefilledFromForm(t *testing.T) {
	e := editFixture()

	form := e.Form()

	assert.Equal(t, "Fix login", form.Subject)
	assert.Equal(t, 100, form.Status)
	assert.Nil(t, form.AssignedTo)
}

func TestEditTask_SubmitEmitsForm(t *testing.T) {
	e := editFixture()

	_, cmd := e.Update(keyMsg("ctrl+s"))

	require.NotNil(t, cmd)
	msg, ok := cmd().(TaskSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "Fix login", msg.Form.Subject)
}

func TestEditTask_EmptySubjectBlocksSubmit(t *testing.T) {
	e := NewEditTask(domain.Form{Subject: "   "}, nil, nil, true)

	_, cmd := e.Update(keyMsg("ctrl+s"))

	assert.Nil(t, cmd, "whitespace-only subject must not submit")
	assert.Contains(t, e.View(), "Subject is required")
}

func TestEditTask_CycleAssignee(t *testing.T) {
	e := editFixture()

	// Tab to the assignee field, then pick the first member.
	for i := 0; i < 3; i++ {
		model, _ := e.Update(keyMsg("tab"))
		e = model.(*EditTask)
	}
	model, _ := e.Update(keyMsg("l"))
	e = model.(*EditTask)

	form := e.Form()
	require.NotNil(t, form.AssignedTo)
	assert.Equal(t, 7, *form.AssignedTo)
}

func TestEditTask_EscEmitsClose(t *testing.T) {
	e := editFixture()

	_, cmd := e.Update(keyMsg("esc"))

	require.NotNil(t, cmd)
	_, ok := cmd().(CloseOverlayMsg)
	assert.True(t, ok)
}

func TestEditTask_Titles(t *testing.T) {
	assert.Equal(t, "Edit Task", editFixture().Title())
	assert.Equal(t, "New Task", NewEditTask(domain.Form{}, nil, nil, true).Title())
}
