package tasklist

import (
	"testing"

	"github.com/riordanpawley/melia/internal/domain"
	"github.com/riordanpawley/melia/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func newTestList() *List {
	l := New(styles.New())
	l.SetItems(
		[]domain.Task{
			{ID: 1, Ref: 11, Subject: "Fix login", Status: 100, AssignedTo: intPtr(7), Version: 2},
			{ID: 2, Ref: 12, Subject: "Write docs", Status: 200, Version: 1},
		},
		[]domain.Draft{
			{Key: "new-abc", Subject: "Refactor client"},
		},
		[]domain.TaskStatus{
			{ID: 100, Name: "New", Color: "#70728F"},
			{ID: 200, Name: "Done", Color: "#A8E440"},
		},
		[]domain.Member{
			{User: 7, FullName: "Anna"},
		},
	)
	return l
}

func TestList_View(t *testing.T) {
	l := newTestList()

	view := l.View()

	assert.Contains(t, view, "#11")
	assert.Contains(t, view, "Fix login")
	assert.Contains(t, view, "New")
	assert.Contains(t, view, "@Anna")
	assert.Contains(t, view, "NEW")
	assert.Contains(t, view, "Refactor client")
}

func TestList_EmptyView(t *testing.T) {
	l := New(styles.New())

	assert.Contains(t, l.View(), "No tasks")
}

func TestList_Navigation(t *testing.T) {
	l := newTestList()

	row, ok := l.Selected()
	require.True(t, ok)
	require.NotNil(t, row.Task)
	assert.Equal(t, 1, row.Task.ID)

	l.MoveDown()
	l.MoveDown()
	row, ok = l.Selected()
	require.True(t, ok)
	assert.True(t, row.IsDraft())
	assert.Equal(t, "new-abc", row.Draft.Key)

	// Cursor does not run past the last row.
	l.MoveDown()
	row, _ = l.Selected()
	assert.True(t, row.IsDraft())

	l.MoveUp()
	l.MoveUp()
	l.MoveUp()
	row, _ = l.Selected()
	require.NotNil(t, row.Task)
	assert.Equal(t, 1, row.Task.ID)
}

func TestList_CursorClampsAfterReload(t *testing.T) {
	l := newTestList()
	l.MoveDown()
	l.MoveDown()

	// A reload shrinks the list; the cursor must stay in range.
	l.SetItems([]domain.Task{{ID: 1, Ref: 11, Subject: "only"}}, nil, nil, nil)

	row, ok := l.Selected()
	require.True(t, ok)
	require.NotNil(t, row.Task)
	assert.Equal(t, 1, row.Task.ID)
}

func TestList_UntitledDraft(t *testing.T) {
	l := New(styles.New())
	l.SetItems(nil, []domain.Draft{{Key: "new-x"}}, nil, nil)

	assert.Contains(t, l.View(), "(untitled)")
}
