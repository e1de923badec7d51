package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestSnapshot_Diff_NoChanges(t *testing.T) {
	snap := Snapshot{
		Subject:     "Fix login",
		Description: "Details",
		Status:      10,
		AssignedTo:  intPtr(7),
	}
	form := Form{
		Subject:     "Fix login",
		Description: "Details",
		Status:      10,
		AssignedTo:  intPtr(7),
	}

	patch := snap.Diff(form, 3)

	assert.True(t, patch.Empty())
	assert.Equal(t, 3, patch.Version)
	assert.Equal(t, map[string]any{"version": 3}, patch.Fields())
}

func TestSnapshot_Diff_SingleField(t *testing.T) {
	snap := Snapshot{
		Subject:     "Fix login",
		Description: "Details",
		Status:      10,
		AssignedTo:  intPtr(7),
	}

	tests := []struct {
		name      string
		form      Form
		wantField string
		wantValue any
	}{
		{
			name: "subject changed",
			form: Form{
				Subject:     "Fix logout",
				Description: "Details",
				Status:      10,
				AssignedTo:  intPtr(7),
			},
			wantField: "subject",
			wantValue: "Fix logout",
		},
		{
			name: "description changed",
			form: Form{
				Subject:     "Fix login",
				Description: "More details",
				Status:      10,
				AssignedTo:  intPtr(7),
			},
			wantField: "description",
			wantValue: "More details",
		},
		{
			name: "status changed",
			form: Form{
				Subject:     "Fix login",
				Description: "Details",
				Status:      11,
				AssignedTo:  intPtr(7),
			},
			wantField: "status",
			wantValue: 11,
		},
		{
			name: "assignee changed",
			form: Form{
				Subject:     "Fix login",
				Description: "Details",
				Status:      10,
				AssignedTo:  intPtr(9),
			},
			wantField: "assigned_to",
			wantValue: 9,
		},
		{
			name: "assignee cleared",
			form: Form{
				Subject:     "Fix login",
				Description: "Details",
				Status:      10,
				AssignedTo:  nil,
			},
			wantField: "assigned_to",
			wantValue: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := snap.Diff(tt.form, 5)

			require.False(t, patch.Empty())
			fields := patch.Fields()
			// Exactly the changed field plus the version.
			assert.Len(t, fields, 2)
			assert.Equal(t, 5, fields["version"])
			got, ok := fields[tt.wantField]
			require.True(t, ok, "patch missing %s", tt.wantField)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func TestSnapshot_Diff_StatusZeroMeansNoSelection(t *testing.T) {
	snap := Snapshot{Subject: "Task", Status: 10}
	form := Form{Subject: "Task", Status: 0}

	patch := snap.Diff(form, 1)

	assert.True(t, patch.Empty())
}

func TestSnapshot_Diff_UnassignedStaysUnassigned(t *testing.T) {
	snap := Snapshot{Subject: "Task", Status: 10, AssignedTo: nil}
	form := Form{Subject: "Task", Status: 10, AssignedTo: nil}

	patch := snap.Diff(form, 2)

	assert.True(t, patch.Empty())
}

func TestTaskPatch_Fields_ExplicitNullForUnassignment(t *testing.T) {
	patch := TaskPatch{Version: 4, AssignedToSet: true, AssignedTo: nil}

	fields := patch.Fields()

	require.Contains(t, fields, "assigned_to")
	assert.Nil(t, fields["assigned_to"])
}

func TestNewSnapshot(t *testing.T) {
	task := Task{
		ID:          12,
		Subject:     "Subject",
		Description: "Description",
		Status:      3,
		AssignedTo:  intPtr(5),
		Version:     9,
	}

	snap := NewSnapshot(task)

	assert.Equal(t, "Subject", snap.Subject)
	assert.Equal(t, "Description", snap.Description)
	assert.Equal(t, 3, snap.Status)
	require.NotNil(t, snap.AssignedTo)
	assert.Equal(t, 5, *snap.AssignedTo)
}

func TestIntPtrEqual(t *testing.T) {
	assert.True(t, IntPtrEqual(nil, nil))
	assert.True(t, IntPtrEqual(intPtr(3), intPtr(3)))
	assert.False(t, IntPtrEqual(intPtr(3), intPtr(4)))
	assert.False(t, IntPtrEqual(nil, intPtr(3)))
	assert.False(t, IntPtrEqual(intPtr(3), nil))
}
