package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []PickerItem {
	return []PickerItem{
		{Key: "new", Label: "New", Value: 100},
		{Key: "in-progress", Label: "In progress", Value: 200},
		{Key: "done", Label: "Done", Value: 300},
	}
}

func TestPicker_EnterSelectsCurrent(t *testing.T) {
	p := NewPicker("Set status", testItems())

	_, cmd := p.Update(keyMsg("enter"))

	require.NotNil(t, cmd)
	sel := cmd().(SelectionMsg)
	assert.Equal(t, "new", sel.Key)
	assert.Equal(t, 100, sel.Value)
}

func TestPicker_Navigation(t *testing.T) {
	p := NewPicker("Set status", testItems())

	model, _ := p.Update(keyMsg("j"))
	model, _ = model.(*Picker).Update(keyMsg("j"))
	// Does not run off the end.
	model, _ = model.(*Picker).Update(keyMsg("down"))
	_, cmd := model.(*Picker).Update(keyMsg("enter"))

	require.NotNil(t, cmd)
	sel := cmd().(SelectionMsg)
	assert.Equal(t, "done", sel.Key)
}

func TestPicker_EscCloses(t *testing.T) {
	p := NewPicker("Set status", testItems())

	_, cmd := p.Update(keyMsg("esc"))

	require.NotNil(t, cmd)
	_, ok := cmd().(CloseOverlayMsg)
	assert.True(t, ok)
}

func TestPicker_EmptyList(t *testing.T) {
	p := NewPicker("Assign", nil)

	_, cmd := p.Update(keyMsg("enter"))
	assert.Nil(t, cmd)

	assert.Contains(t, p.View(), "Nothing to choose from")
}

func TestPicker_ViewMarksCursor(t *testing.T) {
	p := NewPicker("Set status", testItems())

	view := p.View()

	assert.Contains(t, view, "> New")
	assert.Contains(t, view, "In progress")
}
