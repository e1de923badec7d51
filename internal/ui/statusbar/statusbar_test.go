package statusbar

import (
	"testing"

	"github.com/riordanpawley/melia/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_RendersContext(t *testing.T) {
	sb := New("melia / Tasks", 80, styles.New())

	out := sb.Render()

	assert.Contains(t, out, "melia / Tasks")
	assert.Contains(t, out, "online")
}

func TestStatusBar_Counts(t *testing.T) {
	sb := New("Tasks", 120, styles.New()).WithCounts(5, 2)

	out := sb.Render()

	assert.Contains(t, out, "5 tasks")
	assert.Contains(t, out, "2 new")
}

func TestStatusBar_NoCountsWhenEmpty(t *testing.T) {
	sb := New("Projects", 80, styles.New())

	out := sb.Render()

	assert.NotContains(t, out, "0 tasks")
}

func TestStatusBar_Offline(t *testing.T) {
	sb := New("Tasks", 80, styles.New()).WithOnline(false)

	out := sb.Render()

	assert.Contains(t, out, "OFFLINE")
	assert.NotContains(t, out, "online")
}

func TestStatusBar_Hints(t *testing.T) {
	sb := New("Tasks", 160, styles.New()).WithHints("n new · e edit · S save all")

	out := sb.Render()

	assert.Contains(t, out, "e edit")
}
