package notifications

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

func TestToneOf(t *testing.T) {
	assert.Equal(t, Notice, ToneOf(state.LevelInfo))
	assert.Equal(t, Caution, ToneOf(state.LevelWarning))
	assert.Equal(t, Failure, ToneOf(state.LevelError))
	assert.Equal(t, Notice, ToneOf(state.NotificationLevel(42)), "unknown levels fall back to a notice")
}

func TestRenderFromState(t *testing.T) {
	tests := []struct {
		level state.NotificationLevel
		title string
	}{
		{state.LevelInfo, "Notice"},
		{state.LevelWarning, "Heads up"},
		{state.LevelError, "Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			out := ansi.Strip(RenderFromState(state.Notification{Level: tt.level, Message: "Moved to Done"}))
			assert.Contains(t, out, tt.title)
			assert.Contains(t, out, "Moved to Done")
		})
	}
}

func TestRenderInlineHolding(t *testing.T) {
	out := ansi.Strip(RenderInline(Holding, "holding #7"))
	assert.Contains(t, out, "✥ holding #7")
	assert.NotContains(t, out, "\n")
}

func TestRenderDialogWrapsMessage(t *testing.T) {
	msg := strings.Repeat("word ", 30)
	out := ansi.Strip(RenderDialog("Move task failed", msg, 40))

	assert.Contains(t, out, "Move task failed")
	assert.Contains(t, out, "press enter or esc to dismiss")
	wrapped := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "word") {
			wrapped++
		}
	}
	assert.GreaterOrEqual(t, wrapped, 4, "long messages wrap")
}
