package layers

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CENTERED LAYERS
// ============================================================================

func TestCreateCenteredLayer(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		screenWidth  int
		screenHeight int
	}{
		{"normal screen", "Test Content", 120, 40},
		{"small content on large screen", "X", 200, 100},
		{"content wider than screen", strings.Repeat("x", 100), 80, 24},
		{"multiline", "one\ntwo\nthree", 20, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, CreateCenteredLayer(tt.content, tt.screenWidth, tt.screenHeight))
		})
	}
}

func TestCreateCenteredLayer_Empty(t *testing.T) {
	assert.Nil(t, CreateCenteredLayer("", 120, 40))
}

func TestCenteredLayerLandsMidScreen(t *testing.T) {
	row := strings.Repeat(".", 30)
	base := lipgloss.NewLayer(strings.Join([]string{row, row, row, row, row}, "\n"))

	layer := CreateCenteredLayer("dialog", 30, 5)
	require.NotNil(t, layer)

	lines := strings.Split(ansi.Strip(lipgloss.NewCanvas(base, layer).Render()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "............dialog............", lines[2])
	assert.Equal(t, row, lines[0])
}

// ============================================================================
// SIZES
// ============================================================================

func TestDialogWidth(t *testing.T) {
	assert.Equal(t, DialogMinWidth, DialogWidth(40), "narrow screens get the minimum")
	assert.Equal(t, 60, DialogWidth(120))
	assert.Equal(t, DialogMaxWidth, DialogWidth(400), "wide screens are capped")
}

func TestFormSize(t *testing.T) {
	w, h := FormSize(120, 40)
	assert.Equal(t, FormMaxWidth, w)
	assert.Equal(t, 30, h)

	w, h = FormSize(60, 10)
	assert.Equal(t, 45, w)
	assert.Equal(t, FormMinHeight, h)

	w, _ = FormSize(50, 10)
	assert.Equal(t, DialogMinWidth, w, "narrow screens get the dialog minimum")
}
