// Package layers places dialogs over the base view
package layers

import "charm.land/lipgloss/v2"

// CreateCenteredLayer creates a layer positioned at the center of the
// screen, or nil if content is empty
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	x := max((screenWidth-contentWidth)/2, 0)
	y := max((screenHeight-contentHeight)/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

// DialogWidth sizes a dialog to a share of the screen, clamped to
// [DialogMinWidth, DialogMaxWidth]
func DialogWidth(screenWidth int) int {
	return min(max(screenWidth*DialogWidthNumerator/DialogWidthDivisor, DialogMinWidth), DialogMaxWidth)
}

// FormSize returns the box for a form dialog
func FormSize(screenWidth, screenHeight int) (int, int) {
	width := min(max(screenWidth*FormWidthNumerator/FormWidthDivisor, DialogMinWidth), FormMaxWidth)
	height := max(screenHeight*FormHeightNumerator/FormHeightDivisor, FormMinHeight)
	return width, height
}
