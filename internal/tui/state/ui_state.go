package state

import "github.com/thenoetrevino/agency/internal/routes"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode      Mode = iota // Default navigation mode
	HelpMode                    // Displaying help screen
	FormMode                    // A huh form has focus
	ErrorDialogMode             // A failed mutation is waiting to be dismissed
)

// BoardColumns is the number of lanes on the task board
const BoardColumns = 4

// UIState manages the user interface state: the active route, the board
// cursor, terminal dimensions and the current interaction mode.
type UIState struct {
	route routes.Route
	mode  Mode

	width  int
	height int

	// selectedColumn is the index of the lane under the cursor
	selectedColumn int

	// selectedTasks remembers the card index per lane so moving between
	// lanes returns to the same row
	selectedTasks [BoardColumns]int

	// taskScrollOffsets is the index of the first visible card per lane
	taskScrollOffsets [BoardColumns]int
}

// NewUIState creates a new UIState on the login screen
func NewUIState() *UIState {
	return &UIState{route: routes.Login, mode: NormalMode}
}

func (s *UIState) Route() routes.Route {
	return s.route
}

func (s *UIState) SetRoute(r routes.Route) {
	s.route = r
}

func (s *UIState) Mode() Mode {
	return s.mode
}

func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

func (s *UIState) Width() int {
	return s.width
}

func (s *UIState) SetWidth(width int) {
	s.width = width
}

func (s *UIState) Height() int {
	return s.height
}

func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the available height for the main content area.
// This is terminal height minus tab bar and status bar, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const tabBarHeight = 3    // tabs + gap line
	const statusBarHeight = 2 // status bar + gap line
	return max(s.height-tabBarHeight-statusBarHeight, 5)
}

// ColumnWidth splits the terminal width between the four lanes
func (s *UIState) ColumnWidth() int {
	const reservedWidth = 4 // margins
	const minColumnWidth = 24
	return max((s.width-reservedWidth)/BoardColumns, minColumnWidth)
}

// SelectedColumn returns the index of the lane under the cursor
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn moves the cursor to lane index, clamped to the board
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = min(max(index, 0), BoardColumns-1)
}

// SelectedTask returns the card index in the selected lane
func (s *UIState) SelectedTask() int {
	return s.selectedTasks[s.selectedColumn]
}

// SetSelectedTask updates the card index in the selected lane
func (s *UIState) SetSelectedTask(index int) {
	s.selectedTasks[s.selectedColumn] = max(index, 0)
}

// ClampSelection keeps every lane's cursor inside its card count after the
// board has been regrouped by a refetch
func (s *UIState) ClampSelection(counts [BoardColumns]int) {
	for i, n := range counts {
		s.selectedTasks[i] = min(s.selectedTasks[i], max(n-1, 0))
		s.taskScrollOffsets[i] = min(s.taskScrollOffsets[i], s.selectedTasks[i])
	}
}

// TaskScrollOffset returns the index of the first visible card in a lane
func (s *UIState) TaskScrollOffset(column int) int {
	if column < 0 || column >= BoardColumns {
		return 0
	}
	return s.taskScrollOffsets[column]
}

// EnsureTaskVisible adjusts the scroll offset so the selected card of the
// selected lane is on screen
func (s *UIState) EnsureTaskVisible(visibleCount int) {
	col := s.selectedColumn
	selected := s.selectedTasks[col]
	offset := s.taskScrollOffsets[col]

	if selected < offset {
		s.taskScrollOffsets[col] = selected
	}
	if visibleCount > 0 && selected >= offset+visibleCount {
		s.taskScrollOffsets[col] = selected - visibleCount + 1
	}
}

// ResetSelection returns the board cursor to the first card of the first lane
func (s *UIState) ResetSelection() {
	s.selectedColumn = 0
	s.selectedTasks = [BoardColumns]int{}
	s.taskScrollOffsets = [BoardColumns]int{}
}
