package theme

import "github.com/thenoetrevino/agency/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	Create         string
	Subtle         string
	Normal         string
	Title          string
	ColumnBorder   string
	TaskBorder     string
	SelectedBorder string
	DragBorder     string
	PriorityLow    string
	PriorityMedium string
	PriorityHigh   string
	PriorityUrgent string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
)

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	Create = colors.Create
	Subtle = colors.Subtle
	Normal = colors.Normal
	Title = colors.Title
	ColumnBorder = colors.ColumnBorder
	TaskBorder = colors.TaskBorder
	SelectedBorder = colors.SelectedBorder
	DragBorder = colors.DragBorder
	PriorityLow = colors.PriorityLow
	PriorityMedium = colors.PriorityMedium
	PriorityHigh = colors.PriorityHigh
	PriorityUrgent = colors.PriorityUrgent
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
}
