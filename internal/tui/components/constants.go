package components

const (
	TaskCardHeight       = 5 // TaskCardHeight is the fixed height of the task card
	columnBorderOverhead = 4 // top and bottom border plus horizontal padding rows
	headerLines          = 1 // column name and count
	topIndicatorLines    = 1 // empty line or "▲ more above"
	bottomIndicatorLines = 1 // "▼ more below"

	progressBarWidth = 10
)
