package layers

const (
	DialogWidthNumerator = 1
	DialogWidthDivisor   = 2
	DialogMinWidth       = 40
	DialogMaxWidth       = 70

	FormWidthNumerator  = 3
	FormWidthDivisor    = 4
	FormMaxWidth        = 90
	FormHeightNumerator = 3
	FormHeightDivisor   = 4
	FormMinHeight       = 16 // tallest form: the task form with five fields
)
