package state

// ErrorState holds the blocking error dialog. A failed mutation sets it and
// the dialog stays until the user dismisses it.
type ErrorState struct {
	title   string
	message string
}

func NewErrorState() *ErrorState {
	return &ErrorState{}
}

// Set shows message under title
func (s *ErrorState) Set(title, message string) {
	s.title = title
	s.message = message
}

func (s *ErrorState) Clear() {
	s.title = ""
	s.message = ""
}

func (s *ErrorState) HasError() bool {
	return s.message != ""
}

func (s *ErrorState) Title() string {
	return s.title
}

func (s *ErrorState) Get() string {
	return s.message
}
