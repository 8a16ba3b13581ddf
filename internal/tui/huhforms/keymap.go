package huhforms

import (
	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"
)

// formKeyMap is shared by the forms with a free-text field: the task
// description, the announcement body and the leave reason. Enter moves to
// the next field and shift+enter, alt+enter or ctrl+j break the line.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Text.NewLine = key.NewBinding(
		key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "line break"),
	)
	return km
}
