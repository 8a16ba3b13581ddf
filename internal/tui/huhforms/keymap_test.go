package huhforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormKeyMapLineBreaks(t *testing.T) {
	km := formKeyMap()

	assert.ElementsMatch(t, []string{"shift+enter", "alt+enter", "ctrl+j"}, km.Text.NewLine.Keys())
	assert.Equal(t, "line break", km.Text.NewLine.Help().Desc)
	assert.Contains(t, km.Text.Next.Keys(), "enter", "enter still moves to the next field")
}
