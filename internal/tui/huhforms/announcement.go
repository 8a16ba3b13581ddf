package huhforms

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

// CreateAnnouncementForm creates the form for posting an announcement.
// Content is markdown.
func CreateAnnouncementForm(values *state.AnnouncementValues, contentLines int) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("Office closed on Friday").
				Validate(required("title")).
				Value(&values.Title),
			huh.NewText().
				Key("content").
				Title("Content").
				Description("Markdown is supported").
				CharLimit(10000).
				Lines(contentLines).
				Validate(required("content")).
				Value(&values.Content),
			huh.NewConfirm().
				Key("confirm").
				Title("Post this announcement?").
				Affirmative("Post").
				Negative("Cancel").
				Value(&values.Confirm),
		),
	)
	return form.WithKeyMap(formKeyMap()).WithShowHelp(false)
}
