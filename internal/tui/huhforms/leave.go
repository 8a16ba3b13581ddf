package huhforms

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/tui/state"
)

var leaveTypes = []models.LeaveType{models.LeaveCasual, models.LeaveSick, models.LeaveAnnual, models.LeaveOther}

// CreateLeaveForm creates the leave request form
func CreateLeaveForm(values *state.LeaveValues) *huh.Form {
	options := make([]huh.Option[models.LeaveType], 0, len(leaveTypes))
	for _, t := range leaveTypes {
		options = append(options, huh.NewOption(string(t), t))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.LeaveType]().
				Key("type").
				Title("Leave type").
				Options(options...).
				Value(&values.Type),
			huh.NewInput().
				Key("from").
				Title("From").
				Placeholder("YYYY-MM-DD").
				Validate(requiredDate).
				Value(&values.From),
			huh.NewInput().
				Key("to").
				Title("To").
				Placeholder("YYYY-MM-DD").
				Validate(requiredDate).
				Value(&values.To),
			huh.NewText().
				Key("reason").
				Title("Reason").
				Lines(3).
				Value(&values.Reason),
			huh.NewConfirm().
				Key("confirm").
				Title("Submit this request?").
				Affirmative("Submit").
				Negative("Cancel").
				Value(&values.Confirm),
		),
	)
	return form.WithKeyMap(formKeyMap()).WithShowHelp(false)
}
