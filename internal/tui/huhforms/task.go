package huhforms

import (
	"errors"
	"strings"
	"time"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/tui/state"
	"github.com/thenoetrevino/agency/internal/types"
)

// CreateTaskForm creates a huh form for a new task. The backend creates one
// task per selected assignee.
func CreateTaskForm(values *state.TaskValues, assignees []models.User, descriptionLines int) *huh.Form {
	priorities := make([]huh.Option[models.Priority], 0, len(models.Priorities()))
	for _, p := range models.Priorities() {
		priorities = append(priorities, huh.NewOption(string(p), p))
	}

	people := make([]huh.Option[types.UserID], 0, len(assignees))
	for _, u := range assignees {
		if u.IsActive {
			people = append(people, huh.NewOption(u.FullName+" ("+u.EmpID+")", u.ID))
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("Enter task title...").
				CharLimit(255).
				Validate(required("title")).
				Value(&values.Title),
			huh.NewText().
				Key("description").
				Title("Description").
				Placeholder("Enter task description...").
				CharLimit(5000).
				Lines(descriptionLines).
				Value(&values.Description),
			huh.NewSelect[models.Priority]().
				Key("priority").
				Title("Priority").
				Options(priorities...).
				Value(&values.Priority),
			huh.NewInput().
				Key("due").
				Title("Due date").
				Placeholder("YYYY-MM-DD (optional)").
				Validate(optionalDate).
				Value(&values.DueDate),
			huh.NewMultiSelect[types.UserID]().
				Key("assignees").
				Title("Assign to").
				Options(people...).
				Validate(func(ids []types.UserID) error {
					if len(ids) == 0 {
						return errors.New("pick at least one assignee")
					}
					return nil
				}).
				Value(&values.Assignees),
			huh.NewConfirm().
				Key("confirm").
				Title("Create this task?").
				Affirmative("Yes").
				Negative("No").
				Value(&values.Confirm),
		),
	)
	return form.WithKeyMap(formKeyMap()).WithShowHelp(false)
}

func optionalDate(s string) error {
	return date(s, false)
}

func requiredDate(s string) error {
	return date(s, true)
}

func date(s string, mandatory bool) error {
	s = strings.TrimSpace(s)
	if s == "" {
		if mandatory {
			return errors.New("date is required")
		}
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}
