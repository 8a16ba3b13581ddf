package huhforms

import (
	"errors"
	"strings"

	"charm.land/huh/v2"
)

// CreateLoginForm asks for employee ID and password. Submitting the last
// field completes the form; there is no confirm step.
func CreateLoginForm(empID, password *string) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("emp_id").
				Title("Employee ID").
				Placeholder("EMP001").
				Validate(required("employee ID")).
				Value(empID),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(required("password")).
				Value(password),
		),
	)
	return form.WithShowHelp(false)
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}
