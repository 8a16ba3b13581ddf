package user

import "errors"

var (
	// Validation errors
	ErrEmptyEmpID    = errors.New("employee ID cannot be empty")
	ErrEmptyName     = errors.New("full name cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrInvalidRole   = errors.New("invalid role")
	ErrNothingToSave = errors.New("no changes given")

	// Permission errors, mirroring what the server would reject
	ErrNotPermitted      = errors.New("only managers and admins can manage users")
	ErrCannotCreateAdmin = errors.New("managers cannot create admins")
	ErrCannotEditAdmin   = errors.New("managers cannot edit admins")
	ErrCannotPromote     = errors.New("managers cannot promote to admin")
	ErrOtherVenture      = errors.New("managers can only manage users in their own venture")
)
