package announcement

import "errors"

var (
	ErrEmptyTitle          = errors.New("announcement title cannot be empty")
	ErrEmptyContent        = errors.New("announcement content cannot be empty")
	ErrNotPermitted        = errors.New("only managers and admins can post announcements")
	ErrAlreadyAcknowledged = errors.New("announcement already acknowledged")
	ErrNotLoggedIn         = errors.New("not logged in")
)
