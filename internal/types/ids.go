package types

import "strconv"

// ID types give each integer identifier a meaning in the domain model.
// The CMS hands out plain integers; these keep a task ID from being passed
// where a user ID is expected.

// TaskID identifies a task on the board
type TaskID int

// UserID identifies a CMS user (employee, manager or admin)
type UserID int

// VentureID identifies a venture (business unit)
type VentureID int

// AnnouncementID identifies an announcement
type AnnouncementID int

// AckID identifies a single acknowledgement record
type AckID int

// LeaveID identifies a leave request
type LeaveID int

// HolidayID identifies a holiday entry
type HolidayID int

// TimeLogID identifies a recorded timer interval
type TimeLogID int

func (id TaskID) String() string {
	return strconv.Itoa(int(id))
}

func (id UserID) String() string {
	return strconv.Itoa(int(id))
}

func (id VentureID) String() string {
	return strconv.Itoa(int(id))
}

func (id AnnouncementID) String() string {
	return strconv.Itoa(int(id))
}

// ParseTaskID converts a decimal string (CLI argument, board target) into a TaskID
func ParseTaskID(s string) (TaskID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return TaskID(n), nil
}
