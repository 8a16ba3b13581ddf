package models

import "github.com/thenoetrevino/agency/internal/types"

// Leave is a time-off request
type Leave struct {
	ID           types.LeaveID `json:"id"`
	UserID       types.UserID  `json:"user_id"`
	LeaveType    LeaveType     `json:"leave_type"`
	StartDate    Timestamp     `json:"start_date"`
	EndDate      Timestamp     `json:"end_date"`
	Reason       string        `json:"reason,omitempty"`
	Status       LeaveStatus   `json:"status"`
	AppliedAt    Timestamp     `json:"applied_at"`
	ReviewedAt   *Timestamp    `json:"reviewed_at,omitempty"`
	ReviewedByID *types.UserID `json:"reviewed_by_id,omitempty"`
}

func (l Leave) GetID() int {
	return int(l.ID)
}

// Days is the inclusive length of the leave in calendar days
func (l Leave) Days() int {
	if l.EndDate.Before(l.StartDate.Time) {
		return 0
	}
	return int(l.EndDate.Sub(l.StartDate.Time).Hours()/24) + 1
}

// Holiday is a company holiday, optionally scoped to one venture
type Holiday struct {
	ID        types.HolidayID  `json:"id"`
	Name      string           `json:"name"`
	Date      Timestamp        `json:"date"`
	VentureID *types.VentureID `json:"venture_id,omitempty"`
}

func (h Holiday) GetID() int {
	return int(h.ID)
}
