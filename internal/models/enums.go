package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// TASK STATUS
// ============================================================================

// Status is the workflow state of a task. The set is closed: a value outside
// it is rejected at every boundary (JSON decode, CLI flags, board targets).
type Status string

const (
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses returns every status in board lane order
func Statuses() []Status {
	return []Status{StatusAssigned, StatusInProgress, StatusReview, StatusCompleted}
}

// Valid reports whether s is one of the four known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// Title is the lane heading shown on the board
func (s Status) Title() string {
	switch s {
	case StatusAssigned:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusCompleted:
		return "Done"
	}
	return string(s)
}

// Index returns the lane position of s, or -1 for an unknown status
func (s Status) Index() int {
	for i, st := range Statuses() {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus accepts the wire literal or the lane title, case-insensitively
// ("in_progress", "In Progress", "done" all work).
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "TO_DO", "TODO":
		return StatusAssigned, nil
	case "DONE":
		return StatusCompleted, nil
	}
	s := Status(norm)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st := Status(raw)
	if !st.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	*s = st
	return nil
}

// ============================================================================
// PRIORITY
// ============================================================================

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities returns every priority from least to most urgent
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ParsePriority is case-insensitive
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, raw)
	}
	return p, nil
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pr := Priority(raw)
	if !pr.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPriority, raw)
	}
	*p = pr
	return nil
}

// ============================================================================
// ROLE
// ============================================================================

// Role is the privilege level of a user. ADMIN includes MANAGER includes EMPLOYEE.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	return r.rank() > 0
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleEmployee:
		return 1
	}
	return 0
}

// Includes reports whether a holder of r has at least the privileges of other
func (r Role) Includes(other Role) bool {
	return r.rank() > 0 && r.rank() >= other.rank()
}

// ParseRole is case-insensitive
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	return r, nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ro := Role(raw)
	if !ro.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	*r = ro
	return nil
}

// ============================================================================
// LEAVE
// ============================================================================

// LeaveType classifies a leave request
type LeaveType string

const (
	LeaveSick   LeaveType = "SICK"
	LeaveCasual LeaveType = "CASUAL"
	LeaveAnnual LeaveType = "ANNUAL"
	LeaveOther  LeaveType = "OTHER"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveCasual, LeaveAnnual, LeaveOther:
		return true
	}
	return false
}

// LeaveStatus is the review state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}
