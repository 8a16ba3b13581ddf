package api

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// ============================================================================
// ANNOUNCEMENTS
// ============================================================================

// AnnouncementCreate is the body of POST /announcements/
type AnnouncementCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	if err := c.get(ctx, "/announcements/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAnnouncement(ctx context.Context, in AnnouncementCreate) (*models.Announcement, error) {
	var out models.Announcement
	if err := c.post(ctx, "/announcements/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Acknowledge records that the current user read the announcement.
// The server answers 400 "Already acknowledged" on a repeat.
func (c *Client) Acknowledge(ctx context.Context, id types.AnnouncementID) (*models.Ack, error) {
	var out models.Ack
	if err := c.post(ctx, fmt.Sprintf("/announcements/%d/acknowledge", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// USERS
// ============================================================================

// UserCreate is the body of POST /users/
type UserCreate struct {
	EmpID     string           `json:"emp_id"`
	Password  string           `json:"password"`
	FullName  string           `json:"full_name"`
	Role      models.Role      `json:"role"`
	VentureID *types.VentureID `json:"venture_id"`
	IsActive  bool             `json:"is_active"`
}

// UserUpdate is a partial update of a user
type UserUpdate struct {
	FullName  *string          `json:"full_name,omitempty"`
	Password  *string          `json:"password,omitempty"`
	Role      *models.Role     `json:"role,omitempty"`
	VentureID *types.VentureID `json:"venture_id,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/users/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserCreate) (*models.User, error) {
	var out models.User
	if err := c.post(ctx, "/users/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id types.UserID, in UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// VENTURES
// ============================================================================

// VentureInput is the body of both POST /ventures/ and PUT /ventures/{id}
type VentureInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) ListVentures(ctx context.Context) ([]models.Venture, error) {
	var out []models.Venture
	if err := c.get(ctx, "/ventures/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateVenture(ctx context.Context, in VentureInput) (*models.Venture, error) {
	var out models.Venture
	if err := c.post(ctx, "/ventures/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVenture(ctx context.Context, id types.VentureID, in VentureInput) (*models.Venture, error) {
	var out models.Venture
	if err := c.put(ctx, fmt.Sprintf("/ventures/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// LEAVES, HOLIDAYS, ANALYTICS
// ============================================================================

func (c *Client) ListLeaves(ctx context.Context) ([]models.Leave, error) {
	var out []models.Leave
	if err := c.get(ctx, "/leaves/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaveCreate is the body of POST /leaves/; dates are YYYY-MM-DD
type LeaveCreate struct {
	LeaveType models.LeaveType `json:"leave_type"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Reason    string           `json:"reason,omitempty"`
}

// ApplyLeave files a leave request for the current user
func (c *Client) ApplyLeave(ctx context.Context, in LeaveCreate) (*models.Leave, error) {
	var out models.Leave
	if err := c.post(ctx, "/leaves/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewLeave approves or rejects a pending request (manager and above)
func (c *Client) ReviewLeave(ctx context.Context, id types.LeaveID, status models.LeaveStatus) (*models.Leave, error) {
	body := struct {
		Status models.LeaveStatus `json:"status"`
	}{Status: status}

	var out models.Leave
	if err := c.put(ctx, fmt.Sprintf("/leaves/%d/status", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	var out []models.Holiday
	if err := c.get(ctx, "/leaves/holidays", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.get(ctx, "/analytics/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
