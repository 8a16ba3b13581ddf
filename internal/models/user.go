package models

import "github.com/thenoetrevino/agency/internal/types"

// User is a CMS account
type User struct {
	ID        types.UserID     `json:"id"`
	EmpID     string           `json:"emp_id"`
	FullName  string           `json:"full_name"`
	Role      Role             `json:"role"`
	VentureID *types.VentureID `json:"venture_id,omitempty"`
	IsActive  bool             `json:"is_active"`
}

func (u User) GetID() int {
	return int(u.ID)
}

// HasRole reports whether the user holds any of the given roles
func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// InVenture reports whether the user belongs to venture id
func (u User) InVenture(id types.VentureID) bool {
	return u.VentureID != nil && *u.VentureID == id
}

// Venture is a business unit that groups users and holidays
type Venture struct {
	ID          types.VentureID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
}

func (v Venture) GetID() int {
	return int(v.ID)
}
