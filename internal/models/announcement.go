package models

import "github.com/thenoetrevino/agency/internal/types"

// Announcement is an organization-wide notice users acknowledge
type Announcement struct {
	ID        types.AnnouncementID `json:"id"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	IsActive  bool                 `json:"is_active"`
	CreatedAt Timestamp            `json:"created_at"`
	Acks      []Ack                `json:"acks,omitempty"`
}

func (a Announcement) GetID() int {
	return int(a.ID)
}

// Ack records that a user has read an announcement
type Ack struct {
	ID             types.AckID          `json:"id"`
	AnnouncementID types.AnnouncementID `json:"announcement_id"`
	UserID         types.UserID         `json:"user_id"`
	User           *UserRef             `json:"user,omitempty"`
	AcknowledgedAt Timestamp            `json:"acknowledged_at"`
}

// AcknowledgedBy is an existence check over the acknowledgement list
func (a Announcement) AcknowledgedBy(userID types.UserID) bool {
	for _, ack := range a.Acks {
		if ack.UserID == userID {
			return true
		}
	}
	return false
}

// AckCount counts distinct acknowledging users. The server enforces one ack
// per user, but a duplicated row must not inflate the displayed count.
func (a Announcement) AckCount() int {
	seen := make(map[types.UserID]struct{}, len(a.Acks))
	for _, ack := range a.Acks {
		seen[ack.UserID] = struct{}{}
	}
	return len(seen)
}
