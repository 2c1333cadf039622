package models

import "time"

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	NotificationTypeAttendance   NotificationType = "attendance"
	NotificationTypeLeave        NotificationType = "leave"
	NotificationTypeResult       NotificationType = "result"
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeFeedback     NotificationType = "feedback"
	NotificationTypeGeneral      NotificationType = "general"
)

// Notification is created exclusively by the dispatcher in response to
// workflow events and mutated only by its owner (mark read).
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Type      NotificationType `db:"type" json:"type"`
	Link      *string          `db:"link" json:"link,omitempty"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// NotificationFilter scopes a user's notification listing.
type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
