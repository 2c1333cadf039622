package models

import "time"

// FeedbackOwnerType distinguishes student and staff feedback.
type FeedbackOwnerType string

const (
	FeedbackOwnerStudent FeedbackOwnerType = "STUDENT"
	FeedbackOwnerStaff   FeedbackOwnerType = "STAFF"
)

// Feedback is a workflow record submitted by a student or staff profile
// and answered once by an HOD. The reply is terminal.
type Feedback struct {
	ID             string            `db:"id" json:"id"`
	OwnerProfileID string            `db:"owner_profile_id" json:"owner_profile_id"`
	OwnerType      FeedbackOwnerType `db:"owner_type" json:"owner_type"`
	Message        string            `db:"message" json:"message"`
	Reply          *string           `db:"reply" json:"reply,omitempty"`
	RepliedBy      *string           `db:"replied_by" json:"replied_by,omitempty"`
	RepliedAt      *time.Time        `db:"replied_at" json:"replied_at,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// Answered reports whether the feedback already carries a reply.
func (f *Feedback) Answered() bool {
	return f.Reply != nil
}

// FeedbackFilter constrains feedback listings.
type FeedbackFilter struct {
	OwnerProfileID string
	OwnerType      FeedbackOwnerType
	Unanswered     bool
	Limit          int
	Offset         int
}
