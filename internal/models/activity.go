package models

import "time"

// ActivityLog tracks user actions. Writes are best effort and never fail
// the request that triggered them.
type ActivityLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      *string   `db:"user_id" json:"user_id,omitempty"`
	Action      string    `db:"action" json:"action"`
	Description string    `db:"description" json:"description"`
	IPAddress   string    `db:"ip_address" json:"ip_address"`
	UserAgent   string    `db:"user_agent" json:"user_agent"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Activity log action names.
const (
	ActivityActionLogin         = "LOGIN"
	ActivityActionLogout        = "LOGOUT"
	ActivityActionRegister      = "REGISTER"
	ActivityActionLeaveCreate   = "LEAVE_CREATE"
	ActivityActionLeaveReview   = "LEAVE_REVIEW"
	ActivityActionAttendanceSet = "ATTENDANCE_SAVE"
	ActivityActionResultUpsert  = "RESULT_UPSERT"
	ActivityActionFeedbackReply = "FEEDBACK_REPLY"
	ActivityActionExport        = "EXPORT"
)
