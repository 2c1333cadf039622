package models

import "time"

// LeaveOwnerType distinguishes student and staff leave requests.
type LeaveOwnerType string

const (
	LeaveOwnerStudent LeaveOwnerType = "STUDENT"
	LeaveOwnerStaff   LeaveOwnerType = "STAFF"
)

// LeaveStatus captures workflow states for leave requests.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

// Terminal reports whether the status permits no further transition.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// LeaveRequest is a workflow record created by a student or staff profile
// and reviewed by an HOD. Approved and Rejected are terminal.
type LeaveRequest struct {
	ID             string         `db:"id" json:"id"`
	OwnerProfileID string         `db:"owner_profile_id" json:"owner_profile_id"`
	OwnerType      LeaveOwnerType `db:"owner_type" json:"owner_type"`
	LeaveDate      time.Time      `db:"leave_date" json:"leave_date"`
	Message        string         `db:"message" json:"message"`
	Status         LeaveStatus    `db:"status" json:"status"`
	ReviewedBy     *string        `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time     `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// LeaveFilter constrains leave listings.
type LeaveFilter struct {
	OwnerProfileID string
	OwnerType      LeaveOwnerType
	Status         []LeaveStatus
	Limit          int
	Offset         int
}
