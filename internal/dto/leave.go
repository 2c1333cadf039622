package dto

import "github.com/campushub/college-api/internal/models"

// CreateLeaveRequest submits a new leave request for the calling profile.
type CreateLeaveRequest struct {
	LeaveDate string `json:"leave_date" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// LeaveQuery mirrors supported listing filters.
type LeaveQuery struct {
	Status    []models.LeaveStatus
	OwnerType models.LeaveOwnerType
	Limit     int
	Offset    int
}
