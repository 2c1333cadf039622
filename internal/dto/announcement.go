package dto

import "github.com/campushub/college-api/internal/models"

// CreateAnnouncementRequest publishes a new announcement.
type CreateAnnouncementRequest struct {
	Title    string                      `json:"title" validate:"required"`
	Message  string                      `json:"message" validate:"required"`
	Audience models.AnnouncementAudience `json:"audience" validate:"required"`
}

// UpdateAnnouncementRequest mutates an announcement.
type UpdateAnnouncementRequest struct {
	Title    string                      `json:"title" validate:"required"`
	Message  string                      `json:"message" validate:"required"`
	Audience models.AnnouncementAudience `json:"audience" validate:"required"`
	Active   *bool                       `json:"active,omitempty"`
}
