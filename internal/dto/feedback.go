package dto

import "github.com/campushub/college-api/internal/models"

// CreateFeedbackRequest submits feedback from the calling profile.
type CreateFeedbackRequest struct {
	Message string `json:"message" validate:"required"`
}

// ReplyFeedbackRequest answers a feedback entry.
type ReplyFeedbackRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// FeedbackQuery mirrors supported listing filters.
type FeedbackQuery struct {
	OwnerType  models.FeedbackOwnerType
	Unanswered bool
	Limit      int
	Offset     int
}
