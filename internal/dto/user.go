package dto

import "github.com/campushub/college-api/internal/models"

// RegisterUserRequest provisions a new identity with its profile in one call.
type RegisterUserRequest struct {
	Username      string          `json:"username" validate:"required,min=3"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=6"`
	FullName      string          `json:"full_name" validate:"required"`
	Role          models.UserRole `json:"role" validate:"required"`
	Gender        string          `json:"gender"`
	Address       string          `json:"address"`
	CourseID      *string         `json:"course_id,omitempty"`
	SessionYearID *string         `json:"session_year_id,omitempty"`
}

// UpdateUserRequest mutates account fields. Role is intentionally absent:
// it is immutable after provisioning.
type UpdateUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Active   *bool  `json:"active,omitempty"`
}

// UpdateProfileRequest mutates the role-specific extension row.
type UpdateProfileRequest struct {
	Gender        string  `json:"gender"`
	Address       string  `json:"address"`
	CourseID      *string `json:"course_id,omitempty"`
	SessionYearID *string `json:"session_year_id,omitempty"`
}
