package models

import "time"

// Profile is the role-specific extension row attached 1:1 to a user.
// It shares the user's lifetime: both are written in one transaction at
// provisioning time and the row cascades on user deletion.
type Profile struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Role          UserRole  `db:"role" json:"role"`
	Gender        string    `db:"gender" json:"gender"`
	Address       string    `db:"address" json:"address"`
	CourseID      *string   `db:"course_id" json:"course_id,omitempty"`
	SessionYearID *string   `db:"session_year_id" json:"session_year_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileDetail joins profile rows with account fields for listings.
type ProfileDetail struct {
	Profile
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"full_name"`
}
