package dto

// CreateTimetableEntryRequest schedules a subject slot.
type CreateTimetableEntryRequest struct {
	SubjectID     string  `json:"subject_id" validate:"required"`
	CourseID      string  `json:"course_id" validate:"required"`
	SessionYearID string  `json:"session_year_id" validate:"required"`
	DayOfWeek     string  `json:"day_of_week" validate:"required"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	RoomNumber    *string `json:"room_number,omitempty"`
}
