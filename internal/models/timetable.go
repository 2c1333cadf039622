package models

import "time"

// TimetableEntry schedules one subject slot for a course and session year.
type TimetableEntry struct {
	ID            string    `db:"id" json:"id"`
	SubjectID     string    `db:"subject_id" json:"subject_id"`
	CourseID      string    `db:"course_id" json:"course_id"`
	SessionYearID string    `db:"session_year_id" json:"session_year_id"`
	DayOfWeek     string    `db:"day_of_week" json:"day_of_week"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	RoomNumber    *string   `db:"room_number" json:"room_number,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TimetableFilter scopes timetable listings.
type TimetableFilter struct {
	CourseID      string
	SessionYearID string
	DayOfWeek     string
}

// ValidDayOfWeek reports whether day is a schedulable weekday.
func ValidDayOfWeek(day string) bool {
	switch day {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday":
		return true
	default:
		return false
	}
}
