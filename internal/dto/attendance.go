package dto

// CreateAttendanceRequest opens an attendance session for a subject on a date.
type CreateAttendanceRequest struct {
	SubjectID     string `json:"subject_id" validate:"required"`
	SessionYearID string `json:"session_year_id" validate:"required"`
	Date          string `json:"date" validate:"required"`
}

// AttendanceReportEntry is one student's presence mark within a save call.
type AttendanceReportEntry struct {
	StudentProfileID string `json:"student_profile_id" validate:"required"`
	Present          bool   `json:"present"`
}

// SaveAttendanceReportsRequest writes presence marks for one session.
type SaveAttendanceReportsRequest struct {
	Reports []AttendanceReportEntry `json:"reports" validate:"required,min=1,dive"`
}
