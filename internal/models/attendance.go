package models

import "time"

// Attendance is one session of a subject on a date within a session year.
type Attendance struct {
	ID            string    `db:"id" json:"id"`
	SubjectID     string    `db:"subject_id" json:"subject_id"`
	SessionYearID string    `db:"session_year_id" json:"session_year_id"`
	Date          time.Time `db:"date" json:"date"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AttendanceReport records one student's presence for one attendance session.
// At most one row exists per (attendance_id, student_profile_id); writes go
// through an upsert keyed on that pair.
type AttendanceReport struct {
	ID               string    `db:"id" json:"id"`
	AttendanceID     string    `db:"attendance_id" json:"attendance_id"`
	StudentProfileID string    `db:"student_profile_id" json:"student_profile_id"`
	Present          bool      `db:"present" json:"present"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// AttendanceReportRow extends a report with student metadata for listings.
type AttendanceReportRow struct {
	AttendanceReport
	StudentName string `db:"student_name" json:"student_name"`
}

// AttendanceFilter scopes attendance session listings.
type AttendanceFilter struct {
	SubjectID     string
	SessionYearID string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	PageSize      int
}

// AttendanceSummary aggregates per-student presence counts.
type AttendanceSummary struct {
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// AttendanceHistoryRow is one entry of a student's own history view.
type AttendanceHistoryRow struct {
	Date        time.Time `db:"date" json:"date"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	Present     bool      `db:"present" json:"present"`
}
