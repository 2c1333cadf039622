package models

import "time"

// StudentResult stores exam and assignment marks per student and subject.
type StudentResult struct {
	ID               string    `db:"id" json:"id"`
	StudentProfileID string    `db:"student_profile_id" json:"student_profile_id"`
	SubjectID        string    `db:"subject_id" json:"subject_id"`
	ExamMarks        float64   `db:"exam_marks" json:"exam_marks"`
	AssignmentMarks  float64   `db:"assignment_marks" json:"assignment_marks"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// StudentResultRow joins subject metadata for student-facing listings.
type StudentResultRow struct {
	StudentResult
	SubjectName string `db:"subject_name" json:"subject_name"`
}
