package models

import "time"

// Course groups students and subjects under one programme.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Subject belongs to a course and is taught by one staff member.
type Subject struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CourseID  string    `db:"course_id" json:"course_id"`
	StaffID   string    `db:"staff_id" json:"staff_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectDetail joins course and staff names for listings.
type SubjectDetail struct {
	Subject
	CourseName string `db:"course_name" json:"course_name"`
	StaffName  string `db:"staff_name" json:"staff_name"`
}

// SessionYear is an academic year window students are enrolled into.
type SessionYear struct {
	ID        string    `db:"id" json:"id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
