package dto

// CreateCourseRequest adds a new course.
type CreateCourseRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateSubjectRequest adds a subject under a course, taught by one staff user.
type CreateSubjectRequest struct {
	Name     string `json:"name" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
	StaffID  string `json:"staff_id" validate:"required"`
}

// UpdateSubjectRequest mutates subject fields.
type UpdateSubjectRequest struct {
	Name    string `json:"name" validate:"required"`
	StaffID string `json:"staff_id" validate:"required"`
}

// CreateSessionYearRequest adds an academic year window.
type CreateSessionYearRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}
