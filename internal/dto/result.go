package dto

// UpsertResultRequest writes marks for one student and subject. Repeated
// calls overwrite the previous marks.
type UpsertResultRequest struct {
	StudentProfileID string  `json:"student_profile_id" validate:"required"`
	SubjectID        string  `json:"subject_id" validate:"required"`
	ExamMarks        float64 `json:"exam_marks" validate:"gte=0,lte=100"`
	AssignmentMarks  float64 `json:"assignment_marks" validate:"gte=0,lte=100"`
}
