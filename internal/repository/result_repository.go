package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/college-api/internal/models"
)

// ResultRepository persists student marks.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository constructs the repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Upsert writes marks for one student and subject, overwriting prior marks.
func (r *ResultRepository) Upsert(ctx context.Context, result *models.StudentResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now
	const query = `INSERT INTO student_results (id, student_profile_id, subject_id, exam_marks, assignment_marks, created_at, updated_at)
	VALUES (:id, :student_profile_id, :subject_id, :exam_marks, :assignment_marks, :created_at, :updated_at)
	ON CONFLICT (student_profile_id, subject_id)
	DO UPDATE SET exam_marks = EXCLUDED.exam_marks, assignment_marks = EXCLUDED.assignment_marks, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("upsert student result: %w", err)
	}
	return nil
}

// ListByStudent returns a student's results joined with subject names.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentProfileID string) ([]models.StudentResultRow, error) {
	const query = `SELECT r.id, r.student_profile_id, r.subject_id, r.exam_marks, r.assignment_marks, r.created_at, r.updated_at, s.name AS subject_name
	FROM student_results r
	JOIN subjects s ON s.id = r.subject_id
	WHERE r.student_profile_id = $1
	ORDER BY s.name ASC`
	var results []models.StudentResultRow
	if err := r.db.SelectContext(ctx, &results, query, studentProfileID); err != nil {
		return nil, fmt.Errorf("list student results: %w", err)
	}
	return results, nil
}

// ListBySubject returns every student's result for a subject.
func (r *ResultRepository) ListBySubject(ctx context.Context, subjectID string) ([]models.StudentResultRow, error) {
	const query = `SELECT r.id, r.student_profile_id, r.subject_id, r.exam_marks, r.assignment_marks, r.created_at, r.updated_at, s.name AS subject_name
	FROM student_results r
	JOIN subjects s ON s.id = r.subject_id
	WHERE r.subject_id = $1
	ORDER BY r.created_at ASC`
	var results []models.StudentResultRow
	if err := r.db.SelectContext(ctx, &results, query, subjectID); err != nil {
		return nil, fmt.Errorf("list subject results: %w", err)
	}
	return results, nil
}
