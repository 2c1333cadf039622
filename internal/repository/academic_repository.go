package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/college-api/internal/models"
)

// AcademicRepository persists courses, subjects, and session years.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository constructs the repository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// CreateCourse inserts a new course.
func (r *AcademicRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// GetCourse fetches a course by identifier.
func (r *AcademicRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListCourses returns all courses ordered by name.
func (r *AcademicRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, created_at, updated_at FROM courses ORDER BY name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates a course name.
func (r *AcademicRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// DeleteCourse removes a course row.
func (r *AcademicRepository) DeleteCourse(ctx context.Context, id string) error {
	const query = `DELETE FROM courses WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// CreateSubject inserts a new subject.
func (r *AcademicRepository) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now
	const query = `INSERT INTO subjects (id, name, course_id, staff_id, created_at, updated_at) VALUES (:id, :name, :course_id, :staff_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// GetSubject fetches a subject by identifier.
func (r *AcademicRepository) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, name, course_id, staff_id, created_at, updated_at FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListSubjects returns subjects joined with course and staff names,
// optionally scoped to a course or staff member.
func (r *AcademicRepository) ListSubjects(ctx context.Context, courseID, staffID string) ([]models.SubjectDetail, error) {
	query := `SELECT s.id, s.name, s.course_id, s.staff_id, s.created_at, s.updated_at, c.name AS course_name, u.full_name AS staff_name
	FROM subjects s
	JOIN courses c ON c.id = s.course_id
	JOIN users u ON u.id = s.staff_id
	WHERE 1=1`
	var args []interface{}
	if courseID != "" {
		args = append(args, courseID)
		query += fmt.Sprintf(" AND s.course_id = $%d", len(args))
	}
	if staffID != "" {
		args = append(args, staffID)
		query += fmt.Sprintf(" AND s.staff_id = $%d", len(args))
	}
	query += " ORDER BY s.name ASC"

	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// UpdateSubject updates mutable subject fields.
func (r *AcademicRepository) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET name = :name, staff_id = :staff_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// DeleteSubject removes a subject row.
func (r *AcademicRepository) DeleteSubject(ctx context.Context, id string) error {
	const query = `DELETE FROM subjects WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}

// CreateSessionYear inserts a new academic year window.
func (r *AcademicRepository) CreateSessionYear(ctx context.Context, session *models.SessionYear) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO session_years (id, start_date, end_date, created_at) VALUES (:id, :start_date, :end_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session year: %w", err)
	}
	return nil
}

// GetSessionYear fetches a session year by identifier.
func (r *AcademicRepository) GetSessionYear(ctx context.Context, id string) (*models.SessionYear, error) {
	const query = `SELECT id, start_date, end_date, created_at FROM session_years WHERE id = $1`
	var session models.SessionYear
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionYears returns all session years, newest first.
func (r *AcademicRepository) ListSessionYears(ctx context.Context) ([]models.SessionYear, error) {
	const query = `SELECT id, start_date, end_date, created_at FROM session_years ORDER BY start_date DESC`
	var sessions []models.SessionYear
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("list session years: %w", err)
	}
	return sessions, nil
}
