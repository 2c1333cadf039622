package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/college-api/internal/models"
)

// TimetableRepository persists timetable entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// Create inserts a timetable entry.
func (r *TimetableRepository) Create(ctx context.Context, entry *models.TimetableEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	const query = `INSERT INTO timetable_entries (id, subject_id, course_id, session_year_id, day_of_week, start_time, end_time, room_number, created_at, updated_at)
	VALUES (:id, :subject_id, :course_id, :session_year_id, :day_of_week, :start_time, :end_time, :room_number, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create timetable entry: %w", err)
	}
	return nil
}

// GetByID fetches one timetable entry.
func (r *TimetableRepository) GetByID(ctx context.Context, id string) (*models.TimetableEntry, error) {
	const query = `SELECT id, subject_id, course_id, session_year_id, day_of_week, start_time, end_time, room_number, created_at, updated_at FROM timetable_entries WHERE id = $1`
	var entry models.TimetableEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns timetable entries matching the filter, ordered by day and time.
func (r *TimetableRepository) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	query := `SELECT id, subject_id, course_id, session_year_id, day_of_week, start_time, end_time, room_number, created_at, updated_at FROM timetable_entries WHERE 1=1`
	var args []interface{}
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		query += fmt.Sprintf(" AND course_id = $%d", len(args))
	}
	if filter.SessionYearID != "" {
		args = append(args, filter.SessionYearID)
		query += fmt.Sprintf(" AND session_year_id = $%d", len(args))
	}
	if filter.DayOfWeek != "" {
		args = append(args, filter.DayOfWeek)
		query += fmt.Sprintf(" AND day_of_week = $%d", len(args))
	}
	query += " ORDER BY day_of_week ASC, start_time ASC"

	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// Delete removes a timetable entry.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM timetable_entries WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete timetable entry: %w", err)
	}
	return nil
}
