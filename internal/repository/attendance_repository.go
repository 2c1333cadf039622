package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/college-api/internal/models"
)

// AttendanceRepository persists attendance sessions and per-student reports.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CreateSession inserts an attendance session.
func (r *AttendanceRepository) CreateSession(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID == "" {
		attendance.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if attendance.CreatedAt.IsZero() {
		attendance.CreatedAt = now
	}
	attendance.UpdatedAt = now
	const query = `INSERT INTO attendance (id, subject_id, session_year_id, date, created_at, updated_at) VALUES (:id, :subject_id, :session_year_id, :date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("create attendance session: %w", err)
	}
	return nil
}

// GetSession fetches an attendance session by identifier.
func (r *AttendanceRepository) GetSession(ctx context.Context, id string) (*models.Attendance, error) {
	const query = `SELECT id, subject_id, session_year_id, date, created_at, updated_at FROM attendance WHERE id = $1`
	var attendance models.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, id); err != nil {
		return nil, err
	}
	return &attendance, nil
}

// ListSessions returns attendance sessions matching the filter.
func (r *AttendanceRepository) ListSessions(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error) {
	baseQuery := `FROM attendance WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.SessionYearID != "" {
		conditions = append(conditions, fmt.Sprintf("session_year_id = $%d", len(args)+1))
		args = append(args, filter.SessionYearID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT id, subject_id, session_year_id, date, created_at, updated_at %s ORDER BY date DESC LIMIT %d OFFSET %d", baseQuery, pageSize, offset)

	var sessions []models.Attendance
	if err := r.db.SelectContext(ctx, &sessions, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance sessions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance sessions: %w", err)
	}

	return sessions, total, nil
}

// UpsertReport writes one student's presence for a session. The conflict
// target keeps at most one report per (attendance, student) pair.
func (r *AttendanceRepository) UpsertReport(ctx context.Context, report *models.AttendanceReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now
	const query = `INSERT INTO attendance_reports (id, attendance_id, student_profile_id, present, created_at, updated_at)
	VALUES (:id, :attendance_id, :student_profile_id, :present, :created_at, :updated_at)
	ON CONFLICT (attendance_id, student_profile_id)
	DO UPDATE SET present = EXCLUDED.present, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("upsert attendance report: %w", err)
	}
	return nil
}

// ListReports returns the per-student reports of one session with names.
func (r *AttendanceRepository) ListReports(ctx context.Context, attendanceID string) ([]models.AttendanceReportRow, error) {
	const query = `SELECT ar.id, ar.attendance_id, ar.student_profile_id, ar.present, ar.created_at, ar.updated_at, u.full_name AS student_name
	FROM attendance_reports ar
	JOIN profiles p ON p.id = ar.student_profile_id
	JOIN users u ON u.id = p.user_id
	WHERE ar.attendance_id = $1
	ORDER BY u.full_name ASC`
	var reports []models.AttendanceReportRow
	if err := r.db.SelectContext(ctx, &reports, query, attendanceID); err != nil {
		return nil, fmt.Errorf("list attendance reports: %w", err)
	}
	return reports, nil
}

// StudentHistory returns one student's attendance entries, newest first.
func (r *AttendanceRepository) StudentHistory(ctx context.Context, studentProfileID string, limit int) ([]models.AttendanceHistoryRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT a.date, s.name AS subject_name, ar.present
	FROM attendance_reports ar
	JOIN attendance a ON a.id = ar.attendance_id
	JOIN subjects s ON s.id = a.subject_id
	WHERE ar.student_profile_id = $1
	ORDER BY a.date DESC LIMIT %d`, limit)
	var rows []models.AttendanceHistoryRow
	if err := r.db.SelectContext(ctx, &rows, query, studentProfileID); err != nil {
		return nil, fmt.Errorf("student attendance history: %w", err)
	}
	return rows, nil
}

// StudentSummary aggregates a student's presence counts.
func (r *AttendanceRepository) StudentSummary(ctx context.Context, studentProfileID string) (*models.AttendanceSummary, error) {
	const query = `SELECT
	COUNT(*) FILTER (WHERE present) AS present,
	COUNT(*) FILTER (WHERE NOT present) AS absent,
	COUNT(*) AS total
	FROM attendance_reports WHERE student_profile_id = $1`
	var row struct {
		Present int `db:"present"`
		Absent  int `db:"absent"`
		Total   int `db:"total"`
	}
	if err := r.db.GetContext(ctx, &row, query, studentProfileID); err != nil {
		return nil, fmt.Errorf("student attendance summary: %w", err)
	}
	summary := &models.AttendanceSummary{Present: row.Present, Absent: row.Absent, Total: row.Total}
	if summary.Total > 0 {
		summary.Percent = float64(summary.Present) / float64(summary.Total) * 100
	}
	return summary, nil
}
