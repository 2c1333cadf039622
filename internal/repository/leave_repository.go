package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/college-api/internal/models"
)

// LeaveRepository persists leave request workflow data.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create inserts a new leave request row.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveRequest) error {
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	if leave.Status == "" {
		leave.Status = models.LeaveStatusPending
	}
	now := time.Now().UTC()
	if leave.CreatedAt.IsZero() {
		leave.CreatedAt = now
	}
	leave.UpdatedAt = now
	const query = `INSERT INTO leave_requests
	(id, owner_profile_id, owner_type, leave_date, message, status, reviewed_by, reviewed_at, created_at, updated_at)
	VALUES (:id, :owner_profile_id, :owner_type, :leave_date, :message, :status, :reviewed_by, :reviewed_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, leave); err != nil {
		return fmt.Errorf("create leave request: %w", err)
	}
	return nil
}

// GetByID fetches a leave request by identifier.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	const query = `SELECT id, owner_profile_id, owner_type, leave_date, message, status, reviewed_by, reviewed_at, created_at, updated_at
	FROM leave_requests WHERE id = $1`
	var leave models.LeaveRequest
	if err := r.db.GetContext(ctx, &leave, query, id); err != nil {
		return nil, err
	}
	return &leave, nil
}

// List returns leave requests matching the filter (latest first).
func (r *LeaveRepository) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 4)
	builder.WriteString(`SELECT id, owner_profile_id, owner_type, leave_date, message, status, reviewed_by, reviewed_at, created_at, updated_at FROM leave_requests`)

	conditions := make([]string, 0, 3)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.OwnerType != "" {
		args = append(args, filter.OwnerType)
		conditions = append(conditions, fmt.Sprintf("owner_type = $%d", len(args)))
	}
	if filter.OwnerProfileID != "" {
		args = append(args, filter.OwnerProfileID)
		conditions = append(conditions, fmt.Sprintf("owner_profile_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY created_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var leaves []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &leaves, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return leaves, nil
}

// UpdateLeaveStatusParams groups the review outcome columns.
type UpdateLeaveStatusParams struct {
	ID         string
	Status     models.LeaveStatus
	ReviewedBy string
	ReviewedAt time.Time
}

// UpdateStatus persists a review outcome. The statement only matches rows
// still in PENDING, which is the optimistic guard against two reviewers
// racing on the same record: the loser sees sql.ErrNoRows.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, params UpdateLeaveStatusParams) error {
	query := fmt.Sprintf(`UPDATE leave_requests SET status = :status, reviewed_by = :reviewed_by, reviewed_at = :reviewed_at, updated_at = :reviewed_at WHERE id = :id AND status = '%s'`,
		models.LeaveStatusPending,
	)
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          params.ID,
		"status":      params.Status,
		"reviewed_by": params.ReviewedBy,
		"reviewed_at": params.ReviewedAt,
	})
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check leave update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus returns how many leave requests carry the given status.
func (r *LeaveRepository) CountByStatus(ctx context.Context, status models.LeaveStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM leave_requests WHERE status = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("count leave requests: %w", err)
	}
	return count, nil
}
