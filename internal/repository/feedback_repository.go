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

// FeedbackRepository persists feedback entries and their replies.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs the repository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a new feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = now
	}
	feedback.UpdatedAt = now
	const query = `INSERT INTO feedback
	(id, owner_profile_id, owner_type, message, reply, replied_by, replied_at, created_at, updated_at)
	VALUES (:id, :owner_profile_id, :owner_type, :message, :reply, :replied_by, :replied_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, feedback); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// GetByID fetches a feedback entry by identifier.
func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	const query = `SELECT id, owner_profile_id, owner_type, message, reply, replied_by, replied_at, created_at, updated_at
	FROM feedback WHERE id = $1`
	var feedback models.Feedback
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// List returns feedback entries matching the filter (latest first).
func (r *FeedbackRepository) List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 2)
	builder.WriteString(`SELECT id, owner_profile_id, owner_type, message, reply, replied_by, replied_at, created_at, updated_at FROM feedback`)

	conditions := make([]string, 0, 3)
	if filter.OwnerType != "" {
		args = append(args, filter.OwnerType)
		conditions = append(conditions, fmt.Sprintf("owner_type = $%d", len(args)))
	}
	if filter.OwnerProfileID != "" {
		args = append(args, filter.OwnerProfileID)
		conditions = append(conditions, fmt.Sprintf("owner_profile_id = $%d", len(args)))
	}
	if filter.Unanswered {
		conditions = append(conditions, "reply IS NULL")
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

	var entries []models.Feedback
	if err := r.db.SelectContext(ctx, &entries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}

// ReplyFeedbackParams groups the reply columns.
type ReplyFeedbackParams struct {
	ID        string
	Reply     string
	RepliedBy string
	RepliedAt time.Time
}

// Reply persists an answer. The statement only matches rows without a
// reply, which is the optimistic guard against two reviewers answering
// the same entry: the loser sees sql.ErrNoRows.
func (r *FeedbackRepository) Reply(ctx context.Context, params ReplyFeedbackParams) error {
	const query = `UPDATE feedback SET reply = :reply, replied_by = :replied_by, replied_at = :replied_at, updated_at = :replied_at WHERE id = :id AND reply IS NULL`
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         params.ID,
		"reply":      params.Reply,
		"replied_by": params.RepliedBy,
		"replied_at": params.RepliedAt,
	})
	if err != nil {
		return fmt.Errorf("reply feedback: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check feedback reply rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
