package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/college-api/internal/models"
)

// DashboardRepository aggregates headline counts for dashboards.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats collects the counts shown on the admin dashboard.
func (r *DashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM users WHERE role = 'STUDENT' AND active) AS students,
	(SELECT COUNT(*) FROM users WHERE role = 'STAFF' AND active) AS staff,
	(SELECT COUNT(*) FROM courses) AS courses,
	(SELECT COUNT(*) FROM subjects) AS subjects,
	(SELECT COUNT(*) FROM leave_requests WHERE status = 'PENDING') AS pending_leaves`
	var row struct {
		Students      int `db:"students"`
		Staff         int `db:"staff"`
		Courses       int `db:"courses"`
		Subjects      int `db:"subjects"`
		PendingLeaves int `db:"pending_leaves"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &models.DashboardStats{
		Students:      row.Students,
		Staff:         row.Staff,
		Courses:       row.Courses,
		Subjects:      row.Subjects,
		PendingLeaves: row.PendingLeaves,
	}, nil
}
