package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/college-api/internal/models"
)

func TestLeaveCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectExec("INSERT INTO leave_requests").WillReturnResult(sqlmock.NewResult(1, 1))

	leave := &models.LeaveRequest{
		OwnerProfileID: "prof-1",
		OwnerType:      models.LeaveOwnerStudent,
		LeaveDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Message:        "family event",
	}
	err := repo.Create(context.Background(), leave)
	require.NoError(t, err)

	assert.NotEmpty(t, leave.ID)
	assert.Equal(t, models.LeaveStatusPending, leave.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveUpdateStatusAppliesReview(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectExec("UPDATE leave_requests SET status").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), UpdateLeaveStatusParams{
		ID:         "leave-1",
		Status:     models.LeaveStatusApproved,
		ReviewedBy: "user-admin",
		ReviewedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveUpdateStatusMissesDecidedRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	// The guarded UPDATE matches nothing when the row already left PENDING.
	mock.ExpectExec("UPDATE leave_requests SET status").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), UpdateLeaveStatusParams{
		ID:         "leave-1",
		Status:     models.LeaveStatusRejected,
		ReviewedBy: "user-admin",
		ReviewedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveCountByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
	mock.ExpectQuery("SELECT COUNT").WithArgs(models.LeaveStatusPending).WillReturnRows(rows)

	count, err := repo.CountByStatus(context.Background(), models.LeaveStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
