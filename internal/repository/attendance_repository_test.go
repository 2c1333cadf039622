package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/college-api/internal/models"
)

func TestUpsertReportConflictTargetKeepsOneRowPerStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	// The statement must carry the conflict target so a re-submitted
	// report overwrites the existing (attendance, student) row.
	const upsertPattern = `(?s)INSERT INTO attendance_reports.*ON CONFLICT \(attendance_id, student_profile_id\)`

	mock.ExpectExec(upsertPattern).WillReturnResult(sqlmock.NewResult(1, 1))

	report := &models.AttendanceReport{
		AttendanceID:     "att-1",
		StudentProfileID: "prof-student",
		Present:          true,
	}
	require.NoError(t, repo.UpsertReport(context.Background(), report))
	assert.NotEmpty(t, report.ID)

	// Second submission for the same pair hits the DO UPDATE arm; the
	// database reports one affected row, not a duplicate insert.
	mock.ExpectExec(upsertPattern).WillReturnResult(sqlmock.NewResult(0, 1))

	report.Present = false
	require.NoError(t, repo.UpsertReport(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSessionSetsIdentifiers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance ").WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Attendance{
		SubjectID:     "sub-1",
		SessionYearID: "sy-1",
		Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateSession(context.Background(), session))
	assert.NotEmpty(t, session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
