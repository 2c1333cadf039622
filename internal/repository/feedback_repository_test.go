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

func TestFeedbackCreateSetsIdentifiers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	mock.ExpectExec("INSERT INTO feedback").WillReturnResult(sqlmock.NewResult(1, 1))

	feedback := &models.Feedback{
		OwnerProfileID: "prof-1",
		OwnerType:      models.FeedbackOwnerStaff,
		Message:        "projector in room 12 is broken",
	}
	require.NoError(t, repo.Create(context.Background(), feedback))
	assert.NotEmpty(t, feedback.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackReplyMissesAnsweredRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	// The guarded UPDATE matches nothing once a reply exists.
	mock.ExpectExec("UPDATE feedback SET reply").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reply(context.Background(), ReplyFeedbackParams{
		ID:        "feedback-1",
		Reply:     "noted",
		RepliedBy: "user-admin",
		RepliedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
