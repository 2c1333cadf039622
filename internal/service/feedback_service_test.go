package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	"github.com/campushub/college-api/internal/repository"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type feedbackRepoStub struct {
	entries  map[string]*models.Feedback
	replyErr error
}

func newFeedbackRepoStub() *feedbackRepoStub {
	return &feedbackRepoStub{entries: make(map[string]*models.Feedback)}
}

func (s *feedbackRepoStub) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = "feedback-1"
	}
	copy := *feedback
	s.entries[feedback.ID] = &copy
	return nil
}

func (s *feedbackRepoStub) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	if feedback, ok := s.entries[id]; ok {
		copy := *feedback
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *feedbackRepoStub) List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	result := make([]models.Feedback, 0, len(s.entries))
	for _, feedback := range s.entries {
		result = append(result, *feedback)
	}
	return result, nil
}

func (s *feedbackRepoStub) Reply(ctx context.Context, params repository.ReplyFeedbackParams) error {
	if s.replyErr != nil {
		return s.replyErr
	}
	feedback, ok := s.entries[params.ID]
	if !ok || feedback.Reply != nil {
		return sql.ErrNoRows
	}
	feedback.Reply = &params.Reply
	feedback.RepliedBy = &params.RepliedBy
	feedback.RepliedAt = &params.RepliedAt
	return nil
}

func newFeedbackFixture() (*FeedbackService, *feedbackRepoStub, *profileStoreStub, *notifierStub) {
	repo := newFeedbackRepoStub()
	profiles := newProfileStoreStub()
	notifier := &notifierStub{}
	profiles.add(&models.Profile{ID: "prof-student", UserID: "user-student", Role: models.RoleStudent})
	profiles.add(&models.Profile{ID: "prof-staff", UserID: "user-staff", Role: models.RoleStaff})
	svc := NewFeedbackService(repo, profiles, notifier, nil, nil)
	return svc, repo, profiles, notifier
}

func TestFeedbackSubmitStartsUnanswered(t *testing.T) {
	svc, _, _, _ := newFeedbackFixture()

	feedback, err := svc.Submit(context.Background(), "user-student", models.RoleStudent, dto.CreateFeedbackRequest{
		Message: "the library closes too early",
	})
	require.NoError(t, err)
	require.Equal(t, "prof-student", feedback.OwnerProfileID)
	require.Equal(t, models.FeedbackOwnerStudent, feedback.OwnerType)
	require.False(t, feedback.Answered())
}

func TestFeedbackSubmitRejectsHOD(t *testing.T) {
	svc, _, _, _ := newFeedbackFixture()

	_, err := svc.Submit(context.Background(), "user-admin", models.RoleHOD, dto.CreateFeedbackRequest{
		Message: "should fail",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestFeedbackReplyDispatchesOneNotification(t *testing.T) {
	svc, _, _, notifier := newFeedbackFixture()

	feedback, err := svc.Submit(context.Background(), "user-staff", models.RoleStaff, dto.CreateFeedbackRequest{
		Message: "projector in room 12 is broken",
	})
	require.NoError(t, err)

	answered, err := svc.Reply(context.Background(), feedback.ID, "user-admin", dto.ReplyFeedbackRequest{
		Reply: "maintenance scheduled for Monday",
	})
	require.NoError(t, err)
	require.True(t, answered.Answered())
	require.NotNil(t, answered.RepliedBy)
	require.Equal(t, "user-admin", *answered.RepliedBy)

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "user-staff", notifier.sent[0].UserID)
	require.Equal(t, models.NotificationTypeFeedback, notifier.sent[0].Type)
}

func TestFeedbackSecondReplyConflicts(t *testing.T) {
	svc, _, _, _ := newFeedbackFixture()

	feedback, err := svc.Submit(context.Background(), "user-student", models.RoleStudent, dto.CreateFeedbackRequest{
		Message: "more practice sessions please",
	})
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), feedback.ID, "user-admin", dto.ReplyFeedbackRequest{Reply: "noted"})
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), feedback.ID, "user-admin", dto.ReplyFeedbackRequest{Reply: "again"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrInvalidTransition.Code, appErr.Code)
}

func TestFeedbackConcurrentReplyLoses(t *testing.T) {
	svc, repo, _, _ := newFeedbackFixture()

	feedback, err := svc.Submit(context.Background(), "user-student", models.RoleStudent, dto.CreateFeedbackRequest{
		Message: "wifi keeps dropping",
	})
	require.NoError(t, err)

	// The other reviewer wins between the read and the guarded update.
	repo.replyErr = sql.ErrNoRows

	_, err = svc.Reply(context.Background(), feedback.ID, "user-admin", dto.ReplyFeedbackRequest{Reply: "looking into it"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrConcurrentModification.Code, appErr.Code)
}

func TestFeedbackReplyNotFound(t *testing.T) {
	svc, _, _, _ := newFeedbackFixture()

	_, err := svc.Reply(context.Background(), "missing", "user-admin", dto.ReplyFeedbackRequest{Reply: "hello"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
