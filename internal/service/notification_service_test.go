package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type notificationRepoStub struct {
	created   []*models.Notification
	createErr error
	read      map[string]bool
	unread    int
}

func newNotificationRepoStub() *notificationRepoStub {
	return &notificationRepoStub{read: make(map[string]bool)}
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, n)
	return nil
}

func (s *notificationRepoStub) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	result := make([]models.Notification, 0, len(s.created))
	for _, n := range s.created {
		result = append(result, *n)
	}
	return result, len(result), nil
}

func (s *notificationRepoStub) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.unread, nil
}

func (s *notificationRepoStub) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	if _, ok := s.read[id]; !ok {
		return false, nil
	}
	s.read[id] = true
	return true, nil
}

func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID string) error {
	for id := range s.read {
		s.read[id] = true
	}
	return nil
}

func TestNotifyPersistsNotification(t *testing.T) {
	repo := newNotificationRepoStub()
	svc := NewNotificationService(repo, nil, nil)

	svc.Notify(context.Background(), "user-1", "Leave request approved", "Your leave request for 2026-09-10 has been approved.", models.NotificationTypeLeave, nil)

	require.Len(t, repo.created, 1)
	require.Equal(t, "user-1", repo.created[0].UserID)
	require.Equal(t, models.NotificationTypeLeave, repo.created[0].Type)
}

func TestNotifySwallowsRepositoryFailure(t *testing.T) {
	repo := newNotificationRepoStub()
	repo.createErr = errors.New("db down")
	svc := NewNotificationService(repo, nil, nil)

	// Must not panic and must not surface the error.
	svc.Notify(context.Background(), "user-1", "title", "message", models.NotificationTypeGeneral, nil)
	require.Empty(t, repo.created)
}

func TestNotifySkipsEmptyTarget(t *testing.T) {
	repo := newNotificationRepoStub()
	svc := NewNotificationService(repo, nil, nil)

	svc.Notify(context.Background(), "", "title", "message", models.NotificationTypeGeneral, nil)
	require.Empty(t, repo.created)
}

func TestNotificationListRequiresUser(t *testing.T) {
	svc := NewNotificationService(newNotificationRepoStub(), nil, nil)

	_, _, err := svc.List(context.Background(), models.NotificationFilter{})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestNotificationMarkReadNotFound(t *testing.T) {
	svc := NewNotificationService(newNotificationRepoStub(), nil, nil)

	err := svc.MarkRead(context.Background(), "missing", "user-1")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
