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

type leaveRepoStub struct {
	leaves    map[string]*models.LeaveRequest
	updateErr error
}

func newLeaveRepoStub() *leaveRepoStub {
	return &leaveRepoStub{leaves: make(map[string]*models.LeaveRequest)}
}

func (s *leaveRepoStub) Create(ctx context.Context, leave *models.LeaveRequest) error {
	if leave.ID == "" {
		leave.ID = "leave-1"
	}
	if leave.Status == "" {
		leave.Status = models.LeaveStatusPending
	}
	copy := *leave
	s.leaves[leave.ID] = &copy
	return nil
}

func (s *leaveRepoStub) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	if leave, ok := s.leaves[id]; ok {
		copy := *leave
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *leaveRepoStub) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, error) {
	result := make([]models.LeaveRequest, 0, len(s.leaves))
	for _, leave := range s.leaves {
		result = append(result, *leave)
	}
	return result, nil
}

func (s *leaveRepoStub) UpdateStatus(ctx context.Context, params repository.UpdateLeaveStatusParams) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	leave, ok := s.leaves[params.ID]
	if !ok || leave.Status != models.LeaveStatusPending {
		return sql.ErrNoRows
	}
	leave.Status = params.Status
	leave.ReviewedBy = &params.ReviewedBy
	leave.ReviewedAt = &params.ReviewedAt
	return nil
}

type profileStoreStub struct {
	profiles   map[string]*models.Profile
	byUser     map[string]*models.Profile
	activities []*models.ActivityLog
	logErr     error
}

func newProfileStoreStub() *profileStoreStub {
	return &profileStoreStub{
		profiles: make(map[string]*models.Profile),
		byUser:   make(map[string]*models.Profile),
	}
}

func (s *profileStoreStub) add(profile *models.Profile) {
	s.profiles[profile.ID] = profile
	s.byUser[profile.UserID] = profile
}

func (s *profileStoreStub) FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if profile, ok := s.byUser[userID]; ok {
		return profile, nil
	}
	return nil, sql.ErrNoRows
}

func (s *profileStoreStub) FindProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	if profile, ok := s.profiles[id]; ok {
		return profile, nil
	}
	return nil, sql.ErrNoRows
}

func (s *profileStoreStub) CreateActivityLog(ctx context.Context, log *models.ActivityLog) error {
	if s.logErr != nil {
		return s.logErr
	}
	s.activities = append(s.activities, log)
	return nil
}

type notifierStub struct {
	sent []models.Notification
}

func (n *notifierStub) Notify(ctx context.Context, userID, title, message string, notifType models.NotificationType, link *string) {
	n.sent = append(n.sent, models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Link:    link,
	})
}

func newLeaveFixture() (*LeaveService, *leaveRepoStub, *profileStoreStub, *notifierStub) {
	repo := newLeaveRepoStub()
	profiles := newProfileStoreStub()
	notifier := &notifierStub{}
	profiles.add(&models.Profile{ID: "prof-student", UserID: "user-student", Role: models.RoleStudent})
	profiles.add(&models.Profile{ID: "prof-staff", UserID: "user-staff", Role: models.RoleStaff})
	svc := NewLeaveService(repo, profiles, notifier, nil, nil, nil)
	return svc, repo, profiles, notifier
}

func TestLeaveCreateStartsPending(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()

	leave, err := svc.Create(context.Background(), "user-student", models.RoleStudent, dto.CreateLeaveRequest{
		LeaveDate: "2026-09-10",
		Message:   "family event",
	})
	require.NoError(t, err)
	require.Equal(t, models.LeaveStatusPending, leave.Status)
	require.Equal(t, "prof-student", leave.OwnerProfileID)
	require.Equal(t, models.LeaveOwnerStudent, leave.OwnerType)
}

func TestLeaveCreateRejectsHOD(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()

	_, err := svc.Create(context.Background(), "user-admin", models.RoleHOD, dto.CreateLeaveRequest{
		LeaveDate: "2026-09-10",
		Message:   "should fail",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestLeaveApproveDispatchesOneNotification(t *testing.T) {
	svc, _, _, notifier := newLeaveFixture()

	leave, err := svc.Create(context.Background(), "user-student", models.RoleStudent, dto.CreateLeaveRequest{
		LeaveDate: "2026-09-10",
		Message:   "family event",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), leave.ID, "user-admin")
	require.NoError(t, err)
	require.Equal(t, models.LeaveStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	require.Equal(t, "user-admin", *approved.ReviewedBy)

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "user-student", notifier.sent[0].UserID)
	require.Equal(t, models.NotificationTypeLeave, notifier.sent[0].Type)
}

func TestLeaveSecondDecisionConflicts(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()

	leave, err := svc.Create(context.Background(), "user-student", models.RoleStudent, dto.CreateLeaveRequest{
		LeaveDate: "2026-09-10",
		Message:   "family event",
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), leave.ID, "user-admin")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), leave.ID, "user-admin")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrInvalidTransition.Code, appErr.Code)
}

func TestLeaveConcurrentReviewLoses(t *testing.T) {
	svc, repo, _, _ := newLeaveFixture()

	leave, err := svc.Create(context.Background(), "user-student", models.RoleStudent, dto.CreateLeaveRequest{
		LeaveDate: "2026-09-10",
		Message:   "family event",
	})
	require.NoError(t, err)

	// The other reviewer wins between the read and the guarded update.
	repo.updateErr = sql.ErrNoRows

	_, err = svc.Approve(context.Background(), leave.ID, "user-admin")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrConcurrentModification.Code, appErr.Code)
}

func TestLeaveApproveSurvivesNotifyFailure(t *testing.T) {
	repo := newLeaveRepoStub()
	profiles := newProfileStoreStub()
	// Owner profile missing: decision notification cannot resolve its target.
	profiles.byUser["user-student"] = &models.Profile{ID: "prof-ghost", UserID: "user-student", Role: models.RoleStudent}
	notifier := &notifierStub{}
	svc := NewLeaveService(repo, profiles, notifier, nil, nil, nil)

	leave, err := svc.Create(context.Background(), "user-student", models.RoleStudent, dto.CreateLeaveRequest{
		LeaveDate: "2026-09-10",
		Message:   "family event",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), leave.ID, "user-admin")
	require.NoError(t, err)
	require.Equal(t, models.LeaveStatusApproved, approved.Status)
	require.Empty(t, notifier.sent)
}

func TestLeaveGetNotFound(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()

	_, err := svc.Get(context.Background(), "missing", "user-admin", models.RoleHOD)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
