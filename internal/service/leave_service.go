package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	"github.com/campushub/college-api/internal/repository"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type leaveRepository interface {
	Create(ctx context.Context, leave *models.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, error)
	UpdateStatus(ctx context.Context, params repository.UpdateLeaveStatusParams) error
}

type leaveProfileStore interface {
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	FindProfileByID(ctx context.Context, id string) (*models.Profile, error)
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
}

type leaveNotifier interface {
	Notify(ctx context.Context, userID, title, message string, notifType models.NotificationType, link *string)
}

// LeaveService runs the leave request approval workflow.
type LeaveService struct {
	repo      leaveRepository
	profiles  leaveProfileStore
	notifier  leaveNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeaveService constructs a LeaveService instance.
func NewLeaveService(repo leaveRepository, profiles leaveProfileStore, notifier leaveNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LeaveService{repo: repo, profiles: profiles, notifier: notifier, metrics: metrics, validator: validate, logger: logger}
}

// Create submits a leave request owned by the caller's profile. The owner
// type follows the caller's role; HODs do not file leave requests.
func (s *LeaveService) Create(ctx context.Context, actorUserID string, actorRole models.UserRole, req dto.CreateLeaveRequest) (*models.LeaveRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload")
	}

	var ownerType models.LeaveOwnerType
	switch actorRole {
	case models.RoleStudent:
		ownerType = models.LeaveOwnerStudent
	case models.RoleStaff:
		ownerType = models.LeaveOwnerStaff
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students and staff can request leave")
	}

	leaveDate, err := time.Parse("2006-01-02", req.LeaveDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "leave_date must be formatted as YYYY-MM-DD")
	}

	profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caller profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caller profile")
	}

	leave := &models.LeaveRequest{
		OwnerProfileID: profile.ID,
		OwnerType:      ownerType,
		LeaveDate:      leaveDate,
		Message:        req.Message,
		Status:         models.LeaveStatusPending,
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create leave request")
	}

	if err := s.profiles.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:      &actorUserID,
		Action:      models.ActivityActionLeaveCreate,
		Description: fmt.Sprintf("leave requested for %s", leaveDate.Format("2006-01-02")),
	}); err != nil {
		s.logger.Warn("failed to record leave activity", zap.Error(err))
	}

	return leave, nil
}

// Get returns one leave request. Non-HOD callers may only read their own.
func (s *LeaveService) Get(ctx context.Context, id, actorUserID string, actorRole models.UserRole) (*models.LeaveRequest, error) {
	leave, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave request")
	}
	if actorRole != models.RoleHOD {
		profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
		if err != nil || profile.ID != leave.OwnerProfileID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "leave request belongs to another profile")
		}
	}
	return leave, nil
}

// List returns leave requests for review, filtered by status and owner type.
func (s *LeaveService) List(ctx context.Context, query dto.LeaveQuery) ([]models.LeaveRequest, error) {
	filter := models.LeaveFilter{
		Status:    query.Status,
		OwnerType: query.OwnerType,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}
	leaves, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list leave requests")
	}
	return leaves, nil
}

// ListOwn returns the caller's own leave history.
func (s *LeaveService) ListOwn(ctx context.Context, actorUserID string, limit, offset int) ([]models.LeaveRequest, error) {
	profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caller profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caller profile")
	}
	leaves, err := s.repo.List(ctx, models.LeaveFilter{OwnerProfileID: profile.ID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list leave requests")
	}
	return leaves, nil
}

// Approve moves a pending leave request to APPROVED.
func (s *LeaveService) Approve(ctx context.Context, id, reviewerUserID string) (*models.LeaveRequest, error) {
	return s.review(ctx, id, reviewerUserID, models.LeaveStatusApproved)
}

// Reject moves a pending leave request to REJECTED.
func (s *LeaveService) Reject(ctx context.Context, id, reviewerUserID string) (*models.LeaveRequest, error) {
	return s.review(ctx, id, reviewerUserID, models.LeaveStatusRejected)
}

// review applies a terminal decision. Requests already decided return
// ErrInvalidTransition; a race between two reviewers surfaces as
// ErrConcurrentModification for the loser. The owner notification is
// dispatched after commit and never rolls the decision back.
func (s *LeaveService) review(ctx context.Context, id, reviewerUserID string, decision models.LeaveStatus) (*models.LeaveRequest, error) {
	leave, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave request")
	}

	if leave.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("leave request is already %s", leave.Status))
	}

	reviewedAt := time.Now().UTC()
	err = s.repo.UpdateStatus(ctx, repository.UpdateLeaveStatusParams{
		ID:         id,
		Status:     decision,
		ReviewedBy: reviewerUserID,
		ReviewedAt: reviewedAt,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConcurrentModification, "leave request was decided by another reviewer")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update leave request")
	}

	leave.Status = decision
	leave.ReviewedBy = &reviewerUserID
	leave.ReviewedAt = &reviewedAt
	leave.UpdatedAt = reviewedAt

	s.metrics.RecordLeaveDecision(string(decision))
	s.dispatchDecision(ctx, leave)

	if err := s.profiles.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:      &reviewerUserID,
		Action:      models.ActivityActionLeaveReview,
		Description: fmt.Sprintf("leave request %s %s", leave.ID, decision),
	}); err != nil {
		s.logger.Warn("failed to record leave review activity", zap.Error(err))
	}

	return leave, nil
}

func (s *LeaveService) dispatchDecision(ctx context.Context, leave *models.LeaveRequest) {
	if s.notifier == nil {
		return
	}
	profile, err := s.profiles.FindProfileByID(ctx, leave.OwnerProfileID)
	if err != nil {
		s.logger.Warn("failed to resolve leave owner for notification",
			zap.String("leave_id", leave.ID),
			zap.Error(err),
		)
		return
	}
	title := "Leave request approved"
	if leave.Status == models.LeaveStatusRejected {
		title = "Leave request rejected"
	}
	message := fmt.Sprintf("Your leave request for %s has been %s.",
		leave.LeaveDate.Format("2006-01-02"),
		leave.Status,
	)
	s.notifier.Notify(ctx, profile.UserID, title, message, models.NotificationTypeLeave, nil)
}
