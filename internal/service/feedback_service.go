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

type feedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error)
	Reply(ctx context.Context, params repository.ReplyFeedbackParams) error
}

type feedbackProfileStore interface {
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	FindProfileByID(ctx context.Context, id string) (*models.Profile, error)
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
}

type feedbackNotifier interface {
	Notify(ctx context.Context, userID, title, message string, notifType models.NotificationType, link *string)
}

// FeedbackService runs the feedback question and answer workflow.
type FeedbackService struct {
	repo      feedbackRepository
	profiles  feedbackProfileStore
	notifier  feedbackNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(repo feedbackRepository, profiles feedbackProfileStore, notifier feedbackNotifier, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, profiles: profiles, notifier: notifier, validator: validate, logger: logger}
}

// Submit files feedback owned by the caller's profile. The owner type
// follows the caller's role; HODs answer feedback, they do not file it.
func (s *FeedbackService) Submit(ctx context.Context, actorUserID string, actorRole models.UserRole, req dto.CreateFeedbackRequest) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	var ownerType models.FeedbackOwnerType
	switch actorRole {
	case models.RoleStudent:
		ownerType = models.FeedbackOwnerStudent
	case models.RoleStaff:
		ownerType = models.FeedbackOwnerStaff
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students and staff can submit feedback")
	}

	profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caller profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caller profile")
	}

	feedback := &models.Feedback{
		OwnerProfileID: profile.ID,
		OwnerType:      ownerType,
		Message:        req.Message,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create feedback")
	}
	return feedback, nil
}

// List returns feedback entries for review, filtered by owner type and
// reply state.
func (s *FeedbackService) List(ctx context.Context, query dto.FeedbackQuery) ([]models.Feedback, error) {
	filter := models.FeedbackFilter{
		OwnerType:  query.OwnerType,
		Unanswered: query.Unanswered,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return entries, nil
}

// ListOwn returns the caller's own feedback history.
func (s *FeedbackService) ListOwn(ctx context.Context, actorUserID string, limit, offset int) ([]models.Feedback, error) {
	profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caller profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caller profile")
	}
	entries, err := s.repo.List(ctx, models.FeedbackFilter{OwnerProfileID: profile.ID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return entries, nil
}

// Reply answers a feedback entry. Entries already answered return
// ErrInvalidTransition; a race between two reviewers surfaces as
// ErrConcurrentModification for the loser. The owner notification is
// dispatched after commit and never rolls the answer back.
func (s *FeedbackService) Reply(ctx context.Context, id, reviewerUserID string, req dto.ReplyFeedbackRequest) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reply payload")
	}

	feedback, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback")
	}

	if feedback.Answered() {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "feedback has already been answered")
	}

	repliedAt := time.Now().UTC()
	err = s.repo.Reply(ctx, repository.ReplyFeedbackParams{
		ID:        id,
		Reply:     req.Reply,
		RepliedBy: reviewerUserID,
		RepliedAt: repliedAt,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConcurrentModification, "feedback was answered by another reviewer")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reply to feedback")
	}

	feedback.Reply = &req.Reply
	feedback.RepliedBy = &reviewerUserID
	feedback.RepliedAt = &repliedAt
	feedback.UpdatedAt = repliedAt

	s.dispatchReply(ctx, feedback)

	if err := s.profiles.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:      &reviewerUserID,
		Action:      models.ActivityActionFeedbackReply,
		Description: fmt.Sprintf("feedback %s answered", feedback.ID),
	}); err != nil {
		s.logger.Warn("failed to record feedback reply activity", zap.Error(err))
	}

	return feedback, nil
}

func (s *FeedbackService) dispatchReply(ctx context.Context, feedback *models.Feedback) {
	if s.notifier == nil {
		return
	}
	profile, err := s.profiles.FindProfileByID(ctx, feedback.OwnerProfileID)
	if err != nil {
		s.logger.Warn("failed to resolve feedback owner for notification",
			zap.String("feedback_id", feedback.ID),
			zap.Error(err),
		)
		return
	}
	s.notifier.Notify(ctx, profile.UserID, "Feedback answered",
		fmt.Sprintf("Your feedback has been answered: %s", *feedback.Reply),
		models.NotificationTypeFeedback, nil)
}
