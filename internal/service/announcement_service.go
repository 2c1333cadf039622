package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type announcementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	ListForAudiences(ctx context.Context, audiences []models.AnnouncementAudience, limit int) ([]models.Announcement, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementService manages broadcast announcements.
type AnnouncementService struct {
	repo      announcementRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs an AnnouncementService instance.
func NewAnnouncementService(repo announcementRepository, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AnnouncementService{repo: repo, validator: validate, logger: logger}
}

// Create publishes a new announcement.
func (s *AnnouncementService) Create(ctx context.Context, actorUserID string, req dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}
	if !validAudience(req.Audience) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "audience must be ALL, STAFF, STUDENTS or ADMIN")
	}
	announcement := &models.Announcement{
		Title:     req.Title,
		Message:   req.Message,
		Audience:  req.Audience,
		Active:    true,
		CreatedBy: actorUserID,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}
	return announcement, nil
}

// ListForRole returns active announcements the role may read.
func (s *AnnouncementService) ListForRole(ctx context.Context, role models.UserRole, limit int) ([]models.Announcement, error) {
	announcements, err := s.repo.ListForAudiences(ctx, models.AudiencesForRole(role), limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	return announcements, nil
}

// ListAll returns every announcement for admin management.
func (s *AnnouncementService) ListAll(ctx context.Context, limit, offset int) ([]models.Announcement, error) {
	announcements, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	return announcements, nil
}

// Update mutates an existing announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, req dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}
	if !validAudience(req.Audience) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "audience must be ALL, STAFF, STUDENTS or ADMIN")
	}
	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement")
	}
	announcement.Title = req.Title
	announcement.Message = req.Message
	announcement.Audience = req.Audience
	if req.Active != nil {
		announcement.Active = *req.Active
	}
	if err := s.repo.Update(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update announcement")
	}
	return announcement, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete announcement")
	}
	return nil
}

func validAudience(a models.AnnouncementAudience) bool {
	switch a {
	case models.AnnouncementAudienceAll, models.AnnouncementAudienceStaff, models.AnnouncementAudienceStudents, models.AnnouncementAudienceAdmin:
		return true
	default:
		return false
	}
}
