package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type resultRepository interface {
	Upsert(ctx context.Context, result *models.StudentResult) error
	ListByStudent(ctx context.Context, studentProfileID string) ([]models.StudentResultRow, error)
	ListBySubject(ctx context.Context, subjectID string) ([]models.StudentResultRow, error)
}

type resultSubjectStore interface {
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
}

type resultProfileStore interface {
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	FindProfileByID(ctx context.Context, id string) (*models.Profile, error)
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
}

type resultNotifier interface {
	Notify(ctx context.Context, userID, title, message string, notifType models.NotificationType, link *string)
}

// ResultService manages student marks.
type ResultService struct {
	repo      resultRepository
	subjects  resultSubjectStore
	profiles  resultProfileStore
	notifier  resultNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs a ResultService instance.
func NewResultService(repo resultRepository, subjects resultSubjectStore, profiles resultProfileStore, notifier resultNotifier, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ResultService{repo: repo, subjects: subjects, profiles: profiles, notifier: notifier, validator: validate, logger: logger}
}

// Upsert writes marks for one student and subject. Staff may only grade
// subjects they teach; repeated calls overwrite the previous marks.
func (s *ResultService) Upsert(ctx context.Context, actorUserID string, actorRole models.UserRole, req dto.UpsertResultRequest) (*models.StudentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}

	subject, err := s.subjects.GetSubject(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if actorRole == models.RoleStaff && subject.StaffID != actorUserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "subject is taught by another staff member")
	}

	student, err := s.profiles.FindProfileByID(ctx, req.StudentProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student profile")
	}
	if student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "profile does not belong to a student")
	}

	result := &models.StudentResult{
		StudentProfileID: req.StudentProfileID,
		SubjectID:        req.SubjectID,
		ExamMarks:        req.ExamMarks,
		AssignmentMarks:  req.AssignmentMarks,
	}
	if err := s.repo.Upsert(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save result")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, student.UserID, "Result published",
			fmt.Sprintf("Your marks for %s have been published.", subject.Name),
			models.NotificationTypeResult, nil)
	}

	if err := s.profiles.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:      &actorUserID,
		Action:      models.ActivityActionResultUpsert,
		Description: fmt.Sprintf("result saved for subject %s", subject.Name),
	}); err != nil {
		s.logger.Warn("failed to record result activity", zap.Error(err))
	}

	return result, nil
}

// ListOwn returns the calling student's results.
func (s *ResultService) ListOwn(ctx context.Context, actorUserID string) ([]models.StudentResultRow, error) {
	profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caller profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caller profile")
	}
	return s.ListByStudent(ctx, profile.ID)
}

// ListByStudent returns the results of one student profile.
func (s *ResultService) ListByStudent(ctx context.Context, studentProfileID string) ([]models.StudentResultRow, error) {
	results, err := s.repo.ListByStudent(ctx, studentProfileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return results, nil
}

// ListBySubject returns every student's result for one subject.
func (s *ResultService) ListBySubject(ctx context.Context, subjectID string) ([]models.StudentResultRow, error) {
	results, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject results")
	}
	return results, nil
}
