package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type timetableRepository interface {
	Create(ctx context.Context, entry *models.TimetableEntry) error
	GetByID(ctx context.Context, id string) (*models.TimetableEntry, error)
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
	Delete(ctx context.Context, id string) error
}

type timetableSubjectStore interface {
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
}

// TimetableService manages scheduled subject slots.
type TimetableService struct {
	repo      timetableRepository
	subjects  timetableSubjectStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs a TimetableService instance.
func NewTimetableService(repo timetableRepository, subjects timetableSubjectStore, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TimetableService{repo: repo, subjects: subjects, validator: validate, logger: logger}
}

// Create schedules a subject slot.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateTimetableEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	if !models.ValidDayOfWeek(req.DayOfWeek) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day_of_week must be a weekday name")
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be formatted as HH:MM")
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be formatted as HH:MM")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must come after start_time")
	}

	subject, err := s.subjects.GetSubject(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if subject.CourseID != req.CourseID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject belongs to a different course")
	}

	entry := &models.TimetableEntry{
		SubjectID:     req.SubjectID,
		CourseID:      req.CourseID,
		SessionYearID: req.SessionYearID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RoomNumber:    req.RoomNumber,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable entry")
	}
	return entry, nil
}

// List returns timetable entries matching the filter.
func (s *TimetableService) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable entries")
	}
	return entries, nil
}

// Delete removes a timetable entry.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable entry")
	}
	return nil
}
