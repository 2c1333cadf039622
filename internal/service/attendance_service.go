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
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type attendanceRepository interface {
	CreateSession(ctx context.Context, attendance *models.Attendance) error
	GetSession(ctx context.Context, id string) (*models.Attendance, error)
	ListSessions(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, int, error)
	UpsertReport(ctx context.Context, report *models.AttendanceReport) error
	ListReports(ctx context.Context, attendanceID string) ([]models.AttendanceReportRow, error)
	StudentHistory(ctx context.Context, studentProfileID string, limit int) ([]models.AttendanceHistoryRow, error)
	StudentSummary(ctx context.Context, studentProfileID string) (*models.AttendanceSummary, error)
}

type attendanceSubjectStore interface {
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
	GetSessionYear(ctx context.Context, id string) (*models.SessionYear, error)
}

type attendanceProfileStore interface {
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	FindProfileByID(ctx context.Context, id string) (*models.Profile, error)
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
}

type attendanceNotifier interface {
	Notify(ctx context.Context, userID, title, message string, notifType models.NotificationType, link *string)
}

// AttendanceService manages attendance sessions and presence marks.
type AttendanceService struct {
	repo      attendanceRepository
	subjects  attendanceSubjectStore
	profiles  attendanceProfileStore
	notifier  attendanceNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService instance.
func NewAttendanceService(repo attendanceRepository, subjects attendanceSubjectStore, profiles attendanceProfileStore, notifier attendanceNotifier, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{repo: repo, subjects: subjects, profiles: profiles, notifier: notifier, validator: validate, logger: logger}
}

// CreateSession opens an attendance session. Staff may only open sessions
// for subjects they teach; HODs may open any.
func (s *AttendanceService) CreateSession(ctx context.Context, actorUserID string, actorRole models.UserRole, req dto.CreateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
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
	if _, err := s.subjects.GetSessionYear(ctx, req.SessionYearID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session year")
	}

	attendance := &models.Attendance{
		SubjectID:     req.SubjectID,
		SessionYearID: req.SessionYearID,
		Date:          date,
	}
	if err := s.repo.CreateSession(ctx, attendance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance session")
	}
	return attendance, nil
}

// ListSessions returns attendance sessions with pagination metadata.
func (s *AttendanceService) ListSessions(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	sessions, total, err := s.repo.ListSessions(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance sessions")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return sessions, pagination, nil
}

// SaveReports writes presence marks for one session. Writes are upserts
// keyed on (attendance_id, student_profile_id) so re-saving a session
// updates marks instead of duplicating rows. Absent students receive a
// best effort notification.
func (s *AttendanceService) SaveReports(ctx context.Context, actorUserID string, actorRole models.UserRole, attendanceID string, req dto.SaveAttendanceReportsRequest) ([]models.AttendanceReportRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance reports payload")
	}

	attendance, err := s.repo.GetSession(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance session")
	}
	if actorRole == models.RoleStaff {
		subject, err := s.subjects.GetSubject(ctx, attendance.SubjectID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
		}
		if subject.StaffID != actorUserID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "subject is taught by another staff member")
		}
	}

	for _, entry := range req.Reports {
		report := &models.AttendanceReport{
			AttendanceID:     attendanceID,
			StudentProfileID: entry.StudentProfileID,
			Present:          entry.Present,
		}
		if err := s.repo.UpsertReport(ctx, report); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance report")
		}
		if !entry.Present {
			s.notifyAbsent(ctx, entry.StudentProfileID, attendance.Date)
		}
	}

	if err := s.profiles.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:      &actorUserID,
		Action:      models.ActivityActionAttendanceSet,
		Description: fmt.Sprintf("attendance saved for session %s (%d students)", attendanceID, len(req.Reports)),
	}); err != nil {
		s.logger.Warn("failed to record attendance activity", zap.Error(err))
	}

	return s.ListReports(ctx, attendanceID)
}

// ListReports returns the presence marks of one session with student names.
func (s *AttendanceService) ListReports(ctx context.Context, attendanceID string) ([]models.AttendanceReportRow, error) {
	reports, err := s.repo.ListReports(ctx, attendanceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance reports")
	}
	return reports, nil
}

// OwnHistory returns the calling student's attendance history.
func (s *AttendanceService) OwnHistory(ctx context.Context, actorUserID string, limit int) ([]models.AttendanceHistoryRow, error) {
	profile, err := s.callerProfile(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.StudentHistory(ctx, profile.ID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance history")
	}
	return history, nil
}

// OwnSummary returns the calling student's aggregated presence counts.
func (s *AttendanceService) OwnSummary(ctx context.Context, actorUserID string) (*models.AttendanceSummary, error) {
	profile, err := s.callerProfile(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	summary, err := s.repo.StudentSummary(ctx, profile.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance summary")
	}
	return summary, nil
}

// StudentSummary returns aggregated presence counts for one student profile.
func (s *AttendanceService) StudentSummary(ctx context.Context, studentProfileID string) (*models.AttendanceSummary, error) {
	summary, err := s.repo.StudentSummary(ctx, studentProfileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance summary")
	}
	return summary, nil
}

func (s *AttendanceService) callerProfile(ctx context.Context, actorUserID string) (*models.Profile, error) {
	profile, err := s.profiles.FindProfileByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caller profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caller profile")
	}
	return profile, nil
}

func (s *AttendanceService) notifyAbsent(ctx context.Context, studentProfileID string, date time.Time) {
	if s.notifier == nil {
		return
	}
	profile, err := s.profiles.FindProfileByID(ctx, studentProfileID)
	if err != nil {
		s.logger.Warn("failed to resolve student for absence notification",
			zap.String("student_profile_id", studentProfileID),
			zap.Error(err),
		)
		return
	}
	s.notifier.Notify(ctx, profile.UserID, "Marked absent",
		fmt.Sprintf("You were marked absent on %s.", date.Format("2006-01-02")),
		models.NotificationTypeAttendance, nil)
}
