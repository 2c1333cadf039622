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

type academicRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id string) error
	CreateSubject(ctx context.Context, subject *models.Subject) error
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
	ListSubjects(ctx context.Context, courseID, staffID string) ([]models.SubjectDetail, error)
	UpdateSubject(ctx context.Context, subject *models.Subject) error
	DeleteSubject(ctx context.Context, id string) error
	CreateSessionYear(ctx context.Context, session *models.SessionYear) error
	GetSessionYear(ctx context.Context, id string) (*models.SessionYear, error)
	ListSessionYears(ctx context.Context) ([]models.SessionYear, error)
}

type academicUserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AcademicService manages courses, subjects and session years.
type AcademicService struct {
	repo      academicRepository
	users     academicUserStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicService constructs an AcademicService instance.
func NewAcademicService(repo academicRepository, users academicUserStore, validate *validator.Validate, logger *zap.Logger) *AcademicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AcademicService{repo: repo, users: users, validator: validate, logger: logger}
}

// CreateCourse adds a new course.
func (s *AcademicService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{Name: req.Name}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// GetCourse returns one course.
func (s *AcademicService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// ListCourses returns all courses.
func (s *AcademicService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// UpdateCourse renames a course.
func (s *AcademicService) UpdateCourse(ctx context.Context, id string, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// DeleteCourse removes a course.
func (s *AcademicService) DeleteCourse(ctx context.Context, id string) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

// CreateSubject adds a subject taught by one staff member.
func (s *AcademicService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if _, err := s.GetCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}
	if err := s.checkStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}
	subject := &models.Subject{Name: req.Name, CourseID: req.CourseID, StaffID: req.StaffID}
	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// GetSubject returns one subject.
func (s *AcademicService) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.GetSubject(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// ListSubjects returns subjects optionally scoped by course or staff.
func (s *AcademicService) ListSubjects(ctx context.Context, courseID, staffID string) ([]models.SubjectDetail, error) {
	subjects, err := s.repo.ListSubjects(ctx, courseID, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// UpdateSubject mutates subject fields.
func (s *AcademicService) UpdateSubject(ctx context.Context, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}
	subject.Name = req.Name
	subject.StaffID = req.StaffID
	if err := s.repo.UpdateSubject(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	return subject, nil
}

// DeleteSubject removes a subject.
func (s *AcademicService) DeleteSubject(ctx context.Context, id string) error {
	if _, err := s.GetSubject(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteSubject(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

// CreateSessionYear adds a new academic year window.
func (s *AcademicService) CreateSessionYear(ctx context.Context, req dto.CreateSessionYearRequest) (*models.SessionYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session year payload")
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be formatted as YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be formatted as YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must come after start_date")
	}
	session := &models.SessionYear{StartDate: start, EndDate: end}
	if err := s.repo.CreateSessionYear(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session year")
	}
	return session, nil
}

// GetSessionYear returns one session year.
func (s *AcademicService) GetSessionYear(ctx context.Context, id string) (*models.SessionYear, error) {
	session, err := s.repo.GetSessionYear(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session year not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session year")
	}
	return session, nil
}

// ListSessionYears returns all session years.
func (s *AcademicService) ListSessionYears(ctx context.Context) ([]models.SessionYear, error) {
	sessions, err := s.repo.ListSessionYears(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list session years")
	}
	return sessions, nil
}

func (s *AcademicService) checkStaff(ctx context.Context, staffID string) error {
	user, err := s.users.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "staff user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff user")
	}
	if user.Role != models.RoleStaff {
		return appErrors.Clone(appErrors.ErrValidation, "assigned user is not a staff member")
	}
	return nil
}
