package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ProvisionIdentity(ctx context.Context, user *models.User, profile *models.Profile) error
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	ListProfiles(ctx context.Context, role models.UserRole, search string, page, pageSize int) ([]models.ProfileDetail, int, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
	ListActivityLogs(ctx context.Context, limit, offset int) ([]models.ActivityLog, error)
}

type userNotifier interface {
	Notify(ctx context.Context, userID, title, message string, notifType models.NotificationType, link *string)
}

// UserService manages identities and their role-specific profiles.
type UserService struct {
	repo      userRepository
	notifier  userNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, notifier userNotifier, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// Register provisions a new identity. The account row and its profile row
// are written in one transaction: a half-provisioned identity never exists.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "role must be HOD, STAFF or STUDENT")
	}
	if req.Role == models.RoleStudent && (req.CourseID == nil || req.SessionYearID == nil) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "students require a course and session year")
	}

	if existing, err := s.repo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username is already taken")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		Active:       true,
	}
	profile := &models.Profile{
		Role:          req.Role,
		Gender:        req.Gender,
		Address:       req.Address,
		CourseID:      req.CourseID,
		SessionYearID: req.SessionYearID,
	}

	if err := s.repo.ProvisionIdentity(ctx, user, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to provision identity")
	}

	if err := s.repo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:      &user.ID,
		Action:      models.ActivityActionRegister,
		Description: fmt.Sprintf("%s account created for %s", user.Role, user.Username),
	}); err != nil {
		s.logger.Warn("failed to record registration activity", zap.Error(err))
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, user.ID, "Welcome",
			fmt.Sprintf("Hi %s, your account has been created.", user.FullName),
			models.NotificationTypeGeneral, nil)
	}

	return user, nil
}

// Get returns one user by identifier.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// List returns users matching the filter with pagination metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return users, pagination, nil
}

// Update changes mutable account fields. Role is never updated.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	user.FullName = req.FullName
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	return user, nil
}

// Deactivate soft deletes a user account.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate user")
	}
	return nil
}

// GetProfile returns the profile attached to a user.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// UpdateProfile updates the role-specific extension row of a user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Gender = req.Gender
	profile.Address = req.Address
	if profile.Role == models.RoleStudent {
		if req.CourseID != nil {
			profile.CourseID = req.CourseID
		}
		if req.SessionYearID != nil {
			profile.SessionYearID = req.SessionYearID
		}
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return profile, nil
}

// ListProfiles returns profile listings joined with account fields.
func (s *UserService) ListProfiles(ctx context.Context, role models.UserRole, search string, page, pageSize int) ([]models.ProfileDetail, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	profiles, total, err := s.repo.ListProfiles(ctx, role, search, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list profiles")
	}
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}
	return profiles, pagination, nil
}

// ListActivityLogs returns recent activity log entries.
func (s *UserService) ListActivityLogs(ctx context.Context, limit, offset int) ([]models.ActivityLog, error) {
	logs, err := s.repo.ListActivityLogs(ctx, limit, offset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activity logs")
	}
	return logs, nil
}
