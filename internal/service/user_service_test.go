package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

type userRepoStub struct {
	users      map[string]*models.User
	byUsername map[string]*models.User
	profiles   map[string]*models.Profile
	activities []*models.ActivityLog
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{
		users:      make(map[string]*models.User),
		byUsername: make(map[string]*models.User),
		profiles:   make(map[string]*models.Profile),
	}
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) ProvisionIdentity(ctx context.Context, user *models.User, profile *models.Profile) error {
	if user.ID == "" {
		user.ID = "user-1"
	}
	profile.UserID = user.ID
	profile.Role = user.Role
	s.users[user.ID] = user
	s.byUsername[user.Username] = user
	s.profiles[user.ID] = profile
	return nil
}

func (s *userRepoStub) FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *userRepoStub) ListProfiles(ctx context.Context, role models.UserRole, search string, page, pageSize int) ([]models.ProfileDetail, int, error) {
	return nil, 0, nil
}

func (s *userRepoStub) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	result := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, *user)
	}
	return result, len(result), nil
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) Delete(ctx context.Context, id string) error {
	if user, ok := s.users[id]; ok {
		user.Active = false
	}
	return nil
}

func (s *userRepoStub) CreateActivityLog(ctx context.Context, log *models.ActivityLog) error {
	s.activities = append(s.activities, log)
	return nil
}

func (s *userRepoStub) ListActivityLogs(ctx context.Context, limit, offset int) ([]models.ActivityLog, error) {
	result := make([]models.ActivityLog, 0, len(s.activities))
	for _, log := range s.activities {
		result = append(result, *log)
	}
	return result, nil
}

func registerReq(role models.UserRole) dto.RegisterUserRequest {
	req := dto.RegisterUserRequest{
		Username: "JDoe",
		Email:    "JDoe@Example.com",
		Password: "secret123",
		FullName: "J Doe",
		Role:     role,
	}
	if role == models.RoleStudent {
		courseID := "course-1"
		sessionID := "session-1"
		req.CourseID = &courseID
		req.SessionYearID = &sessionID
	}
	return req
}

func TestRegisterProvisionsUserAndProfile(t *testing.T) {
	repo := newUserRepoStub()
	notifier := &notifierStub{}
	svc := NewUserService(repo, notifier, nil, nil)

	user, err := svc.Register(context.Background(), registerReq(models.RoleStudent))
	require.NoError(t, err)

	require.Equal(t, "jdoe", user.Username)
	require.Equal(t, "jdoe@example.com", user.Email)
	require.True(t, user.Active)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

	profile, ok := repo.profiles[user.ID]
	require.True(t, ok)
	require.Equal(t, models.RoleStudent, profile.Role)

	// Welcome notification and audit entry both recorded.
	require.Len(t, notifier.sent, 1)
	require.Len(t, repo.activities, 1)
	require.Equal(t, models.ActivityActionRegister, repo.activities[0].Action)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	repo := newUserRepoStub()
	repo.byUsername["JDoe"] = &models.User{ID: "existing", Username: "JDoe"}
	svc := NewUserService(repo, nil, nil, nil)

	_, err := svc.Register(context.Background(), registerReq(models.RoleStaff))
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestRegisterStudentRequiresEnrollment(t *testing.T) {
	svc := NewUserService(newUserRepoStub(), nil, nil, nil)

	req := registerReq(models.RoleStudent)
	req.CourseID = nil
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newUserRepoStub(), nil, nil, nil)

	_, err := svc.Register(context.Background(), registerReq(models.UserRole("MANAGER")))
	require.Error(t, err)
}

func TestUpdateNeverTouchesRole(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["user-1"] = &models.User{ID: "user-1", Username: "jdoe", Role: models.RoleStaff, Active: true}
	svc := NewUserService(repo, nil, nil, nil)

	updated, err := svc.Update(context.Background(), "user-1", dto.UpdateUserRequest{
		FullName: "J D Doe",
		Email:    "new@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleStaff, updated.Role)
	require.Equal(t, "new@example.com", updated.Email)
}

func TestDeactivateIsSoftDelete(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["user-1"] = &models.User{ID: "user-1", Username: "jdoe", Active: true}
	svc := NewUserService(repo, nil, nil, nil)

	require.NoError(t, svc.Deactivate(context.Background(), "user-1"))
	require.False(t, repo.users["user-1"].Active)

	err := svc.Deactivate(context.Background(), "missing")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
