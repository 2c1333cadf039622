package main

import (
	"context"
	"flag"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/college-api/internal/models"
	"github.com/campushub/college-api/internal/repository"
	"github.com/campushub/college-api/pkg/config"
	"github.com/campushub/college-api/pkg/database"
	"github.com/campushub/college-api/pkg/logger"
)

// Seeds a development database with an admin account and a minimal set of
// academic records. Safe to run once against an empty database; reruns fail
// on the unique username constraint.
func main() {
	adminPassword := flag.String("admin-password", "admin123", "password for the seeded HOD account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	academicRepo := repository.NewAcademicRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logr.Sugar().Fatalw("failed to hash password", "error", err)
	}

	admin := &models.User{
		Username:     "admin",
		Email:        "admin@college.test",
		PasswordHash: string(hash),
		FullName:     "System Administrator",
		Role:         models.RoleHOD,
		Active:       true,
	}
	adminProfile := &models.Profile{Role: models.RoleHOD}
	if err := userRepo.ProvisionIdentity(ctx, admin, adminProfile); err != nil {
		logr.Sugar().Fatalw("failed to provision admin", "error", err)
	}
	logr.Sugar().Infow("admin provisioned", "username", admin.Username)

	course := &models.Course{Name: "Computer Science"}
	if err := academicRepo.CreateCourse(ctx, course); err != nil {
		logr.Sugar().Fatalw("failed to create course", "error", err)
	}

	session := &models.SessionYear{
		StartDate: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := academicRepo.CreateSessionYear(ctx, session); err != nil {
		logr.Sugar().Fatalw("failed to create session year", "error", err)
	}

	staff := &models.User{
		Username:     "staff",
		Email:        "staff@college.test",
		PasswordHash: string(hash),
		FullName:     "Sample Staff",
		Role:         models.RoleStaff,
		Active:       true,
	}
	staffProfile := &models.Profile{Role: models.RoleStaff}
	if err := userRepo.ProvisionIdentity(ctx, staff, staffProfile); err != nil {
		logr.Sugar().Fatalw("failed to provision staff", "error", err)
	}

	subject := &models.Subject{Name: "Algorithms", CourseID: course.ID, StaffID: staff.ID}
	if err := academicRepo.CreateSubject(ctx, subject); err != nil {
		logr.Sugar().Fatalw("failed to create subject", "error", err)
	}

	student := &models.User{
		Username:     "student",
		Email:        "student@college.test",
		PasswordHash: string(hash),
		FullName:     "Sample Student",
		Role:         models.RoleStudent,
		Active:       true,
	}
	studentProfile := &models.Profile{
		Role:          models.RoleStudent,
		CourseID:      &course.ID,
		SessionYearID: &session.ID,
	}
	if err := userRepo.ProvisionIdentity(ctx, student, studentProfile); err != nil {
		logr.Sugar().Fatalw("failed to provision student", "error", err)
	}

	logr.Sugar().Infow("seed complete",
		"course", course.Name,
		"subject", subject.Name,
		"staff", staff.Username,
		"student", student.Username,
	)
}
