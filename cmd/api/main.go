package main

import (
	"fmt"
	"log"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushub/college-api/api/swagger"
	"github.com/campushub/college-api/internal/access"
	"github.com/campushub/college-api/internal/handler"
	"github.com/campushub/college-api/internal/middleware"
	"github.com/campushub/college-api/internal/models"
	"github.com/campushub/college-api/internal/repository"
	"github.com/campushub/college-api/internal/service"
	"github.com/campushub/college-api/pkg/cache"
	"github.com/campushub/college-api/pkg/config"
	"github.com/campushub/college-api/pkg/database"
	"github.com/campushub/college-api/pkg/logger"
	corsmiddleware "github.com/campushub/college-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/college-api/pkg/middleware/requestid"
)

// @title College Management API
// @version 1.0.0
// @description Role-based college management backend: accounts, leave workflow, attendance, results and notifications
// @BasePath /api/v1
// @schemes http

func main() {
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	resultRepo := repository.NewResultRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "college-api",
	})
	notificationSvc := service.NewNotificationService(notificationRepo, metricsSvc, logr)
	userSvc := service.NewUserService(userRepo, notificationSvc, validate, logr)
	leaveSvc := service.NewLeaveService(leaveRepo, userRepo, notificationSvc, metricsSvc, validate, logr)
	academicSvc := service.NewAcademicService(academicRepo, userRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, academicRepo, userRepo, notificationSvc, validate, logr)
	resultSvc := service.NewResultService(resultRepo, academicRepo, userRepo, notificationSvc, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, academicRepo, validate, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, validate, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, userRepo, notificationSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, redisClient, metricsSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(attendanceRepo, resultRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	leaveHandler := handler.NewLeaveHandler(leaveSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	academicHandler := handler.NewAcademicHandler(academicSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, exportSvc)
	resultHandler := handler.NewResultHandler(resultSvc, exportSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, attendanceSvc, resultSvc, announcementSvc, academicSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := cfg.APIPrefix
	join := func(p string) string { return path.Join("/", prefix, p) }

	rules := []access.Rule{
		{Method: "POST", Path: join("/auth/login"), Bucket: access.BucketPublic},
		{Method: "POST", Path: join("/auth/refresh"), Bucket: access.BucketPublic},

		{Method: "POST", Path: join("/users"), Bucket: access.BucketPublic},
		{Method: "GET", Path: join("/users"), Bucket: access.BucketAdmin},
		{Method: "GET", Path: join("/users/:id"), Bucket: access.BucketAdmin},
		{Method: "PUT", Path: join("/users/:id"), Bucket: access.BucketAdmin},
		{Method: "DELETE", Path: join("/users/:id"), Bucket: access.BucketAdmin},
		{Method: "GET", Path: join("/profiles"), Bucket: access.BucketAdmin},
		{Method: "GET", Path: join("/activity-logs"), Bucket: access.BucketAdmin},

		{Method: "GET", Path: join("/leave-requests"), Bucket: access.BucketAdmin},
		{Method: "POST", Path: join("/leave-requests/:id/approve"), Bucket: access.BucketAdmin},
		{Method: "POST", Path: join("/leave-requests/:id/reject"), Bucket: access.BucketAdmin},

		{Method: "GET", Path: join("/feedback"), Bucket: access.BucketAdmin},
		{Method: "POST", Path: join("/feedback/:id/reply"), Bucket: access.BucketAdmin},

		{Method: "POST", Path: join("/courses"), Bucket: access.BucketAdmin},
		{Method: "PUT", Path: join("/courses/:id"), Bucket: access.BucketAdmin},
		{Method: "DELETE", Path: join("/courses/:id"), Bucket: access.BucketAdmin},
		{Method: "POST", Path: join("/subjects"), Bucket: access.BucketAdmin},
		{Method: "PUT", Path: join("/subjects/:id"), Bucket: access.BucketAdmin},
		{Method: "DELETE", Path: join("/subjects/:id"), Bucket: access.BucketAdmin},
		{Method: "POST", Path: join("/session-years"), Bucket: access.BucketAdmin},

		{Method: "GET", Path: join("/subjects/mine"), Bucket: access.BucketStaff},
		{Method: "POST", Path: join("/attendance"), Bucket: access.BucketStaff},
		{Method: "PUT", Path: join("/attendance/:id/reports"), Bucket: access.BucketStaff},
		{Method: "PUT", Path: join("/results"), Bucket: access.BucketStaff},

		{Method: "GET", Path: join("/attendance/mine"), Bucket: access.BucketStudent},
		{Method: "GET", Path: join("/attendance/mine/summary"), Bucket: access.BucketStudent},
		{Method: "GET", Path: join("/results/mine"), Bucket: access.BucketStudent},

		{Method: "POST", Path: join("/announcements"), Bucket: access.BucketAdmin},
		{Method: "GET", Path: join("/announcements/all"), Bucket: access.BucketAdmin},
		{Method: "PUT", Path: join("/announcements/:id"), Bucket: access.BucketAdmin},
		{Method: "DELETE", Path: join("/announcements/:id"), Bucket: access.BucketAdmin},

		{Method: "POST", Path: join("/timetable"), Bucket: access.BucketAdmin},
		{Method: "DELETE", Path: join("/timetable/:id"), Bucket: access.BucketAdmin},

		{Method: "GET", Path: join("/dashboard/admin"), Bucket: access.BucketAdmin},
		{Method: "GET", Path: join("/dashboard/staff"), Bucket: access.BucketStaff},
		{Method: "GET", Path: join("/dashboard/student"), Bucket: access.BucketStudent},
	}

	policy, err := access.NewPolicy(join("/auth/login"), rules)
	if err != nil {
		logr.Sugar().Fatalw("invalid access policy", "error", err)
	}

	api := r.Group(prefix)
	api.Use(middleware.OptionalJWT(authSvc))
	api.Use(middleware.Access(policy))

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.PUT("/auth/password", authHandler.ChangePassword)

	api.POST("/users", userHandler.Register)
	api.GET("/users", userHandler.List)
	api.GET("/users/me", userHandler.Me)
	api.GET("/users/me/profile", userHandler.MyProfile)
	api.PUT("/users/me/profile", userHandler.UpdateMyProfile)
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Deactivate)
	api.GET("/profiles", userHandler.ListProfiles)
	api.GET("/activity-logs", userHandler.ActivityLogs)

	api.POST("/leave-requests", leaveHandler.Create)
	api.GET("/leave-requests", leaveHandler.List)
	api.GET("/leave-requests/mine", leaveHandler.ListOwn)
	api.GET("/leave-requests/:id", leaveHandler.Get)
	api.POST("/leave-requests/:id/approve", leaveHandler.Approve)
	api.POST("/leave-requests/:id/reject", leaveHandler.Reject)

	api.POST("/feedback", feedbackHandler.Create)
	api.GET("/feedback", feedbackHandler.List)
	api.GET("/feedback/mine", feedbackHandler.ListOwn)
	api.POST("/feedback/:id/reply", feedbackHandler.Reply)

	api.GET("/notifications", notificationHandler.List)
	api.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)

	api.POST("/courses", academicHandler.CreateCourse)
	api.GET("/courses", academicHandler.ListCourses)
	api.PUT("/courses/:id", academicHandler.UpdateCourse)
	api.DELETE("/courses/:id", academicHandler.DeleteCourse)
	api.POST("/subjects", academicHandler.CreateSubject)
	api.GET("/subjects", academicHandler.ListSubjects)
	api.GET("/subjects/mine", academicHandler.MySubjects)
	api.PUT("/subjects/:id", academicHandler.UpdateSubject)
	api.DELETE("/subjects/:id", academicHandler.DeleteSubject)
	staffOrAdmin := middleware.RequireRoles(models.RoleHOD, models.RoleStaff)
	api.GET("/subjects/:id/results", staffOrAdmin, resultHandler.ListBySubject)
	api.GET("/subjects/:id/results/export", staffOrAdmin,
		middleware.Activity(userRepo, models.ActivityActionExport, "subject results exported"),
		resultHandler.ExportBySubject)
	api.POST("/session-years", academicHandler.CreateSessionYear)
	api.GET("/session-years", academicHandler.ListSessionYears)

	api.POST("/attendance", attendanceHandler.CreateSession)
	api.GET("/attendance", attendanceHandler.ListSessions)
	api.GET("/attendance/mine", attendanceHandler.OwnHistory)
	api.GET("/attendance/mine/summary", attendanceHandler.OwnSummary)
	api.PUT("/attendance/:id/reports", attendanceHandler.SaveReports)
	api.GET("/attendance/:id/reports", staffOrAdmin, attendanceHandler.ListReports)
	api.GET("/attendance/:id/export", staffOrAdmin,
		middleware.Activity(userRepo, models.ActivityActionExport, "attendance report exported"),
		attendanceHandler.ExportReports)
	api.GET("/attendance/students/:id/summary", staffOrAdmin, attendanceHandler.StudentSummary)

	api.PUT("/results", resultHandler.Upsert)
	api.GET("/results/mine", resultHandler.ListOwn)

	api.POST("/announcements", announcementHandler.Create)
	api.GET("/announcements", announcementHandler.List)
	api.GET("/announcements/all", announcementHandler.ListAll)
	api.PUT("/announcements/:id", announcementHandler.Update)
	api.DELETE("/announcements/:id", announcementHandler.Delete)

	api.POST("/timetable", timetableHandler.Create)
	api.GET("/timetable", timetableHandler.List)
	api.DELETE("/timetable/:id", timetableHandler.Delete)

	api.GET("/dashboard/admin", dashboardHandler.Admin)
	api.GET("/dashboard/staff", dashboardHandler.Staff)
	api.GET("/dashboard/student", dashboardHandler.Student)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
