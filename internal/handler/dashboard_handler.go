package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/college-api/internal/service"
	appErrors "github.com/campushub/college-api/pkg/errors"
	"github.com/campushub/college-api/pkg/response"
)

// DashboardHandler serves the role home views.
type DashboardHandler struct {
	dashboard     *service.DashboardService
	attendance    *service.AttendanceService
	results       *service.ResultService
	announcements *service.AnnouncementService
	academics     *service.AcademicService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(dashboard *service.DashboardService, attendance *service.AttendanceService, results *service.ResultService, announcements *service.AnnouncementService, academics *service.AcademicService) *DashboardHandler {
	return &DashboardHandler{
		dashboard:     dashboard,
		attendance:    attendance,
		results:       results,
		announcements: announcements,
		academics:     academics,
	}
}

// Admin godoc
// @Summary Admin dashboard
// @Description Headline counts plus recent admin announcements
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	announcements, err := h.announcements.ListForRole(c.Request.Context(), claims.Role, 5)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"stats":         stats,
		"announcements": announcements,
	}, nil)
}

// Staff godoc
// @Summary Staff dashboard
// @Description Subjects taught plus recent staff announcements
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/staff [get]
func (h *DashboardHandler) Staff(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	subjects, err := h.academics.ListSubjects(c.Request.Context(), "", claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	announcements, err := h.announcements.ListForRole(c.Request.Context(), claims.Role, 5)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"subjects":      subjects,
		"announcements": announcements,
	}, nil)
}

// Student godoc
// @Summary Student dashboard
// @Description Attendance summary, results and recent student announcements
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/student [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	summary, err := h.attendance.OwnSummary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	results, err := h.results.ListOwn(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	announcements, err := h.announcements.ListForRole(c.Request.Context(), claims.Role, 5)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"attendance":    summary,
		"results":       results,
		"announcements": announcements,
	}, nil)
}
