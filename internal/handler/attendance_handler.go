package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/models"
	"github.com/campushub/college-api/internal/service"
	appErrors "github.com/campushub/college-api/pkg/errors"
	"github.com/campushub/college-api/pkg/response"
)

// AttendanceHandler wires HTTP endpoints to the attendance service.
type AttendanceHandler struct {
	service *service.AttendanceService
	exports *service.ExportService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc *service.AttendanceService, exports *service.ExportService) *AttendanceHandler {
	return &AttendanceHandler{service: svc, exports: exports}
}

// CreateSession godoc
// @Summary Open an attendance session
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) CreateSession(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	attendance, err := h.service.CreateSession(c.Request.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attendance)
}

// ListSessions godoc
// @Summary List attendance sessions
// @Tags Attendance
// @Produce json
// @Param subject_id query string false "Subject filter"
// @Param session_year_id query string false "Session year filter"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) ListSessions(c *gin.Context) {
	filter := models.AttendanceFilter{
		SubjectID:     c.Query("subject_id"),
		SessionYearID: c.Query("session_year_id"),
	}
	if raw := c.Query("date_from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateTo = &parsed
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	sessions, pagination, err := h.service.ListSessions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, pagination)
}

// SaveReports godoc
// @Summary Save presence marks for a session
// @Description Upserts marks keyed on session and student, so re-saving updates rows
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance session ID"
// @Param payload body dto.SaveAttendanceReportsRequest true "Reports payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /attendance/{id}/reports [put]
func (h *AttendanceHandler) SaveReports(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveAttendanceReportsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance reports payload"))
		return
	}

	reports, err := h.service.SaveReports(c.Request.Context(), claims.UserID, claims.Role, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// ListReports godoc
// @Summary List presence marks of a session
// @Tags Attendance
// @Produce json
// @Param id path string true "Attendance session ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/{id}/reports [get]
func (h *AttendanceHandler) ListReports(c *gin.Context) {
	reports, err := h.service.ListReports(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// ExportReports godoc
// @Summary Download a session's attendance as CSV or PDF
// @Tags Attendance
// @Produce octet-stream
// @Param id path string true "Attendance session ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /attendance/{id}/export [get]
func (h *AttendanceHandler) ExportReports(c *gin.Context) {
	file, err := h.exports.AttendanceReport(c.Request.Context(), c.Param("id"), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.FileName)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// OwnHistory godoc
// @Summary View own attendance history
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/mine [get]
func (h *AttendanceHandler) OwnHistory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	history, err := h.service.OwnHistory(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// OwnSummary godoc
// @Summary View own attendance summary
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/mine/summary [get]
func (h *AttendanceHandler) OwnSummary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	summary, err := h.service.OwnSummary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// StudentSummary godoc
// @Summary View one student's attendance summary
// @Tags Attendance
// @Produce json
// @Param id path string true "Student profile ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/students/{id}/summary [get]
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	summary, err := h.service.StudentSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
