package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/service"
	appErrors "github.com/campushub/college-api/pkg/errors"
	"github.com/campushub/college-api/pkg/response"
)

// AcademicHandler wires HTTP endpoints to the academic service.
type AcademicHandler struct {
	service *service.AcademicService
}

// NewAcademicHandler creates a new handler.
func NewAcademicHandler(svc *service.AcademicService) *AcademicHandler {
	return &AcademicHandler{service: svc}
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Academic
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *AcademicHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// ListCourses godoc
// @Summary List courses
// @Tags Academic
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *AcademicHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// UpdateCourse renames a course.
func (h *AcademicHandler) UpdateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.service.UpdateCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// DeleteCourse removes a course.
func (h *AcademicHandler) DeleteCourse(c *gin.Context) {
	if err := h.service.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags Academic
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *AcademicHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	subject, err := h.service.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Academic
// @Produce json
// @Param course_id query string false "Course filter"
// @Param staff_id query string false "Staff filter"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *AcademicHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.service.ListSubjects(c.Request.Context(), c.Query("course_id"), c.Query("staff_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// MySubjects lists the subjects taught by the calling staff member.
func (h *AcademicHandler) MySubjects(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	subjects, err := h.service.ListSubjects(c.Request.Context(), "", claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// UpdateSubject mutates subject fields.
func (h *AcademicHandler) UpdateSubject(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	subject, err := h.service.UpdateSubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// DeleteSubject removes a subject.
func (h *AcademicHandler) DeleteSubject(c *gin.Context) {
	if err := h.service.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateSessionYear godoc
// @Summary Create a session year
// @Tags Academic
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionYearRequest true "Session year payload"
// @Success 201 {object} response.Envelope
// @Router /session-years [post]
func (h *AcademicHandler) CreateSessionYear(c *gin.Context) {
	var req dto.CreateSessionYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session year payload"))
		return
	}
	session, err := h.service.CreateSessionYear(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// ListSessionYears godoc
// @Summary List session years
// @Tags Academic
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session-years [get]
func (h *AcademicHandler) ListSessionYears(c *gin.Context) {
	sessions, err := h.service.ListSessionYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}
