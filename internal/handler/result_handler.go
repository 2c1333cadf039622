package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/college-api/internal/dto"
	"github.com/campushub/college-api/internal/service"
	appErrors "github.com/campushub/college-api/pkg/errors"
	"github.com/campushub/college-api/pkg/response"
)

// ResultHandler wires HTTP endpoints to the result service.
type ResultHandler struct {
	service *service.ResultService
	exports *service.ExportService
}

// NewResultHandler creates a new handler.
func NewResultHandler(svc *service.ResultService, exports *service.ExportService) *ResultHandler {
	return &ResultHandler{service: svc, exports: exports}
}

// Upsert godoc
// @Summary Save marks for one student and subject
// @Description Repeated calls overwrite the previous marks
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.UpsertResultRequest true "Result payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /results [put]
func (h *ResultHandler) Upsert(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpsertResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid result payload"))
		return
	}

	result, err := h.service.Upsert(c.Request.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListOwn godoc
// @Summary View own results
// @Tags Results
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /results/mine [get]
func (h *ResultHandler) ListOwn(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	results, err := h.service.ListOwn(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// ListBySubject godoc
// @Summary List every student's result for one subject
// @Tags Results
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/results [get]
func (h *ResultHandler) ListBySubject(c *gin.Context) {
	results, err := h.service.ListBySubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// ExportBySubject godoc
// @Summary Download a subject's results as CSV or PDF
// @Tags Results
// @Produce octet-stream
// @Param id path string true "Subject ID"
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /subjects/{id}/results/export [get]
func (h *ResultHandler) ExportBySubject(c *gin.Context) {
	file, err := h.exports.SubjectResults(c.Request.Context(), c.Param("id"), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.FileName)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
