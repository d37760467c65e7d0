package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusync/academia-api/internal/service"
	appErrors "github.com/edusync/academia-api/pkg/errors"
	"github.com/edusync/academia-api/pkg/export"
	"github.com/edusync/academia-api/pkg/response"
)

// ScheduleHandler handles schedule endpoints, including timetable
// export and optimizer-backed generation.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	optimizer *service.OptimizerService
	metrics   *service.MetricsService
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(schedules *service.ScheduleService, optimizer *service.OptimizerService, metrics *service.MetricsService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, optimizer: optimizer, metrics: metrics}
}

// List godoc
// @Summary List schedules
// @Tags Schedules
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	q, err := bindPageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	schedules, pagination, err := h.schedules.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, pagination)
}

// ListByFaculty godoc
// @Summary List schedules of a faculty
// @Tags Schedules
// @Produce json
// @Param id path string true "Faculty ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id}/schedules [get]
func (h *ScheduleHandler) ListByFaculty(c *gin.Context) {
	q, err := bindPageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	schedules, pagination, err := h.schedules.ListByFaculty(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, pagination)
}

// Export godoc
// @Summary Export the faculty timetable
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Faculty ID"
// @Param format query string false "Export format (csv or pdf)"
// @Success 200 {file} file
// @Router /faculties/{id}/schedules/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	var (
		renderer    interface{ Render(export.Timetable) ([]byte, error) }
		contentType string
	)
	switch format {
	case "csv":
		renderer = export.NewCSVExporter()
		contentType = "text/csv"
	case "pdf":
		renderer = export.NewPDFExporter()
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	rendered, err := h.schedules.ExportByFaculty(c.Request.Context(), c.Param("id"), renderer)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("timetable-%s.%s", c.Param("id"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, rendered)
}

// Generate godoc
// @Summary Generate a schedule through the optimizer
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body object true "Solver payload, forwarded as-is"
// @Success 200 {object} object
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.optimizer.Generate(c.Request.Context(), json.RawMessage(payload))
	if err != nil {
		h.metrics.ObserveOptimizerCall("error")
		response.Error(c, err)
		return
	}
	h.metrics.ObserveOptimizerCall("ok")

	c.Data(http.StatusOK, "application/json", result)
}

// Get godoc
// @Summary Get schedule by id
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Create godoc
// @Summary Create schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.schedules.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Update godoc
// @Summary Update schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body service.UpdateScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.schedules.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Delete godoc
// @Summary Delete schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
