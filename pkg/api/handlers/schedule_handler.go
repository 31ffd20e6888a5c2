package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectanchor/scheduler/internal/schedule"
	"github.com/projectanchor/scheduler/pkg/api/dto"
	"github.com/projectanchor/scheduler/pkg/api/middleware"
)

// ScheduleHandler exposes the critical-path engine directly, for ad-hoc
// computations against tasks and anchors that were never saved as a project.
type ScheduleHandler struct{}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{}
}

// ComputeSchedule handles POST /api/v1/schedule
// @Summary Compute a schedule
// @Description Runs the critical-path engine against a submitted task list and anchor set
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.ScheduleRequest true "Tasks and anchors"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/schedule [post]
func (h *ScheduleHandler) ComputeSchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	result, err := schedule.Schedule(req.ToScheduleRequest())
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(result))
}
