package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projectanchor/scheduler/internal/metadata"
	"github.com/projectanchor/scheduler/internal/schedule"
	"github.com/projectanchor/scheduler/internal/storage"
	"github.com/projectanchor/scheduler/pkg/api/dto"
	"github.com/projectanchor/scheduler/pkg/api/middleware"
)

// ProjectHandler handles project CRUD and the per-project schedule/status
// views derived from it. The schedule is always recomputed from the stored
// tasks and anchors, never persisted alongside them.
type ProjectHandler struct {
	projects storage.ProjectRepository
	parser   *schedule.Parser
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects storage.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects, parser: schedule.NewParser()}
}

// CreateProject handles POST /api/v1/projects
// @Summary Create a new project
// @Description Create an empty project shell, ready to have tasks saved into it
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project name"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req.Name)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// ListProjects handles GET /api/v1/projects
// @Summary List projects
// @Description List every stored project's metadata
// @Tags projects
// @Produce json
// @Success 200 {object} dto.ProjectListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	responses := make([]dto.ProjectMetadataResponse, len(projects))
	for i, p := range projects {
		responses[i] = dto.ToProjectMetadataResponse(p)
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{Projects: responses})
}

// GetProject handles GET /api/v1/projects/:id
// @Summary Get project details
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondProjectLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// SaveProject handles PUT /api/v1/projects/:id
// @Summary Replace a project's tasks and anchors
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.SaveProjectRequest true "Project contents"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) SaveProject(c *gin.Context) {
	id := c.Param("id")

	var req dto.SaveProjectRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondProjectLoadError(c, err)
		return
	}

	tasks := make([]schedule.Task, len(req.Tasks))
	for i, t := range req.Tasks {
		tasks[i] = t.ToTask()
	}

	project.Name = req.Name
	project.Tasks = tasks
	project.Anchors = req.Anchors
	project.LastModified = time.Now().UTC()

	if err := h.projects.Save(c.Request.Context(), project); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// DeleteProject handles DELETE /api/v1/projects/:id
// @Summary Delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondProjectLoadError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ImportProject handles POST /api/v1/projects/import
// @Summary Import a project definition
// @Description Create a project from a YAML or JSON definition file carrying name, tasks and anchors
// @Tags projects
// @Accept json
// @Produce json
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/projects/import [post]
func (h *ProjectHandler) ImportProject(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	var def *schedule.Definition
	if strings.Contains(c.ContentType(), "yaml") {
		def, err = h.parser.ParseYAML(data)
	} else {
		def, err = h.parser.ParseJSON(data)
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "INVALID_DEFINITION", err.Error())
		return
	}

	name := def.Name
	if name == "" {
		name = "Imported Project"
	}

	project, err := h.projects.Create(c.Request.Context(), name)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}

	project.Tasks = def.Request.Tasks
	project.Anchors = def.Request.Anchors
	if err := h.projects.Save(c.Request.Context(), project); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// GetProjectSchedule handles GET /api/v1/projects/:id/schedule
// @Summary Compute a project's current schedule
// @Description Runs the critical-path engine against the project's stored tasks and anchors
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/projects/{id}/schedule [get]
func (h *ProjectHandler) GetProjectSchedule(c *gin.Context) {
	id := c.Param("id")

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondProjectLoadError(c, err)
		return
	}

	result, err := schedule.Schedule(schedule.Request{Tasks: project.Tasks, Anchors: project.Anchors})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(result))
}

// GetProjectStatus handles GET /api/v1/projects/:id/status
// @Summary Get a project's dashboard status
// @Description Reduces the computed schedule into completion/urgency/on-track counters
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Status
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/projects/{id}/status [get]
func (h *ProjectHandler) GetProjectStatus(c *gin.Context) {
	id := c.Param("id")

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondProjectLoadError(c, err)
		return
	}

	result, err := schedule.Schedule(schedule.Request{Tasks: project.Tasks, Anchors: project.Anchors})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metadata.Reduce(id, result, time.Now().UTC()))
}

func respondProjectLoadError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		middleware.AbortWithError(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return
	}
	middleware.AbortWithError(c, http.StatusInternalServerError, "PROJECT_LOAD_FAILED", err.Error())
}

// respondScheduleError maps the engine's closed error-kind set to an HTTP
// status: invalid input a client sent is a 422, anything else a 500.
func respondScheduleError(c *gin.Context, err error) {
	var schedErr *schedule.Error
	if errors.As(err, &schedErr) {
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, string(schedErr.Kind), schedErr.Error())
		return
	}
	middleware.AbortWithError(c, http.StatusInternalServerError, "SCHEDULE_FAILED", err.Error())
}
