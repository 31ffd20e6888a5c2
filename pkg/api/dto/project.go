package dto

import (
	"time"

	"github.com/projectanchor/scheduler/internal/schedule"
	"github.com/projectanchor/scheduler/pkg/models"
)

// CreateProjectRequest represents the request to create a new project.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// SaveProjectRequest represents the request to replace a project's tasks
// and anchors in one write.
type SaveProjectRequest struct {
	Name    string            `json:"name" validate:"required,min=1,max=255"`
	Tasks   []TaskDTO         `json:"tasks" validate:"dive"`
	Anchors map[string]string `json:"anchors"`
}

// TaskDTO represents a task within a project.
type TaskDTO struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	DurationDays    int64    `json:"duration_days" validate:"min=0"`
	DurationMinutes *int64   `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	Dependencies    []string `json:"dependencies"`
	Completed       bool     `json:"completed"`
	Notes           *string  `json:"notes,omitempty"`
	IsMilestone     bool     `json:"is_milestone"`
	Subtasks        []string `json:"subtasks"`
}

// ToTask converts a TaskDTO to the scheduler's internal Task.
func (t TaskDTO) ToTask() schedule.Task {
	return schedule.Task{
		ID:              t.ID,
		Name:            t.Name,
		DurationDays:    t.DurationDays,
		DurationMinutes: t.DurationMinutes,
		Dependencies:    t.Dependencies,
		Completed:       t.Completed,
		Notes:           t.Notes,
		IsMilestone:     t.IsMilestone,
		Subtasks:        t.Subtasks,
	}
}

// ToTaskDTO converts a scheduler Task to its wire representation.
func ToTaskDTO(task schedule.Task) TaskDTO {
	return TaskDTO{
		ID:              task.ID,
		Name:            task.Name,
		DurationDays:    task.DurationDays,
		DurationMinutes: task.DurationMinutes,
		Dependencies:    task.Dependencies,
		Completed:       task.Completed,
		Notes:           task.Notes,
		IsMilestone:     task.IsMilestone,
		Subtasks:        task.Subtasks,
	}
}

// ProjectResponse represents a project on the wire.
type ProjectResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	CreatedAt    time.Time         `json:"created_at"`
	LastModified time.Time         `json:"last_modified"`
	Tasks        []TaskDTO         `json:"tasks"`
	Anchors      map[string]string `json:"anchors"`
}

// ToProjectResponse converts a stored project to its wire representation.
func ToProjectResponse(p *models.Project) ProjectResponse {
	tasks := make([]TaskDTO, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, ToTaskDTO(t))
	}
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
		Tasks:        tasks,
		Anchors:      p.Anchors,
	}
}

// ProjectMetadataResponse is the summary shape used by project listings.
type ProjectMetadataResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
	TaskCount    int       `json:"task_count"`
}

// ToProjectMetadataResponse converts a models.Metadata to its wire shape.
func ToProjectMetadataResponse(m models.Metadata) ProjectMetadataResponse {
	return ProjectMetadataResponse{
		ID:           m.ID,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
		LastModified: m.LastModified,
		TaskCount:    m.TaskCount,
	}
}

// ProjectListResponse represents a listing of project metadata.
type ProjectListResponse struct {
	Projects []ProjectMetadataResponse `json:"projects"`
}
