package dto

import "github.com/projectanchor/scheduler/internal/schedule"

// ScheduleRequest represents an ad-hoc schedule computation: tasks and
// anchors submitted directly, without first saving them as a project.
type ScheduleRequest struct {
	Tasks   []TaskDTO         `json:"tasks" validate:"dive"`
	Anchors map[string]string `json:"anchors"`
}

// ToScheduleRequest converts the wire request into the engine's Request.
func (r ScheduleRequest) ToScheduleRequest() schedule.Request {
	tasks := make([]schedule.Task, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		tasks = append(tasks, t.ToTask())
	}
	return schedule.Request{Tasks: tasks, Anchors: r.Anchors}
}

// ScheduledTaskDTO is the wire representation of one scheduled task.
type ScheduledTaskDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Completed    bool     `json:"completed"`
	Notes        *string  `json:"notes,omitempty"`
	IsMilestone  bool     `json:"is_milestone"`
	Subtasks     []string `json:"subtasks"`
	SlackMinutes int64    `json:"slack_minutes"`
	IsCritical   bool     `json:"is_critical"`
}

// ToScheduledTaskDTO converts an engine result row to its wire shape.
func ToScheduledTaskDTO(t schedule.ScheduledTask) ScheduledTaskDTO {
	return ScheduledTaskDTO{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Completed:    t.Completed,
		Notes:        t.Notes,
		IsMilestone:  t.IsMilestone,
		Subtasks:     t.Subtasks,
		SlackMinutes: t.SlackMinutes,
		IsCritical:   t.IsCritical,
	}
}

// ScheduleResponse wraps the ordered list of scheduled tasks.
type ScheduleResponse struct {
	Tasks []ScheduledTaskDTO `json:"tasks"`
}

// ToScheduleResponse converts engine output into the wire response.
func ToScheduleResponse(tasks []schedule.ScheduledTask) ScheduleResponse {
	out := make([]ScheduledTaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToScheduledTaskDTO(t))
	}
	return ScheduleResponse{Tasks: out}
}
