package models

import (
	"time"

	"github.com/projectanchor/scheduler/internal/schedule"
)

// Project is the persisted unit of work: a named set of tasks and anchor
// deadlines that the schedule engine turns into a critical-path plan on
// demand. Projects never store a computed schedule; Tasks/Anchors are the
// only durable state.
type Project struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	CreatedAt    time.Time        `json:"created_at"`
	LastModified time.Time        `json:"last_modified"`
	Tasks        []schedule.Task  `json:"tasks"`
	Anchors      schedule.Anchors `json:"anchors"`
}

// Metadata is the lightweight summary returned by project listings, so that
// callers don't pay the cost of deserialising every task in every project
// just to render a picker.
type Metadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
	TaskCount    int       `json:"task_count"`
}

// StatusEmpty, StatusOverdue, StatusUrgent and StatusOnTrack are the closed
// set of dashboard status values a project can carry.
const (
	StatusEmpty   = "empty"
	StatusOverdue = "overdue"
	StatusUrgent  = "urgent"
	StatusOnTrack = "on_track"
)

// Status summarises a project's schedule health for dashboard consumers,
// derived from a fresh Schedule() call rather than stored.
type Status struct {
	ProjectID       string `json:"project_id"`
	TotalTasks      int    `json:"total_tasks"`
	CompletedTasks  int    `json:"completed_tasks"`
	CriticalTasks   int    `json:"critical_tasks"`
	NextDeadline    string `json:"next_deadline,omitempty"`
	UrgentTaskCount int    `json:"urgent_task_count"`
	Status          string `json:"status"`
}
