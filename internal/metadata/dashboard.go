// Package metadata derives per-project dashboard status from a freshly
// computed schedule. It never persists anything: every call re-reduces the
// slice of schedule.ScheduledTask handed to it.
package metadata

import (
	"container/heap"
	"time"

	"github.com/projectanchor/scheduler/internal/schedule"
	"github.com/projectanchor/scheduler/pkg/models"
)

// taskUrgentWindow flags an individual task as urgent once its own end
// date falls within two days. This mirrors the original desktop app's
// task list view, which is a tighter window than the anchor check below;
// the two are kept deliberately distinct rather than unified, since they
// answer different questions ("is this task due soon" vs "is this
// project's deadline approaching").
const taskUrgentWindow = 48 * time.Hour

// anchorUrgentWindow flags the project as urgent once its nearest future
// end date among uncompleted tasks falls within five days, matching the
// original dashboard's project-level banner. Anchors are not read here;
// the window is applied to task end dates only.
const anchorUrgentWindow = 5 * 24 * time.Hour

// deadlineItem pairs a task ID with its parsed end date for the heap.
type deadlineItem struct {
	taskID string
	end    time.Time
}

type deadlineHeap []deadlineItem

func (h deadlineHeap) Len() int            { return len(h) }
func (h deadlineHeap) Less(i, j int) bool  { return h[i].end.Before(h[j].end) }
func (h deadlineHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *deadlineHeap) Push(x interface{}) { *h = append(*h, x.(deadlineItem)) }
func (h *deadlineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Reduce computes a Status from a project's current schedule. now is
// passed in explicitly so callers (and tests) control the urgency window
// rather than the reducer reading the clock itself.
//
// Status is one of empty/overdue/urgent/on_track: empty when there
// are no uncompleted tasks at all, overdue when at least one uncompleted
// task's end date has already passed, urgent when the nearest upcoming
// (future) end date falls within anchorUrgentWindow, on_track otherwise.
// UrgentTaskCount is a separate, tighter per-task counter using
// taskUrgentWindow; the two thresholds are not interchangeable.
func Reduce(projectID string, tasks []schedule.ScheduledTask, now time.Time) models.Status {
	status := models.Status{ProjectID: projectID, TotalTasks: len(tasks)}

	h := make(deadlineHeap, 0, len(tasks))
	overdueCount := 0
	uncompleted := 0

	for _, t := range tasks {
		if t.Completed {
			status.CompletedTasks++
			continue
		}
		uncompleted++
		if t.IsCritical {
			status.CriticalTasks++
		}

		end, err := schedule.ParseTimestamp(t.EndDate)
		if err != nil {
			continue
		}

		if !end.After(now) {
			overdueCount++
			continue
		}
		if end.Sub(now) <= taskUrgentWindow {
			status.UrgentTaskCount++
		}
		h = append(h, deadlineItem{taskID: t.ID, end: end})
	}
	heap.Init(&h)

	switch {
	case uncompleted == 0:
		status.Status = models.StatusEmpty
	case overdueCount > 0:
		status.Status = models.StatusOverdue
		if h.Len() > 0 {
			status.NextDeadline = schedule.FormatTimestamp(h[0].end)
		}
	case h.Len() > 0:
		nearest := h[0]
		status.NextDeadline = schedule.FormatTimestamp(nearest.end)
		if nearest.end.Sub(now) <= anchorUrgentWindow {
			status.Status = models.StatusUrgent
		} else {
			status.Status = models.StatusOnTrack
		}
	default:
		status.Status = models.StatusOnTrack
	}

	return status
}
