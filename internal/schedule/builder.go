package schedule

// RequestBuilder provides a fluent API for assembling a Request for callers
// (CLI flags, tests) that want to assemble tasks incrementally instead
// of populating the struct literal directly.
type RequestBuilder struct {
	tasks   map[string]*Task
	order   []string
	anchors Anchors
}

// NewRequestBuilder starts an empty request.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		tasks:   make(map[string]*Task),
		anchors: make(Anchors),
	}
}

// Task adds a task built by TaskBuilder. Calling Task twice with the same
// ID replaces the earlier definition but keeps its position in the list.
func (b *RequestBuilder) Task(id string, tb *TaskBuilder) *RequestBuilder {
	if _, exists := b.tasks[id]; !exists {
		b.order = append(b.order, id)
	}
	b.tasks[id] = tb.build(id)
	return b
}

// Anchor records a deadline for an existing or not-yet-added task ID.
func (b *RequestBuilder) Anchor(id, deadline string) *RequestBuilder {
	b.anchors[id] = deadline
	return b
}

// Build assembles the final Request in the order tasks were added.
func (b *RequestBuilder) Build() Request {
	tasks := make([]Task, 0, len(b.order))
	for _, id := range b.order {
		tasks = append(tasks, *b.tasks[id])
	}
	return Request{Tasks: tasks, Anchors: b.anchors}
}

// TaskBuilder provides a fluent API for a single task.
type TaskBuilder struct {
	name            string
	durationDays    int64
	durationMinutes *int64
	dependencies    []string
	completed       bool
	notes           *string
	isMilestone     bool
	subtasks        []string
}

// NewTaskBuilder starts a task with the given day-precision duration.
func NewTaskBuilder(durationDays int64) *TaskBuilder {
	return &TaskBuilder{durationDays: durationDays}
}

// Name sets the task's display name.
func (tb *TaskBuilder) Name(name string) *TaskBuilder {
	tb.name = name
	return tb
}

// DurationMinutes overrides day precision with a minute-precise duration.
func (tb *TaskBuilder) DurationMinutes(minutes int64) *TaskBuilder {
	tb.durationMinutes = &minutes
	return tb
}

// DependsOn appends to the task's dependency IDs.
func (tb *TaskBuilder) DependsOn(taskIDs ...string) *TaskBuilder {
	tb.dependencies = append(tb.dependencies, taskIDs...)
	return tb
}

// Completed marks the task as already completed.
func (tb *TaskBuilder) Completed(completed bool) *TaskBuilder {
	tb.completed = completed
	return tb
}

// Notes attaches a free-text note.
func (tb *TaskBuilder) Notes(notes string) *TaskBuilder {
	tb.notes = &notes
	return tb
}

// Milestone marks the task as a milestone.
func (tb *TaskBuilder) Milestone(isMilestone bool) *TaskBuilder {
	tb.isMilestone = isMilestone
	return tb
}

// Subtasks attaches subtask identifiers, opaque to the scheduler.
func (tb *TaskBuilder) Subtasks(ids ...string) *TaskBuilder {
	tb.subtasks = append(tb.subtasks, ids...)
	return tb
}

func (tb *TaskBuilder) build(id string) *Task {
	name := tb.name
	if name == "" {
		name = id
	}
	return &Task{
		ID:              id,
		Name:            name,
		DurationDays:    tb.durationDays,
		DurationMinutes: tb.durationMinutes,
		Dependencies:    tb.dependencies,
		Completed:       tb.completed,
		Notes:           tb.notes,
		IsMilestone:     tb.isMilestone,
		Subtasks:        tb.subtasks,
	}
}
