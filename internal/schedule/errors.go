package schedule

import "fmt"

// ErrorKind identifies one of the closed set of scheduler error kinds.
type ErrorKind string

const (
	KindInvalidAnchorDate  ErrorKind = "INVALID_ANCHOR_DATE"
	KindAnchorTaskNotFound ErrorKind = "ANCHOR_TASK_NOT_FOUND"
	KindTaskNotFound       ErrorKind = "TASK_NOT_FOUND"
	KindNoEndDateComputed  ErrorKind = "NO_END_DATE_COMPUTED"
	KindCycleDetected      ErrorKind = "CYCLE_DETECTED"
)

// Error is the scheduler's single error type. Every failure short-circuits
// the call; callers should present Error() to the user and leave input
// unchanged. There is never a partial result alongside an Error.
type Error struct {
	Kind    ErrorKind
	TaskID  string
	Names   []string
	Details string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidAnchorDate:
		return fmt.Sprintf("invalid date format for anchor task %q: %s", e.TaskID, e.Details)
	case KindAnchorTaskNotFound:
		return fmt.Sprintf("anchor task %q not found in task list", e.TaskID)
	case KindTaskNotFound:
		return fmt.Sprintf("task %q not found", e.TaskID)
	case KindNoEndDateComputed:
		if len(e.Names) == 1 {
			return fmt.Sprintf("no end date computed for task %q - check for disconnected dependencies", e.Names[0])
		}
		return fmt.Sprintf("no end date computed for tasks %v - check for disconnected dependencies", e.Names)
	case KindCycleDetected:
		return "cycle detected in task dependencies"
	default:
		return "unknown schedule error"
	}
}

func errInvalidAnchorDate(taskID, details string) error {
	return &Error{Kind: KindInvalidAnchorDate, TaskID: taskID, Details: details}
}

func errAnchorTaskNotFound(taskID string) error {
	return &Error{Kind: KindAnchorTaskNotFound, TaskID: taskID}
}

func errTaskNotFound(taskID string) error {
	return &Error{Kind: KindTaskNotFound, TaskID: taskID}
}

func errNoEndDateComputed(names []string) error {
	return &Error{Kind: KindNoEndDateComputed, Names: names}
}

func errCycleDetected() error {
	return &Error{Kind: KindCycleDetected}
}
