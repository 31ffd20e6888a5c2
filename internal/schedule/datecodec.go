package schedule

import "time"

// dateTimeLayout is the single well-defined output shape: YYYY-MM-DDThh:mm:ss.
const dateTimeLayout = "2006-01-02T15:04:05"

// dateOnlyLayout is the coarser input shape, interpreted as 23:59:59 on that date.
const dateOnlyLayout = "2006-01-02"

// parseAnchor tries the two recognised input shapes in order: full
// minute-precision timestamp first, then bare date (end-of-day).
func parseAnchor(taskID, raw string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
	}
	return time.Time{}, errInvalidAnchorDate(taskID, "expected YYYY-MM-DDThh:mm:ss or YYYY-MM-DD, got "+raw)
}

// formatTimestamp always renders the single well-defined output shape.
func formatTimestamp(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// ParseTimestamp parses a ScheduledTask.StartDate/EndDate value, the
// inverse of formatTimestamp. Callers outside this package (dashboard
// reducers, handlers) use it instead of re-deriving the layout constant.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(dateTimeLayout, s)
}

// FormatTimestamp is the exported form of formatTimestamp, for callers
// outside this package that need to render a time.Time the same way.
func FormatTimestamp(t time.Time) string {
	return formatTimestamp(t)
}
