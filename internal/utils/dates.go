package utils

import "time"

// ToDate coerces a stored date value into a time.Time. Legacy records hold
// dates in several shapes: a decoded store timestamp (time.Time), a pointer
// to one, a numeric epoch in milliseconds, or a string. Returns false for
// anything unparseable; it never panics, so one corrupt record cannot take
// down an aggregate pass.
func ToDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case int:
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case float64:
		return time.UnixMilli(int64(v)), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// DateOnly truncates a timestamp to calendar-day granularity in its own
// location. Overdue checks compare DateOnly values against Today.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Today returns the current calendar day in the local timezone.
func Today() time.Time {
	return DateOnly(time.Now())
}
