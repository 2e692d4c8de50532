package model

import (
	"time"

	"gitlab.com/minerex-platform/admin_api/errs"
)

// WindowPreset names a relative date window resolved against an explicit
// reference instant, never against ambient wall-clock time.
type WindowPreset string

const (
	WindowPreset_Today      WindowPreset = "today"
	WindowPreset_Last7Days  WindowPreset = "last_7_days"
	WindowPreset_Last30Days WindowPreset = "last_30_days"
	WindowPreset_AllTime    WindowPreset = "all_time"
)

// Window is a half-open time interval [Start, End). A nil bound means
// unbounded on that side; the zero Window disables filtering entirely.
type Window struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// AllTime is the unbounded window.
var AllTime = Window{}

// NewWindow validates an explicit pair. Either bound may be zero-valued to
// leave that side open.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{}
	if !start.IsZero() {
		w.Start = &start
	}
	if !end.IsZero() {
		w.End = &end
	}
	if w.Start != nil && w.End != nil && !w.Start.Before(*w.End) {
		return Window{}, errs.InvalidRange("window start must precede end")
	}
	return w, nil
}

// PresetWindow resolves a named preset at the given reference instant in
// the given zone (the deployment's fixed reference time zone).
func PresetWindow(preset WindowPreset, now time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	switch preset {
	case WindowPreset_AllTime:
		return AllTime, nil
	case WindowPreset_Today:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return NewWindow(start, now)
	case WindowPreset_Last7Days:
		return NewWindow(now.AddDate(0, 0, -7), now)
	case WindowPreset_Last30Days:
		return NewWindow(now.AddDate(0, 0, -30), now)
	default:
		return Window{}, errs.InvalidRange("unknown window preset: " + string(preset))
	}
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && !t.Before(*w.End) {
		return false
	}
	return true
}

// IsUnbounded reports whether the window filters nothing.
func (w Window) IsUnbounded() bool {
	return w.Start == nil && w.End == nil
}
