// Package timescale holds the pure time arithmetic behind the timeline:
// calendar units, the fixed scrollable range, and the bidirectional
// mapping between instants and horizontal pixel offsets.
package timescale

import "time"

// Unit is a calendar unit used for axis alignment and truncation.
type Unit int

const (
	UnitMinute Unit = iota
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

func (u Unit) String() string {
	switch u {
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	}
	return "unknown"
}

// Finer reports whether u is a strictly finer unit than v.
func (u Unit) Finer(v Unit) bool {
	return u < v
}

// Truncate returns the start of the calendar unit containing t.
// Weeks start on Monday.
func Truncate(t time.Time, unit Unit) time.Time {
	year, month, day := t.Date()
	switch unit {
	case UnitMinute:
		return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, t.Location())
	case UnitHour:
		return time.Date(year, month, day, t.Hour(), 0, 0, 0, t.Location())
	case UnitDay:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	case UnitWeek:
		offset := int(t.Weekday())
		if offset == 0 {
			offset = 7
		}
		monday := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
		return monday.AddDate(0, 0, -offset+1)
	case UnitMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	case UnitYear:
		return time.Date(year, 1, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// Next advances t by one calendar unit. Day and coarser units step via
// AddDate so irregular month and year lengths are honored.
func Next(t time.Time, unit Unit) time.Time {
	switch unit {
	case UnitMinute:
		return t.Add(time.Minute)
	case UnitHour:
		return t.Add(time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, 1)
	case UnitWeek:
		return t.AddDate(0, 0, 7)
	case UnitMonth:
		return t.AddDate(0, 1, 0)
	case UnitYear:
		return t.AddDate(1, 0, 0)
	}
	return t
}

// Range is the fixed total scrollable span of the timeline. It is a value
// type and never mutated after construction.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a range, swapping the bounds if they arrive reversed so
// the Start < End invariant always holds.
func NewRange(start, end time.Time) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Duration returns the total span of the range.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t lies inside [Start, End].
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Clamp pins t into [Start, End].
func (r Range) Clamp(t time.Time) time.Time {
	if t.Before(r.Start) {
		return r.Start
	}
	if t.After(r.End) {
		return r.End
	}
	return t
}

// Days returns the range length in (fractional) days.
func (r Range) Days() float64 {
	return r.Duration().Hours() / 24
}

// TimeToPixel maps an instant to a horizontal offset on an axis of
// widthPx pixels. Instants outside the range clamp to the axis edges;
// partially visible items are a normal state, not an error.
func TimeToPixel(t time.Time, r Range, widthPx float64) float64 {
	px := TimeToPixelUnclamped(t, r, widthPx)
	if px < 0 {
		return 0
	}
	if px > widthPx {
		return widthPx
	}
	return px
}

// TimeToPixelUnclamped is TimeToPixel without the edge clamp. Axis
// stepping uses it so an interval straddling the range start keeps its
// true width before span clipping.
func TimeToPixelUnclamped(t time.Time, r Range, widthPx float64) float64 {
	total := r.Duration()
	if total <= 0 || widthPx <= 0 {
		return 0
	}
	return float64(t.Sub(r.Start)) / float64(total) * widthPx
}

// PixelToTime is the inverse of TimeToPixel. It deliberately does not
// clamp; callers decide how to treat offsets outside the axis.
func PixelToTime(px float64, r Range, widthPx float64) time.Time {
	if widthPx <= 0 {
		return r.Start
	}
	frac := px / widthPx
	return r.Start.Add(time.Duration(frac * float64(r.Duration())))
}
