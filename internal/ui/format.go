package ui

import (
	"time"

	"github.com/highercomve/timegrid/internal/axis"
	"github.com/highercomve/timegrid/internal/timescale"
)

// DefaultFormatter renders axis labels with plain Go layouts. The axis
// generator only decides which instants need labels; the text, and any
// locale decisions behind it, belong to the host.
func DefaultFormatter() axis.Formatter {
	return axis.FormatterFunc(func(t time.Time, unit timescale.Unit) string {
		switch unit {
		case timescale.UnitHour:
			return t.Format("15:04")
		case timescale.UnitDay:
			return t.Format("Mon 02")
		case timescale.UnitWeek:
			return t.Format("02 Jan")
		case timescale.UnitMonth:
			return t.Format("January 2006")
		case timescale.UnitYear:
			return t.Format("2006")
		}
		return t.Format("2006-01-02 15:04")
	})
}
