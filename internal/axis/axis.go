// Package axis turns a time range and zoom factor into the two rows of
// calendar-aligned header intervals the timeline draws above the content.
package axis

import (
	"time"

	"github.com/highercomve/timegrid/internal/timescale"
)

// Formatter supplies the display text for an interval boundary. The
// generator decides which instants need labels, never what the text is,
// so locale concerns stay outside this package.
type Formatter interface {
	Format(t time.Time, unit timescale.Unit) string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(t time.Time, unit timescale.Unit) string

func (f FormatterFunc) Format(t time.Time, unit timescale.Unit) string {
	return f(t, unit)
}

// Interval is one labeled header cell. LeftPx/RightPx are clamped to the
// axis, so cells straddling the range edges render partially.
type Interval struct {
	Start   time.Time
	End     time.Time
	Unit    timescale.Unit
	Label   string
	LeftPx  float64
	RightPx float64
}

// WidthPx returns the rendered width of the interval.
func (iv Interval) WidthPx() float64 {
	return iv.RightPx - iv.LeftPx
}

// Tier pairs the coarse and fine units chosen for a zoom factor. The
// minor unit is always strictly finer than the major unit.
type Tier struct {
	Major timescale.Unit
	Minor timescale.Unit
}

// TierFor selects header units from the zoom factor. Band bounds are
// inclusive on the lower edge only: factor 4 is day/hour, factor 2 and
// 0.5 both land in month/day.
func TierFor(factor float64) Tier {
	switch {
	case factor >= 4:
		return Tier{Major: timescale.UnitDay, Minor: timescale.UnitHour}
	case factor >= 2:
		return Tier{Major: timescale.UnitMonth, Minor: timescale.UnitDay}
	case factor >= 0.5:
		return Tier{Major: timescale.UnitMonth, Minor: timescale.UnitDay}
	default:
		return Tier{Major: timescale.UnitYear, Minor: timescale.UnitMonth}
	}
}

// Generator produces the major and minor interval rows for a range at a
// given width and zoom factor.
type Generator struct {
	Formatter Formatter
}

// NewGenerator builds a generator around the injected formatter.
func NewGenerator(f Formatter) *Generator {
	return &Generator{Formatter: f}
}

// Rows holds the two parallel header rows.
type Rows struct {
	Tier  Tier
	Major []Interval
	Minor []Interval
}

// Generate computes both rows for the current zoom factor.
func (g *Generator) Generate(r timescale.Range, widthPx, factor float64) Rows {
	tier := TierFor(factor)
	return Rows{
		Tier:  tier,
		Major: g.intervals(r, widthPx, tier.Major),
		Minor: g.intervals(r, widthPx, tier.Minor),
	}
}

// intervals steps calendar-unit boundaries from at-or-before range start
// until past range end. Spans clamp to [0, widthPx]; cells entirely
// outside the axis are dropped. Cell width comes from consecutive
// boundary positions, not a constant, because calendar units are not
// uniform in duration.
func (g *Generator) intervals(r timescale.Range, widthPx float64, unit timescale.Unit) []Interval {
	var out []Interval
	for cur := timescale.Truncate(r.Start, unit); cur.Before(r.End); cur = timescale.Next(cur, unit) {
		next := timescale.Next(cur, unit)
		left := timescale.TimeToPixelUnclamped(cur, r, widthPx)
		right := timescale.TimeToPixelUnclamped(next, r, widthPx)
		if right <= 0 || left >= widthPx {
			continue
		}
		if left < 0 {
			left = 0
		}
		if right > widthPx {
			right = widthPx
		}
		iv := Interval{
			Start:   cur,
			End:     next,
			Unit:    unit,
			LeftPx:  left,
			RightPx: right,
		}
		if g.Formatter != nil {
			iv.Label = g.Formatter.Format(cur, unit)
		}
		out = append(out, iv)
	}
	return out
}
