package axis

import (
	"math"
	"testing"
	"time"

	"github.com/highercomve/timegrid/internal/timescale"
)

func date(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

func TestTierHierarchy(t *testing.T) {
	for _, factor := range []float64{0.1, 0.6, 1, 2, 3, 5, 8} {
		tier := TierFor(factor)
		if !tier.Minor.Finer(tier.Major) {
			t.Errorf("factor %f: minor %s is not strictly finer than major %s", factor, tier.Minor, tier.Major)
		}
	}
}

func TestTierBandsInclusiveOnLowerBound(t *testing.T) {
	tests := []struct {
		factor float64
		major  timescale.Unit
		minor  timescale.Unit
	}{
		{8, timescale.UnitDay, timescale.UnitHour},
		{4, timescale.UnitDay, timescale.UnitHour}, // inclusive at 4
		{3.999, timescale.UnitMonth, timescale.UnitDay},
		{2, timescale.UnitMonth, timescale.UnitDay}, // inclusive at 2
		{1, timescale.UnitMonth, timescale.UnitDay},
		{0.5, timescale.UnitMonth, timescale.UnitDay}, // inclusive at 0.5
		{0.499, timescale.UnitYear, timescale.UnitMonth},
		{0.25, timescale.UnitYear, timescale.UnitMonth},
	}

	for _, tc := range tests {
		tier := TierFor(tc.factor)
		if tier.Major != tc.major || tier.Minor != tc.minor {
			t.Errorf("factor %f: got %s/%s, expected %s/%s",
				tc.factor, tier.Major, tier.Minor, tc.major, tc.minor)
		}
	}
}

func TestGenerateDayMinorIntervals(t *testing.T) {
	gen := NewGenerator(FormatterFunc(func(ts time.Time, unit timescale.Unit) string {
		return ts.Format("01-02")
	}))
	r := timescale.NewRange(date(2024, 1, 1, 0), date(2024, 1, 8, 0))
	rows := gen.Generate(r, 700, 1)

	if len(rows.Minor) != 7 {
		t.Fatalf("expected 7 day cells, got %d", len(rows.Minor))
	}
	for i, iv := range rows.Minor {
		if iv.Unit != timescale.UnitDay {
			t.Fatalf("cell %d has unit %s", i, iv.Unit)
		}
		if iv.Label == "" {
			t.Errorf("cell %d missing label", i)
		}
		if math.Abs(iv.WidthPx()-100) > 1e-6 {
			t.Errorf("cell %d width %f, expected 100 for uniform days", i, iv.WidthPx())
		}
		if i > 0 && rows.Minor[i-1].RightPx != iv.LeftPx {
			t.Errorf("cell %d does not begin where cell %d ends", i, i-1)
		}
	}
	last := rows.Minor[len(rows.Minor)-1]
	if math.Abs(last.RightPx-700) > 1e-6 {
		t.Errorf("last cell should end at the axis end, got %f", last.RightPx)
	}
}

func TestGenerateClampsStraddlingCells(t *testing.T) {
	gen := NewGenerator(nil)
	// Range starts mid-January, so the first month cell straddles the
	// axis start and must clamp to 0 without disturbing its end.
	r := timescale.NewRange(date(2024, 1, 15, 0), date(2024, 3, 15, 0))
	rows := gen.Generate(r, 600, 1)

	if len(rows.Major) == 0 {
		t.Fatal("expected major cells")
	}
	first := rows.Major[0]
	if first.LeftPx != 0 {
		t.Errorf("straddling first cell should clamp left to 0, got %f", first.LeftPx)
	}
	if !first.Start.Equal(date(2024, 1, 1, 0)) {
		t.Errorf("first cell should align at the month boundary, got %v", first.Start)
	}
	last := rows.Major[len(rows.Major)-1]
	if last.RightPx != 600 {
		t.Errorf("last straddling cell should clamp right to the axis end, got %f", last.RightPx)
	}

	for i, iv := range rows.Major {
		if iv.LeftPx < 0 || iv.RightPx > 600 {
			t.Errorf("cell %d span [%f, %f] escapes the axis", i, iv.LeftPx, iv.RightPx)
		}
		if iv.WidthPx() <= 0 {
			t.Errorf("cell %d has non-positive width; fully offscreen cells must be omitted", i)
		}
	}
}

func TestGenerateVariableWidthMonths(t *testing.T) {
	gen := NewGenerator(nil)
	// Feb 2024 (29 days) next to Mar (31): cells must differ in width.
	r := timescale.NewRange(date(2024, 2, 1, 0), date(2024, 4, 1, 0))
	rows := gen.Generate(r, 600, 1)

	if len(rows.Major) != 2 {
		t.Fatalf("expected 2 month cells, got %d", len(rows.Major))
	}
	feb, mar := rows.Major[0], rows.Major[1]
	if feb.WidthPx() >= mar.WidthPx() {
		t.Errorf("February (%f) should be narrower than March (%f)", feb.WidthPx(), mar.WidthPx())
	}
}

func TestHourMinorAtHighZoom(t *testing.T) {
	gen := NewGenerator(nil)
	r := timescale.NewRange(date(2024, 1, 1, 0), date(2024, 1, 2, 0))
	rows := gen.Generate(r, 2400, 4)

	if rows.Tier.Minor != timescale.UnitHour {
		t.Fatalf("expected hour minor at factor 4, got %s", rows.Tier.Minor)
	}
	if len(rows.Minor) != 24 {
		t.Fatalf("expected 24 hour cells, got %d", len(rows.Minor))
	}
	if len(rows.Major) != 1 {
		t.Fatalf("expected a single day cell, got %d", len(rows.Major))
	}
}

func TestNilFormatterYieldsEmptyLabels(t *testing.T) {
	gen := NewGenerator(nil)
	r := timescale.NewRange(date(2024, 1, 1, 0), date(2024, 1, 3, 0))
	rows := gen.Generate(r, 200, 1)
	for _, iv := range rows.Minor {
		if iv.Label != "" {
			t.Fatalf("expected empty label without formatter, got %q", iv.Label)
		}
	}
}

func TestFormatterReceivesBoundaryInstants(t *testing.T) {
	var seen []time.Time
	gen := NewGenerator(FormatterFunc(func(ts time.Time, unit timescale.Unit) string {
		if unit == timescale.UnitDay {
			seen = append(seen, ts)
		}
		return "x"
	}))
	r := timescale.NewRange(date(2024, 1, 1, 0), date(2024, 1, 4, 0))
	gen.Generate(r, 300, 1)

	expected := []time.Time{date(2024, 1, 1, 0), date(2024, 1, 2, 0), date(2024, 1, 3, 0)}
	if len(seen) != len(expected) {
		t.Fatalf("expected %d day labels, got %d", len(expected), len(seen))
	}
	for i, ts := range expected {
		if !seen[i].Equal(ts) {
			t.Errorf("label %d requested for %v, expected %v", i, seen[i], ts)
		}
	}
}
