package timescale

import "time"

const (
	// MinZoom and MaxZoom bound the magnification factor. Requests
	// outside the bounds clamp silently.
	MinZoom = 0.25
	MaxZoom = 8.0

	// DefaultPixelsPerDay drives the base axis width at factor 1.
	DefaultPixelsPerDay = 100.0
)

// Zoom owns the magnification factor and the horizontal scroll offset of
// the timeline. All mutation goes through its methods so the clamping
// invariants are enforced in one place.
type Zoom struct {
	rng            Range
	factor         float64
	scrollLeft     float64
	containerWidth float64
	pixelsPerDay   float64
}

// NewZoom builds a controller at factor 1 for the given range.
func NewZoom(r Range, containerWidth, pixelsPerDay float64) *Zoom {
	if pixelsPerDay <= 0 {
		pixelsPerDay = DefaultPixelsPerDay
	}
	return &Zoom{
		rng:            r,
		factor:         1.0,
		containerWidth: containerWidth,
		pixelsPerDay:   pixelsPerDay,
	}
}

// Factor returns the current magnification.
func (z *Zoom) Factor() float64 { return z.factor }

// Range returns the fixed time range the controller was built for.
func (z *Zoom) Range() Range { return z.rng }

// ContainerWidth returns the visible viewport width in pixels.
func (z *Zoom) ContainerWidth() float64 { return z.containerWidth }

// SetContainerWidth records a viewport resize and re-clamps the scroll
// offset against the new visible width.
func (z *Zoom) SetContainerWidth(w float64) {
	z.containerWidth = w
	z.scrollLeft = z.clampScroll(z.scrollLeft)
}

// BaseWidth is the axis width at factor 1: configured pixel density times
// range length, never narrower than the viewport.
func (z *Zoom) BaseWidth() float64 {
	w := z.rng.Days() * z.pixelsPerDay
	if w < z.containerWidth {
		w = z.containerWidth
	}
	return w
}

// Width is the rendered axis width at the current factor. It is derived,
// never stored.
func (z *Zoom) Width() float64 {
	return z.BaseWidth() * z.factor
}

// ScrollLeft returns the current horizontal scroll offset.
func (z *Zoom) ScrollLeft() float64 { return z.scrollLeft }

// ApplyScroll records a user scroll, clamped to the valid offset range.
func (z *Zoom) ApplyScroll(left float64) {
	z.scrollLeft = z.clampScroll(left)
}

// ZoomIn doubles the factor, keeping the centered instant fixed. No-op at
// the upper bound.
func (z *Zoom) ZoomIn() bool {
	if z.factor >= MaxZoom {
		return false
	}
	z.applyFactor(z.factor * 2)
	return true
}

// ZoomOut halves the factor, keeping the centered instant fixed. No-op at
// the lower bound.
func (z *Zoom) ZoomOut() bool {
	if z.factor <= MinZoom {
		return false
	}
	z.applyFactor(z.factor * 0.5)
	return true
}

// SetFactor jumps to an arbitrary factor, clamped into [MinZoom, MaxZoom],
// preserving the centered instant.
func (z *Zoom) SetFactor(f float64) {
	if f < MinZoom {
		f = MinZoom
	}
	if f > MaxZoom {
		f = MaxZoom
	}
	z.applyFactor(f)
}

// Reset returns to factor 1 and scrolls so that now sits at the viewport
// center (clamped at the range edges).
func (z *Zoom) Reset(now time.Time) {
	z.factor = 1.0
	z.CenterOn(now)
}

// CenterOn scrolls so that t sits at the horizontal center of the
// viewport, clamped to the valid scroll range.
func (z *Zoom) CenterOn(t time.Time) {
	px := TimeToPixel(z.rng.Clamp(t), z.rng, z.Width())
	z.scrollLeft = z.clampScroll(px - z.containerWidth/2)
}

// CenteredTime returns the instant currently under the viewport's
// horizontal center.
func (z *Zoom) CenteredTime() time.Time {
	return PixelToTime(z.scrollLeft+z.containerWidth/2, z.rng, z.Width())
}

// applyFactor changes the factor while keeping the instant under the
// viewport center fixed: the center's fractional position along the old
// axis is solved back into an offset on the new axis.
func (z *Zoom) applyFactor(f float64) {
	oldWidth := z.Width()
	centerPx := z.scrollLeft + z.containerWidth/2
	centerRatio := 0.0
	if oldWidth > 0 {
		centerRatio = centerPx / oldWidth
	}
	z.factor = f
	newWidth := z.Width()
	z.scrollLeft = z.clampScroll(centerRatio*newWidth - z.containerWidth/2)
}

func (z *Zoom) clampScroll(left float64) float64 {
	max := z.Width() - z.containerWidth
	if max < 0 {
		max = 0
	}
	if left < 0 {
		return 0
	}
	if left > max {
		return max
	}
	return left
}
