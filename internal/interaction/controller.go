// Package interaction implements the drag/resize state machine. It is
// purely computational: it consumes raw pointer coordinates, resolves
// them into time and row values, and reports intents through callbacks.
// It never mutates the host's items.
package interaction

import (
	"time"

	"github.com/highercomve/timegrid/internal/layout"
	"github.com/highercomve/timegrid/internal/models"
	"github.com/highercomve/timegrid/internal/timescale"
)

// State of the controller. At most one session exists system-wide.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

// Edge identifies which end of an item a resize session grabbed.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeStart
	EdgeEnd
)

const (
	// EdgeHitZonePx is how close to an item edge a pointer-down must land
	// to start a resize instead of a drag.
	EdgeHitZonePx = 8

	// MinItemDuration is the floor a resize can never shrink an item
	// below.
	MinItemDuration = time.Minute

	// clickSlopPx separates a click from the start of a drag.
	clickSlopPx = 3
)

// Callbacks are the host's intent sinks. Move/Resize fire once per
// completed pointer-up; Preview (optional) fires on every move while a
// session is live. Select fires with the empty string on deselect.
type Callbacks struct {
	OnItemMove   func(itemID string, newStart time.Time, newGroupID string)
	OnItemResize func(itemID string, newStart, newEnd time.Time)
	OnItemSelect func(itemID string)
	OnPreview    func(itemID string, start, end time.Time, groupID string)
}

// Session is the transient state of one in-progress drag or resize.
type Session struct {
	ItemID          string
	Edge            Edge
	OriginX         float64
	OriginY         float32
	OriginalStart   time.Time
	OriginalEnd     time.Time
	OriginalGroupID string

	proposedStart time.Time
	proposedEnd   time.Time
	proposedGroup string
	moved         bool
}

// Controller resolves pointer events against the current scene geometry.
// The host must refresh the scene (SetScene) whenever zoom, groups or
// items change, and must deliver the whole pointer sequence of a session
// to this controller (pointer capture).
type Controller struct {
	callbacks Callbacks

	rng     timescale.Range
	widthPx float64
	rows    *layout.Rows
	boxes   []layout.ItemBox
	lookup  func(id string) *models.Item

	state      State
	session    Session
	selectedID string
}

// New builds an idle controller.
func New(cb Callbacks) *Controller {
	return &Controller{callbacks: cb}
}

// SetScene installs the geometry the controller resolves pointers
// against.
func (c *Controller) SetScene(rng timescale.Range, widthPx float64, rows *layout.Rows, boxes []layout.ItemBox, lookup func(id string) *models.Item) {
	c.rng = rng
	c.widthPx = widthPx
	c.rows = rows
	c.boxes = boxes
	c.lookup = lookup
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// SelectedID returns the currently selected item, or "".
func (c *Controller) SelectedID() string { return c.selectedID }

// ActiveSession returns a copy of the live session; ok is false when
// idle.
func (c *Controller) ActiveSession() (Session, bool) {
	return c.session, c.state != Idle
}

// hitBox finds the topmost box under the pointer.
func (c *Controller) hitBox(x float64, y float32) (layout.ItemBox, bool) {
	for i := len(c.boxes) - 1; i >= 0; i-- {
		b := c.boxes[i]
		if x >= b.Left && x <= b.Left+b.Width && y >= b.Top && y <= b.Top+b.Height {
			return b, true
		}
	}
	return layout.ItemBox{}, false
}

// PointerDown starts a session. A qualifying press on a selected,
// resizable item's edge starts a resize; a press on a movable item starts
// a drag. A second pointer-down while a session is live is ignored
// outright, so only one session ever exists.
func (c *Controller) PointerDown(x float64, y float32) {
	if c.state != Idle {
		return
	}
	box, ok := c.hitBox(x, y)
	if !ok {
		return
	}
	item := c.lookup(box.ItemID)
	if item == nil {
		return
	}

	edge := EdgeNone
	if c.selectedID == item.ID && item.Resizable {
		if x-box.Left <= EdgeHitZonePx {
			edge = EdgeStart
		} else if box.Left+box.Width-x <= EdgeHitZonePx {
			edge = EdgeEnd
		}
	}
	if edge == EdgeNone && !item.Movable {
		// Not resizable here and not movable: the press can still select
		// on release, tracked without a session.
		c.session = Session{ItemID: item.ID, OriginX: x, OriginY: y}
		return
	}

	c.session = Session{
		ItemID:          item.ID,
		Edge:            edge,
		OriginX:         x,
		OriginY:         y,
		OriginalStart:   item.Start,
		OriginalEnd:     item.End,
		OriginalGroupID: item.GroupID,
		proposedStart:   item.Start,
		proposedEnd:     item.End,
		proposedGroup:   item.GroupID,
	}
	if edge == EdgeNone {
		c.state = Dragging
	} else {
		c.state = Resizing
	}
}

// PointerMove recomputes the proposed values from the current pointer
// position. Nothing accumulates between moves, so there is no drift: a
// pointer returned to its origin always yields the original values.
func (c *Controller) PointerMove(x float64, y float32) {
	if c.state == Idle {
		return
	}
	s := &c.session
	if !s.moved {
		dx := x - s.OriginX
		dy := float64(y - s.OriginY)
		if dx*dx+dy*dy <= clickSlopPx*clickSlopPx {
			return
		}
		s.moved = true
	}

	switch c.state {
	case Dragging:
		s.proposedStart = timescale.PixelToTime(x, c.rng, c.widthPx)
		s.proposedEnd = s.proposedStart.Add(s.OriginalEnd.Sub(s.OriginalStart))
		if g, ok := c.rows.At(y); ok {
			s.proposedGroup = g.ID
		}
	case Resizing:
		candidate := timescale.PixelToTime(x, c.rng, c.widthPx)
		if s.Edge == EdgeStart {
			limit := s.OriginalEnd.Add(-MinItemDuration)
			if candidate.After(limit) {
				candidate = limit
			}
			s.proposedStart = candidate
			s.proposedEnd = s.OriginalEnd
		} else {
			limit := s.OriginalStart.Add(MinItemDuration)
			if candidate.Before(limit) {
				candidate = limit
			}
			s.proposedStart = s.OriginalStart
			s.proposedEnd = candidate
		}
	}
	if c.callbacks.OnPreview != nil {
		c.callbacks.OnPreview(s.ItemID, s.proposedStart, s.proposedEnd, s.proposedGroup)
	}
}

// PointerUp completes the session. A click (no movement past the slop)
// selects; a finished drag or resize emits exactly one intent. The
// controller itself commits nothing.
func (c *Controller) PointerUp(x float64, y float32) {
	s := c.session
	state := c.state
	c.state = Idle
	c.session = Session{}

	if s.ItemID == "" {
		// Press began on empty space: a release there clears selection.
		if _, hit := c.hitBox(x, y); !hit && c.selectedID != "" {
			c.selectedID = ""
			if c.callbacks.OnItemSelect != nil {
				c.callbacks.OnItemSelect("")
			}
		}
		return
	}

	if !s.moved {
		if c.selectedID != s.ItemID {
			c.selectedID = s.ItemID
			if c.callbacks.OnItemSelect != nil {
				c.callbacks.OnItemSelect(s.ItemID)
			}
		}
		return
	}

	switch state {
	case Dragging:
		if c.callbacks.OnItemMove != nil {
			c.callbacks.OnItemMove(s.ItemID, s.proposedStart, s.proposedGroup)
		}
	case Resizing:
		if c.callbacks.OnItemResize != nil {
			c.callbacks.OnItemResize(s.ItemID, s.proposedStart, s.proposedEnd)
		}
	}
}

// PointerCancel abandons the session without emitting any intent. Loss of
// pointer capture and pointer-leave with no button held route here too.
func (c *Controller) PointerCancel() {
	c.state = Idle
	c.session = Session{}
}
