// Package layout resolves vertical pixel coordinates into timeline rows
// and computes the geometry tuples the renderer consumes.
package layout

import (
	"github.com/highercomve/timegrid/internal/models"
	"github.com/highercomve/timegrid/internal/timescale"
)

// DefaultRowHeight is used when a group does not set its own height.
const DefaultRowHeight float32 = 48

// Rows maps between vertical pixel coordinates and group rows. The group
// list is treated as read-only for the lifetime of the value; rebuild it
// when the host changes groups.
type Rows struct {
	HeaderOffset float32
	groups       []models.Group
	tops         []float32
	total        float32
}

// NewRows builds a row map from the ordered group list.
func NewRows(groups []models.Group, headerOffset float32) *Rows {
	r := &Rows{HeaderOffset: headerOffset, groups: groups}
	y := headerOffset
	for _, g := range groups {
		r.tops = append(r.tops, y)
		y += rowHeight(g)
	}
	r.total = y
	return r
}

func rowHeight(g models.Group) float32 {
	if g.HeightPx > 0 {
		return g.HeightPx
	}
	return DefaultRowHeight
}

// TotalHeight is the header offset plus every row's height.
func (r *Rows) TotalHeight() float32 { return r.total }

// At resolves a vertical coordinate to a group. ok is false above the
// header or below the last row.
func (r *Rows) At(y float32) (models.Group, bool) {
	if y < r.HeaderOffset {
		return models.Group{}, false
	}
	for i, g := range r.groups {
		if y < r.tops[i]+rowHeight(g) {
			return g, true
		}
	}
	return models.Group{}, false
}

// Top returns the vertical offset of a group's row.
func (r *Rows) Top(groupID string) (float32, bool) {
	for i, g := range r.groups {
		if g.ID == groupID {
			return r.tops[i], true
		}
	}
	return 0, false
}

// Height returns the rendered height of a group's row.
func (r *Rows) Height(groupID string) (float32, bool) {
	for _, g := range r.groups {
		if g.ID == groupID {
			return rowHeight(g), true
		}
	}
	return 0, false
}

// ItemBox is the geometry tuple handed to the renderer for one item.
type ItemBox struct {
	GroupID string
	ItemID  string
	Left    float64
	Width   float64
	Top     float32
	Height  float32
}

// ItemPadding insets an item's box from its row's edges.
const ItemPadding float32 = 4

// Warnings collects non-fatal layout problems. Each item warns at most
// once even though layout runs every frame, and sends never block.
type Warnings struct {
	C    chan string
	seen map[string]bool
}

// NewWarnings builds a warning sink with the given channel buffer.
func NewWarnings(buffer int) *Warnings {
	return &Warnings{C: make(chan string, buffer), seen: make(map[string]bool)}
}

func (w *Warnings) report(itemID, msg string) {
	if w == nil || w.seen[itemID] {
		return
	}
	w.seen[itemID] = true
	select {
	case w.C <- msg:
	default:
	}
}

// Boxes lays out every placeable item. Items referencing an unknown group
// are excluded and reported on warn. Items partly or fully outside the
// range clamp at the axis edges and simply render narrow or empty,
// matching the clamp-and-continue conversion contract.
func Boxes(items []models.Item, rng timescale.Range, widthPx float64, rows *Rows, warn *Warnings) []ItemBox {
	var out []ItemBox
	for _, it := range items {
		top, ok := rows.Top(it.GroupID)
		if !ok {
			warn.report(it.ID, "item "+it.ID+" references unknown group "+it.GroupID)
			continue
		}
		height, _ := rows.Height(it.GroupID)
		left := timescale.TimeToPixel(it.Start, rng, widthPx)
		right := timescale.TimeToPixel(it.End, rng, widthPx)
		out = append(out, ItemBox{
			GroupID: it.GroupID,
			ItemID:  it.ID,
			Left:    left,
			Width:   right - left,
			Top:     top + ItemPadding,
			Height:  height - 2*ItemPadding,
		})
	}
	return out
}
