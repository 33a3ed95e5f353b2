package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/highercomve/timegrid/internal/interaction"
	"github.com/highercomve/timegrid/internal/layout"
	"github.com/highercomve/timegrid/internal/timescale"
)

// contentCanvas is the scrollable item surface. Fyne delivers the whole
// drag sequence to the widget the press started on, which is exactly the
// pointer-capture contract the interaction controller needs: no global
// listeners, no session left dangling on another widget.
type contentCanvas struct {
	widget.BaseWidget

	view *Timeline

	hoverX float64
	hoverY float32
}

func newContentCanvas(view *Timeline) *contentCanvas {
	c := &contentCanvas{view: view}
	c.ExtendBaseWidget(c)
	return c
}

func (c *contentCanvas) MinSize() fyne.Size {
	return fyne.NewSize(float32(c.view.zoom.Width()), c.view.rows.TotalHeight())
}

// MouseDown begins a session (or a pending selection click).
func (c *contentCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.view.ctrl.PointerDown(float64(ev.Position.X), ev.Position.Y)
}

// MouseUp completes the session; intents fire from here, at most once.
func (c *contentCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.view.ctrl.PointerUp(float64(ev.Position.X), ev.Position.Y)
}

// Dragged recomputes the live proposal from the absolute pointer
// position.
func (c *contentCanvas) Dragged(ev *fyne.DragEvent) {
	c.view.ctrl.PointerMove(float64(ev.Position.X), ev.Position.Y)
	c.Refresh()
}

// DragEnd is intentionally empty: the desktop driver always follows with
// MouseUp, which carries the release position the controller needs.
func (c *contentCanvas) DragEnd() {}

func (c *contentCanvas) MouseIn(ev *desktop.MouseEvent) {
	c.hoverX = float64(ev.Position.X)
	c.hoverY = ev.Position.Y
}

func (c *contentCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.hoverX = float64(ev.Position.X)
	c.hoverY = ev.Position.Y
}

// MouseOut drops a pending selection press. An active drag or resize
// keeps its session: the button is still held and fyne keeps delivering
// Dragged events to this widget until release.
func (c *contentCanvas) MouseOut() {
	if c.view.ctrl.State() == interaction.Idle {
		c.view.ctrl.PointerCancel()
	}
}

// Cursor shows a horizontal resize cursor over the grab zones of the
// selected resizable item.
func (c *contentCanvas) Cursor() desktop.Cursor {
	sel := c.view.ctrl.SelectedID()
	if sel == "" {
		return desktop.DefaultCursor
	}
	item := c.view.schedule.ItemByID(sel)
	if item == nil || !item.Resizable {
		return desktop.DefaultCursor
	}
	for _, b := range c.view.boxes {
		if b.ItemID != sel {
			continue
		}
		if c.hoverY < b.Top || c.hoverY > b.Top+b.Height {
			break
		}
		nearLeft := c.hoverX >= b.Left && c.hoverX-b.Left <= interaction.EdgeHitZonePx
		nearRight := c.hoverX <= b.Left+b.Width && b.Left+b.Width-c.hoverX <= interaction.EdgeHitZonePx
		if nearLeft || nearRight {
			return desktop.HResizeCursor
		}
		break
	}
	return desktop.DefaultCursor
}

func (c *contentCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &contentRenderer{content: c}
}

type contentRenderer struct {
	content *contentCanvas
	objects []fyne.CanvasObject
}

func (r *contentRenderer) MinSize() fyne.Size { return r.content.MinSize() }

func (r *contentRenderer) Layout(fyne.Size) {}

func (r *contentRenderer) Refresh() {
	view := r.content.view
	r.objects = r.objects[:0]

	width := float32(view.zoom.Width())

	// Row separators.
	for _, g := range view.groups {
		top, _ := view.rows.Top(g.ID)
		height, _ := view.rows.Height(g.ID)
		line := canvas.NewLine(theme.Color(theme.ColorNameSeparator))
		line.Position1 = fyne.NewPos(0, top+height)
		line.Position2 = fyne.NewPos(width, top+height)
		r.objects = append(r.objects, line)
	}

	// Minor tick grid lines carry the axis rhythm into the content.
	for _, iv := range view.axisRows.Minor {
		line := canvas.NewLine(theme.Color(theme.ColorNameSeparator))
		line.Position1 = fyne.NewPos(float32(iv.LeftPx), 0)
		line.Position2 = fyne.NewPos(float32(iv.LeftPx), view.rows.TotalHeight())
		r.objects = append(r.objects, line)
	}

	for _, b := range view.boxes {
		r.buildItem(b)
	}
	r.buildPreview()

	canvas.Refresh(r.content)
}

func (r *contentRenderer) buildItem(b layout.ItemBox) {
	view := r.content.view
	item := view.schedule.ItemByID(b.ItemID)
	if item == nil {
		return
	}

	fill := parseHexColor(item.ColorHex, theme.Color(theme.ColorNamePrimary))
	rect := canvas.NewRectangle(fill)
	rect.CornerRadius = 4
	if view.ctrl.SelectedID() == b.ItemID {
		rect.StrokeColor = theme.Color(theme.ColorNameFocus)
		rect.StrokeWidth = 2
	}
	rect.Move(fyne.NewPos(float32(b.Left), b.Top))
	rect.Resize(fyne.NewSize(float32(b.Width), b.Height))
	r.objects = append(r.objects, rect)

	label := canvas.NewText(item.Title, theme.Color(theme.ColorNameForegroundOnPrimary))
	label.TextSize = theme.CaptionTextSize()
	labelSize := fyne.MeasureText(label.Text, label.TextSize, label.TextStyle)
	if labelSize.Width <= float32(b.Width)-4 {
		label.Move(fyne.NewPos(float32(b.Left)+4, b.Top+(b.Height-labelSize.Height)/2))
		r.objects = append(r.objects, label)
	}
}

// buildPreview draws the translucent ghost of the in-flight drag or
// resize proposal.
func (r *contentRenderer) buildPreview() {
	view := r.content.view
	if !view.preview.active {
		return
	}

	top, ok := view.rows.Top(view.preview.groupID)
	if !ok {
		return
	}
	height, _ := view.rows.Height(view.preview.groupID)
	left := timescale.TimeToPixel(view.preview.start, view.rng, view.zoom.Width())
	right := timescale.TimeToPixel(view.preview.end, view.rng, view.zoom.Width())

	ghost := canvas.NewRectangle(color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x60})
	ghost.CornerRadius = 4
	ghost.StrokeColor = theme.Color(theme.ColorNameFocus)
	ghost.StrokeWidth = 1
	ghost.Move(fyne.NewPos(float32(left), top+layout.ItemPadding))
	ghost.Resize(fyne.NewSize(float32(right-left), height-2*layout.ItemPadding))
	r.objects = append(r.objects, ghost)
}

func (r *contentRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *contentRenderer) Destroy() {}

// parseHexColor turns "#rrggbb" into a color, falling back when the value
// is missing or malformed.
func parseHexColor(s string, fallback color.Color) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	var v [6]uint8
	for i := 0; i < 6; i++ {
		d, ok := hex(s[i+1])
		if !ok {
			return fallback
		}
		v[i] = d
	}
	return color.NRGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 0xff}
}
