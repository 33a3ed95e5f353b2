package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/highercomve/timegrid/internal/axis"
)

const (
	// HeaderHeight is the total height of the two axis rows.
	HeaderHeight float32 = 48

	headerRowHeight = HeaderHeight / 2
)

// axisHeader draws the two-row time axis: major intervals on top, minor
// intervals below. Cell widths come straight from the generator's pixel
// spans, so calendar irregularity shows up as uneven cells.
type axisHeader struct {
	widget.BaseWidget

	rows  axis.Rows
	width float32
}

func newAxisHeader() *axisHeader {
	h := &axisHeader{}
	h.ExtendBaseWidget(h)
	return h
}

// SetRows installs freshly generated intervals and the axis width.
func (h *axisHeader) SetRows(rows axis.Rows, width float64) {
	h.rows = rows
	h.width = float32(width)
	h.Refresh()
}

func (h *axisHeader) MinSize() fyne.Size {
	return fyne.NewSize(h.width, HeaderHeight)
}

func (h *axisHeader) CreateRenderer() fyne.WidgetRenderer {
	return &axisHeaderRenderer{header: h}
}

type axisHeaderRenderer struct {
	header  *axisHeader
	objects []fyne.CanvasObject
}

func (r *axisHeaderRenderer) MinSize() fyne.Size { return r.header.MinSize() }

func (r *axisHeaderRenderer) Layout(fyne.Size) {}

func (r *axisHeaderRenderer) Refresh() {
	r.objects = r.objects[:0]
	r.buildRow(r.header.rows.Major, 0)
	r.buildRow(r.header.rows.Minor, headerRowHeight)
	canvas.Refresh(r.header)
}

func (r *axisHeaderRenderer) buildRow(cells []axis.Interval, top float32) {
	for _, iv := range cells {
		left := float32(iv.LeftPx)
		width := float32(iv.WidthPx())

		cell := canvas.NewRectangle(color.Transparent)
		cell.StrokeColor = theme.Color(theme.ColorNameSeparator)
		cell.StrokeWidth = 1
		cell.Move(fyne.NewPos(left, top))
		cell.Resize(fyne.NewSize(width, headerRowHeight))
		r.objects = append(r.objects, cell)

		label := canvas.NewText(iv.Label, theme.Color(theme.ColorNameForeground))
		label.TextSize = theme.CaptionTextSize()
		labelSize := fyne.MeasureText(label.Text, label.TextSize, label.TextStyle)
		// Skip labels that cannot fit their cell instead of overflowing
		// into the neighbors.
		if labelSize.Width > width-2 {
			continue
		}
		label.Move(fyne.NewPos(left+(width-labelSize.Width)/2, top+(headerRowHeight-labelSize.Height)/2))
		r.objects = append(r.objects, label)
	}
}

func (r *axisHeaderRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *axisHeaderRenderer) Destroy() {}
