package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// LabelColumnWidth is the fixed width of the group label pane.
const LabelColumnWidth float32 = 140

// labelColumn is the fixed left pane listing group titles, one per row,
// vertically aligned with the content rows.
type labelColumn struct {
	widget.BaseWidget

	view *Timeline
}

func newLabelColumn(view *Timeline) *labelColumn {
	l := &labelColumn{view: view}
	l.ExtendBaseWidget(l)
	return l
}

func (l *labelColumn) MinSize() fyne.Size {
	return fyne.NewSize(LabelColumnWidth, l.view.rows.TotalHeight())
}

func (l *labelColumn) CreateRenderer() fyne.WidgetRenderer {
	return &labelColumnRenderer{column: l}
}

type labelColumnRenderer struct {
	column  *labelColumn
	objects []fyne.CanvasObject
}

func (r *labelColumnRenderer) MinSize() fyne.Size { return r.column.MinSize() }

func (r *labelColumnRenderer) Layout(fyne.Size) {}

func (r *labelColumnRenderer) Refresh() {
	view := r.column.view
	r.objects = r.objects[:0]

	for _, g := range view.groups {
		top, _ := view.rows.Top(g.ID)
		height, _ := view.rows.Height(g.ID)

		label := canvas.NewText(g.Title, theme.Color(theme.ColorNameForeground))
		label.TextSize = theme.TextSize()
		labelSize := fyne.MeasureText(label.Text, label.TextSize, label.TextStyle)
		label.Move(fyne.NewPos(8, top+(height-labelSize.Height)/2))
		r.objects = append(r.objects, label)

		line := canvas.NewLine(theme.Color(theme.ColorNameSeparator))
		line.Position1 = fyne.NewPos(0, top+height)
		line.Position2 = fyne.NewPos(LabelColumnWidth, top+height)
		r.objects = append(r.objects, line)
	}

	canvas.Refresh(r.column)
}

func (r *labelColumnRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *labelColumnRenderer) Destroy() {}
