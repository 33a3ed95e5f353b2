package ui

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/viper"

	"github.com/highercomve/timegrid/internal/axis"
	"github.com/highercomve/timegrid/internal/interaction"
	tglayout "github.com/highercomve/timegrid/internal/layout"
	"github.com/highercomve/timegrid/internal/models"
	"github.com/highercomve/timegrid/internal/store"
	"github.com/highercomve/timegrid/internal/timescale"
)

// HeaderModeFixed keeps the axis header pinned above the content while
// mirroring its horizontal offset; HeaderModeInline puts the header
// inside the same scroll container so everything scrolls together.
const (
	HeaderModeFixed  = "fixed"
	HeaderModeInline = "inline"
)

// Timeline is the interactive schedule view: a fixed label pane on the
// left, a two-row time axis on top and the scrollable item surface in the
// middle. It owns the zoom/scroll/session state; all mutation flows
// through its handlers so the clamping invariants live in one place.
type Timeline struct {
	window   fyne.Window
	storage  *store.Storage
	schedule *models.Schedule

	rng  timescale.Range
	zoom *timescale.Zoom
	gen  *axis.Generator
	warn *tglayout.Warnings
	ctrl *interaction.Controller

	groups   []models.Group
	rows     *tglayout.Rows
	boxes    []tglayout.ItemBox
	axisRows axis.Rows

	preview struct {
		active  bool
		itemID  string
		start   time.Time
		end     time.Time
		groupID string
	}

	header        *axisHeader
	content       *contentCanvas
	labels        *labelColumn
	headerScroll  *container.Scroll
	contentScroll *container.Scroll
	labelScroll   *container.Scroll

	headerMode string
}

// NewTimeline builds the view for a loaded schedule. Density and header
// mode come from the viper config.
func NewTimeline(w fyne.Window, s *store.Storage, sched *models.Schedule) *Timeline {
	rng := timescale.NewRange(sched.Start, sched.End)

	t := &Timeline{
		window:     w,
		storage:    s,
		schedule:   sched,
		rng:        rng,
		zoom:       timescale.NewZoom(rng, 800, viper.GetFloat64("pixels_per_day")),
		gen:        axis.NewGenerator(DefaultFormatter()),
		warn:       tglayout.NewWarnings(16),
		headerMode: viper.GetString("header_mode"),
	}
	t.ctrl = interaction.New(interaction.Callbacks{
		OnItemMove:   t.commitMove,
		OnItemResize: t.commitResize,
		OnItemSelect: t.onSelect,
		OnPreview:    t.onPreview,
	})
	t.header = newAxisHeader()
	t.content = newContentCanvas(t)
	t.labels = newLabelColumn(t)

	go t.drainWarnings()

	t.rebuild()
	return t
}

// drainWarnings logs layout complaints (unknown groups and the like);
// they are cosmetic, never fatal.
func (t *Timeline) drainWarnings() {
	for msg := range t.warn.C {
		log.Println("timeline:", msg)
	}
}

// MakeUI assembles the panes and the toolbar.
func (t *Timeline) MakeUI() fyne.CanvasObject {
	t.labelScroll = container.NewVScroll(t.labels)
	// The label pane only mirrors the content's vertical offset; a
	// scroll started on it is snapped back to the content pane's.
	t.labelScroll.OnScrolled = func(fyne.Position) {
		t.syncLabelPane(t.contentScroll.Offset)
	}

	var center fyne.CanvasObject
	if t.headerMode == HeaderModeInline {
		// Inline mode: the header lives inside the same scroll
		// container as the rows, so horizontal sync is structural and
		// the header scrolls away vertically with the content. The
		// label pane gets a matching top inset.
		t.contentScroll = container.NewScroll(container.NewVBox(t.header, t.content))
		t.contentScroll.OnScrolled = func(p fyne.Position) {
			t.zoom.ApplyScroll(float64(p.X))
			t.syncLabelPane(p)
		}
		left := container.NewBorder(canvasSpacer(LabelColumnWidth, HeaderHeight), nil, nil, nil, t.labelScroll)
		center = container.NewBorder(nil, nil, left, nil, t.contentScroll)
	} else {
		t.contentScroll = container.NewScroll(t.content)
		t.headerScroll = container.NewHScroll(t.header)
		t.headerScroll.OnScrolled = func(fyne.Position) {
			t.headerScroll.Offset = fyne.NewPos(t.contentScroll.Offset.X, 0)
			t.headerScroll.Refresh()
		}
		// Header mirrors the content offset within the same scroll
		// event, so the two panes never visibly drift.
		t.contentScroll.OnScrolled = func(p fyne.Position) {
			t.zoom.ApplyScroll(float64(p.X))
			t.headerScroll.Offset = fyne.NewPos(p.X, 0)
			t.headerScroll.Refresh()
			t.syncLabelPane(p)
		}
		corner := canvasSpacer(LabelColumnWidth, HeaderHeight)
		top := container.NewBorder(nil, nil, corner, nil, t.headerScroll)
		center = container.NewBorder(top, nil, nil, nil,
			container.NewBorder(nil, nil, t.labelScroll, nil, t.contentScroll))
	}

	return container.NewBorder(t.makeToolbar(), nil, nil, nil, center)
}

func (t *Timeline) syncLabelPane(p fyne.Position) {
	t.labelScroll.Offset = fyne.NewPos(0, p.Y)
	t.labelScroll.Refresh()
}

func (t *Timeline) makeToolbar() fyne.CanvasObject {
	zoomLabel := widget.NewLabel("100%")
	updateZoomLabel := func() {
		zoomLabel.SetText(formatPercent(t.zoom.Factor()))
	}

	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		t.applyZoom(t.zoom.ZoomIn)
		updateZoomLabel()
	})
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		t.applyZoom(t.zoom.ZoomOut)
		updateZoomLabel()
	})
	reset := widget.NewButtonWithIcon("", theme.ZoomFitIcon(), func() {
		t.applyZoom(func() bool {
			t.zoom.Reset(time.Now())
			return true
		})
		updateZoomLabel()
	})

	groupNames := make([]string, len(t.groups))
	for i, g := range t.groups {
		groupNames[i] = g.Title
	}
	jump := widget.NewSelect(groupNames, func(name string) {
		for _, g := range t.groups {
			if g.Title == name {
				t.ScrollToGroup(g.ID)
				return
			}
		}
	})
	jump.PlaceHolder = "Jump to group"

	export := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), t.exportPDF)
	importYAML := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), t.importYAML)

	return container.NewHBox(
		zoomOut, zoomLabel, zoomIn, reset,
		widget.NewSeparator(),
		jump,
		layout.NewSpacer(),
		importYAML, export,
	)
}

// applyZoom runs a zoom mutation and re-applies the recentered offset.
// Ordering matters: the content must be resized and the scroll refreshed
// before the new offset is set, otherwise the offset clamps against the
// old, narrower content.
func (t *Timeline) applyZoom(change func() bool) {
	t.syncViewport()
	if !change() {
		return
	}
	t.rebuild()
	t.contentScroll.Refresh()
	t.contentScroll.Offset = fyne.NewPos(float32(t.zoom.ScrollLeft()), t.contentScroll.Offset.Y)
	t.contentScroll.Refresh()
	if t.headerScroll != nil {
		t.headerScroll.Offset = fyne.NewPos(float32(t.zoom.ScrollLeft()), 0)
		t.headerScroll.Refresh()
	}
}

// syncViewport feeds the live scroll size into the zoom state; fyne only
// knows the real size once the window is shown.
func (t *Timeline) syncViewport() {
	if t.contentScroll == nil {
		return
	}
	if w := t.contentScroll.Size().Width; w > 0 {
		t.zoom.SetContainerWidth(float64(w))
	}
}

// ScrollToGroup vertically centers a group's row. No-op when the row is
// already fully visible.
func (t *Timeline) ScrollToGroup(groupID string) {
	top, ok := t.rows.Top(groupID)
	if !ok {
		return
	}
	height, _ := t.rows.Height(groupID)

	viewTop := t.contentScroll.Offset.Y
	viewHeight := t.contentScroll.Size().Height
	if top >= viewTop && top+height <= viewTop+viewHeight {
		return
	}

	target := top + height/2 - viewHeight/2
	max := t.rows.TotalHeight() - viewHeight
	if max < 0 {
		max = 0
	}
	if target < 0 {
		target = 0
	}
	if target > max {
		target = max
	}
	t.contentScroll.Offset = fyne.NewPos(t.contentScroll.Offset.X, target)
	t.contentScroll.Refresh()
	t.syncLabelPane(t.contentScroll.Offset)
}

// rebuild recomputes every derived piece: row layout, item boxes, axis
// intervals and the interaction scene.
func (t *Timeline) rebuild() {
	t.preview.active = false
	t.groups = t.schedule.SortedGroups()
	t.rows = tglayout.NewRows(t.groups, 0)
	width := t.zoom.Width()
	t.boxes = tglayout.Boxes(t.schedule.Items, t.rng, width, t.rows, t.warn)
	t.axisRows = t.gen.Generate(t.rng, width, t.zoom.Factor())
	t.ctrl.SetScene(t.rng, width, t.rows, t.boxes, t.schedule.ItemByID)

	t.header.SetRows(t.axisRows, width)
	t.content.Refresh()
	t.labels.Refresh()
}

// commitMove applies a finished drag. The controller only proposes; the
// decision to mutate and persist lives here.
func (t *Timeline) commitMove(itemID string, newStart time.Time, newGroupID string) {
	item := t.schedule.ItemByID(itemID)
	if item == nil {
		return
	}
	duration := item.Duration()
	item.Start = newStart
	item.End = newStart.Add(duration)
	if t.schedule.GroupByID(newGroupID) != nil {
		item.GroupID = newGroupID
	}
	if err := t.storage.SaveItem(*item); err != nil {
		log.Println("failed to persist item move:", err)
	}
	t.rebuild()
}

// commitResize applies a finished edge resize.
func (t *Timeline) commitResize(itemID string, newStart, newEnd time.Time) {
	item := t.schedule.ItemByID(itemID)
	if item == nil {
		return
	}
	item.Start = newStart
	item.End = newEnd
	if err := t.storage.SaveItem(*item); err != nil {
		log.Println("failed to persist item resize:", err)
	}
	t.rebuild()
}

func (t *Timeline) onSelect(string) {
	t.content.Refresh()
}

func (t *Timeline) onPreview(itemID string, start, end time.Time, groupID string) {
	t.preview.active = true
	t.preview.itemID = itemID
	t.preview.start = start
	t.preview.end = end
	t.preview.groupID = groupID
}

func (t *Timeline) exportPDF() {
	dialog.NewFileSave(func(uri fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		if uri == nil {
			return
		}
		path := uri.URI().Path()
		uri.Close()
		if err := GeneratePDF(path, t.schedule); err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		dialog.ShowInformation("Export", "Schedule exported to "+path, t.window)
	}, t.window).Show()
}

func (t *Timeline) importYAML() {
	dialog.NewFileOpen(func(uri fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		if uri == nil {
			return
		}
		path := uri.URI().Path()
		uri.Close()

		sched, warnings, err := t.storage.ImportYAML(path)
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		for _, w := range warnings {
			log.Println("import:", w)
		}
		*t.schedule = *sched
		t.rng = timescale.NewRange(sched.Start, sched.End)
		t.zoom = timescale.NewZoom(t.rng, float64(t.contentScroll.Size().Width), viper.GetFloat64("pixels_per_day"))
		t.rebuild()
		t.contentScroll.Refresh()
	}, t.window).Show()
}

// canvasSpacer returns an empty fixed-size corner filler.
func canvasSpacer(w, h float32) fyne.CanvasObject {
	r := widget.NewLabel("")
	return container.New(layout.NewGridWrapLayout(fyne.NewSize(w, h)), r)
}

func formatPercent(factor float64) string {
	return fmt.Sprintf("%d%%", int(factor*100+0.5))
}
