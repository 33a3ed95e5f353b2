package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

func SetupTray(a fyne.App, w fyne.Window, icon fyne.Resource, t *Timeline) {
	if desk, ok := a.(desktop.App); ok {
		m := fyne.NewMenu("Timegrid",
			fyne.NewMenuItem("Show", func() {
				w.Show()
			}),
			fyne.NewMenuItem("Go to today", func() {
				w.Show()
				t.applyZoom(func() bool {
					t.zoom.CenterOn(time.Now())
					return true
				})
			}),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", func() {
				a.Quit()
			}),
		)
		desk.SetSystemTrayMenu(m)
		desk.SetSystemTrayIcon(icon)
	}

	w.SetCloseIntercept(func() {
		w.Hide()
	})
}
