package ui

import (
	"fmt"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/viper"

	"github.com/highercomve/timegrid/internal/store"
)

// Config is the settings tab: data folder, axis density and header mode.
type Config struct {
	window             fyne.Window
	storage            *store.Storage
	userConfigFilePath string
}

func NewConfig(w fyne.Window, s *store.Storage, userConfigFilePath string) *Config {
	return &Config{window: w, storage: s, userConfigFilePath: userConfigFilePath}
}

func (c *Config) MakeUI() fyne.CanvasObject {
	dataFolder := viper.GetString("data_folder")
	folderEntry := widget.NewEntry()
	folderEntry.SetText(dataFolder)

	browseBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			if uri == nil {
				return
			}
			folderEntry.SetText(uri.Path())
		}, c.window).Show()
	})

	folderContainer := container.NewBorder(nil, nil, nil, browseBtn, folderEntry)

	densityEntry := widget.NewEntry()
	densityEntry.SetText(fmt.Sprintf("%.0f", viper.GetFloat64("pixels_per_day")))

	headerMode := widget.NewSelect([]string{HeaderModeFixed, HeaderModeInline}, nil)
	headerMode.SetSelected(viper.GetString("header_mode"))

	saveBtn := widget.NewButton("Save configuration", func() {
		newDataFolder := folderEntry.Text
		if newDataFolder == "" {
			dialog.ShowError(filepath.ErrBadPattern, c.window)
			return
		}

		density, err := strconv.ParseFloat(densityEntry.Text, 64)
		if err != nil || density <= 0 {
			dialog.ShowError(fmt.Errorf("pixels per day must be a positive number"), c.window)
			return
		}

		oldDataFolder := c.storage.BaseDir

		saveConfig := func() {
			viper.Set("data_folder", newDataFolder)
			viper.Set("pixels_per_day", density)
			viper.Set("header_mode", headerMode.Selected)
			if err := viper.WriteConfigAs(c.userConfigFilePath); err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			dialog.ShowInformation("Success", "Configuration saved. Restart to apply layout changes.", c.window)
		}

		if newDataFolder != oldDataFolder {
			// Ask user
			var d dialog.Dialog

			moveBtn := widget.NewButton("Move existing data", func() {
				d.Hide()
				if err := c.storage.MoveData(newDataFolder); err != nil {
					dialog.ShowError(err, c.window)
					return
				}
				saveConfig()
			})

			freshBtn := widget.NewButton("Start fresh", func() {
				d.Hide()
				c.storage.UpdateBaseDir(newDataFolder)
				saveConfig()
			})

			content := container.NewVBox(
				widget.NewLabel("The data folder changed. Move the current schedule there, or start fresh?"),
				container.NewHBox(moveBtn, freshBtn),
			)

			d = dialog.NewCustom("Data folder changed", "Cancel", content, c.window)
			d.Show()
			return
		}

		saveConfig()
	})

	eraseBtn := widget.NewButtonWithIcon("Erase schedule", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Erase schedule", "Delete the stored schedule? This cannot be undone.", func(confirmed bool) {
			if confirmed {
				if err := c.storage.DeleteAllData(); err != nil {
					dialog.ShowError(err, c.window)
				} else {
					dialog.ShowInformation("Success", "Schedule erased.", c.window)
				}
			}
		}, c.window)
	})
	eraseBtn.Importance = widget.DangerImportance

	quitBtn := widget.NewButtonWithIcon("Quit", theme.LogoutIcon(), func() {
		fyne.CurrentApp().Quit()
	})

	return container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewForm(
			widget.NewFormItem("Data folder", folderContainer),
			widget.NewFormItem("Pixels per day", densityEntry),
			widget.NewFormItem("Header mode", headerMode),
		),
		saveBtn,
		widget.NewSeparator(),
		eraseBtn,
		widget.NewSeparator(),
		quitBtn,
	)
}
