package main

import (
	_ "embed" // Required for go:embed

	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/highercomve/timegrid/internal/models"
	"github.com/highercomve/timegrid/internal/store"
	"github.com/highercomve/timegrid/internal/ui"
	"github.com/highercomve/timegrid/internal/updater"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
)

//go:embed Icon.png
var embeddedIconBytes []byte

var userConfigFilePath string

func setupViper() error {
	viper.SetConfigName("timegrid")
	viper.SetConfigType("yaml")

	// Determine the user config directory
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}

	userConfigFilePath = filepath.Join(configHome, "timegrid", "timegrid.yml")
	viper.SetConfigFile(userConfigFilePath)

	if err := os.MkdirAll(filepath.Dir(userConfigFilePath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	viper.SetDefault("data_folder", "./data")
	viper.SetDefault("pixels_per_day", 100.0)
	viper.SetDefault("header_mode", ui.HeaderModeFixed)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			log.Println("Config file not found; creating one with default values")
			if err := viper.WriteConfigAs(userConfigFilePath); err != nil {
				return fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func main() {
	os.Setenv("FYNE_SCALE", "auto")

	go func() {
		if err := updater.SelfUpdate("highercomve", "timegrid"); err != nil {
			log.Printf("Self-update failed: %v", err)
		}
	}()

	a := app.NewWithID("com.highercomve.timegrid")
	a.Settings().SetTheme(theme.DarkTheme())

	iconResource := fyne.NewStaticResource("timegrid.png", embeddedIconBytes)
	a.SetIcon(iconResource)

	w := a.NewWindow("Timegrid")
	w.Resize(fyne.NewSize(1000, 600))

	if err := setupViper(); err != nil {
		dialog.ShowError(err, w)
		w.ShowAndRun()
		return
	}

	storage := store.NewStorage(viper.GetString("data_folder"))
	schedule, err := storage.LoadSchedule()
	if err != nil {
		dialog.ShowError(err, w)
		schedule = &models.Schedule{}
	}
	if len(schedule.Groups) == 0 {
		schedule = sampleSchedule()
		if err := storage.SaveSchedule(schedule); err != nil {
			log.Printf("Failed to store sample schedule: %v", err)
		}
	}

	timeline := ui.NewTimeline(w, storage, schedule)
	configUI := ui.NewConfig(w, storage, userConfigFilePath)

	tabs := container.NewAppTabs(
		container.NewTabItem("Timeline", timeline.MakeUI()),
		container.NewTabItem("Config", configUI.MakeUI()),
	)

	w.SetContent(tabs)

	ui.SetupTray(a, w, iconResource, timeline)

	w.ShowAndRun()
}

// sampleSchedule seeds a first run with a week of demo rows and items so
// the timeline is not empty.
func sampleSchedule() *models.Schedule {
	monday := time.Now().Truncate(24 * time.Hour)
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	groups := []models.Group{
		{ID: uuid.New().String(), Title: "Design", OrderIndex: 0, HeightPx: 48, ColorHex: "#7b61c4"},
		{ID: uuid.New().String(), Title: "Engineering", OrderIndex: 1, HeightPx: 48, ColorHex: "#4285f4"},
		{ID: uuid.New().String(), Title: "QA", OrderIndex: 2, HeightPx: 48, ColorHex: "#34a853"},
	}

	item := func(group int, title string, dayOffset int, startHour, hours int, colorHex string) models.Item {
		start := monday.AddDate(0, 0, dayOffset).Add(time.Duration(startHour) * time.Hour)
		return models.Item{
			ID:        uuid.New().String(),
			GroupID:   groups[group].ID,
			Title:     title,
			Start:     start,
			End:       start.Add(time.Duration(hours) * time.Hour),
			Movable:   true,
			Resizable: true,
			ColorHex:  colorHex,
		}
	}

	return &models.Schedule{
		Title:  "Sprint board",
		Start:  monday.AddDate(0, 0, -7),
		End:    monday.AddDate(0, 0, 21),
		Groups: groups,
		Items: []models.Item{
			item(0, "Wireframes", 0, 9, 8, "#7b61c4"),
			item(0, "Design review", 2, 14, 2, "#9b81e4"),
			item(1, "API skeleton", 0, 9, 30, "#4285f4"),
			item(1, "Timeline widget", 3, 9, 16, "#5a95ff"),
			item(2, "Regression pass", 4, 10, 6, "#34a853"),
		},
	}
}
