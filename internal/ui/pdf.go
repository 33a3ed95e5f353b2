package ui

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/highercomve/timegrid/internal/models"
)

// GeneratePDF writes the schedule as an A4 report: one table per group,
// a subtotal under each, and the grand total at the end.
func GeneratePDF(path string, sched *models.Schedule) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	title := sched.Title
	if title == "" {
		title = "Schedule"
	}

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				dateRange := fmt.Sprintf("%s - %s", sched.Start.Format("2006-01-02"), sched.End.Format("2006-01-02"))
				m.Text(dateRange, props.Text{
					Top:   3,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	headers := []string{"Start", "End", "Item", "Duration"}

	var total time.Duration
	for _, g := range sched.SortedGroups() {
		rows := [][]string{}
		var groupTotal time.Duration

		for _, it := range sched.Items {
			if it.GroupID != g.ID {
				continue
			}
			dur := it.Duration()
			groupTotal += dur
			rows = append(rows, []string{
				it.Start.Format("2006-01-02 15:04"),
				it.End.Format("2006-01-02 15:04"),
				it.Title,
				formatDuration(dur),
			})
		}
		total += groupTotal
		if len(rows) == 0 {
			continue
		}

		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(g.Title, props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  12,
					Align: consts.Left,
				})
			})
		})

		m.TableList(headers, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      10,
				GridSizes: []uint{3, 3, 4, 2},
			},
			ContentProp: props.TableListContent{
				Size:      10,
				GridSizes: []uint{3, 3, 4, 2},
			},
			Align:                consts.Center,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})

		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Subtotal: %s", formatDuration(groupTotal)), props.Text{
					Top:   0,
					Style: consts.Bold,
					Align: consts.Right,
					Size:  10,
				})
			})
		})

		m.Row(5, func() {})
	}

	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total scheduled: %s", formatDuration(total)), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	return m.OutputFileAndClose(path)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d - h*time.Hour) / time.Minute
	return fmt.Sprintf("%02d:%02d", h, m)
}
