package client

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
)

// MonthView holds one month of day offs for display. Every navigation or
// mutation refetches the whole month instead of patching the slice.
type MonthView struct {
	store  Store
	year   int
	month  time.Month
	events []models.DayOff
}

// NewMonthView points the view at the given month without loading it.
func NewMonthView(store Store, year int, month time.Month) *MonthView {
	return &MonthView{store: store, year: year, month: month}
}

// Year returns the displayed year.
func (v *MonthView) Year() int { return v.year }

// Month returns the displayed month.
func (v *MonthView) Month() time.Month { return v.month }

// Events returns the loaded occurrences.
func (v *MonthView) Events() []models.DayOff { return v.events }

// Load refetches the displayed month wholesale.
func (v *MonthView) Load() error {
	items, err := v.store.MonthDayOffs(v.year, v.month)
	if err != nil {
		return err
	}
	v.events = items
	return nil
}

// Navigate moves the view by delta months and reloads.
func (v *MonthView) Navigate(delta int) error {
	t := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	v.year, v.month = t.Year(), t.Month()
	return v.Load()
}

// MarkedDays returns the days of the month covered by at least one event.
func (v *MonthView) MarkedDays() []int {
	var days []int
	for day := 1; day <= daysIn(v.year, v.month); day++ {
		if v.eventFor(day) != nil {
			days = append(days, day)
		}
	}
	return days
}

// eventFor returns the first event covering the given day, nil when free.
func (v *MonthView) eventFor(day int) *models.DayOff {
	date := time.Date(v.year, v.month, day, 0, 0, 0, 0, time.Local)
	for i := range v.events {
		if domain.CoversDay(v.events[i].InitHour, v.events[i].EndHour, date) {
			return &v.events[i]
		}
	}
	return nil
}

// ClickDay opens an editor for the day: editing when an event covers it,
// creating otherwise. The editor refetches this view when it finishes.
func (v *MonthView) ClickDay(day int) *Editor {
	date := time.Date(v.year, v.month, day, 0, 0, 0, 0, time.Local)
	ed := NewEditor(v.store, date, v.eventFor(day))
	ed.SetRefresh(v.Load)
	return ed
}

// Render draws the month as a text grid, marking covered days with a dot.
func (v *MonthView) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", v.month, v.year)
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	first := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < int(first.Weekday()); i++ {
		b.WriteString("   ")
	}

	for day := 1; day <= daysIn(v.year, v.month); day++ {
		if v.eventFor(day) != nil {
			fmt.Fprintf(&b, "%2d.", day)
		} else {
			fmt.Fprintf(&b, "%2d ", day)
		}

		wd := time.Date(v.year, v.month, day, 0, 0, 0, 0, time.Local).Weekday()
		if wd == time.Saturday {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	return b.String()
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}
