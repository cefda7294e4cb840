package stats

import (
	"time"

	"tableflip.dev/palette/pkg/entry"
)

// Day is one cell of a month grid.
type Day struct {
	Day     int            `json:"day"`
	Date    string         `json:"date"`
	Entries []*entry.Entry `json:"entries,omitempty"`
	// Color is the dominant color of the day's entries.
	Color string `json:"color,omitempty"`
	Today bool   `json:"today,omitempty"`
}

// MonthGrid lays a month out for a Sunday-first calendar.
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// Leading is the number of blank cells before the 1st.
	Leading int   `json:"leading"`
	Days    []Day `json:"days"`
}

// DaysIn returns the number of days in the month containing then.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the 1st of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 12, 0, 0, 0, time.UTC).Weekday()
}

// NextMonth returns the first of the month after then.
func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 12, 0, 0, 0, then.Location())
}

// PrevMonth returns the first of the month before then.
func PrevMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()-1, 1, 12, 0, 0, 0, then.Location())
}

// Calendar builds the grid for the month containing ref. now marks today.
func Calendar(entries []*entry.Entry, ref, now time.Time) MonthGrid {
	ref = ref.Local()
	grid := MonthGrid{
		Year:    ref.Year(),
		Month:   ref.Month(),
		Leading: int(StartDay(ref)),
	}
	byDate := make(map[string][]*entry.Entry)
	for _, e := range entries {
		if e != nil {
			byDate[e.Date] = append(byDate[e.Date], e)
		}
	}
	today := now.Local().Format(entry.LayoutDate)
	for d := 1; d <= DaysIn(ref); d++ {
		date := time.Date(ref.Year(), ref.Month(), d, 12, 0, 0, 0, time.Local).Format(entry.LayoutDate)
		day := Day{Day: d, Date: date, Entries: byDate[date], Today: date == today}
		if len(day.Entries) > 0 {
			colors := make([]string, 0, len(day.Entries))
			for _, e := range day.Entries {
				colors = append(colors, e.Color)
			}
			day.Color = DominantValue(colors)
		}
		grid.Days = append(grid.Days, day)
	}
	return grid
}

// Weeks splits the grid into rows of seven cells; blank cells are nil.
func (g MonthGrid) Weeks() [][]*Day {
	var rows [][]*Day
	row := make([]*Day, 0, 7)
	for i := 0; i < g.Leading; i++ {
		row = append(row, nil)
	}
	for i := range g.Days {
		row = append(row, &g.Days[i])
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]*Day, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, nil)
		}
		rows = append(rows, row)
	}
	return rows
}
