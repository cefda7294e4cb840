// Package stats derives statistics from saved entries: period filters,
// frequency tables, rankings, streaks, trends and calendar grids. Every
// function is pure; callers pass the reference time explicitly.
package stats

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/store"
	"tableflip.dev/palette/pkg/timeutil"
)

// Period selects the slice of history a statistic covers. It is either a
// trailing window of Days calendar days ending today, or a calendar month.
type Period struct {
	Name string `json:"name"`
	Days int    `json:"days,omitempty"`
	// Month is any instant within the calendar month; zero for trailing windows.
	Month time.Time `json:"-"`
}

var (
	Week    = Period{Name: "1week", Days: 7}
	Month   = Period{Name: "1month", Days: 30}
	Quarter = Period{Name: "3months", Days: 90}
)

const layoutMonth = "2006-01"

// ParsePeriod accepts 1week, 1month, 3months, a calendar month as YYYY-MM, or
// any look-back window timeutil.ParseWindow understands ("10d", "2w").
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", Week.Name, "week":
		return Week, nil
	case Month.Name, "month":
		return Month, nil
	case Quarter.Name, "quarter":
		return Quarter, nil
	}
	if m, err := time.ParseInLocation(layoutMonth, s, time.Local); err == nil {
		return CalendarMonth(m), nil
	}
	days, label, err := timeutil.ParseWindow(s)
	if err != nil {
		return Period{}, fmt.Errorf("stats: unknown period %q: %w", s, err)
	}
	return Period{Name: label, Days: days}, nil
}

// CalendarMonth is the period covering the month that contains ref.
func CalendarMonth(ref time.Time) Period {
	return Period{Name: ref.Local().Format(layoutMonth), Month: ref}
}

// IsMonth reports whether p is a calendar month rather than a trailing window.
func (p Period) IsMonth() bool {
	return !p.Month.IsZero()
}

// Window returns the inclusive date range p covers relative to now. Trailing
// windows end today and include it, so a 7-day window is today and the six
// days before.
func (p Period) Window(now time.Time) (start, end string) {
	if p.IsMonth() {
		return timeutil.MonthBounds(p.Month)
	}
	days := p.Days
	if days <= 0 {
		days = Week.Days
	}
	end = timeutil.Today(now)
	start, _ = timeutil.ShiftDate(end, -(days - 1))
	return start, end
}

// Label is a short human description of the period.
func (p Period) Label() string {
	switch {
	case p.IsMonth():
		return p.Month.Local().Format("January 2006")
	case p.Days == 7:
		return "week"
	case p.Days == 30:
		return "month"
	case p.Days == 90:
		return "3 months"
	default:
		return fmt.Sprintf("%d days", p.Days)
	}
}

func (p Period) String() string {
	return p.Name
}

// FilterByPeriod keeps the entries dated within p's window.
func FilterByPeriod(entries []*entry.Entry, p Period, now time.Time) []*entry.Entry {
	start, end := p.Window(now)
	return store.FilterRange(entries, start, end)
}
