package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/palette/pkg/stats"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints a month grid. Days with entries are painted with their
// dominant color, or bolded when swatches are off.
func (pp *PrettyPrint) Calendar(grid stats.MonthGrid) {
	tf := color.New(color.Italic)
	h := color.New(color.Faint)

	m := fmt.Sprintf("%s %d", grid.Month, grid.Year)
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = h.Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	l1 := color.New(color.Faint)
	l2 := color.New(color.Bold)
	today := color.New(color.Bold, color.Underline)

	for _, week := range grid.Weeks() {
		for i, d := range week {
			sep := " "
			if i == len(week)-1 {
				sep = ""
			}
			switch {
			case d == nil:
				_, _ = fmt.Fprint(pp.out(), "  "+sep)
			case d.Color != "" && pp.Swatches:
				_, _ = fmt.Fprint(pp.out(), pp.Label(d.Color, fmt.Sprintf("%2d", d.Day))+sep)
			case d.Today:
				_, _ = today.Fprintf(pp.out(), "%2d", d.Day)
				_, _ = fmt.Fprint(pp.out(), sep)
			case len(d.Entries) > 0:
				_, _ = l2.Fprintf(pp.out(), "%2d", d.Day)
				_, _ = fmt.Fprint(pp.out(), sep)
			default:
				_, _ = l1.Fprintf(pp.out(), "%2d", d.Day)
				_, _ = fmt.Fprint(pp.out(), sep)
			}
		}
		_, _ = fmt.Fprintln(pp.out())
	}
	pp.NewLine()
}

// CalendarDays lists each day of the grid that has entries, with its
// entries below it.
func (pp *PrettyPrint) CalendarDays(grid stats.MonthGrid) {
	for _, d := range grid.Days {
		if len(d.Entries) == 0 {
			continue
		}
		pp.Entries(d.Entries...)
	}
}
