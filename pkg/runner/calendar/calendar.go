// Package calendar prints a month as a color heat map.
package calendar

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/printers"
)

// Calendar prints the month containing On, one cell per day painted with the
// day's dominant color.
type Calendar struct {
	On      time.Time
	Service *app.Service
	Printer *printers.PrettyPrint
	// Days lists each day's entries below the grid.
	Days bool
	JSON bool
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show calendar, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	on := n.On
	if on.IsZero() {
		on = time.Now()
	}

	grid, err := n.Service.Calendar(ctx, on)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(grid)
	}
	pp.Calendar(grid)
	if n.Days {
		pp.CalendarDays(grid)
	}
	return nil
}
