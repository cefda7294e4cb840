// Package get lists and shows saved entries.
package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/printers"
)

// Get prints entries of one date, of a date range, or all of them.
type Get struct {
	Service *app.Service
	Printer *printers.PrettyPrint

	// On selects one date and wins over Start and End.
	On         string
	Start, End string
	Table      bool
	JSON       bool
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}

	var (
		all []*entry.Entry
		err error
	)
	if n.On != "" {
		all, err = n.Service.EntriesOn(ctx, n.On)
	} else {
		all, err = n.Service.EntriesBetween(ctx, n.Start, n.End)
	}
	if err != nil {
		return err
	}

	switch {
	case n.JSON:
		if all == nil {
			all = []*entry.Entry{}
		}
		return pp.JSON(all)
	case n.Table:
		pp.Table(all...)
	default:
		pp.Entries(all...)
	}
	return nil
}

// Show prints one entry in full.
type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	ID      string
	JSON    bool
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	e, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("show %s: %w", n.ID, err)
	}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Entry(e)
	return nil
}
