// Package add saves an entry given entirely on the command line.
package add

import (
	"context"
	"errors"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/printers"
)

// Add validates Draft and saves it, then reprints the day it landed on.
type Add struct {
	Draft   entry.Draft
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}

	e, err := n.Service.Save(ctx, n.Draft)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(e)
	}

	day, err := n.Service.EntriesOn(ctx, e.Date)
	if err != nil {
		return err
	}
	pp.Entries(day...)
	return nil
}
