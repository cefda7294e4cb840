// Package edit changes fields of a saved entry.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/printers"
)

type Edit struct {
	ID      string
	Patch   entry.Patch
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	e, err := n.Service.Update(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Entry(e)
	return nil
}
