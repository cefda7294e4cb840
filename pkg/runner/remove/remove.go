// Package remove deletes entries.
package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/printers"
)

type Remove struct {
	ID      string
	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do deletes the entry and reprints what is left of its day.
func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}

	e, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", n.ID, err)
	}
	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}

	rest, err := n.Service.EntriesOn(ctx, e.Date)
	if err != nil {
		return err
	}
	pp.TitleWithCount(e.Date, len(rest))
	pp.NewLine()
	if len(rest) > 0 {
		pp.Entries(rest...)
	}
	return nil
}
