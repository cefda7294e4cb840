// Package pending pushes queued entries to the remote mirror.
package pending

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/printers"
)

type Sync struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool
}

func (n *Sync) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not sync, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	res, err := n.Service.SyncPending(ctx)
	if n.JSON {
		if jerr := pp.JSON(res); jerr != nil {
			return jerr
		}
		return err
	}
	if res.Synced+res.Failed == 0 && err == nil {
		_, _ = fmt.Fprintln(pp.Writer(), "nothing to sync")
		return nil
	}
	_, _ = fmt.Fprintf(pp.Writer(), "synced %d, still pending %d\n", res.Synced, res.Failed)
	return err
}
