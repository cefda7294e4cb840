// Package watch reprints today's entries whenever the journal changes.
package watch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/store"
)

type Watch struct {
	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do blocks until ctx is done.
func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if err := n.print(ctx, pp); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			n.Service.Logger().Debug("watch: change", zap.Stringer("type", ev.Type), zap.String("key", ev.Key))
			if ev.Type != store.EventEntriesChanged {
				continue
			}
			if err := n.print(ctx, pp); err != nil {
				return err
			}
		}
	}
}

func (n *Watch) print(ctx context.Context, pp *printers.PrettyPrint) error {
	now := time.Now()
	if n.Service.Now != nil {
		now = n.Service.Now()
	}
	today := entry.DateOf(now)
	all, err := n.Service.EntriesOn(ctx, today)
	if err != nil {
		return err
	}
	pp.TitleWithCount("Today", len(all))
	pp.NewLine()
	if len(all) > 0 {
		pp.Entries(all...)
	}
	return nil
}
