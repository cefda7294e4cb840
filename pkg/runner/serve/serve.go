// Package serve runs the palette HTTP API.
package serve

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/palette/pkg/api"
	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/printers"
)

type Serve struct {
	Addr    string
	Debug   bool
	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do serves until ctx is done. The server stores locally even when the CLI
// mirrors to a remote, so two palettes never mirror to each other.
func (n *Serve) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Persistence == nil {
		return errors.New("can not serve, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	addr := n.Addr
	if addr == "" {
		addr = "127.0.0.1:3001"
	}

	local := app.New(nil, n.Service.Persistence, n.Service.Logger())
	local.Now = n.Service.Now

	_, _ = fmt.Fprintf(pp.Writer(), "palette API listening on http://%s\n", addr)
	return api.New(local, n.Service.Logger(), n.Debug).Run(ctx, addr)
}
