package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show today's entries and refresh when they change.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			s := watch.Watch{
				Service: svc,
				Printer: printers.New(),
			}
			return s.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
