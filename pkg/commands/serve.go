package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command, e *env) {
	s := &serve.Serve{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the palette HTTP API over the local journal.",
		Long: `Run the palette HTTP API over the local journal. Another palette can
mirror to it by setting remote.url to this address.`,
		Example: `
palette serve
palette serve --addr 0.0.0.0:3001 --debug
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			s.Service = svc
			s.Printer = printers.New()
			return s.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&s.Addr, "addr", "127.0.0.1:3001", "Address to listen on.")
	cmd.Flags().BoolVar(&s.Debug, "debug", false, "Log every request.")

	topLevel.AddCommand(cmd)
}
