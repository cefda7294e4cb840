package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/pending"
)

func addSync(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Send entries that failed to reach the remote.",
		Example: `
PALETTE_REMOTE_URL=http://127.0.0.1:3001 palette sync
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			s := pending.Sync{
				Service: svc,
				Printer: printers.New(),
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
