package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show where the journal lives and what it holds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			cfg, _ := e.Config()
			s := info.Info{
				Config:  cfg,
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
