package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/write"
	"tableflip.dev/palette/pkg/snake"
)

func addWrite(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write today's entry step by step.",
		Long: `Walk through color, a color to avoid, emotion, intensity, what happened,
time of day, weather and how the weather felt, then save the entry.
Choose "back" on any step to change an earlier answer.`,
		Example: `
palette write
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return err
			}
			w := write.Write{
				Service:  svc,
				Prompter: snake.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()),
				Printer:  printers.New(),
			}
			return w.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
