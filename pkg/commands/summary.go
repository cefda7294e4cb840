package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/report"
	"tableflip.dev/palette/pkg/stats"
)

func addSummary(topLevel *cobra.Command, e *env) {
	var by string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "All-time totals, streak and weekly trend.",
		Example: `
palette summary
palette summary --by month
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			g := stats.Granularity(by)
			switch g {
			case "", stats.ByWeek, stats.ByMonth:
			default:
				return output.HandleError(fmt.Errorf("unknown --by %q, use week or month", by))
			}
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			s := report.Summary{
				Service: svc,
				Printer: printers.New(),
				By:      g,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Group entries by week or month.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
