package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/get"
)

func addList(topLevel *cobra.Command, e *env) {
	on := &options.OnOptions{}
	ro := &options.RangeOptions{}
	io := &options.IDOptions{}
	var table bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List entries, newest first.",
		Example: `
palette list
palette list --on 1/15
palette list --from 2025-1-1 --to 2025-1-31 --table
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			date, err := on.Date()
			if err != nil {
				return output.HandleError(err)
			}
			start, end, err := ro.Dates()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			pp := printers.New()
			pp.ShowID = io.ShowID
			s := get.Get{
				Service: svc,
				Printer: pp,
				On:      date,
				Start:   start,
				End:     end,
				Table:   table,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddRangeArgs(cmd, ro)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&table, "table", false, "Print one row per entry.")

	topLevel.AddCommand(cmd)
}
