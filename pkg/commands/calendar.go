package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command, e *env) {
	on := &options.OnOptions{}
	var days bool

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month painted with each day's color.",
		Example: `
palette calendar
palette calendar --on 2024-12-1 --days
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := on.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			s := calendar.Calendar{
				Service: svc,
				Printer: printers.New(),
				Days:    days,
				JSON:    output.JSON,
			}
			if t != nil {
				s.On = *t
			} else {
				s.On = time.Now()
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVarP(&days, "days", "d", false, "List each day's entries below the month.")

	topLevel.AddCommand(cmd)
}
