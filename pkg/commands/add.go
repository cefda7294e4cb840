package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command, e *env) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry from flags.",
		Example: `
palette add --color "#4A90D9" --emotion calm -m "long walk by the river"
palette add -c "#FF4500" -e anger -n 5 --on 2/28 --weather rain --feeling gloomy
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := eo.Draft()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			pp := printers.New()
			pp.ShowID = io.ShowID
			s := add.Add{
				Draft:   d,
				Service: svc,
				Printer: pp,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	_ = cmd.MarkFlagRequired("color")
	_ = cmd.MarkFlagRequired("emotion")

	topLevel.AddCommand(cmd)
}
