package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an entry.",
		Example: `
palette delete emotion_6f1c2a0e-9d55-4c2e-8a53-7b8a1e0c2d11
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return entryCompletions(e, args), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			pp := printers.New()
			pp.ShowID = true
			s := remove.Remove{
				ID:      args[0],
				Service: svc,
				Printer: pp,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
