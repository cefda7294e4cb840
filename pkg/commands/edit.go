package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command, e *env) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an entry.",
		Long:  "Change fields of an entry. Only the flags given are changed.",
		Example: `
palette edit emotion_6f1c2a0e-9d55-4c2e-8a53-7b8a1e0c2d11 --emotion relief -n 2
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return entryCompletions(e, args), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			patch, err := eo.Patch(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			if patch.Empty() {
				return output.HandleError(errors.New("nothing to change, set at least one field flag"))
			}
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			pp := printers.New()
			pp.ShowID = true
			s := edit.Edit{
				ID:      args[0],
				Patch:   patch,
				Service: svc,
				Printer: pp,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
