package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command, e *env) {
	var force bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the journal with a backup or CSV export.",
		Example: `
palette import palette-backup-2025-01-15.json --force
palette import palette-data-2025-01-15.csv
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.Service()
			if err != nil {
				return err
			}
			s := importer.Import{
				File:    args[0],
				Service: svc,
				Printer: printers.New(),
				Force:   force,
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing entries without asking.")

	topLevel.AddCommand(cmd)
}
