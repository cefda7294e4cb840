package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/exporter"
)

func addExport(topLevel *cobra.Command, e *env) {
	ro := &options.RangeOptions{}
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV or a JSON backup.",
		Example: `
palette export
palette export --format csv --from 2025-1-1 --to 2025-1-31
palette export --out - > backup.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == export.FormatYAML {
				return fmt.Errorf("export: %s is only for analyses, use json or csv", f)
			}
			start, end, err := ro.Dates()
			if err != nil {
				return err
			}
			svc, err := e.Service()
			if err != nil {
				return err
			}
			s := exporter.Export{
				Service: svc,
				Printer: printers.New(),
				Format:  f,
				Start:   start,
				End:     end,
				Out:     out,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddRangeArgs(cmd, ro)
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "json (full backup) or csv.")
	cmd.Flags().StringVarP(&out, "out", "o", "", `File to write, "-" for stdout. Defaults to a dated name.`)

	topLevel.AddCommand(cmd)
}
