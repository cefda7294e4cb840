package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/report"
	"tableflip.dev/palette/pkg/stats"
)

func addAnalyze(topLevel *cobra.Command, e *env) {
	var (
		period string
		share  bool
		save   bool
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank the colors and emotions of a period.",
		Long: `Rank the colors and emotions of a period and write a short insight.

Periods: 1week, 1month, 3months, a calendar month as YYYY-MM, or a look-back
window such as 10d or 2w.`,
		Example: `
palette analyze
palette analyze --period 1month --share
palette analyze --period 2025-01 --save --format yaml
palette analyze --out - --format json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := stats.ParsePeriod(period)
			if err != nil {
				return output.HandleError(err)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := e.Service()
			if err != nil {
				return output.HandleError(err)
			}
			if save && out == "" {
				out = report.DefaultOut(f, time.Now())
			}
			s := report.Analyze{
				Period:  p,
				Service: svc,
				Printer: printers.New(),
				Share:   share,
				Out:     out,
				Format:  f,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", stats.Week.Name, "Period to analyze.")
	cmd.Flags().BoolVar(&share, "share", false, "Print a short text to share.")
	cmd.Flags().BoolVar(&save, "save", false, "Write the analysis to a dated file.")
	cmd.Flags().StringVarP(&out, "out", "o", "", `Write the analysis to this file, "-" for stdout.`)
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "Analysis file format: json or yaml.")
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("period", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{stats.Week.Name, stats.Month.Name, stats.Quarter.Name}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
