package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/palette/pkg/commands/options"
	"tableflip.dev/palette/pkg/snake"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {
	e := &env{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "palette",
		Short: base.Wrap80("Keep a journal of your moods as colors, and see which colors and feelings come back."),
		RunE: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				cmd.SilenceUsage = true
				return snake.PromptNext(cmd, snake.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()))
			}
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.Close()
		},
	}
	options.InteractiveArgs(cmd, i)

	addCommands(cmd, e)
	return cmd
}

func addCommands(topLevel *cobra.Command, e *env) {
	addWrite(topLevel, e)
	addAdd(topLevel, e)
	addList(topLevel, e)
	addShow(topLevel, e)
	addEdit(topLevel, e)
	addDelete(topLevel, e)
	addCalendar(topLevel, e)
	addAnalyze(topLevel, e)
	addSummary(topLevel, e)
	addExport(topLevel, e)
	addImport(topLevel, e)
	addSync(topLevel, e)
	addWatch(topLevel, e)
	addServe(topLevel, e)
	addMCP(topLevel, e)
	addInfo(topLevel, e)
	addVersion(topLevel)
	addCompletions(topLevel)
}
