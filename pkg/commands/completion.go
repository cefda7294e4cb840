package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(palette completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(palette completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			switch shell {
			case "bash":
				return topLevel.GenBashCompletion(os.Stdout)
			case "zsh":
				return topLevel.GenZshCompletion(os.Stdout)
			case "fish":
				return topLevel.GenFishCompletion(os.Stdout, true)
			}
			return fmt.Errorf("unsupported shell %q", shell)
		},
	}

	topLevel.AddCommand(cmd)
}

// entryCompletions offers ids of the most recent entries, labelled with their
// date and emotion.
func entryCompletions(e *env, args []string) []string {
	if len(args) > 0 {
		return nil
	}
	svc, err := e.Service()
	if err != nil {
		return nil
	}
	all, err := svc.Entries(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(all))
	for _, en := range all {
		ids = append(ids, fmt.Sprintf("%s\t%s %s", en.ID, en.Date, en.Emotion))
		if len(ids) == 25 {
			break
		}
	}
	return ids
}
