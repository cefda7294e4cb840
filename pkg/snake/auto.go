package snake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const done = "Continue..."

// PromptNext asks which subcommand of cmd to run, descending until a runnable
// command is picked, then prompts for its arguments and flags and runs it.
func PromptNext(cmd *cobra.Command, p Prompter) error {
	subcommands := runnable(cmd.Commands())
	if len(subcommands) == 0 {
		return fmt.Errorf("%s has no subcommands", cmd.Name())
	}
	items := make([]string, 0, len(subcommands))
	for _, c := range subcommands {
		items = append(items, fmt.Sprintf("%-10s %s", c.Name(), c.Short))
	}

	i, err := p.Select("Commands", items, 0)
	if err != nil {
		return err
	}
	next := subcommands[i]
	if len(runnable(next.Commands())) > 0 && next.RunE == nil && next.Run == nil {
		return PromptNext(next, p)
	}

	var args []string
	if next.Args != nil && strings.Contains(next.Use, " ") {
		v, err := p.Input(strings.SplitN(next.Use, " ", 2)[1], "", nil)
		if err != nil {
			return err
		}
		args = strings.Fields(v)
	}
	if next.Args != nil {
		if err := next.Args(next, args); err != nil {
			return err
		}
	}
	if err := PromptFlags(next, p); err != nil {
		return err
	}
	switch {
	case next.RunE != nil:
		return next.RunE(next, args)
	case next.Run != nil:
		next.Run(next, args)
		return nil
	}
	return next.Help()
}

func runnable(cmds []*cobra.Command) []*cobra.Command {
	out := make([]*cobra.Command, 0, len(cmds))
	for _, c := range cmds {
		if c.IsAvailableCommand() && c.Name() != "help" && c.Name() != "completion" {
			out = append(out, c)
		}
	}
	return out
}

// PromptFlags lets the user pick flags of cmd to set until they choose to
// continue.
func PromptFlags(cmd *cobra.Command, p Prompter) error {
	var fs []*pflag.Flag
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden && f.Name != "help" {
			fs = append(fs, f)
		}
	})
	if len(fs) == 0 {
		return nil
	}

	items := make([]string, 0, len(fs)+1)
	items = append(items, done)
	for _, f := range fs {
		items = append(items, fmt.Sprintf("%s  %s", asFlags(f), f.Usage))
	}

	cursor := 0
	for {
		i, err := p.Select(cmd.Name()+" flags", items, cursor)
		if err != nil {
			return err
		}
		if i == 0 {
			return nil
		}
		cursor = i
		f := fs[i-1]
		if err := PromptFlag(f, p); err != nil {
			return err
		}
		items[i] = fmt.Sprintf("%s=%s  %s", asFlags(f), f.Value.String(), f.Usage)
	}
}

// PromptFlag asks for one flag value and sets it.
func PromptFlag(f *pflag.Flag, p Prompter) error {
	switch f.Value.Type() {
	case "bool":
		i, err := p.Select(asFlags(f), []string{"true", "false"}, boolCursor(f.Value.String()))
		if err != nil {
			return err
		}
		return f.Value.Set(strconv.FormatBool(i == 0))
	}
	validate := func(input string) error {
		if input == "" && f.DefValue == "" {
			return errors.New("empty")
		}
		return nil
	}
	v, err := p.Input(asFlags(f), f.Value.String(), validate)
	if err != nil {
		return err
	}
	if v == "" {
		v = f.DefValue
	}
	if err := f.Value.Set(v); err != nil {
		return fmt.Errorf("%s: %w", asFlags(f), err)
	}
	f.Changed = true
	return nil
}

func boolCursor(v string) int {
	if b, err := ParseBool(v); err == nil && !b {
		return 1
	}
	return 0
}

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "NO", "No", "no":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
