package snake

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type scripted struct {
	selects []int
	inputs  []string
}

func (s *scripted) Select(_ string, items []string, _ int) (int, error) {
	if len(s.selects) == 0 {
		return 0, errors.New("out of answers")
	}
	i := s.selects[0]
	s.selects = s.selects[1:]
	if i >= len(items) {
		return 0, errors.New("no such item")
	}
	return i, nil
}

func (s *scripted) Input(_ string, _ string, validate func(string) error) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("out of answers")
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func tree(ran *string, gotArgs *[]string, name *string, table *bool) *cobra.Command {
	root := &cobra.Command{Use: "palette"}
	list := &cobra.Command{
		Use:   "list",
		Short: "list entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			*ran = "list"
			return nil
		},
	}
	list.Flags().BoolVar(table, "table", false, "table output")
	show := &cobra.Command{
		Use:   "show ID",
		Short: "show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*ran = "show"
			*gotArgs = args
			return nil
		},
	}
	show.Flags().StringVar(name, "name", "", "a name")
	root.AddCommand(list, show)
	return root
}

func TestPromptNextRunsPickedCommand(t *testing.T) {
	var ran, name string
	var args []string
	var table bool
	root := tree(&ran, &args, &name, &table)

	// cobra sorts subcommands: list, show.
	p := &scripted{
		selects: []int{1, 1, 0},
		inputs:  []string{"abc", "rain"},
	}
	if err := PromptNext(root, p); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if ran != "show" || len(args) != 1 || args[0] != "abc" {
		t.Fatalf("expected show abc, got %q %v", ran, args)
	}
	if name != "rain" {
		t.Fatalf("expected flag set, got %q", name)
	}
}

func TestPromptNextBoolFlag(t *testing.T) {
	var ran, name string
	var args []string
	var table bool
	root := tree(&ran, &args, &name, &table)

	// list, pick --table, answer true, continue.
	p := &scripted{selects: []int{0, 1, 0, 0}}
	if err := PromptNext(root, p); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if ran != "list" || !table {
		t.Fatalf("expected list --table, got %q table=%v", ran, table)
	}
}

func TestPromptNextArgsChecked(t *testing.T) {
	var ran, name string
	var args []string
	var table bool
	root := tree(&ran, &args, &name, &table)

	p := &scripted{selects: []int{1}, inputs: []string{"a b"}}
	if err := PromptNext(root, p); err == nil {
		t.Fatal("expected argument error")
	}
	if ran != "" {
		t.Fatalf("command should not run, ran %q", ran)
	}
}

func TestParseBool(t *testing.T) {
	tests := map[string]bool{"yes": true, "Y": true, "1": true, "no": false, "F": false}
	for in, want := range tests {
		got, err := ParseBool(in)
		if err != nil || got != want {
			t.Fatalf("ParseBool(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil || !strings.Contains(err.Error(), "maybe") {
		t.Fatalf("expected syntax error, got %v", err)
	}
}
