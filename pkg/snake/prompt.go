// Package snake asks for commands, flags and values on a terminal.
package snake

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Prompter asks the user for one value at a time.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(label string, items []string, cursor int) (int, error)
	// Input returns free text that passed validate.
	Input(label, def string, validate func(string) error) (string, error)
}

// Terminal prompts on a terminal with promptui.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewTerminal prompts on the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{Stdin: io.NopCloser(in), Stdout: NopCloser(out)}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

func (t *Terminal) Select(label string, items []string, cursor int) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . }}",
		Selected: "{{ . | faint }}",
	}

	searcher := func(input string, index int) bool {
		item := strings.Replace(strings.ToLower(items[index]), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(item, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      11,
		CursorPos: cursor,
		Searcher:  searcher,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	i, _, err := prompt.Run()
	return i, err
}

func (t *Terminal) Input(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validate,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	return prompt.Run()
}
