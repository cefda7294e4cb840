package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/palette/pkg/entry"
)

// PrettyPrint renders entries and statistics for a terminal.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Swatches paints colors as true-color blocks. Without it colors are
	// printed as hex only.
	Swatches bool
	// Width is the wrap width for episodes; 0 means 72.
	Width int
}

// New returns a printer for stdout, with swatches on when stdout is a
// terminal.
func New() *PrettyPrint {
	return &PrettyPrint{
		Out:      color.Output,
		Swatches: IsTerminal(os.Stdout),
	}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var spacing = strings.Repeat(" ", len("emotion_00000000  "))

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// Writer is where the printer writes.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 72
}

func (pp *PrettyPrint) NewLine() {
	fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Swatch renders hex as a two-cell color block, or the hex itself when
// swatches are off or hex does not parse.
func (pp *PrettyPrint) Swatch(hex string) string {
	if hex == "" {
		return "  "
	}
	if !pp.Swatches {
		return hex
	}
	if _, err := colorful.Hex(hex); err != nil {
		return hex
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// ColorCell renders a swatch followed by the hex, or just the hex when
// swatches are off.
func (pp *PrettyPrint) ColorCell(hex string) string {
	if hex == "" || !pp.Swatches {
		return hex
	}
	return pp.Swatch(hex) + " " + hex
}

// Label renders text on a hex background with a readable foreground.
func (pp *PrettyPrint) Label(hex, text string) string {
	if !pp.Swatches || hex == "" {
		return text
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return text
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(Contrast(c))).
		Render(text)
}

// Contrast picks black or white, whichever reads better on c.
func Contrast(c colorful.Color) string {
	_, _, l := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Intensity draws n filled dots out of five.
func Intensity(n int) string {
	if n < entry.MinIntensity {
		n = entry.MinIntensity
	}
	if n > entry.MaxIntensity {
		n = entry.MaxIntensity
	}
	return strings.Repeat("●", n) + strings.Repeat("○", entry.MaxIntensity-n)
}

// Entries prints entries grouped under their date, in the order given.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	var date string
	for _, e := range entries {
		if e.Date != date {
			if date != "" {
				pp.NewLine()
			}
			date = e.Date
			pp.Title(date)
		}
		pp.line(e)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) line(e *entry.Entry) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	if pp.ShowID {
		_, _ = y.Fprint(pp.out(), e.ID)
		pad := len(spacing) - len(e.ID)
		if pad < 1 {
			pad = 1
		}
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	}
	_, _ = fmt.Fprintf(pp.out(), "%s ", pp.Swatch(e.Color))
	_, _ = b.Fprint(pp.out(), e.Emotion)
	_, _ = f.Fprintf(pp.out(), " %s", Intensity(e.EmotionIntensity))
	if e.TimeOfDay != "" {
		_, _ = f.Fprintf(pp.out(), "  %s", e.TimeOfDay)
	}
	if e.Weather != "" {
		_, _ = f.Fprintf(pp.out(), "  %s", e.Weather)
		if e.WeatherFeeling != "" {
			_, _ = f.Fprintf(pp.out(), ", %s", e.WeatherFeeling)
		}
	}
	_, _ = fmt.Fprintln(pp.out())
	if e.Episode != "" {
		_, _ = fmt.Fprintln(pp.out(), pp.wrap(e.Episode, 3))
	}
}

func (pp *PrettyPrint) wrap(s string, pad uint) string {
	return indent.String(wordwrap.String(s, pp.width()-int(pad)), pad)
}

// Entry prints every field of one entry.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	k := color.New(color.Faint)
	row := func(key, val string) {
		if val == "" {
			return
		}
		_, _ = k.Fprintf(pp.out(), "%-16s", key)
		_, _ = fmt.Fprintln(pp.out(), val)
	}
	pp.Title(e.Title())
	row("id", e.ID)
	row("date", e.Date)
	row("color", pp.ColorCell(e.Color))
	if e.AvoidColor != "" {
		row("avoid color", pp.ColorCell(e.AvoidColor))
	}
	row("emotion", e.Emotion)
	row("intensity", fmt.Sprintf("%s %d/%d", Intensity(e.EmotionIntensity), e.EmotionIntensity, entry.MaxIntensity))
	row("time of day", e.TimeOfDay)
	row("weather", e.Weather)
	row("feeling", e.WeatherFeeling)
	if !e.Timestamp.IsZero() {
		row("written", e.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	if e.PendingSync {
		row("sync", "pending")
	}
	if e.Episode != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), pp.wrap(e.Episode, 2))
	}
	pp.NewLine()
}

// Table prints entries as aligned columns.
func (pp *PrettyPrint) Table(entries ...*entry.Entry) {
	_, _ = fmt.Fprintln(pp.out(), entry.Table(entries...))
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
