// Package write runs the interactive entry wizard on a terminal.
package write

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/snake"
	"tableflip.dev/palette/pkg/store"
	"tableflip.dev/palette/pkg/wizard"
)

const (
	back     = "← back"
	skip     = "skip"
	custom   = "custom…"
	save     = "save"
	describe = "describe it"
)

// ErrAborted is returned when the user quits the wizard.
var ErrAborted = errors.New("write: aborted")

// Write walks the wizard one step per prompt and saves the entry at the end.
type Write struct {
	Service  *app.Service
	Prompter snake.Prompter
	Printer  *printers.PrettyPrint
	Out      io.Writer
}

func (n *Write) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

func (n *Write) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Persistence == nil {
		return errors.New("can not write, no persistence")
	}
	if n.Prompter == nil {
		n.Prompter = &snake.Terminal{}
	}
	now := time.Now
	if n.Service.Now != nil {
		now = n.Service.Now
	}
	m := wizard.New(n.Service, wizard.WithClock(now))

	today, err := n.Service.EntriesOn(ctx, entry.DateOf(now()))
	if err == nil && len(today) >= store.DailyLimit {
		return fmt.Errorf("write: %d entries already written today: %w", len(today), store.ErrDailyLimitExceeded)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := n.step(m)
		if err != nil {
			return err
		}
		if !done {
			continue
		}
		e, err := m.Save(ctx)
		if err != nil {
			if errors.Is(err, store.ErrDailyLimitExceeded) || errors.Is(err, store.ErrStorageWrite) {
				return err
			}
			_, _ = fmt.Fprintf(n.out(), "%v\n", err)
			continue
		}
		pp := n.Printer
		if pp == nil {
			pp = printers.New()
		}
		pp.Entry(e)
		return nil
	}
}

// step prompts for the current step and moves the machine. It reports true
// when the user asked to save on the final step.
func (n *Write) step(m *wizard.Machine) (bool, error) {
	s := m.Step()
	switch s {
	case wizard.StepColor, wizard.StepAvoidColor:
		return false, n.color(m)
	case wizard.StepEpisode:
		// Free text has no way to step back, so offer it first.
		i, err := n.Prompter.Select(label(s), []string{describe, back}, 0)
		if err != nil {
			return false, abort(err)
		}
		if i == 1 {
			m.Back()
			return false, nil
		}
		v, err := n.Prompter.Input("What happened", m.Draft().Episode, func(v string) error {
			if strings.TrimSpace(v) == "" {
				return errors.New("tell a little about it")
			}
			return nil
		})
		if err != nil {
			return false, abort(err)
		}
		m.SetEpisode(v)
		m.Next()
		return false, nil
	}

	items := m.Options()
	if s > wizard.FirstStep {
		items = append([]string{back}, items...)
	}
	i, err := n.Prompter.Select(label(s), items, cursor(items, current(m)))
	if err != nil {
		return false, abort(err)
	}
	if items[i] == back {
		m.Back()
		return false, nil
	}
	if err := m.Set(items[i]); err != nil {
		_, _ = fmt.Fprintf(n.out(), "%v\n", err)
		return false, nil
	}
	if m.NeedsCustom() {
		v, err := n.Prompter.Input("In your own words", "", nonEmpty)
		if err != nil {
			return false, abort(err)
		}
		if s == wizard.StepEmotion {
			m.SetCustomEmotion(v)
		} else {
			m.SetCustomWeatherFeeling(v)
		}
	}
	if m.IsFinal() {
		return n.confirm(m)
	}
	m.Next()
	return false, nil
}

func (n *Write) color(m *wizard.Machine) error {
	s := m.Step()
	items := m.Options()
	if s == wizard.StepAvoidColor {
		items = append([]string{back, skip}, items...)
	}
	items = append(items, custom)

	i, err := n.Prompter.Select(label(s), items, cursor(items, current(m)))
	if err != nil {
		return abort(err)
	}
	v := items[i]
	switch v {
	case back:
		m.Back()
		return nil
	case skip:
		v = ""
	case custom:
		v, err = n.Prompter.Input("Hex color (#RRGGBB)", current(m), func(v string) error {
			_, err := entry.NormalizeColor(v)
			return err
		})
		if err != nil {
			return abort(err)
		}
	}
	if err := m.Set(v); err != nil {
		_, _ = fmt.Fprintf(n.out(), "%v\n", err)
		return nil
	}
	m.Next()
	return nil
}

func (n *Write) confirm(m *wizard.Machine) (bool, error) {
	i, err := n.Prompter.Select("Save this entry", []string{save, back}, 0)
	if err != nil {
		return false, abort(err)
	}
	return i == 0, nil
}

func current(m *wizard.Machine) string {
	d := m.Draft()
	switch m.Step() {
	case wizard.StepColor:
		return d.Color
	case wizard.StepAvoidColor:
		return d.AvoidColor
	case wizard.StepEmotion:
		return d.Emotion
	case wizard.StepIntensity:
		return fmt.Sprint(d.EmotionIntensity)
	case wizard.StepTimeOfDay:
		return d.TimeOfDay
	case wizard.StepWeather:
		return d.Weather
	case wizard.StepWeatherFeeling:
		return d.WeatherFeeling
	}
	return ""
}

func cursor(items []string, v string) int {
	for i, it := range items {
		if strings.EqualFold(it, v) {
			return i
		}
	}
	return 0
}

func label(s wizard.Step) string {
	switch s {
	case wizard.StepColor:
		return "Pick a color for today"
	case wizard.StepAvoidColor:
		return "A color you'd rather avoid"
	case wizard.StepEmotion:
		return "How do you feel"
	case wizard.StepIntensity:
		return "How strongly"
	case wizard.StepTimeOfDay:
		return "When was it"
	case wizard.StepWeather:
		return "What was the weather"
	case wizard.StepWeatherFeeling:
		return "How did the weather feel"
	case wizard.StepEpisode:
		return "What happened"
	}
	return s.String()
}

func nonEmpty(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("required")
	}
	return nil
}

func abort(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}
