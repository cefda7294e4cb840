// Package wizard drives the step-by-step flow that collects one entry. It
// holds no terminal state; the interactive runner and tests feed it values
// and read back the current step.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/palette/pkg/entry"
)

// Step represents the active wizard stage.
type Step int

// Wizard steps, in order.
const (
	StepColor Step = iota
	StepAvoidColor
	StepEmotion
	StepIntensity
	StepEpisode
	StepTimeOfDay
	StepWeather
	StepWeatherFeeling
)

var stepNames = [...]string{
	StepColor:          "color",
	StepAvoidColor:     "avoid-color",
	StepEmotion:        "emotion",
	StepIntensity:      "intensity",
	StepEpisode:        "episode",
	StepTimeOfDay:      "time-of-day",
	StepWeather:        "weather",
	StepWeatherFeeling: "weather-feeling",
}

// stepFields names the entry field each step fills.
var stepFields = [...]string{
	StepColor:          "color",
	StepAvoidColor:     "avoidColor",
	StepEmotion:        "emotion",
	StepIntensity:      "emotionIntensity",
	StepEpisode:        "episode",
	StepTimeOfDay:      "timeOfDay",
	StepWeather:        "weather",
	StepWeatherFeeling: "weatherFeeling",
}

const (
	FirstStep = StepColor
	LastStep  = StepWeatherFeeling
)

func (s Step) String() string {
	if s < FirstStep || s > LastStep {
		return "step(" + strconv.Itoa(int(s)) + ")"
	}
	return stepNames[s]
}

// Steps lists every step in order.
func Steps() []Step {
	out := make([]Step, 0, LastStep+1)
	for s := FirstStep; s <= LastStep; s++ {
		out = append(out, s)
	}
	return out
}

var (
	ErrNotFinalStep  = errors.New("wizard: save is only allowed on the final step")
	ErrUnknownChoice = errors.New("wizard: unknown choice")
)

// Saver persists a finished entry. *app.Service satisfies it.
type Saver interface {
	Persist(ctx context.Context, e *entry.Entry) error
}

// Machine is the wizard state: the current step and the draft so far.
type Machine struct {
	step  Step
	draft entry.Draft
	saver Saver
	now   func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the clock used to date saved entries.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// New returns a machine on the first step with an empty draft.
func New(saver Saver, opts ...Option) *Machine {
	m := &Machine{saver: saver, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset clears the draft and returns to the first step.
func (m *Machine) Reset() {
	m.step = FirstStep
	m.draft = entry.NewDraft()
}

func (m *Machine) Step() Step { return m.step }

// Draft returns a copy of the values collected so far.
func (m *Machine) Draft() entry.Draft { return m.draft }

// IsFinal reports whether the machine is on the last step.
func (m *Machine) IsFinal() bool { return m.step == LastStep }

// Valid reports whether step's value lets the flow move past it.
func (m *Machine) Valid(step Step) bool {
	d := m.draft
	switch step {
	case StepColor:
		return d.Color != ""
	case StepAvoidColor, StepIntensity:
		return true
	case StepEmotion:
		return d.Emotion != "" && (!entry.IsOther(d.Emotion) || strings.TrimSpace(d.CustomEmotion) != "")
	case StepEpisode:
		return strings.TrimSpace(d.Episode) != ""
	case StepTimeOfDay:
		return d.TimeOfDay != ""
	case StepWeather:
		return d.Weather != ""
	case StepWeatherFeeling:
		return d.WeatherFeeling != "" && (!entry.IsOther(d.WeatherFeeling) || strings.TrimSpace(d.CustomWeatherFeeling) != "")
	default:
		return false
	}
}

// CanAdvance reports whether Next would move forward.
func (m *Machine) CanAdvance() bool {
	return m.step < LastStep && m.Valid(m.step)
}

// Next advances one step when the current step is valid. It reports whether
// the step changed.
func (m *Machine) Next() bool {
	if !m.CanAdvance() {
		return false
	}
	m.step++
	return true
}

// Back moves one step back, stopping at the first step.
func (m *Machine) Back() {
	if m.step > FirstStep {
		m.step--
	}
}

// NeedsCustom reports whether the current step holds the "other" sentinel
// and still waits for its free text.
func (m *Machine) NeedsCustom() bool {
	switch m.step {
	case StepEmotion:
		return entry.IsOther(m.draft.Emotion)
	case StepWeatherFeeling:
		return entry.IsOther(m.draft.WeatherFeeling)
	}
	return false
}

// Options lists the choices offered on the current step. Free-text steps
// return nil. Weather feelings depend on the chosen weather.
func (m *Machine) Options() []string {
	switch m.step {
	case StepColor, StepAvoidColor:
		return entry.Palette()
	case StepEmotion:
		return entry.Emotions()
	case StepIntensity:
		out := make([]string, 0, entry.MaxIntensity)
		for i := entry.MinIntensity; i <= entry.MaxIntensity; i++ {
			out = append(out, strconv.Itoa(i))
		}
		return out
	case StepTimeOfDay:
		return entry.TimesOfDay()
	case StepWeather:
		return entry.Weathers()
	case StepWeatherFeeling:
		return entry.WeatherFeelings(m.draft.Weather)
	}
	return nil
}

// Set assigns v to the field of the current step.
func (m *Machine) Set(v string) error {
	switch m.step {
	case StepColor:
		return m.SetColor(v)
	case StepAvoidColor:
		return m.SetAvoidColor(v)
	case StepEmotion:
		return m.SetEmotion(v)
	case StepIntensity:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return entry.Invalid("emotionIntensity", "not a number: "+v)
		}
		return m.SetIntensity(n)
	case StepEpisode:
		m.SetEpisode(v)
		return nil
	case StepTimeOfDay:
		return m.SetTimeOfDay(v)
	case StepWeather:
		return m.SetWeather(v)
	case StepWeatherFeeling:
		return m.SetWeatherFeeling(v)
	}
	return fmt.Errorf("wizard: no field for %s", m.step)
}

func (m *Machine) SetColor(v string) error {
	c, err := entry.NormalizeColor(v)
	if err != nil {
		return err
	}
	m.draft.Color = c
	return nil
}

// SetAvoidColor sets the optional color the user steers away from. An empty
// value clears it.
func (m *Machine) SetAvoidColor(v string) error {
	c, err := entry.NormalizeColor(v)
	if err != nil {
		return err
	}
	m.draft.AvoidColor = c
	return nil
}

// SetEmotion picks an emotion from the vocabulary. Picking anything but
// "other" drops the custom text.
func (m *Machine) SetEmotion(v string) error {
	v = strings.TrimSpace(v)
	if !entry.IsEmotion(v) && !entry.IsOther(v) {
		return fmt.Errorf("%w: emotion %q", ErrUnknownChoice, v)
	}
	if entry.IsOther(v) {
		v = entry.Other
	} else {
		m.draft.CustomEmotion = ""
	}
	m.draft.Emotion = v
	return nil
}

func (m *Machine) SetCustomEmotion(v string) {
	m.draft.CustomEmotion = v
}

func (m *Machine) SetIntensity(n int) error {
	if n < entry.MinIntensity || n > entry.MaxIntensity {
		return entry.Invalid("emotionIntensity", fmt.Sprintf("%d is outside %d..%d", n, entry.MinIntensity, entry.MaxIntensity))
	}
	m.draft.EmotionIntensity = n
	return nil
}

func (m *Machine) SetEpisode(v string) {
	m.draft.Episode = v
}

func (m *Machine) SetTimeOfDay(v string) error {
	if !entry.IsTimeOfDay(v) {
		return fmt.Errorf("%w: time of day %q", ErrUnknownChoice, v)
	}
	m.draft.TimeOfDay = v
	return nil
}

// SetWeather picks the weather. A feeling that does not belong to the new
// weather is cleared.
func (m *Machine) SetWeather(v string) error {
	if !entry.IsWeather(v) {
		return fmt.Errorf("%w: weather %q", ErrUnknownChoice, v)
	}
	m.draft.Weather = v
	if m.draft.WeatherFeeling != "" && !entry.IsWeatherFeeling(v, m.draft.WeatherFeeling) {
		m.draft.WeatherFeeling = ""
		m.draft.CustomWeatherFeeling = ""
	}
	return nil
}

// SetWeatherFeeling picks one of the feelings offered for the chosen weather.
func (m *Machine) SetWeatherFeeling(v string) error {
	v = strings.TrimSpace(v)
	if m.draft.Weather == "" {
		return entry.Missing("weather")
	}
	if entry.IsOther(v) {
		m.draft.WeatherFeeling = entry.Other
		return nil
	}
	if !entry.IsWeatherFeeling(m.draft.Weather, v) {
		return fmt.Errorf("%w: %s feeling %q", ErrUnknownChoice, m.draft.Weather, v)
	}
	m.draft.WeatherFeeling = v
	m.draft.CustomWeatherFeeling = ""
	return nil
}

func (m *Machine) SetCustomWeatherFeeling(v string) {
	m.draft.CustomWeatherFeeling = v
}

// Save builds the entry from the draft and hands it to the saver. It is only
// allowed on the final step. On any error the draft is kept so the user can
// retry; on success the machine starts over.
func (m *Machine) Save(ctx context.Context) (*entry.Entry, error) {
	if !m.IsFinal() {
		return nil, ErrNotFinalStep
	}
	for _, s := range Steps() {
		if !m.Valid(s) {
			return nil, entry.Missing(stepFields[s])
		}
	}
	if m.saver == nil {
		return nil, errors.New("wizard: no saver configured")
	}

	e := entry.New(m.draft, m.now())
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := m.saver.Persist(ctx, e); err != nil {
		return nil, err
	}
	m.Reset()
	return e, nil
}
