package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/store"
)

var now = time.Date(2025, 1, 15, 9, 30, 0, 0, time.Local)

type recordingSaver struct {
	saved []*entry.Entry
	err   error
}

func (r *recordingSaver) Persist(_ context.Context, e *entry.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, e)
	return nil
}

func mustSet(t *testing.T, m *Machine, v string) {
	t.Helper()
	if err := m.Set(v); err != nil {
		t.Fatalf("set %s=%q: %v", m.Step(), v, err)
	}
}

func mustNext(t *testing.T, m *Machine) {
	t.Helper()
	if !m.Next() {
		t.Fatalf("expected to leave %s", m.Step())
	}
}

// fill walks the whole flow with valid answers and stops on the final step.
func fill(t *testing.T, m *Machine) {
	t.Helper()
	answers := []string{"#ff0000", "", "joy", "4", "coffee with a friend", "morning (06:00-09:00)", "rain", "cleansed"}
	for i, v := range answers {
		mustSet(t, m, v)
		if i < len(answers)-1 {
			mustNext(t, m)
		}
	}
}

func TestInitialState(t *testing.T) {
	m := New(&recordingSaver{})
	if m.Step() != StepColor {
		t.Fatalf("expected color step, got %s", m.Step())
	}
	if d := m.Draft(); d.EmotionIntensity != entry.DefaultIntensity || d.Color != "" {
		t.Fatalf("unexpected initial draft %+v", d)
	}
	if len(Steps()) != 8 {
		t.Fatalf("expected 8 steps, got %d", len(Steps()))
	}
}

func TestNextIsGated(t *testing.T) {
	m := New(&recordingSaver{})
	if m.Next() {
		t.Fatal("color step must block without a color")
	}
	if m.Step() != StepColor {
		t.Fatalf("step changed to %s", m.Step())
	}
	mustSet(t, m, "#00ff00")
	mustNext(t, m)
	// avoid-color is optional
	mustNext(t, m)
	if m.Step() != StepEmotion {
		t.Fatalf("expected emotion, got %s", m.Step())
	}
	if m.Next() {
		t.Fatal("emotion step must block without an emotion")
	}
}

func TestBackFloorsAtFirstStep(t *testing.T) {
	m := New(&recordingSaver{})
	m.Back()
	if m.Step() != StepColor {
		t.Fatalf("expected color, got %s", m.Step())
	}
	mustSet(t, m, "#000000")
	mustNext(t, m)
	m.Back()
	if m.Step() != StepColor || m.Draft().Color != "#000000" {
		t.Fatalf("back must keep the draft, got %s %+v", m.Step(), m.Draft())
	}
}

func TestOtherEmotionNeedsCustomText(t *testing.T) {
	saver := &recordingSaver{}
	m := New(saver, WithClock(func() time.Time { return now }))
	mustSet(t, m, "#0000FF")
	mustNext(t, m)
	mustNext(t, m)

	mustSet(t, m, "other")
	if !m.NeedsCustom() {
		t.Fatal("expected custom text prompt")
	}
	m.SetCustomEmotion("   ")
	if m.Next() {
		t.Fatal("blank custom emotion must block")
	}
	m.SetCustomEmotion("nostalgia")
	mustNext(t, m)
	mustNext(t, m)
	mustSet(t, m, "old photos")
	mustNext(t, m)
	mustSet(t, m, "evening (17:00-20:00)")
	mustNext(t, m)
	mustSet(t, m, "fog")
	mustNext(t, m)
	mustSet(t, m, "other")
	if m.CanAdvance() {
		t.Fatal("final step never advances")
	}
	if _, err := m.Save(context.Background()); !errors.Is(err, entry.ErrMissingRequiredField) {
		t.Fatalf("expected missing custom feeling, got %v", err)
	}
	m.SetCustomWeatherFeeling("wistful")

	e, err := m.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Emotion != "nostalgia" || e.WeatherFeeling != "wistful" {
		t.Fatalf("other sentinels not resolved: %+v", e)
	}
	if e.Date != "2025-01-15" || e.EmotionIntensity != entry.DefaultIntensity {
		t.Fatalf("unexpected defaults %+v", e)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("expected one saved entry, got %d", len(saver.saved))
	}
}

func TestSelectingNamedEmotionClearsCustom(t *testing.T) {
	m := New(&recordingSaver{})
	m.step = StepEmotion
	mustSet(t, m, "other")
	m.SetCustomEmotion("awe")
	mustSet(t, m, "calm")
	if d := m.Draft(); d.CustomEmotion != "" || d.Emotion != "calm" {
		t.Fatalf("expected custom text cleared, got %+v", d)
	}
}

func TestSaveOnlyOnFinalStep(t *testing.T) {
	m := New(&recordingSaver{})
	if _, err := m.Save(context.Background()); !errors.Is(err, ErrNotFinalStep) {
		t.Fatalf("expected ErrNotFinalStep, got %v", err)
	}
}

func TestSaveResetsOnSuccess(t *testing.T) {
	saver := &recordingSaver{}
	m := New(saver, WithClock(func() time.Time { return now }))
	fill(t, m)
	e, err := m.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Color != "#FF0000" || e.EmotionIntensity != 4 || e.Weather != "rain" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if m.Step() != StepColor || m.Draft() != entry.NewDraft() {
		t.Fatalf("expected reset, got %s %+v", m.Step(), m.Draft())
	}
}

func TestSaveKeepsDraftOnDailyLimit(t *testing.T) {
	p := store.NewMemory()
	saver := &storeSaver{p}
	m := New(saver, WithClock(func() time.Time { return now }))
	for i := 0; i < store.DailyLimit; i++ {
		fill(t, m)
		if _, err := m.Save(context.Background()); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	fill(t, m)
	before := m.Draft()
	if _, err := m.Save(context.Background()); !errors.Is(err, store.ErrDailyLimitExceeded) {
		t.Fatalf("expected daily limit, got %v", err)
	}
	if m.Step() != StepWeatherFeeling || m.Draft() != before {
		t.Fatalf("draft must survive a rejected save")
	}
	if n := len(p.ListByDate(context.Background(), "2025-01-15")); n != store.DailyLimit {
		t.Fatalf("expected %d stored, got %d", store.DailyLimit, n)
	}
}

func TestSaveKeepsDraftOnSaverError(t *testing.T) {
	saver := &recordingSaver{err: fmt.Errorf("disk full: %w", store.ErrStorageWrite)}
	m := New(saver)
	fill(t, m)
	if _, err := m.Save(context.Background()); !errors.Is(err, store.ErrStorageWrite) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if m.Draft().Episode != "coffee with a friend" {
		t.Fatal("draft lost after failed save")
	}
}

func TestSettersRejectUnknownValues(t *testing.T) {
	m := New(nil)
	if err := m.SetColor("#12"); err == nil {
		t.Fatal("expected bad color error")
	}
	if err := m.SetEmotion("bored-ish"); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("expected unknown choice, got %v", err)
	}
	if err := m.SetIntensity(6); !errors.Is(err, entry.ErrInvalidField) {
		t.Fatalf("expected invalid intensity, got %v", err)
	}
	if err := m.SetWeatherFeeling("cleansed"); !errors.Is(err, entry.ErrMissingRequiredField) {
		t.Fatalf("expected weather first, got %v", err)
	}
	if err := m.SetWeather("rain"); err != nil {
		t.Fatalf("weather: %v", err)
	}
	if err := m.SetWeatherFeeling("fairytale"); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("snow feeling must not fit rain, got %v", err)
	}
}

func TestChangingWeatherDropsForeignFeeling(t *testing.T) {
	m := New(nil)
	_ = m.SetWeather("snow")
	if err := m.SetWeatherFeeling("fairytale"); err != nil {
		t.Fatalf("feeling: %v", err)
	}
	_ = m.SetWeather("fog")
	if m.Draft().WeatherFeeling != "" {
		t.Fatalf("expected feeling cleared, got %q", m.Draft().WeatherFeeling)
	}
	_ = m.SetWeather("cloudy")
	_ = m.SetWeatherFeeling("peaceful")
	_ = m.SetWeather("snow")
	if m.Draft().WeatherFeeling != "peaceful" {
		t.Fatal("shared feeling should survive")
	}
}

func TestOptionsFollowStep(t *testing.T) {
	m := New(nil)
	if len(m.Options()) != len(entry.Palette()) {
		t.Fatal("color step should offer the palette")
	}
	m.step = StepIntensity
	if got := m.Options(); len(got) != 5 || got[0] != "1" {
		t.Fatalf("unexpected intensity options %v", got)
	}
	m.step = StepEpisode
	if m.Options() != nil {
		t.Fatal("episode is free text")
	}
	_ = m.SetWeather("wind")
	m.step = StepWeatherFeeling
	if got := m.Options(); len(got) == 0 || got[len(got)-1] != entry.Other {
		t.Fatalf("unexpected feelings %v", got)
	}
}

type storeSaver struct {
	p store.Persistence
}

func (s *storeSaver) Persist(ctx context.Context, e *entry.Entry) error {
	return s.p.Append(ctx, e)
}
