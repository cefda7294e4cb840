package options

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

var now = time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

func clock() time.Time { return now }

func TestOnDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "2024-2-29", want: "2024-02-29"},
		{in: "2025-01-03", want: "2025-01-03"},
		{in: "1/3", want: "2025-01-03"},
		{in: "1/15", want: "2025-01-15"},
		// Later in the year than today reads as last year.
		{in: "12/30", want: "2024-12-30"},
	}
	for _, tt := range tests {
		o := &OnOptions{OnString: tt.in, Now: clock}
		got, err := o.Date()
		if err != nil {
			t.Fatalf("Date(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := (&OnOptions{OnString: "tomorrow", Now: clock}).Date(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRangeDates(t *testing.T) {
	o := &RangeOptions{From: "1/1", Now: clock}
	start, end, err := o.Dates()
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if start != "2025-01-01" || end != "" {
		t.Fatalf("got %q..%q", start, end)
	}
}

func TestEntryPatchOnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &EntryOptions{}
	AddEntryArgs(cmd, o)
	o.On.Now = clock
	if err := cmd.ParseFlags([]string{"--emotion", "calm", "-n", "4", "--on", "1/10"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := o.Patch(cmd)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if p.Emotion == nil || *p.Emotion != "calm" {
		t.Fatalf("emotion not patched: %+v", p)
	}
	if p.EmotionIntensity == nil || *p.EmotionIntensity != 4 {
		t.Fatalf("intensity not patched: %+v", p)
	}
	if p.Date == nil || *p.Date != "2025-01-10" {
		t.Fatalf("date not patched: %+v", p)
	}
	if p.Color != nil || p.Episode != nil || p.Weather != nil {
		t.Fatalf("unchanged fields patched: %+v", p)
	}
}

func TestEntryDraft(t *testing.T) {
	cmd := &cobra.Command{Use: "add"}
	o := &EntryOptions{}
	AddEntryArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"-c", "#ff0000", "-e", "joy"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	d, err := o.Draft()
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if d.Color != "#ff0000" || d.Emotion != "joy" || d.EmotionIntensity != 3 || d.Date != "" {
		t.Fatalf("unexpected draft %+v", d)
	}
}

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}
	if err := o.HandleError(errors.New("entry not found")); err != nil {
		t.Fatalf("expected nil under --json, got %v", err)
	}
	if got := buf.String(); got != "{\"error\":\"entry not found\"}\n" {
		t.Fatalf("unexpected output %q", got)
	}

	plain := &OutputOptions{Out: &buf}
	want := errors.New("boom")
	if err := plain.HandleError(want); err != want {
		t.Fatalf("expected error passed through, got %v", err)
	}
}
