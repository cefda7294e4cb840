package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/stats"
	"tableflip.dev/palette/pkg/store"
)

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

func seed(t *testing.T) *app.Service {
	t.Helper()
	svc := app.New(nil, store.NewMemory(), nil)
	svc.Now = func() time.Time { return now }
	for _, date := range []string{"2025-01-13", "2025-01-14", "2025-01-15"} {
		d := entry.NewDraft()
		d.Date, d.Color, d.Emotion = date, "#FF0000", "joy"
		if _, err := svc.Save(context.Background(), d); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return svc
}

func TestAnalyzeShare(t *testing.T) {
	var buf bytes.Buffer
	a := Analyze{Period: stats.Week, Service: seed(t), Printer: &printers.PrettyPrint{Out: &buf}, Share: true}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "My palette, 2025-01-09 to 2025-01-15") {
		t.Fatalf("unexpected share text:\n%s", buf.String())
	}
}

func TestAnalyzeWritesFile(t *testing.T) {
	var buf bytes.Buffer
	out := filepath.Join(t.TempDir(), DefaultOut(export.FormatJSON, now))
	a := Analyze{Period: stats.Week, Service: seed(t), Printer: &printers.PrettyPrint{Out: &buf}, Out: out, Format: export.FormatJSON}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var r export.AnalysisReport
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.TotalEntries != 3 || r.TopEmotions[0].Value != "joy" {
		t.Fatalf("unexpected report %+v", r)
	}
	if !strings.Contains(buf.String(), "wrote ") {
		t.Fatalf("expected confirmation, got %q", buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	s := Summary{Service: seed(t), Printer: &printers.PrettyPrint{Out: &buf}, JSON: true}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("summary: %v", err)
	}
	var o stats.Overview
	if err := json.Unmarshal(buf.Bytes(), &o); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if o.Streak != 3 || o.TotalDays != 3 || o.MostFrequentEmotion != "joy" {
		t.Fatalf("unexpected overview %+v", o)
	}

	buf.Reset()
	s = Summary{Service: s.Service, Printer: &printers.PrettyPrint{Out: &buf}, By: stats.ByMonth}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if !strings.Contains(buf.String(), "2025-01") {
		t.Fatalf("expected month bucket:\n%s", buf.String())
	}
}
