package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/store"
)

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

func newTestService(t *testing.T) *Service {
	t.Helper()
	a := app.New(nil, store.NewMemory(), zaptest.NewLogger(t))
	a.Now = func() time.Time { return now }
	return NewService(a)
}

func add(t *testing.T, svc *Service, opts AddEntryOptions) *EntryDTO {
	t.Helper()
	if opts.Episode == "" {
		opts.Episode = "something happened"
	}
	dto, err := svc.AddEntry(context.Background(), opts)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	return dto
}

func TestServiceAddEntryDefaults(t *testing.T) {
	svc := newTestService(t)
	dto := add(t, svc, AddEntryOptions{Color: "#ff0000", Emotion: "joy"})
	if dto.Date != "2025-01-15" || dto.EmotionIntensity != entry.DefaultIntensity || dto.Color != "#FF0000" {
		t.Fatalf("unexpected defaults %+v", dto.Entry)
	}
	if dto.CreatedUnix != now.Unix() {
		t.Fatalf("expected createdUnix %d, got %d", now.Unix(), dto.CreatedUnix)
	}

	if _, err := svc.AddEntry(context.Background(), AddEntryOptions{Emotion: "joy", Episode: "x"}); !errors.Is(err, entry.ErrMissingRequiredField) {
		t.Fatalf("expected missing color, got %v", err)
	}
}

func TestServiceListAndSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	add(t, svc, AddEntryOptions{Date: "2025-01-10", Color: "#0000FF", Emotion: "calm", Episode: "quiet morning by the lake"})
	add(t, svc, AddEntryOptions{Date: "2025-01-12", Color: "#FF0000", Emotion: "anger", Episode: "missed the train"})
	add(t, svc, AddEntryOptions{Date: "2025-01-12", Color: "#FF0000", Emotion: "joy", Intensity: 5})

	all, err := svc.ListEntries(ctx, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Date != "2025-01-12" || all[2].Date != "2025-01-10" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	ranged, err := svc.ListEntries(ctx, "2025-01-11", "2025-01-15")
	if err != nil || len(ranged) != 2 {
		t.Fatalf("expected 2 in range, got %d (%v)", len(ranged), err)
	}

	hits, err := svc.SearchEntries(ctx, "LAKE", 0)
	if err != nil || len(hits) != 1 || hits[0].Emotion != "calm" {
		t.Fatalf("unexpected search %+v (%v)", hits, err)
	}
	if _, err := svc.SearchEntries(ctx, "  ", 0); err == nil {
		t.Fatal("blank query should fail")
	}

	days, err := svc.ListDays(ctx)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if len(days) != 2 || days[0].Date != "2025-01-12" || days[0].EntryCount != 2 || days[0].Color != "#FF0000" {
		t.Fatalf("unexpected days %+v", days)
	}
	if days[0].AvgIntensity != 4 {
		t.Fatalf("expected avg 4, got %v", days[0].AvgIntensity)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	dto := add(t, svc, AddEntryOptions{Color: "#00FF00", Emotion: "hope"})

	emotion := "gratitude"
	updated, err := svc.UpdateEntry(ctx, dto.ID, entry.Patch{Emotion: &emotion})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Emotion != "gratitude" || updated.ID != dto.ID {
		t.Fatalf("unexpected update %+v", updated.Entry)
	}

	if err := svc.DeleteEntry(ctx, dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.EntryByID(ctx, dto.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteEntry(ctx, dto.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("second delete should fail, got %v", err)
	}
}

func TestServiceAnalyze(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	add(t, svc, AddEntryOptions{Date: "2025-01-14", Color: "#FF0000", Emotion: "joy"})
	add(t, svc, AddEntryOptions{Date: "2025-01-15", Color: "#FF0000", Emotion: "joy"})

	a, err := svc.Analyze(ctx, "1week")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.TotalEntries != 2 || a.TopColors[0].Value != "#FF0000" {
		t.Fatalf("unexpected analysis %+v", a)
	}
	if _, err := svc.Analyze(ctx, "someday"); err == nil {
		t.Fatal("unknown period should fail")
	}

	o, err := svc.Summary(ctx)
	if err != nil || o.Streak != 2 {
		t.Fatalf("unexpected summary %+v (%v)", o, err)
	}
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ListEntries(context.Background(), "", ""); err == nil {
		t.Fatal("expected error without persistence")
	}
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatal("runner should refuse to start without persistence")
	}
}

func TestNewServer(t *testing.T) {
	svc := newTestService(t)
	if srv := NewServer("palette", "test", svc.App); srv == nil {
		t.Fatal("expected a server")
	}
}
