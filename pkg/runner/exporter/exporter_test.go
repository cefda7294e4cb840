package exporter

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/runner/importer"
	"tableflip.dev/palette/pkg/store"
)

func service(t *testing.T) *app.Service {
	t.Helper()
	svc := app.New(nil, store.NewMemory(), nil)
	svc.Now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local) }
	return svc
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := service(t)
	for _, emotion := range []string{"joy", "calm"} {
		d := entry.NewDraft()
		d.Color, d.Emotion, d.Episode = "#FF0000", emotion, `a "quoted", episode`
		if _, err := src.Save(ctx, d); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	dir := t.TempDir()

	for _, f := range []export.Format{export.FormatJSON, export.FormatCSV} {
		var buf bytes.Buffer
		out := filepath.Join(dir, "palette."+string(f))
		ex := Export{Service: src, Printer: &printers.PrettyPrint{Out: &buf}, Format: f, Out: out}
		if err := ex.Do(ctx); err != nil {
			t.Fatalf("%s export: %v", f, err)
		}

		dst := service(t)
		im := importer.Import{File: out, Service: dst, Printer: &printers.PrettyPrint{Out: &buf}}
		if err := im.Do(ctx); err != nil {
			t.Fatalf("%s import: %v", f, err)
		}
		got, _ := dst.Entries(ctx)
		if len(got) != 2 || got[1].Emotion != "calm" || got[0].Episode != `a "quoted", episode` {
			t.Fatalf("%s: unexpected entries %+v", f, got)
		}
		if err := im.Do(ctx); !errors.Is(err, importer.ErrNotConfirmed) {
			t.Fatalf("%s: second import must ask for --force, got %v", f, err)
		}
		im.Force = true
		if err := im.Do(ctx); err != nil {
			t.Fatalf("%s forced import: %v", f, err)
		}
	}
}

func TestExportRejectsYAML(t *testing.T) {
	var buf bytes.Buffer
	ex := Export{Service: service(t), Printer: &printers.PrettyPrint{Out: &buf}, Format: export.FormatYAML, Out: "-"}
	if err := ex.Do(context.Background()); err == nil {
		t.Fatal("yaml entry export should fail")
	}
}
