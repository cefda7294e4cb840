package remove

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/store"
)

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := app.New(nil, store.NewMemory(), nil)
	svc.Now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local) }
	var ids []string
	for _, emotion := range []string{"joy", "calm"} {
		d := entry.NewDraft()
		d.Color, d.Emotion = "#FF0000", emotion
		e, err := svc.Save(ctx, d)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, e.ID)
	}

	var buf bytes.Buffer
	r := Remove{ID: ids[0], Service: svc, Printer: &printers.PrettyPrint{Out: &buf}}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(buf.String(), "2025-01-15 - 1 entry") || strings.Contains(buf.String(), "joy") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if err := r.Do(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
