// Package exporter writes the journal to CSV or a JSON backup file.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
)

// Export writes every entry, or those between Start and End, to Out.
// CSV writes rows; JSON writes a full backup.
type Export struct {
	Service    *app.Service
	Printer    *printers.PrettyPrint
	Format     export.Format
	Start, End string
	// Out is the file to write; empty picks a dated name and "-" is stdout.
	Out string
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	now := time.Now()
	if n.Service.Now != nil {
		now = n.Service.Now()
	}

	entries, err := n.Service.EntriesBetween(ctx, n.Start, n.End)
	if err != nil {
		return err
	}

	kind := "backup"
	if n.Format == export.FormatCSV {
		kind = "data"
	}
	out := n.Out
	if out == "" {
		out = export.FileName(kind, n.Format, now)
	}

	var w io.Writer = pp.Writer()
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := write(w, entries, n.Format, now); err != nil {
		return err
	}
	if out != "-" {
		_, _ = fmt.Fprintf(pp.Writer(), "exported %d entries to %s\n", len(entries), out)
	}
	return nil
}

func write(w io.Writer, entries []*entry.Entry, f export.Format, now time.Time) error {
	switch f {
	case export.FormatCSV:
		return export.WriteCSV(w, entries)
	case export.FormatJSON, "":
		return export.WriteBackup(w, entries, now)
	}
	return fmt.Errorf("export: entries cannot be written as %s", f)
}
