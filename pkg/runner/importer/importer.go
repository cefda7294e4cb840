// Package importer replaces the journal with the contents of a backup or
// CSV export.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
)

// ErrNotConfirmed is returned when an import would replace existing entries
// and Force is not set.
var ErrNotConfirmed = errors.New("import replaces every saved entry; pass --force to continue")

type Import struct {
	File    string
	Service *app.Service
	Printer *printers.PrettyPrint
	Force   bool
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}

	f, err := os.Open(n.File)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer f.Close()

	var (
		entries []*entry.Entry
		skipped []error
	)
	if strings.EqualFold(filepath.Ext(n.File), ".csv") {
		entries, skipped, err = export.ReadCSV(f)
	} else {
		entries, skipped, err = export.ReadBackup(f)
	}
	if err != nil {
		return err
	}
	for _, s := range skipped {
		n.Service.Logger().Warn("import: skipped record", zap.String("file", n.File), zap.Error(s))
	}

	existing, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !n.Force {
		return ErrNotConfirmed
	}
	if err := n.Service.Import(ctx, entries); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(pp.Writer(), "imported %d entries", len(entries))
	if len(skipped) > 0 {
		_, _ = fmt.Fprintf(pp.Writer(), ", skipped %d", len(skipped))
	}
	_, _ = fmt.Fprintln(pp.Writer())
	return nil
}
