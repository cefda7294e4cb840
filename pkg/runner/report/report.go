// Package report prints period analyses, the all-time summary and
// week or month buckets.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/export"
	"tableflip.dev/palette/pkg/printers"
	"tableflip.dev/palette/pkg/stats"
)

// Analyze ranks colors and emotions over Period.
type Analyze struct {
	Period  stats.Period
	Service *app.Service
	Printer *printers.PrettyPrint

	// Share prints the short plain-text card instead of the full report.
	Share bool
	// Out writes the report to a file; "-" means stdout.
	Out    string
	Format export.Format
	JSON   bool
}

func (n *Analyze) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not analyze, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}
	a, err := n.Service.Analyze(ctx, n.Period)
	if err != nil {
		return err
	}

	switch {
	case n.Out != "":
		return n.write(pp, a)
	case n.JSON:
		return pp.JSON(a)
	case n.Share:
		_, err := fmt.Fprint(pp.Writer(), stats.ShareText(a))
		return err
	}
	pp.Analysis(a)
	return nil
}

func (n *Analyze) write(pp *printers.PrettyPrint, a *stats.Analysis) error {
	var w io.Writer = pp.Writer()
	if n.Out != "-" {
		f, err := os.Create(n.Out)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteAnalysis(w, a, n.Format); err != nil {
		return err
	}
	if n.Out != "-" {
		_, _ = fmt.Fprintf(pp.Writer(), "wrote %s\n", n.Out)
	}
	return nil
}

// DefaultOut names the analysis file written on now.
func DefaultOut(f export.Format, now time.Time) string {
	return export.FileName("analysis", f, now)
}

// Summary prints all-time totals, the streak and the weekly trend, or
// buckets when By is set.
type Summary struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	By      stats.Granularity
	JSON    bool
}

func (n *Summary) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not summarize, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = printers.New()
	}

	if n.By != "" {
		buckets, err := n.Service.Buckets(ctx, n.By)
		if err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(buckets)
		}
		pp.Buckets(n.By, buckets)
		return nil
	}

	o, err := n.Service.Summary(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(o)
	}
	pp.Overview(o)
	return nil
}
