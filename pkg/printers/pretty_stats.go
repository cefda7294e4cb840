package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/palette/pkg/stats"
)

func (pp *PrettyPrint) ranked(title string, rs []stats.Ranked, swatch bool) {
	if len(rs) == 0 {
		return
	}
	pp.Title(title)
	tbl := uitable.New()
	tbl.Separator = "  "
	for i, r := range rs {
		value := r.Value
		if swatch {
			value = pp.ColorCell(r.Value)
		}
		tbl.AddRow(
			fmt.Sprintf("%d.", i+1),
			value,
			fmt.Sprintf("x%d", r.Count),
			fmt.Sprintf("%.0f%%", r.Percentage),
			fmt.Sprintf("avg %.1f", r.AvgIntensity),
			r.Dominant,
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Analysis prints a period analysis.
func (pp *PrettyPrint) Analysis(a *stats.Analysis) {
	f := color.New(color.Faint)

	pp.TitleWithCount(fmt.Sprintf("%s to %s", a.Start, a.End), a.TotalEntries)
	if a.TotalEntries > 0 {
		_, _ = f.Fprintf(pp.out(), "average intensity %s %.1f/5\n", Intensity(int(a.AvgIntensity+0.5)), a.AvgIntensity)
	}
	pp.NewLine()

	pp.ranked("Colors", a.TopColors, true)
	pp.ranked("Emotions", a.TopEmotions, false)
	pp.ranked("Weather", a.Weather, false)
	pp.ranked("Time of day", a.TimeOfDay, false)

	for _, h := range a.Highlights {
		_, _ = fmt.Fprintf(pp.out(), "• %s\n", h.Message)
	}
	if len(a.Highlights) > 0 {
		pp.NewLine()
	}
	i := color.New(color.Italic)
	_, _ = i.Fprintln(pp.out(), pp.wrap(a.Insight, 0))
	pp.NewLine()
}

// Overview prints the all-time summary.
func (pp *PrettyPrint) Overview(o *stats.Overview) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	pp.Title("Summary")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("entries", o.TotalEntries)
	tbl.AddRow("days", o.TotalDays)
	tbl.AddRow("streak", fmt.Sprintf("%d days", o.Streak))
	if o.MostFrequentEmotion != "" {
		tbl.AddRow("most felt", o.MostFrequentEmotion)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pp.ranked("Colors", o.TopColors, true)
	pp.ranked("Frequent emotions", o.FrequentEmotions, false)

	if len(o.WeeklyTrend) > 0 {
		pp.Title("Weekly trend")
		for _, w := range o.WeeklyTrend {
			_, _ = f.Fprintf(pp.out(), "%s  ", w.Start)
			_, _ = b.Fprint(pp.out(), strings.Repeat("■", w.Days))
			_, _ = f.Fprint(pp.out(), strings.Repeat("□", 7-w.Days))
			_, _ = f.Fprintf(pp.out(), "  %d\n", w.Entries)
		}
		pp.NewLine()
	}
}

// Buckets prints week or month buckets as a table.
func (pp *PrettyPrint) Buckets(g stats.Granularity, buckets []stats.PeriodBucket) {
	pp.TitleWithCount("By "+string(g), len(buckets))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("PERIOD", "ENTRIES", "DAYS", "AVG", "COLOR", "EMOTION")
	for _, b := range buckets {
		tbl.AddRow(b.Key, b.Entries, b.Days, fmt.Sprintf("%.1f", b.AvgIntensity),
			pp.ColorCell(b.TopColor), b.TopEmotion)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
