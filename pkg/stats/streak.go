package stats

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/timeutil"
)

func dateSet(entries []*entry.Entry) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e != nil && e.Date != "" {
			set[e.Date] = struct{}{}
		}
	}
	return set
}

// Streak counts consecutive days, ending today, that have at least one entry.
// It is zero whenever today has no entry.
func Streak(entries []*entry.Entry, now time.Time) int {
	days := dateSet(entries)
	day := timeutil.Today(now)
	n := 0
	for {
		if _, ok := days[day]; !ok {
			return n
		}
		n++
		prev, err := timeutil.ShiftDate(day, -1)
		if err != nil {
			return n
		}
		day = prev
	}
}

// TrendBucket covers one 7-day span of a weekly trend.
type TrendBucket struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	// Days is the number of distinct dates with at least one entry.
	Days    int `json:"days" yaml:"days"`
	Entries int `json:"entries" yaml:"entries"`
}

// DefaultTrendWeeks is the trend length shown by the overview.
const DefaultTrendWeeks = 7

// WeeklyTrend splits the trailing weeks*7 days ending today into 7-day
// buckets, oldest first.
func WeeklyTrend(entries []*entry.Entry, weeks int, now time.Time) []TrendBucket {
	if weeks <= 0 {
		return nil
	}
	today := timeutil.Today(now)
	out := make([]TrendBucket, weeks)
	for i := 0; i < weeks; i++ {
		end, _ := timeutil.ShiftDate(today, -7*(weeks-1-i))
		start, _ := timeutil.ShiftDate(end, -6)
		out[i] = TrendBucket{Start: start, End: end}
	}
	seen := make([]map[string]struct{}, weeks)
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		for i := range out {
			if e.Date >= out[i].Start && e.Date <= out[i].End {
				out[i].Entries++
				seen[i][e.Date] = struct{}{}
				break
			}
		}
	}
	for i := range out {
		out[i].Days = len(seen[i])
	}
	return out
}

// Granularity selects calendar bucketing.
type Granularity string

const (
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
)

// PeriodBucket aggregates entries within one calendar week or month.
type PeriodBucket struct {
	Key          string  `json:"key" yaml:"key"`
	Start        string  `json:"start" yaml:"start"`
	Entries      int     `json:"entries" yaml:"entries"`
	Days         int     `json:"days" yaml:"days"`
	AvgIntensity float64 `json:"avgIntensity" yaml:"avgIntensity"`
	TopColor     string  `json:"topColor,omitempty" yaml:"topColor,omitempty"`
	TopEmotion   string  `json:"topEmotion,omitempty" yaml:"topEmotion,omitempty"`
}

// Buckets groups entries by ISO week ("2025-W03", starting Monday) or by
// month ("2025-01"), in ascending key order.
func Buckets(entries []*entry.Entry, g Granularity) ([]PeriodBucket, error) {
	if g != ByWeek && g != ByMonth {
		return nil, fmt.Errorf("stats: unknown granularity %q", g)
	}
	type acc struct {
		bucket   PeriodBucket
		days     map[string]struct{}
		sum      int
		colors   []string
		emotions []string
	}
	groups := make(map[string]*acc)
	for _, e := range entries {
		if e == nil {
			continue
		}
		day, err := entry.ParseDate(e.Date)
		if err != nil {
			continue
		}
		key, start := bucketKey(day, g)
		a, ok := groups[key]
		if !ok {
			a = &acc{bucket: PeriodBucket{Key: key, Start: start}, days: make(map[string]struct{})}
			groups[key] = a
		}
		a.bucket.Entries++
		a.days[e.Date] = struct{}{}
		a.sum += e.EmotionIntensity
		a.colors = append(a.colors, e.Color)
		a.emotions = append(a.emotions, e.Emotion)
	}

	out := make([]PeriodBucket, 0, len(groups))
	for _, a := range groups {
		b := a.bucket
		b.Days = len(a.days)
		b.AvgIntensity = round(float64(a.sum)/float64(b.Entries), 2)
		b.TopColor = DominantValue(a.colors)
		b.TopEmotion = DominantValue(a.emotions)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func bucketKey(day time.Time, g Granularity) (string, string) {
	if g == ByMonth {
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return day.Format(layoutMonth), first.Format(entry.LayoutDate)
	}
	year, week := day.ISOWeek()
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	monday := day.AddDate(0, 0, -offset)
	return fmt.Sprintf("%04d-W%02d", year, week), monday.Format(entry.LayoutDate)
}
