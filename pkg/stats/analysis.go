package stats

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/palette/pkg/entry"
)

const (
	// TopLimit is how many rows analysis rankings keep.
	TopLimit = 5
	// MinInsightEntries is the fewest entries an insight is written for.
	MinInsightEntries = 3
	// FrequentThreshold is the count an emotion needs to be "frequent".
	FrequentThreshold = 2
)

// Insight sentinels.
const (
	NoData       = "Not enough data yet."
	NeedMoreData = "Write a few more entries for a more accurate reading."
)

// Highlight is one short observation about a period.
type Highlight struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
}

// Analysis summarizes one period of entries.
type Analysis struct {
	Period       string      `json:"period" yaml:"period"`
	Start        string      `json:"start" yaml:"start"`
	End          string      `json:"end" yaml:"end"`
	TotalEntries int         `json:"totalEntries" yaml:"totalEntries"`
	AvgIntensity float64     `json:"avgIntensity" yaml:"avgIntensity"`
	TopColors    []Ranked    `json:"topColors" yaml:"topColors"`
	TopEmotions  []Ranked    `json:"topEmotions" yaml:"topEmotions"`
	Weather      []Ranked    `json:"weather" yaml:"weather"`
	TimeOfDay    []Ranked    `json:"timeOfDay" yaml:"timeOfDay"`
	Highlights   []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Insight      string      `json:"insight" yaml:"insight"`
	GeneratedAt  time.Time   `json:"generatedAt" yaml:"generatedAt"`

	label string
}

// Analyze filters entries to p and ranks colors (weighted by intensity),
// emotions, weather and time of day.
func Analyze(entries []*entry.Entry, p Period, now time.Time) *Analysis {
	start, end := p.Window(now)
	in := FilterByPeriod(entries, p, now)

	a := &Analysis{
		Period:       p.Name,
		Start:        start,
		End:          end,
		TotalEntries: len(in),
		TopColors:    TopN(Frequencies(in, DimColor), TopLimit, ByWeightedIntensity),
		TopEmotions:  TopN(Frequencies(in, DimEmotion), TopLimit, ByCount),
		Weather:      TopN(Frequencies(in, DimWeather), TopLimit, ByCount),
		TimeOfDay:    TopN(Frequencies(in, DimTimeOfDay), TopLimit, ByCount),
		GeneratedAt:  now.UTC(),
		label:        p.Label(),
	}
	if len(in) > 0 {
		sum := 0
		for _, e := range in {
			sum += e.EmotionIntensity
		}
		a.AvgIntensity = round(float64(sum)/float64(len(in)), 2)
	}
	a.Highlights = Highlights(a)
	a.Insight = Insight(a)
	return a
}

// Insight writes a one-sentence summary of a. It returns NoData when there
// are no entries and NeedMoreData below MinInsightEntries.
func Insight(a *Analysis) string {
	if a == nil || a.TotalEntries == 0 || len(a.TopColors) == 0 || len(a.TopEmotions) == 0 {
		return NoData
	}
	if a.TotalEntries < MinInsightEntries {
		return NeedMoreData
	}
	label := a.label
	if label == "" {
		label = a.Period
	}
	emotion := a.TopEmotions[0]
	return fmt.Sprintf("Over the last %s you felt %s most often and reached for %s most. Average intensity was %.1f/5.",
		label, emotion.Value, a.TopColors[0].Value, a.AvgIntensity)
}

// Highlights lists the most used colors, the most felt emotions and the
// busiest time of day.
func Highlights(a *Analysis) []Highlight {
	var out []Highlight
	values := func(rs []Ranked, n int) string {
		if len(rs) > n {
			rs = rs[:n]
		}
		vs := make([]string, 0, len(rs))
		for _, r := range rs {
			vs = append(vs, r.Value)
		}
		return strings.Join(vs, ", ")
	}
	if len(a.TopColors) > 0 {
		out = append(out, Highlight{Type: "color", Message: "Most used colors: " + values(a.TopColors, 3)})
	}
	if len(a.TopEmotions) > 0 {
		out = append(out, Highlight{Type: "emotion", Message: "Emotions you feel often: " + values(a.TopEmotions, 3)})
	}
	if len(a.TimeOfDay) > 0 {
		out = append(out, Highlight{Type: "time", Message: "You write most in the " + a.TimeOfDay[0].Value})
	}
	return out
}

// ShareText renders a as a short plain-text card for sharing.
func ShareText(a *Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My palette, %s to %s\n", a.Start, a.End)
	fmt.Fprintf(&b, "%d entries, average intensity %.1f/5\n", a.TotalEntries, a.AvgIntensity)
	for i, c := range a.TopColors {
		fmt.Fprintf(&b, "%d. %s", i+1, c.Value)
		if c.Dominant != "" {
			fmt.Fprintf(&b, " (%s)", c.Dominant)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.Insight)
	b.WriteString("\n")
	return b.String()
}

// Overview is the all-time summary.
type Overview struct {
	TotalEntries        int           `json:"totalEntries" yaml:"totalEntries"`
	TotalDays           int           `json:"totalDays" yaml:"totalDays"`
	MostFrequentEmotion string        `json:"mostFrequentEmotion" yaml:"mostFrequentEmotion"`
	TopColors           []Ranked      `json:"topColors" yaml:"topColors"`
	FrequentEmotions    []Ranked      `json:"frequentEmotions" yaml:"frequentEmotions"`
	WeeklyTrend         []TrendBucket `json:"weeklyTrend" yaml:"weeklyTrend"`
	Streak              int           `json:"streak" yaml:"streak"`
}

// Summarize computes the overview across all entries.
func Summarize(entries []*entry.Entry, now time.Time) *Overview {
	emotions := Frequencies(entries, DimEmotion)
	o := &Overview{
		TotalEntries: len(entries),
		TotalDays:    len(dateSet(entries)),
		TopColors:    TopN(Frequencies(entries, DimColor), TopLimit, ByCount),
		WeeklyTrend:  WeeklyTrend(entries, DefaultTrendWeeks, now),
		Streak:       Streak(entries, now),
	}
	all := TopN(emotions, len(emotions.Values()), ByCount)
	if len(all) > 0 {
		o.MostFrequentEmotion = all[0].Value
	}
	for _, r := range all {
		if r.Count >= FrequentThreshold {
			o.FrequentEmotions = append(o.FrequentEmotions, r)
		}
	}
	return o
}
