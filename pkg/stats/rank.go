package stats

import (
	"math"
	"sort"

	"tableflip.dev/palette/pkg/entry"
)

// Ranked is one row of a top-N result.
type Ranked struct {
	Value        string  `json:"value" yaml:"value"`
	Count        int     `json:"count" yaml:"count"`
	AvgIntensity float64 `json:"avgIntensity" yaml:"avgIntensity"`
	Score        float64 `json:"score" yaml:"score"`
	// Dominant is the most frequent related value, the emotion for a color
	// and the color for an emotion.
	Dominant   string  `json:"dominant,omitempty" yaml:"dominant,omitempty"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Scorer ranks a bucket. maxCount is the largest count in the table.
type Scorer func(b Bucket, maxCount int) float64

// ByCount ranks by occurrence count.
func ByCount(b Bucket, _ int) float64 {
	return float64(b.Count)
}

// ByWeightedIntensity blends how often a value was picked with how strongly it
// was felt: 0.7 of the count relative to the most frequent value plus 0.3 of
// the average intensity relative to the top of the scale.
func ByWeightedIntensity(b Bucket, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return 0.7*float64(b.Count)/float64(maxCount) + 0.3*b.AvgIntensity()/float64(entry.MaxIntensity)
}

// TopN returns the n best-scoring non-empty values, highest first. Equal
// scores keep first-seen order.
func TopN(t *Table, n int, rule Scorer) []Ranked {
	if t == nil || n <= 0 {
		return nil
	}
	if rule == nil {
		rule = ByCount
	}

	buckets := t.Buckets()
	maxCount := 0
	for _, b := range buckets {
		if b.Value != "" && b.Count > maxCount {
			maxCount = b.Count
		}
	}

	ranked := make([]Ranked, 0, len(buckets))
	for _, b := range buckets {
		if b.Value == "" {
			continue
		}
		r := Ranked{
			Value:        b.Value,
			Count:        b.Count,
			AvgIntensity: round(b.AvgIntensity(), 2),
			Score:        rule(b, maxCount),
			Dominant:     b.Dominant(),
		}
		if t.Total() > 0 {
			r.Percentage = round(100*float64(b.Count)/float64(t.Total()), 1)
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
