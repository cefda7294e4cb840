package stats

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/palette/pkg/entry"
)

// Dimension is an entry field statistics can be grouped by.
type Dimension string

const (
	DimColor          Dimension = "color"
	DimAvoidColor     Dimension = "avoidColor"
	DimEmotion        Dimension = "emotion"
	DimIntensity      Dimension = "intensity"
	DimWeather        Dimension = "weather"
	DimWeatherFeeling Dimension = "weatherFeeling"
	DimTimeOfDay      Dimension = "timeOfDay"
)

// Dimensions lists every groupable field.
func Dimensions() []Dimension {
	return []Dimension{DimColor, DimAvoidColor, DimEmotion, DimIntensity, DimWeather, DimWeatherFeeling, DimTimeOfDay}
}

// ParseDimension maps a user-supplied name to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions() {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("stats: unknown dimension %q", s)
}

// Of extracts the dimension's value from e.
func (d Dimension) Of(e *entry.Entry) string {
	switch d {
	case DimColor:
		return e.Color
	case DimAvoidColor:
		return e.AvoidColor
	case DimEmotion:
		return e.Emotion
	case DimIntensity:
		return strconv.Itoa(e.EmotionIntensity)
	case DimWeather:
		return e.Weather
	case DimWeatherFeeling:
		return e.WeatherFeeling
	case DimTimeOfDay:
		return e.TimeOfDay
	default:
		return ""
	}
}

// related is the dimension whose dominant value is reported alongside d:
// the emotion felt with a color, the color picked for an emotion.
func (d Dimension) related() Dimension {
	switch d {
	case DimEmotion:
		return DimColor
	default:
		return DimEmotion
	}
}

// Bucket accumulates the entries sharing one dimension value.
type Bucket struct {
	Value        string
	Count        int
	IntensitySum int
	// Related holds the related dimension's values in the order seen.
	Related []string
}

// AvgIntensity is the mean emotion intensity of the bucket's entries.
func (b Bucket) AvgIntensity() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.IntensitySum) / float64(b.Count)
}

// Dominant returns the most frequent related value.
func (b Bucket) Dominant() string {
	return DominantValue(b.Related)
}

// Table maps each distinct value of a dimension to its bucket. Every input
// entry is counted exactly once; entries with no value land under "". Values
// keep the order they were first seen in.
type Table struct {
	Dimension Dimension
	order     []string
	buckets   map[string]*Bucket
	total     int
}

// Frequencies builds the frequency table of entries along dim.
func Frequencies(entries []*entry.Entry, dim Dimension) *Table {
	t := &Table{Dimension: dim, buckets: make(map[string]*Bucket)}
	rel := dim.related()
	for _, e := range entries {
		if e == nil {
			continue
		}
		v := dim.Of(e)
		b, ok := t.buckets[v]
		if !ok {
			b = &Bucket{Value: v}
			t.buckets[v] = b
			t.order = append(t.order, v)
		}
		b.Count++
		b.IntensitySum += e.EmotionIntensity
		if r := rel.Of(e); r != "" {
			b.Related = append(b.Related, r)
		}
		t.total++
	}
	return t
}

// Total is the number of entries counted.
func (t *Table) Total() int {
	return t.total
}

// Count returns how many entries carry v.
func (t *Table) Count(v string) int {
	if b, ok := t.buckets[v]; ok {
		return b.Count
	}
	return 0
}

// Values lists distinct values in first-seen order, "" included.
func (t *Table) Values() []string {
	return append([]string(nil), t.order...)
}

// Counts returns the plain value to count mapping.
func (t *Table) Counts() map[string]int {
	out := make(map[string]int, len(t.buckets))
	for v, b := range t.buckets {
		out[v] = b.Count
	}
	return out
}

// Buckets returns copies of every bucket in first-seen order.
func (t *Table) Buckets() []Bucket {
	out := make([]Bucket, 0, len(t.order))
	for _, v := range t.order {
		b := *t.buckets[v]
		b.Related = append([]string(nil), b.Related...)
		out = append(out, b)
	}
	return out
}

// DominantValue returns the most frequent non-empty value. Ties go to the
// value seen first. It returns "" for an empty list.
func DominantValue(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if c := counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}
