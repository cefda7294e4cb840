// Package export writes entries and analyses to files other tools can read,
// and reads backups back in.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/stats"
)

// BackupVersion is written into every backup.
const BackupVersion = "1.0.0"

// Header is the CSV column order.
var Header = []string{
	"date", "timestamp", "color", "avoidColor", "emotion",
	"intensity", "episode", "timeOfDay", "weather", "weatherFeeling",
}

// Format selects a structured encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("export: unsupported format %q (use json, yaml or csv)", s)
}

// FileName is the default name for an export written on now.
func FileName(kind string, f Format, now time.Time) string {
	return fmt.Sprintf("palette-%s-%s.%s", kind, now.Format(entry.LayoutDate), f)
}

// WriteCSV writes one row per entry under Header.
func WriteCSV(w io.Writer, entries []*entry.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		intensity := e.EmotionIntensity
		if intensity == 0 {
			intensity = entry.DefaultIntensity
		}
		ts := ""
		if !e.Timestamp.IsZero() {
			ts = e.Timestamp.String()
		}
		record := []string{
			e.Date,
			ts,
			e.Color,
			e.AvoidColor,
			e.Emotion,
			strconv.Itoa(intensity),
			e.Episode,
			e.TimeOfDay,
			e.Weather,
			e.WeatherFeeling,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV. Rows carry no id, so every entry
// gets a fresh one. Rows that fail to parse are reported in skipped.
func ReadCSV(r io.Reader) (entries []*entry.Entry, skipped []error, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("export: read csv: %v: %w", err, entry.ErrDeserialization)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"date", "color", "emotion"} {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("export: csv has no %q column: %w", name, entry.ErrDeserialization)
		}
	}
	for n, row := range rows[1:] {
		get := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		rec := entry.Record{
			"id":             entry.NewID(),
			"date":           get("date"),
			"color":          get("color"),
			"avoidColor":     get("avoidColor"),
			"emotion":        get("emotion"),
			"episode":        get("episode"),
			"timeOfDay":      get("timeOfDay"),
			"weather":        get("weather"),
			"weatherFeeling": get("weatherFeeling"),
			"timestamp":      get("timestamp"),
		}
		if v := strings.TrimSpace(get("intensity")); v != "" {
			rec["emotionIntensity"] = v
		}
		e, err := entry.Deserialize(rec)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("row %d: %w", n+2, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

// AnalysisReport is the shareable subset of an analysis.
type AnalysisReport struct {
	Period       string         `json:"period" yaml:"period"`
	Start        string         `json:"start" yaml:"start"`
	End          string         `json:"end" yaml:"end"`
	TotalEntries int            `json:"totalEntries" yaml:"totalEntries"`
	TopColors    []stats.Ranked `json:"topColors" yaml:"topColors"`
	TopEmotions  []stats.Ranked `json:"topEmotions" yaml:"topEmotions"`
	Insight      string         `json:"insight" yaml:"insight"`
	GeneratedAt  time.Time      `json:"generatedAt" yaml:"generatedAt"`
}

// Report trims a to its exported fields.
func Report(a *stats.Analysis) AnalysisReport {
	return AnalysisReport{
		Period:       a.Period,
		Start:        a.Start,
		End:          a.End,
		TotalEntries: a.TotalEntries,
		TopColors:    a.TopColors,
		TopEmotions:  a.TopEmotions,
		Insight:      a.Insight,
		GeneratedAt:  a.GeneratedAt,
	}
}

// WriteAnalysis encodes the report of a as indented JSON or YAML.
func WriteAnalysis(w io.Writer, a *stats.Analysis, f Format) error {
	if a == nil {
		return errors.New("export: nil analysis")
	}
	r := Report(a)
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("export: encode analysis: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("export: encode analysis: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("export: analysis cannot be written as %s", f)
}

// Backup is the full-collection archive.
type Backup struct {
	Entries    json.RawMessage `json:"entries"`
	ExportDate time.Time       `json:"exportDate"`
	Version    string          `json:"version"`
}

// WriteBackup archives entries with the export time.
func WriteBackup(w io.Writer, entries []*entry.Entry, now time.Time) error {
	list, err := entry.MarshalList(entries)
	if err != nil {
		return fmt.Errorf("export: encode entries: %w", err)
	}
	b := Backup{Entries: list, ExportDate: now.UTC(), Version: BackupVersion}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("export: encode backup: %w", err)
	}
	return nil
}

// ReadBackup reads a backup object or a bare array of records. Records that
// fail to decode are reported in skipped.
func ReadBackup(r io.Reader) (entries []*entry.Entry, skipped []error, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("export: read backup: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("export: empty backup: %w", entry.ErrDeserialization)
	}
	if data[0] == '[' {
		return entry.UnmarshalList(data)
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, nil, fmt.Errorf("export: decode backup: %v: %w", err, entry.ErrDeserialization)
	}
	if len(b.Entries) == 0 {
		return nil, nil, fmt.Errorf("export: backup has no entries field: %w", entry.ErrDeserialization)
	}
	return entry.UnmarshalList(b.Entries)
}
