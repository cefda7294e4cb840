package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Record is the flat, primitive-valued form an entry takes in storage.
type Record map[string]any

// Serialize flattens e into a Record.
func (e *Entry) Serialize() Record {
	r := Record{
		"id":               e.ID,
		"date":             e.Date,
		"color":            e.Color,
		"avoidColor":       e.AvoidColor,
		"emotion":          e.Emotion,
		"emotionIntensity": e.EmotionIntensity,
		"episode":          e.Episode,
		"timeOfDay":        e.TimeOfDay,
		"weather":          e.Weather,
		"weatherFeeling":   e.WeatherFeeling,
		"timestamp":        "",
	}
	if !e.Timestamp.IsZero() {
		r["timestamp"] = FormatTime(e.Timestamp.Time)
	}
	if e.PendingSync {
		r["pendingSync"] = true
	}
	return r
}

// Deserialize rebuilds an entry from a Record. Numbers may arrive as int,
// float64 or json.Number depending on the decoder; timestamps may be RFC3339
// strings or unix milliseconds.
func Deserialize(r Record) (*Entry, error) {
	if r == nil {
		return nil, fmt.Errorf("entry: nil record: %w", ErrDeserialization)
	}
	e := &Entry{
		ID:             str(r, "id"),
		Date:           str(r, "date"),
		Color:          str(r, "color"),
		AvoidColor:     str(r, "avoidColor"),
		Emotion:        str(r, "emotion"),
		Episode:        str(r, "episode"),
		TimeOfDay:      str(r, "timeOfDay"),
		Weather:        str(r, "weather"),
		WeatherFeeling: str(r, "weatherFeeling"),
	}
	if e.ID == "" {
		return nil, fmt.Errorf("entry: record without id: %w", ErrDeserialization)
	}

	e.EmotionIntensity = DefaultIntensity
	if raw, ok := r["emotionIntensity"]; ok && raw != nil {
		n, err := number(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %s: emotionIntensity: %v: %w", e.ID, err, ErrDeserialization)
		}
		e.EmotionIntensity = int(n)
	}

	switch ts := r["timestamp"].(type) {
	case nil:
	case string:
		if ts != "" {
			t, err := ParseTime(ts)
			if err != nil {
				return nil, fmt.Errorf("entry %s: timestamp: %v: %w", e.ID, err, ErrDeserialization)
			}
			e.Timestamp = Timestamp{Time: t}
		}
	default:
		ms, err := number(ts)
		if err != nil {
			return nil, fmt.Errorf("entry %s: timestamp: %v: %w", e.ID, err, ErrDeserialization)
		}
		e.Timestamp = Timestamp{Time: time.UnixMilli(int64(ms)).UTC()}
	}

	if e.Date == "" && !e.Timestamp.IsZero() {
		e.Date = DateOf(e.Timestamp.Time)
	}
	if p, ok := r["pendingSync"].(bool); ok {
		e.PendingSync = p
	}
	return e, nil
}

func str(r Record, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("not a finite number")
		}
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// MarshalList encodes entries as a JSON array of records.
func MarshalList(entries []*Entry) ([]byte, error) {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		records = append(records, e.Serialize())
	}
	return json.Marshal(records)
}

// UnmarshalList decodes a JSON array of records. A blob that is not an array
// returns an error wrapping ErrDeserialization; individual records that fail
// are reported in skipped and left out of the result.
func UnmarshalList(data []byte) (entries []*Entry, skipped []error, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("entry: decode list: %v: %w", err, ErrDeserialization)
	}
	entries = make([]*Entry, 0, len(records))
	for _, r := range records {
		e, err := Deserialize(r)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}
