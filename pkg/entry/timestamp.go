package entry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutDate is the calendar date format used for Entry.Date.
const LayoutDate = "2006-01-02"

// ParseTime accepts RFC3339 with or without fractional seconds.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD date in the local zone.
func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(v), time.Local)
}

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) string {
	return t.Local().Format(LayoutDate)
}

type Timestamp struct {
	time.Time
}

func (t Timestamp) SameDay(then time.Time) bool {
	return DateOf(t.Time) == DateOf(then)
}

func (t Timestamp) SameMonth(then time.Time) bool {
	return t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			t.Time = time.Time{}
			return nil
		}
		var err error
		t.Time, err = ParseTime(v)
		return err
	case float64:
		t.Time = time.UnixMilli(int64(v)).UTC()
		return nil
	default:
		return fmt.Errorf("timestamp: unsupported value %v", raw)
	}
}

func (t Timestamp) String() string {
	return FormatTime(t.Time)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
