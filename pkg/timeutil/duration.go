package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the fallback look-back window used when none is provided.
	DefaultWindow = "1w"

	layoutDate = "2006-01-02"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	// unitDays maps window units to calendar days. A month is 30 days.
	unitDays = map[string]int{
		"d":      1,
		"day":    1,
		"days":   1,
		"w":      7,
		"wk":     7,
		"wks":    7,
		"week":   7,
		"weeks":  7,
		"mo":     30,
		"mos":    30,
		"month":  30,
		"months": 30,
	}
)

// ParseWindow parses a human-friendly look-back window (for example "1w",
// "10d" or "1w2d") and returns the number of calendar days it covers along with
// a canonical, compact label. When the input is empty, the default window of
// one week is used.
func ParseWindow(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	total := 0
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		valueStr := matches[1]
		unitStr := matches[2]

		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", valueStr, err)
		}
		per, ok := unitDays[unitStr]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", unitStr)
		}
		total += value * per

		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must be at least one day")
	}

	return total, FormatWindow(total), nil
}

// FormatWindow renders a day count using week/day tokens.
func FormatWindow(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}

// Today returns the local calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Local().Format(layoutDate)
}

// ShiftDate moves a YYYY-MM-DD date by n calendar days.
func ShiftDate(date string, n int) (string, error) {
	t, err := time.ParseInLocation(layoutDate, date, time.Local)
	if err != nil {
		return "", err
	}
	// Noon keeps daylight-saving shifts from crossing a day boundary.
	t = time.Date(t.Year(), t.Month(), t.Day()+n, 12, 0, 0, 0, time.Local)
	return t.Format(layoutDate), nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// MonthBounds returns the first and last date of the month containing t.
func MonthBounds(t time.Time) (string, string) {
	t = t.Local()
	first := time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first.Format(layoutDate), last.Format(layoutDate)
}
