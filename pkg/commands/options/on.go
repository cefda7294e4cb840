package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/entry"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
	// Now is the reference clock, defaults to time.Now.
	Now func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2025-2-28" or --on="2/28".`)
}

func (o *OnOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// GetOn parses --on. It returns nil when the flag is unset.
func (o *OnOptions) GetOn() (*time.Time, error) {
	return parseDay(o.OnString, o.now())
}

// Date is GetOn as YYYY-MM-DD, empty when unset.
func (o *OnOptions) Date() (string, error) {
	t, err := o.GetOn()
	if err != nil || t == nil {
		return "", err
	}
	return entry.DateOf(*t), nil
}

func parseDay(s string, now time.Time) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, s, time.Local)
		if err != nil {
			return nil, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// A journal looks back: 12/30 said on 1/3 means last December.
		if entry.DateOf(t) > entry.DateOf(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return &t, nil
}

// RangeOptions
type RangeOptions struct {
	From string
	To   string
	Now  func() time.Time
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		`First date to include, example: --from="2025-1-1" or --from="1/1".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Last date to include, example: --to="2025-1-31".`)
}

// Dates returns the range as YYYY-MM-DD strings; unset ends are empty.
func (o *RangeOptions) Dates() (start, end string, err error) {
	now := time.Now()
	if o.Now != nil {
		now = o.Now()
	}
	from, err := parseDay(o.From, now)
	if err != nil {
		return "", "", err
	}
	to, err := parseDay(o.To, now)
	if err != nil {
		return "", "", err
	}
	if from != nil {
		start = entry.DateOf(*from)
	}
	if to != nil {
		end = entry.DateOf(*to)
	}
	return start, end, nil
}
