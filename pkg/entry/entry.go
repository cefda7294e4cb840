package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultIntensity is the midpoint of the 1..5 intensity scale.
	DefaultIntensity = 3
	MinIntensity     = 1
	MaxIntensity     = 5
)

// Entry is a single journaled mood record. Once saved it only changes through
// an explicit update.
type Entry struct {
	ID               string    `json:"id"`
	Date             string    `json:"date"`
	Color            string    `json:"color"`
	AvoidColor       string    `json:"avoidColor,omitempty"`
	Emotion          string    `json:"emotion"`
	EmotionIntensity int       `json:"emotionIntensity"`
	Episode          string    `json:"episode,omitempty"`
	TimeOfDay        string    `json:"timeOfDay,omitempty"`
	Weather          string    `json:"weather,omitempty"`
	WeatherFeeling   string    `json:"weatherFeeling,omitempty"`
	Timestamp        Timestamp `json:"timestamp"`
	PendingSync      bool      `json:"pendingSync,omitempty"`
}

// Draft holds the values collected before an entry exists. Emotion and
// WeatherFeeling may hold the Other sentinel, in which case the matching
// custom field carries the real value.
type Draft struct {
	Date                 string
	Color                string
	AvoidColor           string
	Emotion              string
	CustomEmotion        string
	EmotionIntensity     int
	Episode              string
	TimeOfDay            string
	Weather              string
	WeatherFeeling       string
	CustomWeatherFeeling string
	Timestamp            time.Time
}

// NewDraft returns an empty draft with the default intensity.
func NewDraft() Draft {
	return Draft{EmotionIntensity: DefaultIntensity}
}

// ResolvedEmotion substitutes the custom text for the Other sentinel.
func (d Draft) ResolvedEmotion() string {
	if IsOther(d.Emotion) {
		return strings.TrimSpace(d.CustomEmotion)
	}
	return d.Emotion
}

// ResolvedWeatherFeeling substitutes the custom text for the Other sentinel.
func (d Draft) ResolvedWeatherFeeling() string {
	if IsOther(d.WeatherFeeling) {
		return strings.TrimSpace(d.CustomWeatherFeeling)
	}
	return d.WeatherFeeling
}

// New builds an entry from a draft, assigning a fresh id. Date and timestamp
// default to now when the draft leaves them empty. The daily cap is not checked
// here; the store owns that.
func New(d Draft, now time.Time) *Entry {
	ts := d.Timestamp
	if ts.IsZero() {
		ts = now
	}
	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = DateOf(ts)
	}
	intensity := d.EmotionIntensity
	if intensity == 0 {
		intensity = DefaultIntensity
	}
	color, err := NormalizeColor(d.Color)
	if err != nil {
		color = strings.TrimSpace(d.Color)
	}
	avoid, err := NormalizeColor(d.AvoidColor)
	if err != nil {
		avoid = strings.TrimSpace(d.AvoidColor)
	}
	return &Entry{
		ID:               NewID(),
		Date:             date,
		Color:            color,
		AvoidColor:       avoid,
		Emotion:          d.ResolvedEmotion(),
		EmotionIntensity: intensity,
		Episode:          strings.TrimSpace(d.Episode),
		TimeOfDay:        d.TimeOfDay,
		Weather:          d.Weather,
		WeatherFeeling:   d.ResolvedWeatherFeeling(),
		Timestamp:        Timestamp{Time: ts},
	}
}

// NewID returns a fresh entry identifier.
func NewID() string {
	return "emotion_" + uuid.NewString()
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Equal reports whether both entries carry the same values. Timestamps are
// compared as instants.
func (e *Entry) Equal(o *Entry) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.ID == o.ID &&
		e.Date == o.Date &&
		e.Color == o.Color &&
		e.AvoidColor == o.AvoidColor &&
		e.Emotion == o.Emotion &&
		e.EmotionIntensity == o.EmotionIntensity &&
		e.Episode == o.Episode &&
		e.TimeOfDay == o.TimeOfDay &&
		e.Weather == o.Weather &&
		e.WeatherFeeling == o.WeatherFeeling &&
		e.Timestamp.Equal(o.Timestamp.Time) &&
		e.PendingSync == o.PendingSync
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Date             *string `json:"date,omitempty"`
	Color            *string `json:"color,omitempty"`
	AvoidColor       *string `json:"avoidColor,omitempty"`
	Emotion          *string `json:"emotion,omitempty"`
	EmotionIntensity *int    `json:"emotionIntensity,omitempty"`
	Episode          *string `json:"episode,omitempty"`
	TimeOfDay        *string `json:"timeOfDay,omitempty"`
	Weather          *string `json:"weather,omitempty"`
	WeatherFeeling   *string `json:"weatherFeeling,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Date == nil && p.Color == nil && p.AvoidColor == nil &&
		p.Emotion == nil && p.EmotionIntensity == nil && p.Episode == nil &&
		p.TimeOfDay == nil && p.Weather == nil && p.WeatherFeeling == nil
}

// Apply returns a copy of e with the patch applied. The id never changes.
func (e *Entry) Apply(p Patch) *Entry {
	out := e.Clone()
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&out.Date, p.Date)
	set(&out.AvoidColor, p.AvoidColor)
	set(&out.Emotion, p.Emotion)
	set(&out.Episode, p.Episode)
	set(&out.TimeOfDay, p.TimeOfDay)
	set(&out.Weather, p.Weather)
	set(&out.WeatherFeeling, p.WeatherFeeling)
	if p.Color != nil {
		if c, err := NormalizeColor(*p.Color); err == nil {
			out.Color = c
		} else {
			out.Color = strings.TrimSpace(*p.Color)
		}
	}
	if p.AvoidColor != nil {
		if c, err := NormalizeColor(*p.AvoidColor); err == nil {
			out.AvoidColor = c
		}
	}
	if p.EmotionIntensity != nil {
		out.EmotionIntensity = *p.EmotionIntensity
	}
	return out
}

func (e *Entry) Title() string {
	return e.Date
}

func (e *Entry) Row() (string, string, string, string) {
	return e.Timestamp.Local().Format("15:04"), e.Color, fmt.Sprintf("%s (%d/5)", e.Emotion, e.EmotionIntensity), e.Episode
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %s %s (%d/5)", e.Date, e.Color, e.Emotion, e.EmotionIntensity)
}
