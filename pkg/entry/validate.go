package entry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrMissingRequiredField marks a required value left empty.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidField marks a value outside its allowed shape or range.
	ErrInvalidField = errors.New("invalid field")
	// ErrDeserialization marks a stored record that could not be decoded.
	ErrDeserialization = errors.New("deserialization failure")
)

// FieldError names the field that failed validation.
type FieldError struct {
	Field string
	Err   error
	// Detail is optional extra context.
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("entry: %s: %s: %s", e.Err, e.Field, e.Detail)
	}
	return fmt.Sprintf("entry: %s: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Missing builds a FieldError for an empty required field.
func Missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingRequiredField}
}

// Invalid builds a FieldError for a malformed field.
func Invalid(field, detail string) error {
	return &FieldError{Field: field, Err: ErrInvalidField, Detail: detail}
}

// NormalizeColor returns the canonical "#RRGGBB" upper-case form of v.
func NormalizeColor(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if len(v) != 7 {
		return "", fmt.Errorf("color %q must have six hex digits", v)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return "", fmt.Errorf("color %q: %w", v, err)
	}
	return strings.ToUpper(c.Hex()), nil
}

// Validate checks the fields every saved entry must carry.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Color) == "" {
		return Missing("color")
	}
	if strings.TrimSpace(e.Emotion) == "" || IsOther(e.Emotion) {
		return Missing("emotion")
	}
	if _, err := NormalizeColor(e.Color); err != nil {
		return Invalid("color", err.Error())
	}
	if _, err := NormalizeColor(e.AvoidColor); err != nil {
		return Invalid("avoidColor", err.Error())
	}
	if e.EmotionIntensity < MinIntensity || e.EmotionIntensity > MaxIntensity {
		return Invalid("emotionIntensity", fmt.Sprintf("%d not in %d..%d", e.EmotionIntensity, MinIntensity, MaxIntensity))
	}
	if strings.TrimSpace(e.Date) == "" {
		return Missing("date")
	}
	if _, err := ParseDate(e.Date); err != nil {
		return Invalid("date", err.Error())
	}
	if IsOther(e.WeatherFeeling) {
		return Missing("weatherFeeling")
	}
	return nil
}
