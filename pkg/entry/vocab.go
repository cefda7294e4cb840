package entry

import "strings"

// Other is the sentinel choice that defers to custom free text.
const Other = "other"

// IsOther reports whether v is the Other sentinel.
func IsOther(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), Other)
}

// palette is three rows of eleven swatches: light, mid, and deep tones.
var palette = []string{
	"#FDD6D6", "#FFDAC7", "#F9F2A2", "#E0F5BA", "#B7EDB9",
	"#BBEAE2", "#B9EAF2", "#BCDFFF", "#D5CAF5", "#FFCBE9", "#FFFFFF",
	"#D32929", "#F46B06", "#FFD700", "#91C249", "#33A24F",
	"#4EA9B1", "#3A85B8", "#2356A7", "#7445A3", "#B93984", "#B2B2B2",
	"#7A0724", "#864F3A", "#84753C", "#5B8643", "#206340",
	"#256872", "#154D6F", "#0D295D", "#39155F", "#4F1040", "#000000",
}

// PaletteRow is the number of swatches per palette row.
const PaletteRow = 11

var emotions = []string{
	"joy", "sadness", "anger", "fear", "surprise", "disgust", "love",
	"gratitude", "hope", "despair", "loneliness", "calm", "anxiety", "happiness",
	"gloom", "irritation", "excitement", "regret", "envy", "satisfaction", Other,
}

var timesOfDay = []string{
	"dawn (04:00-06:00)",
	"morning (06:00-09:00)",
	"late morning (09:00-12:00)",
	"midday (12:00-14:00)",
	"afternoon (14:00-17:00)",
	"evening (17:00-20:00)",
	"night (20:00-24:00)",
	"late night (24:00-04:00)",
}

var weathers = []string{
	"sunny", "cloudy", "rain", "snow", "wind",
	"fog", "thunderstorm", "heat wave", "cold",
}

var weatherFeelings = map[string][]string{
	"sunny":        {"refreshed", "lively", "bright", "warm", "cheerful", "energized", Other},
	"cloudy":       {"settled", "down", "comfortable", "stifled", "dreamy", "peaceful", Other},
	"rain":         {"settled", "down", "romantic", "cool", "lonely", "cleansed", Other},
	"snow":         {"thrilled", "chilly", "peaceful", "fairytale", "mysterious", "pure", Other},
	"wind":         {"cool", "refreshed", "uneasy", "free", "dynamic", Other},
	"fog":          {"dreamy", "mysterious", "stifled", "settled", "eerie", "quiet", Other},
	"thunderstorm": {"afraid", "thrilled", "awed", "uneasy", "intense", "tense", Other},
	"heat wave":    {"irritated", "drained", "languid", "uncomfortable", "stifled", "worn out", Other},
	"cold":         {"huddled", "longing for warmth", "refreshed", "down", "crisp", "solitary", Other},
}

// Palette returns the preset swatches in display order.
func Palette() []string { return clone(palette) }

// Emotions returns the emotion vocabulary, Other last.
func Emotions() []string { return clone(emotions) }

// TimesOfDay returns the eight time bands in chronological order.
func TimesOfDay() []string { return clone(timesOfDay) }

// Weathers returns the weather vocabulary.
func Weathers() []string { return clone(weathers) }

// WeatherFeelings returns the feelings offered for a weather, or nil when the
// weather is unknown.
func WeatherFeelings(weather string) []string {
	f, ok := weatherFeelings[weather]
	if !ok {
		return nil
	}
	return clone(f)
}

func IsEmotion(v string) bool { return contains(emotions, v) }

func IsTimeOfDay(v string) bool { return contains(timesOfDay, v) }

func IsWeather(v string) bool { return contains(weathers, v) }

// IsWeatherFeeling reports whether v is offered for weather.
func IsWeatherFeeling(weather, v string) bool {
	return contains(weatherFeelings[weather], v)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clone(in []string) []string {
	return append([]string(nil), in...)
}
