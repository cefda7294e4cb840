package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/palette/pkg/entry"
)

// EntryOptions holds the fields of an entry given on the command line.
type EntryOptions struct {
	Color          string
	AvoidColor     string
	Emotion        string
	Intensity      int
	Episode        string
	TimeOfDay      string
	Weather        string
	WeatherFeeling string

	On OnOptions
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		"Color for the mood as #RRGGBB.")
	cmd.Flags().StringVar(&o.AvoidColor, "avoid", "",
		"A color to stay away from, as #RRGGBB.")
	cmd.Flags().StringVarP(&o.Emotion, "emotion", "e", "",
		"Emotion felt, example: --emotion=calm.")
	cmd.Flags().IntVarP(&o.Intensity, "intensity", "n", entry.DefaultIntensity,
		"How strongly, 1 to 5.")
	cmd.Flags().StringVarP(&o.Episode, "episode", "m", "",
		"What happened.")
	cmd.Flags().StringVar(&o.TimeOfDay, "time", "",
		"Time of day: "+strings.Join(entry.TimesOfDay(), ", ")+".")
	cmd.Flags().StringVar(&o.Weather, "weather", "",
		"Weather: "+strings.Join(entry.Weathers(), ", ")+".")
	cmd.Flags().StringVar(&o.WeatherFeeling, "feeling", "",
		"How the weather felt.")
	AddOnArgs(cmd, &o.On)

	_ = cmd.RegisterFlagCompletionFunc("emotion", fixed(entry.Emotions()))
	_ = cmd.RegisterFlagCompletionFunc("time", fixed(entry.TimesOfDay()))
	_ = cmd.RegisterFlagCompletionFunc("weather", fixed(entry.Weathers()))
}

func fixed(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// Draft builds a new entry from the flags.
func (o *EntryOptions) Draft() (entry.Draft, error) {
	date, err := o.On.Date()
	if err != nil {
		return entry.Draft{}, err
	}
	d := entry.NewDraft()
	d.Date = date
	d.Color = o.Color
	d.AvoidColor = o.AvoidColor
	d.Emotion = o.Emotion
	d.EmotionIntensity = o.Intensity
	d.Episode = o.Episode
	d.TimeOfDay = o.TimeOfDay
	d.Weather = o.Weather
	d.WeatherFeeling = o.WeatherFeeling
	return d, nil
}

// Patch holds only the flags set on cmd.
func (o *EntryOptions) Patch(cmd *cobra.Command) (entry.Patch, error) {
	var p entry.Patch
	changed := cmd.Flags().Changed
	str := func(name, v string) *string {
		if changed(name) {
			return &v
		}
		return nil
	}
	p.Color = str("color", o.Color)
	p.AvoidColor = str("avoid", o.AvoidColor)
	p.Emotion = str("emotion", o.Emotion)
	p.Episode = str("episode", o.Episode)
	p.TimeOfDay = str("time", o.TimeOfDay)
	p.Weather = str("weather", o.Weather)
	p.WeatherFeeling = str("feeling", o.WeatherFeeling)
	if changed("intensity") {
		n := o.Intensity
		p.EmotionIntensity = &n
	}
	if changed("on") {
		date, err := o.On.Date()
		if err != nil {
			return p, err
		}
		p.Date = &date
	}
	return p, nil
}
