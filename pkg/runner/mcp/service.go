// Package mcp provides the Model Context Protocol server integration for palette.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/stats"
)

// Service adapts the journal service to the shapes MCP tools return.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when an entry cannot be located in persistence.
var ErrEntryNotFound = errors.New("entry not found")

// AddEntryOptions captures the parameters used to create a new entry.
type AddEntryOptions struct {
	Date           string
	Color          string
	AvoidColor     string
	Emotion        string
	Intensity      int
	Episode        string
	TimeOfDay      string
	Weather        string
	WeatherFeeling string
}

// DaySummary describes one date and basic aggregate metadata.
type DaySummary struct {
	Date         string  `json:"date"`
	EntryCount   int     `json:"entryCount"`
	Color        string  `json:"color,omitempty"`
	Emotion      string  `json:"emotion,omitempty"`
	AvgIntensity float64 `json:"avgIntensity"`
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	*entry.Entry
	CreatedUnix int64 `json:"createdUnix"`
}

// NewService builds a service wrapper around the journal service.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil || s.App.Persistence == nil {
		return errors.New("persistence is not configured")
	}
	return nil
}

// ListDays returns summaries for every date with entries, newest first.
func (s *Service) ListDays(ctx context.Context) ([]DaySummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string][]*entry.Entry)
	for _, e := range all {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	out := make([]DaySummary, 0, len(byDate))
	for date, list := range byDate {
		colors := make([]string, 0, len(list))
		emotions := make([]string, 0, len(list))
		sum := 0
		for _, e := range list {
			colors = append(colors, e.Color)
			emotions = append(emotions, e.Emotion)
			sum += e.EmotionIntensity
		}
		out = append(out, DaySummary{
			Date:         date,
			EntryCount:   len(list),
			Color:        stats.DominantValue(colors),
			Emotion:      stats.DominantValue(emotions),
			AvgIntensity: float64(sum) / float64(len(list)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// ListEntries returns entries between start and end inclusive; empty bounds
// are open.
func (s *Service) ListEntries(ctx context.Context, start, end string) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries, err := s.App.EntriesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return toDTOs(entries), nil
}

// AddEntry validates and saves a new entry.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d := entry.NewDraft()
	d.Date = strings.TrimSpace(opts.Date)
	d.Color = opts.Color
	d.AvoidColor = opts.AvoidColor
	d.Emotion = strings.TrimSpace(opts.Emotion)
	if opts.Intensity != 0 {
		d.EmotionIntensity = opts.Intensity
	}
	d.Episode = opts.Episode
	d.TimeOfDay = opts.TimeOfDay
	d.Weather = opts.Weather
	d.WeatherFeeling = opts.WeatherFeeling

	e, err := s.App.Save(ctx, d)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// UpdateEntry applies a partial update.
func (s *Service) UpdateEntry(ctx context.Context, id string, patch entry.Patch) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.App.Update(ctx, strings.TrimSpace(id), patch)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.findEntry(ctx, id); err != nil {
		return err
	}
	return s.App.Delete(ctx, strings.TrimSpace(id))
}

// SearchEntries performs a case-insensitive search across emotion, episode,
// colors and weather.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 {
		limit = 25
	}
	all, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	sortEntries(all)
	var matches []*entry.Entry
	for _, e := range all {
		hay := strings.ToLower(strings.Join([]string{
			e.Emotion, e.Episode, e.Color, e.AvoidColor, e.Weather, e.WeatherFeeling, e.TimeOfDay,
		}, " "))
		if strings.Contains(hay, q) {
			matches = append(matches, e)
			if len(matches) == limit {
				break
			}
		}
	}
	return toDTOs(matches), nil
}

// EntryByID fetches a single entry.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	e, err := s.findEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// Analyze computes the analysis for a period name such as 1week or 2025-01.
func (s *Service) Analyze(ctx context.Context, period string) (*stats.Analysis, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	p, err := stats.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.App.Analyze(ctx, p)
}

// Summary computes the all-time overview.
func (s *Service) Summary(ctx context.Context) (*stats.Overview, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Summary(ctx)
}

func (s *Service) findEntry(ctx context.Context, id string) (*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id must not be empty")
	}
	e, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, nil
}

// sortEntries orders newest first.
func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Timestamp.After(entries[j].Timestamp.Time)
	})
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	dto := EntryDTO{Entry: e}
	if !e.Timestamp.IsZero() {
		dto.CreatedUnix = e.Timestamp.Unix()
	}
	return dto
}
