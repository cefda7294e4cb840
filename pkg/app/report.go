package app

import (
	"context"
	"time"

	"tableflip.dev/palette/pkg/stats"
)

// Analyze runs the period analysis over every saved entry.
func (s *Service) Analyze(ctx context.Context, p stats.Period) (*stats.Analysis, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Analyze(all, p, s.now()), nil
}

// Summary returns the all-time overview.
func (s *Service) Summary(ctx context.Context) (*stats.Overview, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Summarize(all, s.now()), nil
}

// Calendar lays out the month containing ref.
func (s *Service) Calendar(ctx context.Context, ref time.Time) (stats.MonthGrid, error) {
	first, last := monthRange(ref)
	in, err := s.EntriesBetween(ctx, first, last)
	if err != nil {
		return stats.MonthGrid{}, err
	}
	return stats.Calendar(in, ref, s.now()), nil
}

// Buckets groups every entry by calendar week or month.
func (s *Service) Buckets(ctx context.Context, g stats.Granularity) ([]stats.PeriodBucket, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Buckets(all, g)
}

// Streak is the number of consecutive days, ending today, with an entry.
func (s *Service) Streak(ctx context.Context) (int, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return 0, err
	}
	return stats.Streak(all, s.now()), nil
}

func monthRange(ref time.Time) (string, string) {
	return stats.CalendarMonth(ref).Window(ref)
}
