package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/remote"
	"tableflip.dev/palette/pkg/store"
)

// Service provides high-level operations over the journal.
// It wraps persistence, the remote mirror and the statistics so the CLI, the
// wizard and the MCP server share one code path.
type Service struct {
	Persistence store.Persistence
	Persister   Persister
	// Remote is nil when no mirror is configured.
	Remote Mirror
	Log    *zap.Logger
	// Now is the clock used for defaults and statistics.
	Now func() time.Time
}

var ErrNoPersistence = errors.New("app: no persistence configured")

// New wires a Service from the resolved configuration. A remote URL in cfg
// turns on the best-effort mirror.
func New(cfg *store.FileConfig, p store.Persistence, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		Persistence: p,
		Log:         logger,
	}
	if cfg != nil && cfg.Remote.URL != "" {
		s.Remote = remote.New(cfg.Remote.URL, cfg.Remote.Timeout)
	}
	s.Persister = NewPersister(cfg, p, s.Remote, logger)
	return s
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Logger never returns nil.
func (s *Service) Logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}

// Persist satisfies the wizard's saver through the configured persister.
func (s *Service) Persist(ctx context.Context, e *entry.Entry) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	p := s.Persister
	if p == nil {
		p = &LocalPersister{Store: s.Persistence}
	}
	return p.Persist(ctx, e)
}

// Save builds an entry from d, validates it and persists it.
func (s *Service) Save(ctx context.Context, d entry.Draft) (*entry.Entry, error) {
	e := entry.New(d, s.now())
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.Persist(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Entries lists every saved entry in insertion order.
func (s *Service) Entries(ctx context.Context) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.ListAll(ctx), nil
}

// EntriesOn lists the entries of one date.
func (s *Service) EntriesOn(ctx context.Context, date string) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if _, err := entry.ParseDate(date); err != nil {
		return nil, fmt.Errorf("app: bad date %q: %w", date, err)
	}
	return s.Persistence.ListByDate(ctx, date), nil
}

// EntriesBetween lists entries dated within [start, end]. Either bound may be
// empty.
func (s *Service) EntriesBetween(ctx context.Context, start, end string) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := entry.ParseDate(d); err != nil {
			return nil, fmt.Errorf("app: bad date %q: %w", d, err)
		}
	}
	return s.Persistence.ListByDateRange(ctx, start, end), nil
}

func (s *Service) Get(ctx context.Context, id string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Get(ctx, id)
}

// Update applies patch to the entry id.
func (s *Service) Update(ctx context.Context, id string, patch entry.Patch) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if patch.Empty() {
		return nil, errors.New("app: nothing to update")
	}
	return s.Persistence.Update(ctx, id, patch)
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.Delete(ctx, id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Import replaces the whole collection with entries. The daily cap and id
// uniqueness are checked before anything is written.
func (s *Service) Import(ctx context.Context, entries []*entry.Entry) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if err := s.Persistence.ReplaceAll(ctx, entries); err != nil {
		return err
	}
	s.Logger().Info("app: imported entries", zap.Int("count", len(entries)))
	return nil
}

// Wait blocks until in-flight remote mirrors finish.
func (s *Service) Wait() {
	if w, ok := s.Persister.(interface{ Wait() }); ok {
		w.Wait()
	}
}
