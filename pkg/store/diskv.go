package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/entry"
)

// DailyLimit is the most entries a single date may hold.
const DailyLimit = 4

const (
	// KeyEntries holds the JSON array of saved entries.
	KeyEntries = "entries"
	// KeyPending holds entries waiting for the remote mirror.
	KeyPending = "pending-sync"

	corruptSuffix = ".corrupt-"
)

var (
	ErrDailyLimitExceeded = errors.New("daily entry limit exceeded")
	ErrNotFound           = errors.New("entry not found")
	ErrDuplicateID        = errors.New("duplicate entry id")
	ErrStorageWrite       = errors.New("storage write failure")
)

// Persistence is the single seam every consumer uses to reach saved entries.
//
// Writers read the whole collection, modify it and write it back. Within a
// process those cycles are serialized; two processes sharing a base path are
// last-write-wins and can drop each other's changes.
type Persistence interface {
	Append(ctx context.Context, e *entry.Entry) error
	ListAll(ctx context.Context) []*entry.Entry
	ListByDate(ctx context.Context, date string) []*entry.Entry
	ListByDateRange(ctx context.Context, start, end string) []*entry.Entry
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Update(ctx context.Context, id string, patch entry.Patch) (*entry.Entry, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, entries []*entry.Entry) error

	Pending(ctx context.Context) []*entry.Entry
	Enqueue(ctx context.Context, e *entry.Entry) error
	SetPending(ctx context.Context, entries []*entry.Entry) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// kv is the subset of *diskv.Diskv the gateway needs.
type kv interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Has(key string) bool
}

// Option configures a Persistence.
type Option func(*persistence)

// WithLogger routes soft failures (corrupt blobs, skipped records) to l.
func WithLogger(l *zap.Logger) Option {
	return func(p *persistence) {
		if l != nil {
			p.log = l
		}
	}
}

// WithPollInterval sets the polling period used when filesystem
// notifications are unavailable.
func WithPollInterval(d time.Duration) Option {
	return func(p *persistence) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// WithClock overrides the clock used to name corrupt-blob backups.
func WithClock(now func() time.Time) Option {
	return func(p *persistence) {
		if now != nil {
			p.now = now
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path required")
	}
	// Every key holds a whole list that other processes rewrite, so reads
	// always go to disk.
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		CacheSizeMax: 0,
	})
	return newPersistence(d, basePath, opts...), nil
}

// NewMemory returns a Persistence that lives only in this process.
func NewMemory(opts ...Option) Persistence {
	return newPersistence(newMemoryKV(), "", opts...)
}

func newPersistence(store kv, basePath string, opts ...Option) *persistence {
	p := &persistence{
		kv:           store,
		basePath:     basePath,
		log:          zap.NewNop(),
		bus:          newBroadcaster(),
		pollInterval: time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type persistence struct {
	mu           sync.Mutex
	kv           kv
	basePath     string
	log          *zap.Logger
	bus          *broadcaster
	pollInterval time.Duration
	now          func() time.Time
}

// load reads the list stored at key. A blob that cannot be decoded reads as
// empty; raw is returned so the caller can preserve it before overwriting.
func (p *persistence) load(key string) (list []*entry.Entry, raw []byte, corrupt bool) {
	if !p.kv.Has(key) {
		return nil, nil, false
	}
	raw, err := p.kv.Read(key)
	if err != nil {
		p.log.Warn("store: read failed, treating as empty", zap.String("key", key), zap.Error(err))
		return nil, nil, false
	}
	list, skipped, err := entry.UnmarshalList(raw)
	if err != nil {
		p.log.Warn("store: corrupt blob, treating as empty", zap.String("key", key), zap.Error(err))
		return nil, raw, true
	}
	for _, s := range skipped {
		p.log.Warn("store: skipped record", zap.String("key", key), zap.Error(s))
	}
	return list, raw, false
}

func (p *persistence) save(key string, list []*entry.Entry, corruptRaw []byte) error {
	if corruptRaw != nil {
		backup := fmt.Sprintf("%s%s%d", key, corruptSuffix, p.now().Unix())
		if err := p.kv.Write(backup, corruptRaw); err != nil {
			return fmt.Errorf("store: back up corrupt %s: %w: %w", key, ErrStorageWrite, err)
		}
		p.log.Warn("store: preserved corrupt blob", zap.String("key", key), zap.String("backup", backup))
	}
	data, err := entry.MarshalList(list)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w: %w", key, ErrStorageWrite, err)
	}
	if err := p.kv.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w: %w", key, ErrStorageWrite, err)
	}
	p.bus.publish(eventFor(key))
	return nil
}

// mutate runs a read-modify-write cycle on key under the process lock.
func (p *persistence) mutate(key string, fn func([]*entry.Entry) ([]*entry.Entry, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, raw, corrupt := p.load(key)
	next, err := fn(list)
	if err != nil {
		return err
	}
	if !corrupt {
		raw = nil
	}
	return p.save(key, next, raw)
}

func (p *persistence) snapshot(key string) []*entry.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	list, _, _ := p.load(key)
	return cloneAll(list)
}

func (p *persistence) Append(_ context.Context, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return p.mutate(KeyEntries, func(list []*entry.Entry) ([]*entry.Entry, error) {
		if indexOf(list, e.ID) >= 0 {
			return nil, fmt.Errorf("store: %s: %w", e.ID, ErrDuplicateID)
		}
		if n := countOn(list, e.Date, ""); n >= DailyLimit {
			return nil, fmt.Errorf("store: %s already has %d entries: %w", e.Date, n, ErrDailyLimitExceeded)
		}
		saved := e.Clone()
		saved.PendingSync = false
		return append(list, saved), nil
	})
}

func (p *persistence) ListAll(_ context.Context) []*entry.Entry {
	return p.snapshot(KeyEntries)
}

func (p *persistence) ListByDate(ctx context.Context, date string) []*entry.Entry {
	return p.ListByDateRange(ctx, date, date)
}

// ListByDateRange returns entries with start <= date <= end. An empty bound
// leaves that side open.
func (p *persistence) ListByDateRange(ctx context.Context, start, end string) []*entry.Entry {
	return FilterRange(p.ListAll(ctx), start, end)
}

func (p *persistence) Get(ctx context.Context, id string) (*entry.Entry, error) {
	for _, e := range p.ListAll(ctx) {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("store: %s: %w", id, ErrNotFound)
}

func (p *persistence) Update(_ context.Context, id string, patch entry.Patch) (*entry.Entry, error) {
	var updated *entry.Entry
	err := p.mutate(KeyEntries, func(list []*entry.Entry) ([]*entry.Entry, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, fmt.Errorf("store: %s: %w", id, ErrNotFound)
		}
		next := list[i].Apply(patch)
		if err := next.Validate(); err != nil {
			return nil, err
		}
		if next.Date != list[i].Date {
			if n := countOn(list, next.Date, id); n >= DailyLimit {
				return nil, fmt.Errorf("store: %s already has %d entries: %w", next.Date, n, ErrDailyLimitExceeded)
			}
		}
		list[i] = next
		updated = next.Clone()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (p *persistence) Delete(_ context.Context, id string) error {
	return p.mutate(KeyEntries, func(list []*entry.Entry) ([]*entry.Entry, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, fmt.Errorf("store: %s: %w", id, ErrNotFound)
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

// ReplaceAll swaps the whole collection, checking the same invariants Append
// does.
func (p *persistence) ReplaceAll(_ context.Context, entries []*entry.Entry) error {
	seen := make(map[string]struct{}, len(entries))
	perDay := make(map[string]int)
	next := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("store: %s: %w", e.ID, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("store: %s: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
		perDay[e.Date]++
		if perDay[e.Date] > DailyLimit {
			return fmt.Errorf("store: %s: %w", e.Date, ErrDailyLimitExceeded)
		}
		cp := e.Clone()
		cp.PendingSync = false
		next = append(next, cp)
	}
	return p.mutate(KeyEntries, func([]*entry.Entry) ([]*entry.Entry, error) {
		return next, nil
	})
}

func (p *persistence) Pending(_ context.Context) []*entry.Entry {
	return p.snapshot(KeyPending)
}

// Enqueue tags e as pending and adds it to the queue, replacing any queued
// copy with the same id.
func (p *persistence) Enqueue(_ context.Context, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	queued := e.Clone()
	queued.PendingSync = true
	return p.mutate(KeyPending, func(list []*entry.Entry) ([]*entry.Entry, error) {
		if i := indexOf(list, queued.ID); i >= 0 {
			list[i] = queued
			return list, nil
		}
		return append(list, queued), nil
	})
}

func (p *persistence) SetPending(_ context.Context, entries []*entry.Entry) error {
	next := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		cp := e.Clone()
		cp.PendingSync = true
		next = append(next, cp)
	}
	return p.mutate(KeyPending, func([]*entry.Entry) ([]*entry.Entry, error) {
		return next, nil
	})
}

// FilterRange keeps entries whose date falls within [start, end]. Dates are
// YYYY-MM-DD so lexical order is calendar order.
func FilterRange(entries []*entry.Entry, start, end string) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date > end {
			continue
		}
		out = append(out, e)
	}
	return out
}

func indexOf(list []*entry.Entry, id string) int {
	for i, e := range list {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// countOn counts entries dated date, ignoring the entry with id skip.
func countOn(list []*entry.Entry, date, skip string) int {
	n := 0
	for _, e := range list {
		if e.Date == date && e.ID != skip {
			n++
		}
	}
	return n
}

func cloneAll(list []*entry.Entry) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(list))
	for _, e := range list {
		out = append(out, e.Clone())
	}
	return out
}
