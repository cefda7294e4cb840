package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/remote"
	"tableflip.dev/palette/pkg/store"
)

// Persister saves a freshly built entry.
type Persister interface {
	Persist(ctx context.Context, e *entry.Entry) error
}

// Mirror is the part of the remote API the mirror and the sync use.
type Mirror interface {
	Create(ctx context.Context, e *entry.Entry) (*entry.Entry, error)
}

// NewPersister picks the local-only persister, or the mirrored one when cfg
// names a remote and m is set.
func NewPersister(cfg *store.FileConfig, p store.Persistence, m Mirror, logger *zap.Logger) Persister {
	if cfg == nil || cfg.Remote.URL == "" || m == nil {
		return &LocalPersister{Store: p}
	}
	return &MirroredPersister{
		Store:   p,
		Remote:  m,
		Timeout: cfg.Remote.Timeout,
		Log:     logger,
	}
}

// LocalPersister appends to the local store only.
type LocalPersister struct {
	Store store.Persistence
}

func (l *LocalPersister) Persist(ctx context.Context, e *entry.Entry) error {
	if l.Store == nil {
		return ErrNoPersistence
	}
	return l.Store.Append(ctx, e)
}

// MirroredPersister appends locally and then copies the entry to the remote
// in the background. Remote failures never reach the caller; the entry is
// queued for a later sync instead.
type MirroredPersister struct {
	Store   store.Persistence
	Remote  Mirror
	Timeout time.Duration
	Log     *zap.Logger

	wg sync.WaitGroup
}

func (m *MirroredPersister) Persist(ctx context.Context, e *entry.Entry) error {
	if m.Store == nil {
		return ErrNoPersistence
	}
	if err := m.Store.Append(ctx, e); err != nil {
		return err
	}
	cp := e.Clone()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		// The mirror outlives the caller's context but not the timeout.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout())
		defer cancel()
		m.trySaveRemote(ctx, cp)
	}()
	return nil
}

// Wait blocks until every in-flight mirror has finished or been queued.
func (m *MirroredPersister) Wait() {
	m.wg.Wait()
}

func (m *MirroredPersister) timeout() time.Duration {
	if m.Timeout > 0 {
		return m.Timeout
	}
	return remote.DefaultTimeout
}

func (m *MirroredPersister) logger() *zap.Logger {
	if m.Log != nil {
		return m.Log
	}
	return zap.NewNop()
}

func (m *MirroredPersister) trySaveRemote(ctx context.Context, e *entry.Entry) {
	err := createRemote(ctx, m.Remote, e)
	if err == nil {
		return
	}
	m.logger().Warn("app: remote mirror failed, queued for sync", zap.String("id", e.ID), zap.Error(err))
	if qerr := m.Store.Enqueue(ctx, e); qerr != nil {
		m.logger().Error("app: could not queue entry", zap.String("id", e.ID), zap.Error(qerr))
	}
}

func createRemote(ctx context.Context, m Mirror, e *entry.Entry) error {
	if m == nil {
		return fmt.Errorf("app: no remote configured: %w", remote.ErrRemoteUnavailable)
	}
	out := e.Clone()
	out.PendingSync = false
	got, err := m.Create(ctx, out)
	if err != nil {
		if !errors.Is(err, remote.ErrRemoteUnavailable) {
			err = fmt.Errorf("%w: %w", remote.ErrRemoteUnavailable, err)
		}
		return err
	}
	if got == nil || got.ID == "" {
		return fmt.Errorf("app: remote reply has no id: %w", remote.ErrRemoteUnavailable)
	}
	return nil
}
