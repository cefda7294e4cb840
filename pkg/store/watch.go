package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventEntriesChanged indicates the saved collection changed.
	EventEntriesChanged EventType = iota

	// EventPendingChanged indicates the pending-sync queue changed.
	EventPendingChanged
)

func (t EventType) String() string {
	switch t {
	case EventEntriesChanged:
		return "entries"
	case EventPendingChanged:
		return "pending"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

func eventFor(key string) Event {
	if key == KeyPending {
		return Event{Type: EventPendingChanged, Key: key}
	}
	return Event{Type: EventEntriesChanged, Key: key}
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid missing events. The channel is closed once ctx is
// done.
//
// The in-memory store reports its own writes. The diskv store watches the base
// directory so writes from other processes are seen too, and falls back to
// polling when the platform cannot deliver filesystem notifications.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		ch := p.bus.subscribe()
		go func() {
			<-ctx.Done()
			p.bus.unsubscribe(ch)
		}()
		return ch, nil
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if err = watcher.Add(p.basePath); err != nil {
			_ = watcher.Close()
		}
	}
	if err != nil {
		p.log.Info("store: filesystem notifications unavailable, polling", zap.Error(err), zap.Duration("interval", p.pollInterval))
		return p.poll(ctx), nil
	}

	events := make(chan Event, 64)
	go func() {
		// The throttle flushes from its own goroutine, so sends and the
		// final close share a lock.
		var mu sync.Mutex
		closed := false
		defer func() {
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()
		defer func() {
			if err := watcher.Close(); err != nil {
				p.log.Debug("store: watcher close", zap.Error(err))
			}
		}()

		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next read
				// picks up the change anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug("store: watcher error", zap.Error(err))
				// We cannot tell what changed, so report both keys.
				throttle.Enqueue(eventFor(KeyEntries), send)
				throttle.Enqueue(eventFor(KeyPending), send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				switch key := filepath.Base(evt.Name); key {
				case KeyEntries, KeyPending:
					throttle.Enqueue(eventFor(key), send)
				}
			}
		}
	}()

	return events, nil
}

// poll compares the stored blobs every interval and reports the ones that
// changed.
func (p *persistence) poll(ctx context.Context) <-chan Event {
	events := make(chan Event, 64)
	keys := []string{KeyEntries, KeyPending}
	last := make(map[string][]byte, len(keys))
	read := func(key string) []byte {
		if !p.kv.Has(key) {
			return nil
		}
		b, err := p.kv.Read(key)
		if err != nil {
			return nil
		}
		return b
	}
	for _, key := range keys {
		last[key] = read(key)
	}

	go func() {
		defer close(events)
		ticker := time.NewTicker(p.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, key := range keys {
					cur := read(key)
					if bytes.Equal(cur, last[key]) {
						continue
					}
					last[key] = cur
					select {
					case events <- eventFor(key):
					default:
					}
				}
			}
		}
	}()
	return events
}

// eventThrottle coalesces rapid change notifications so consumers react once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]Event),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]Event)
	t.timer = nil
	t.mu.Unlock()

	for _, ev := range []EventType{EventEntriesChanged, EventPendingChanged} {
		if e, ok := pending[ev]; ok {
			send(e)
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
