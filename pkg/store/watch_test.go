package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsEntryChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Append(ctx, newEntry("2025-01-15", "#FF0000", "joy")); err != nil {
		t.Fatalf("append: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventEntriesChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for entries change event")
		}
	}
}

func TestMemoryWatchBroadcasts(t *testing.T) {
	p := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	a, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	b, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := p.Enqueue(ctx, newEntry("2025-01-15", "#FF0000", "joy")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	for _, ch := range []<-chan Event{a, b} {
		select {
		case evt := <-ch:
			if evt.Type != EventPendingChanged {
				t.Fatalf("expected pending event, got %v", evt.Type)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for pending event")
		}
	}

	cancel()
	select {
	case _, ok := <-a:
		if ok {
			t.Fatal("expected channel to close after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestPollDetectsChanges(t *testing.T) {
	p := newPersistence(newMemoryKV(), "", WithPollInterval(10*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := p.poll(ctx)
	if err := p.Append(ctx, newEntry("2025-01-15", "#FF0000", "joy")); err != nil {
		t.Fatalf("append: %v", err)
	}
	select {
	case evt := <-ch:
		if evt.Type != EventEntriesChanged {
			t.Fatalf("expected entries event, got %v", evt.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for polled change")
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 10)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(eventFor(KeyEntries), send)
	}
	th.Enqueue(eventFor(KeyPending), send)

	time.Sleep(100 * time.Millisecond)
	if n := len(got); n != 2 {
		t.Fatalf("expected 2 coalesced events, got %d", n)
	}
	if first := <-got; first.Type != EventEntriesChanged {
		t.Fatalf("expected entries event first, got %v", first.Type)
	}
}
