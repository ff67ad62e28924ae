package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	err    error
	done   chan struct{}
}

func (r *recordingAudit) Record(_ context.Context, e domain.OrderEvent) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d events", i, n)
		}
	}
}

func TestDispatcher_PreservesPerOrderOrdering(t *testing.T) {
	audit := &recordingAudit{done: make(chan struct{}, 16)}
	d := NewDispatcher(4, audit, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	seq := []domain.OrderStatus{domain.StatusPicking, domain.StatusPaid}
	for _, to := range seq {
		d.Enqueue(domain.OrderEvent{OrderID: "ord_1", To: to})
	}
	waitFor(t, audit.done, len(seq))

	audit.mu.Lock()
	defer audit.mu.Unlock()
	for i, to := range seq {
		if audit.events[i].To != to {
			t.Fatalf("event %d: expected %s, got %s", i, to, audit.events[i].To)
		}
	}
}

func TestDispatcher_RecordFailureKeepsWorkerAlive(t *testing.T) {
	audit := &recordingAudit{done: make(chan struct{}, 4), err: errors.New("insert failed")}
	d := NewDispatcher(1, audit, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.OrderEvent{OrderID: "ord_1", To: domain.StatusCancelled})
	d.Enqueue(domain.OrderEvent{OrderID: "ord_2", To: domain.StatusPaid})
	waitFor(t, audit.done, 2)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingAudit{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("ord_42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("ord_42"); got != first {
			t.Fatalf("shard changed from %d to %d", first, got)
		}
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	d := NewDispatcher(1, &recordingAudit{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.OrderEvent{OrderID: "ord_1"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
