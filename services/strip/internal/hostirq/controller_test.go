// services/strip/internal/hostirq/controller_test.go

package hostirq

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestRaiseRunsHandlerAsynchronously(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())

	c := New(4)
	c.Start(ctx)

	l := c.Line("mode")
	fired := make(chan bool, 1)
	_ = l.OnEdge(func() {
		fired <- l.Pending()
		l.ClearPending()
	})

	l.Raise()
	select {
	case pending := <-fired:
		if !pending {
			t.Fatal("handler ran without a latched pending flag")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for handler")
	}
	if l.Pending() {
		t.Fatal("pending flag still set after handler cleared it")
	}

	cancel()
	<-c.Stopped()
}

func TestEdgeWhilePendingMerges(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())

	c := New(4)
	l := c.Line("color")
	var calls atomic.Int32
	_ = l.OnEdge(func() {
		calls.Add(1)
		l.ClearPending()
	})

	// Dispatcher not yet running: the second edge finds the line pending.
	l.Raise()
	l.Raise()
	if c.Merged() != 1 {
		t.Fatalf("merged = %d, want 1", c.Merged())
	}

	c.Start(ctx)
	deadline := time.Now().Add(100 * time.Millisecond)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("handler calls = %d, want 1", got)
	}

	cancel()
	<-c.Stopped()
}

func TestQueueFullDropsAndUnlatches(t *testing.T) {
	c := New(1)
	a := c.Line("a")
	b := c.Line("b")

	a.Raise() // fills the queue
	b.Raise() // dropped
	if c.Drops() != 1 {
		t.Fatalf("drops = %d, want 1", c.Drops())
	}
	if b.Pending() {
		t.Fatal("dropped line left latched")
	}
}

func TestUnhandledLineIsAcknowledged(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())

	c := New(4)
	c.Start(ctx)
	l := c.Line("spare")
	l.Raise()

	deadline := time.Now().Add(100 * time.Millisecond)
	for l.Pending() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if l.Pending() {
		t.Fatal("unhandled line stayed pending")
	}

	cancel()
	<-c.Stopped()
}

func TestLineIsStablePerName(t *testing.T) {
	c := New(0)
	if c.Line("mode") != c.Line("mode") {
		t.Fatal("Line returned distinct instances for one name")
	}
	if c.Line("mode").Name() != "mode" {
		t.Fatal("unexpected line name")
	}
}
