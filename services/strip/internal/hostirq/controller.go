// services/strip/internal/hostirq/controller.go
package hostirq

import (
	"context"
	"sync"
	"sync/atomic"
)

// Controller stands in for an interrupt controller on host builds. Raise
// latches a line's pending flag; a single dispatcher goroutine then runs the
// line's handler asynchronously to whatever code raised the edge.
//
// Like hardware, an edge raised while the line is already pending merges
// with it rather than queueing a second invocation.
type Controller struct {
	q       chan *Line
	stopped chan struct{}

	mu    sync.Mutex
	lines map[string]*Line

	drops  atomic.Uint32 // dispatch queue full
	merged atomic.Uint32 // edge while pending
}

// Line is one edge-triggered input. It satisfies the core EdgeInput contract.
type Line struct {
	ctl     *Controller
	name    string
	pending atomic.Bool

	mu      sync.Mutex
	handler func()
}

func New(queueLen int) *Controller {
	if queueLen <= 0 {
		queueLen = 16
	}
	return &Controller{
		q:       make(chan *Line, queueLen),
		stopped: make(chan struct{}),
		lines:   map[string]*Line{},
	}
}

// Start runs the dispatcher until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	go func() {
		defer close(c.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case l := <-c.q:
				l.dispatch()
			}
		}
	}()
}

// Stopped is closed once the dispatcher has exited.
func (c *Controller) Stopped() <-chan struct{} { return c.stopped }

// Line returns the named line, creating it on first use.
func (c *Controller) Line(name string) *Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.lines[name]; ok {
		return l
	}
	l := &Line{ctl: c, name: name}
	c.lines[name] = l
	return l
}

func (c *Controller) Drops() uint32  { return c.drops.Load() }
func (c *Controller) Merged() uint32 { return c.merged.Load() }

func (l *Line) Name() string { return l.name }

// OnEdge installs the handler run for each latched edge. A nil handler
// disables the line.
func (l *Line) OnEdge(h func()) error {
	l.mu.Lock()
	l.handler = h
	l.mu.Unlock()
	return nil
}

// Raise latches a rising edge and schedules the handler.
func (l *Line) Raise() {
	if l.pending.Swap(true) {
		l.ctl.merged.Add(1)
		return
	}
	select {
	case l.ctl.q <- l:
	default:
		// Edge lost; unlatch so the next one can be dispatched.
		l.pending.Store(false)
		l.ctl.drops.Add(1)
	}
}

func (l *Line) Pending() bool { return l.pending.Load() }
func (l *Line) ClearPending() { l.pending.Store(false) }

func (l *Line) dispatch() {
	l.mu.Lock()
	h := l.handler
	l.mu.Unlock()
	if h == nil {
		// Unhandled: acknowledge so the line does not stay stuck.
		l.ClearPending()
		return
	}
	h()
}
