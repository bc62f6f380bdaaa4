package core

import (
	"sync"
	"time"

	"ledstrip-go/types"
)

// fakeChannel records every duty write. onSet, when non-nil, runs after each
// write from inside the control loop, standing in for an interrupt that
// fires between two instructions.
type fakeChannel struct {
	mu      sync.Mutex
	max     uint32
	enabled bool
	duty    uint32
	history []uint32
	onSet   func(duty uint32)
}

func (c *fakeChannel) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()
}

func (c *fakeChannel) MaxDuty() uint32 { return c.max }

func (c *fakeChannel) SetDuty(d uint32) {
	c.mu.Lock()
	c.duty = d
	c.history = append(c.history, d)
	hook := c.onSet
	c.mu.Unlock()
	if hook != nil {
		hook(d)
	}
}

func (c *fakeChannel) Duty() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duty
}

func (c *fakeChannel) History() []uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint32(nil), c.history...)
}

type rig struct {
	r, g, b *fakeChannel
	drv     *Driver
}

func newRig(max uint32) *rig {
	r := &fakeChannel{max: max}
	g := &fakeChannel{max: max}
	b := &fakeChannel{max: max}
	return &rig{r: r, g: g, b: b, drv: NewDriver(r, g, b)}
}

func (r *rig) levels() [3]uint32 {
	return [3]uint32{r.r.Duty(), r.g.Duty(), r.b.Duty()}
}

// fakeDelay counts ticks; onTick runs after each one.
type fakeDelay struct {
	mu     sync.Mutex
	ticks  int
	lastMs uint32
	onTick func(n int)
}

func (d *fakeDelay) DelayMs(ms uint32) {
	d.mu.Lock()
	d.ticks++
	d.lastMs = ms
	n := d.ticks
	hook := d.onTick
	d.mu.Unlock()
	if hook != nil {
		hook(n)
	}
}

func (d *fakeDelay) Ticks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

// fakeClock is advanced by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeEdge is a button line with a latched pending flag.
type fakeEdge struct {
	pending bool
	clears  int
}

func (e *fakeEdge) Pending() bool { return e.pending }
func (e *fakeEdge) ClearPending() { e.pending = false; e.clears++ }

// press latches an edge and runs the handler, as the interrupt controller would.
func (e *fakeEdge) press(handler func()) {
	e.pending = true
	handler()
}

type recordingObserver struct {
	mu  sync.Mutex
	got []types.StripState
}

func (o *recordingObserver) StateChanged(s types.StripState) {
	o.mu.Lock()
	o.got = append(o.got, s)
	o.mu.Unlock()
}

func (o *recordingObserver) States() []types.StripState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]types.StripState(nil), o.got...)
}
