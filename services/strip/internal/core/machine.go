package core

import (
	"time"

	"ledstrip-go/types"
)

// Delayer is the platform's blocking millisecond delay.
type Delayer interface {
	DelayMs(ms uint32)
}

// Observer receives (mode, color) changes seen by the control loop. It is
// only ever called from the control loop, never from interrupt context.
type Observer interface {
	StateChanged(s types.StripState)
}

// Config tunes the control loop. Zero fields take the defaults below.
type Config struct {
	MaxDivisor uint32        // full-scale divisor; 1 = full duty
	Tick       time.Duration // pulsing-mode tick
	Dwell      time.Duration // constant-cycling hold time per color
	Now        func() time.Time
	Observer   Observer
}

const (
	DefaultTick  = time.Millisecond
	DefaultDwell = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.MaxDivisor == 0 {
		c.MaxDivisor = 1
	}
	if c.Tick <= 0 {
		c.Tick = DefaultTick
	}
	if c.Dwell <= 0 {
		c.Dwell = DefaultDwell
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Machine is the top-level control loop. It reads the shared mode, runs the
// matching handler until the mode changes, and dispatches again.
type Machine struct {
	st    *State
	drv   *Driver
	delay Delayer
	cfg   Config

	tickMs   uint32
	reported bool
	last     types.StripState
}

func New(st *State, drv *Driver, delay Delayer, cfg Config) *Machine {
	cfg = cfg.withDefaults()
	ms := uint32(cfg.Tick / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	return &Machine{st: st, drv: drv, delay: delay, cfg: cfg, tickMs: ms}
}

// Run never returns.
func (m *Machine) Run() {
	for {
		m.Step()
	}
}

// Step runs the handler for the current mode and returns once that handler
// has observed a mode change. It returns the mode it handled.
func (m *Machine) Step() Mode {
	mode := m.st.Mode()
	switch mode {
	case ConstantCycling:
		m.constantCycling()
	case ConstantSingle:
		m.constantSingle()
	case PulseCycling:
		m.pulse(PulseCycling, true)
	case PulseSingle:
		m.pulse(PulseSingle, false)
	}
	return mode
}

// pulse drives the triangle wave on the selected channels. The color mask is
// re-read every tick so a color change takes effect mid-ramp without
// restarting the wave. When cycle is set the color advances each time the
// wave returns to 0.
func (m *Machine) pulse(entry Mode, cycle bool) {
	tri := NewTriangle(m.drv.Max(m.cfg.MaxDivisor))
	for m.st.Mode() == entry {
		duty, floor := tri.Step()
		if cycle && floor {
			m.st.AutoAdvanceColor()
		}
		color := m.st.Color()
		m.observe(entry, color)
		m.drv.Apply(color, duty)
		m.delay.DelayMs(m.tickMs)
	}
	m.drv.Off()
}

func (m *Machine) constantSingle() {
	max := m.drv.Max(m.cfg.MaxDivisor)
	for m.st.Mode() == ConstantSingle {
		color := m.st.Color()
		m.observe(ConstantSingle, color)
		m.drv.Apply(color, max)
	}
}

// constantCycling holds each color for Dwell of monotonic time. A color picked
// with the button restarts the hold.
func (m *Machine) constantCycling() {
	max := m.drv.Max(m.cfg.MaxDivisor)
	held := m.st.Color()
	start := m.cfg.Now()
	for m.st.Mode() == ConstantCycling {
		color := m.st.Color()
		if color != held {
			held = color
			start = m.cfg.Now()
		}
		m.observe(ConstantCycling, color)
		m.drv.Apply(color, max)
		if now := m.cfg.Now(); now.Sub(start) >= m.cfg.Dwell {
			held = m.st.AutoAdvanceColor()
			start = now
		}
	}
}

func (m *Machine) observe(mode Mode, color ColorMask) {
	if m.cfg.Observer == nil {
		return
	}
	if m.reported && m.last.Mode == uint8(mode) && m.last.Color == uint8(color) {
		return
	}
	m.last = types.StripState{
		Mode:      uint8(mode),
		ModeName:  mode.String(),
		Color:     uint8(color),
		ColorName: color.String(),
	}
	m.reported = true
	m.cfg.Observer.StateChanged(m.last)
}
