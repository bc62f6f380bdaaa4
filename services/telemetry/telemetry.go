// Package telemetry reports strip state changes to the bus and the console.
package telemetry

import (
	"io"
	"sync"

	"ledstrip-go/bus"
	"ledstrip-go/types"
	"ledstrip-go/x/conv"
	"ledstrip-go/x/timex"
)

var (
	TopicState      = bus.T("strip", "state")
	TopicEventMode  = bus.T("strip", "event", "mode")
	TopicEventColor = bus.T("strip", "event", "color")
)

// Observer receives strip state changes.
type Observer interface {
	StateChanged(s types.StripState)
}

// Fanout forwards every change to each non-nil observer in order.
type Fanout []Observer

func (f Fanout) StateChanged(s types.StripState) {
	for _, o := range f {
		if o != nil {
			o.StateChanged(s)
		}
	}
}

// -----------------------------------------------------------------------------
// Bus publisher
// -----------------------------------------------------------------------------

// Publisher keeps the latest state retained on strip/state and emits a
// strip/event/mode or strip/event/color message for each transition.
type Publisher struct {
	conn *bus.Connection
	now  func() int64

	mu   sync.Mutex
	last types.StripState
	have bool
}

func NewPublisher(conn *bus.Connection) *Publisher {
	return &Publisher{conn: conn, now: timex.NowMs}
}

func (p *Publisher) StateChanged(s types.StripState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s.TSms = p.now()
	p.conn.Publish(p.conn.NewMessage(TopicState, s, true))

	if p.have {
		if s.Mode != p.last.Mode {
			p.conn.Publish(p.conn.NewMessage(TopicEventMode,
				types.StripEvent{From: p.last.Mode, To: s.Mode, TSms: s.TSms}, false))
		}
		if s.Color != p.last.Color {
			p.conn.Publish(p.conn.NewMessage(TopicEventColor,
				types.StripEvent{From: p.last.Color, To: s.Color, TSms: s.TSms}, false))
		}
	}
	p.last, p.have = s, true
}

// -----------------------------------------------------------------------------
// Console
// -----------------------------------------------------------------------------

// Console writes one "mode=<name> color=<name>(<mask>)" line per change.
// It formats without fmt so it can run on the MCU.
type Console struct {
	w   io.Writer
	mu  sync.Mutex
	buf []byte
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, buf: make([]byte, 0, 64)}
}

func (c *Console) StateChanged(s types.StripState) {
	if c.w == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = appendState(c.buf[:0], s)
	_, _ = c.w.Write(c.buf)
}

func appendState(b []byte, s types.StripState) []byte {
	b = append(b, "mode="...)
	b = append(b, s.ModeName...)
	b = append(b, " color="...)
	b = append(b, s.ColorName...)
	b = append(b, '(')
	b = conv.AppendUint(b, uint64(s.Color))
	b = append(b, ")\n"...)
	return b
}
