package telemetry

import (
	"context"
	"time"

	"ledstrip-go/bus"
	"ledstrip-go/types"
	"ledstrip-go/x/strx"
)

var TopicConfigHeartbeat = bus.T("config", "heartbeat")

const DefaultHeartbeat = time.Second

// Heartbeat prints the retained strip state at a fixed interval. A message
// on config/heartbeat with {"interval": seconds} changes the interval.
type Heartbeat struct {
	Interval time.Duration
	Print    func(line string) // defaults to println
}

func (h *Heartbeat) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(TopicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	stateSub := conn.Subscribe(TopicState)
	defer conn.Unsubscribe(stateSub)

	out := h.Print
	if out == nil {
		out = func(line string) { println(line) }
	}
	iv := h.Interval
	if iv <= 0 {
		iv = DefaultHeartbeat
	}
	tick := time.NewTicker(iv)
	defer tick.Stop()

	var last types.StripState
	for {
		select {
		case <-ctx.Done():
			out("[telemetry] heartbeat stopping")
			return
		case <-tick.C:
			out("[telemetry] heartbeat mode=" + strx.Coalesce(last.ModeName, "unknown") +
				" color=" + strx.Coalesce(last.ColorName, "unknown"))
		case msg := <-stateSub.Channel():
			if s, ok := msg.Payload.(types.StripState); ok {
				last = s
			}
		case msg := <-cfgSub.Channel():
			if d, ok := intervalOf(msg.Payload); ok {
				tick.Reset(d)
				out("[telemetry] heartbeat interval " + d.String())
			}
		}
	}
}

func intervalOf(payload any) (time.Duration, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := m["interval"].(type) {
	case float64:
		if v > 0 {
			return time.Duration(v * float64(time.Second)), true
		}
	case int:
		if v > 0 {
			return time.Duration(v) * time.Second, true
		}
	}
	return 0, false
}

// Start runs the heartbeat until ctx is cancelled.
func (h *Heartbeat) Start(ctx context.Context, conn *bus.Connection) error {
	go h.serviceLoop(ctx, conn)
	return nil
}
