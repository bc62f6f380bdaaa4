package telemetry

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"ledstrip-go/bus"
	"ledstrip-go/types"
)

func TestIntervalOf(t *testing.T) {
	cases := []struct {
		in   any
		want time.Duration
		ok   bool
	}{
		{map[string]any{"interval": 2.0}, 2 * time.Second, true},
		{map[string]any{"interval": 0.5}, 500 * time.Millisecond, true},
		{map[string]any{"interval": 3}, 3 * time.Second, true},
		{map[string]any{"interval": 0.0}, 0, false},
		{map[string]any{"interval": "1"}, 0, false},
		{map[string]any{}, 0, false},
		{"interval=1", 0, false},
	}
	for _, tc := range cases {
		got, ok := intervalOf(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("intervalOf(%v) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHeartbeat_ReportsRetainedState(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := bus.NewBus(8)
	conn := b.NewConnection("telemetry")
	conn.Publish(conn.NewMessage(TopicState,
		types.StripState{ModeName: "pulse-single", ColorName: "G"}, true))

	lines := make(chan string, 16)
	h := &Heartbeat{
		Interval: 5 * time.Millisecond,
		Print:    func(l string) { lines <- l },
	}
	ctx, cancel := context.WithCancel(context.Background())
	_ = h.Start(ctx, conn)

	deadline := time.After(time.Second)
	for {
		select {
		case l := <-lines:
			if l == "[telemetry] heartbeat mode=pulse-single color=G" {
				cancel()
				for l := range lines {
					if strings.HasSuffix(l, "stopping") {
						return
					}
				}
			}
		case <-deadline:
			cancel()
			t.Fatal("no heartbeat with the retained state")
		}
	}
}

func TestHeartbeat_IntervalFromConfig(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := bus.NewBus(8)
	conn := b.NewConnection("telemetry")

	lines := make(chan string, 64)
	h := &Heartbeat{
		Interval: time.Hour,
		Print:    func(l string) { lines <- l },
	}
	ctx, cancel := context.WithCancel(context.Background())
	_ = h.Start(ctx, conn)

	conn.Publish(conn.NewMessage(TopicConfigHeartbeat, map[string]any{"interval": 0.01}, true))

	deadline := time.After(time.Second)
	sawInterval := false
	for {
		select {
		case l := <-lines:
			if strings.HasPrefix(l, "[telemetry] heartbeat interval") {
				sawInterval = true
			}
			if sawInterval && strings.HasPrefix(l, "[telemetry] heartbeat mode=unknown") {
				cancel()
				for l := range lines {
					if strings.HasSuffix(l, "stopping") {
						return
					}
				}
			}
		case <-deadline:
			cancel()
			t.Fatal("interval change did not take effect")
		}
	}
}
