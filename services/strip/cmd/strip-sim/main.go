//go:build !rp2040 && !rp2350

// Command strip-sim runs the strip controller against a simulated board and
// replays a script of button presses.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"ledstrip-go/bus"
	"ledstrip-go/services/strip"
	"ledstrip-go/services/strip/internal/platform"
	"ledstrip-go/services/strip/internal/platform/setups"
	"ledstrip-go/services/telemetry"
	"ledstrip-go/types"
	"ledstrip-go/x/conv"
)

const defaultScript = `
	wait 2s
	color wait 1s color wait 1s    # constant-cycling with a button pick
	mode wait 1s color wait 1s     # constant-single R+G, then B
	mode wait 3s                   # pulse-cycling
	mode wait 2s color wait 1s     # pulse-single
	mode wait 500ms
`

func main() {
	script := flag.String("script", defaultScript, "button script (mode, color, wait <dur>)")
	mode := flag.Uint("mode", 0, "initial mode 0..3")
	color := flag.Uint("color", 1, "initial color mask 0..7")
	dwell := flag.Duration("dwell", time.Second, "constant-cycling dwell")
	divisor := flag.Uint("divisor", 1, "brightness divisor")
	backend := flag.String("backend", setups.BackendPWM, "output backend: pwm or pca9685")
	heartbeat := flag.Duration("heartbeat", 0, "heartbeat interval, 0 disables")
	flag.Parse()

	steps, err := parseScript(*script)
	if err != nil {
		println("[sim]", err.Error())
		os.Exit(2)
	}

	plan := setups.Selected
	plan.Name = "host_sim"
	plan.Backend = *backend
	plan.InitialMode = uint8(*mode)
	plan.InitialColor = uint8(*color)
	plan.Dwell = *dwell
	plan.MaxDivisor = uint32(*divisor)
	if plan.Backend == setups.BackendPCA9685 {
		plan.RGBPins = [3]int{0, 1, 2}
		plan.I2C.Addr = 0x40
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	hb, err := platform.SetupHost(ctx, plan, os.Stdout)
	if err != nil {
		println("[sim] setup:", err.Error())
		os.Exit(1)
	}

	b := bus.NewBus(16)
	obs := telemetry.Fanout{
		telemetry.NewPublisher(b.NewConnection("strip")),
		telemetry.NewConsole(hb.Console),
	}
	m, _, err := strip.Start(hb.Board, plan, obs)
	if err != nil {
		println("[sim] start:", err.Error())
		os.Exit(1)
	}
	if *heartbeat > 0 {
		hbt := &telemetry.Heartbeat{Interval: *heartbeat}
		_ = hbt.Start(ctx, b.NewConnection("heartbeat"))
	}
	go monitor(ctx, b.NewConnection("monitor"))
	go m.Run()

	for _, s := range steps {
		select {
		case <-ctx.Done():
			return
		default:
		}
		switch s.act {
		case pressMode:
			println("[sim] press mode")
			hb.PressMode()
		case pressColor:
			println("[sim] press color")
			hb.PressColor()
		case wait:
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.d):
			}
		}
	}
	lv := hb.Levels()
	println("[sim] done levels", lv[0], lv[1], lv[2], "merged", hb.IRQ.Merged(), "dropped", hb.IRQ.Drops())
}

// monitor prints the non-retained transition events.
func monitor(ctx context.Context, conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("strip", "event", "+"))
	defer conn.Disconnect()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-sub.Channel():
			ev, ok := msg.Payload.(types.StripEvent)
			if !ok {
				continue
			}
			line := "[sim] event " + msg.Topic.At(2).(string) + " " + conv.Uint(uint64(ev.From))
			line += " -> " + conv.Uint(uint64(ev.To))
			println(line)
		}
	}
}
