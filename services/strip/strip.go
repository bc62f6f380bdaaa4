// Package strip wires the RGB strip controller to a board and runs it.
package strip

import (
	"ledstrip-go/errcode"
	"ledstrip-go/services/strip/internal/core"
	"ledstrip-go/services/strip/internal/platform"
	"ledstrip-go/services/strip/internal/platform/setups"
	"ledstrip-go/services/telemetry"
)

// Main brings up the selected board and runs the controller. It never
// returns; a setup failure is reported and the firmware halts.
func Main() {
	plan := setups.Selected
	println("[strip] booting", plan.Name)

	b, err := platform.Setup(plan)
	if err != nil {
		halt("platform setup", err)
	}
	m, _, err := Start(b, plan, telemetry.NewConsole(b.Console))
	if err != nil {
		halt("start", err)
	}
	m.Run()
}

func halt(what string, err error) {
	println("[strip]", what, "failed:", err.Error())
	select {}
}

// Start builds the shared state and driver from plan, installs the button
// handlers and enables the outputs. The returned machine has not been run.
// obs may be nil.
func Start(b *platform.Board, plan setups.Plan, obs core.Observer) (*core.Machine, *core.State, error) {
	for _, c := range b.Channels {
		if c == nil {
			return nil, nil, &errcode.E{C: errcode.UnknownPin, Op: "strip.channels"}
		}
	}
	if b.ModeButton == nil || b.ColorButton == nil {
		return nil, nil, &errcode.E{C: errcode.UnknownPin, Op: "strip.buttons"}
	}

	st := core.NewState(core.Mode(plan.InitialMode), core.ColorMask(plan.InitialColor))
	drv := core.NewDriver(b.Channels[0], b.Channels[1], b.Channels[2])

	if err := b.ModeButton.OnEdge(core.ModeButtonHandler(st, b.ModeButton)); err != nil {
		return nil, nil, errcode.Wrap("strip.mode_button", errcode.Error, err)
	}
	if err := b.ColorButton.OnEdge(core.ColorButtonHandler(st, b.ColorButton)); err != nil {
		return nil, nil, errcode.Wrap("strip.color_button", errcode.Error, err)
	}
	drv.EnableAll()

	m := core.New(st, drv, b.Delay, core.Config{
		MaxDivisor: plan.MaxDivisor,
		Tick:       plan.Tick,
		Dwell:      plan.Dwell,
		Observer:   obs,
	})
	println("[strip] mode", st.Mode().String(), "color", st.Color().String())
	return m, st, nil
}
