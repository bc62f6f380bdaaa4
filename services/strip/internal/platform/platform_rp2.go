//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"sync"
	"sync/atomic"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"ledstrip-go/errcode"
	"ledstrip-go/services/strip/internal/core"
	"ledstrip-go/services/strip/internal/platform/setups"
	"ledstrip-go/x/mathx"
	"ledstrip-go/x/timex"
)

// Setup claims the plan's pins and returns the board. Any error leaves the
// hardware partially configured; callers treat it as fatal.
func Setup(plan setups.Plan) (*Board, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	b := &Board{Name: plan.Name, Delay: sleepDelay{}}
	b.Console = newConsole(plan.Console)

	var err error
	switch plan.Backend {
	case setups.BackendPCA9685:
		bus := machine.I2C0
		sda, scl := machine.Pin(plan.I2C.SDA), machine.Pin(plan.I2C.SCL)
		sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
		scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
		if err = bus.Configure(machine.I2CConfig{SDA: sda, SCL: scl, Frequency: plan.I2C.Hz}); err != nil {
			return nil, errcode.Wrap("i2c0.configure", errcode.UnknownBus, err)
		}
		b.Channels, err = newPCA9685(bus, plan)
	default:
		b.Channels, err = newPWMChannels(plan)
	}
	if err != nil {
		return nil, err
	}

	if b.ModeButton, err = newButton(plan.ModePin); err != nil {
		return nil, err
	}
	if b.ColorButton, err = newButton(plan.ColorPin); err != nil {
		return nil, err
	}
	println("[platform] board", plan.Name, "ready")
	return b, nil
}

func newConsole(p setups.UARTPlan) *uartx.UART {
	u := uartx.UART0
	// Defaults inside uartx apply if zero.
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: p.Baud,
		TX:       machine.Pin(p.TX),
		RX:       machine.Pin(p.RX),
	})
	return u
}

// -----------------------------------------------------------------------------
// PWM
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type sliceCfg struct {
	freqHz uint32
	users  int
}

// Per-slice frequency; two pins on one slice must agree.
var slices struct {
	mu  sync.Mutex
	cfg [8]sliceCfg
}

func claimSlice(slice uint8, ctrl pwmCtrl, freqHz uint32) error {
	slices.mu.Lock()
	defer slices.mu.Unlock()
	sc := &slices.cfg[slice&7]
	if sc.users == 0 {
		if err := ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(freqHz)}); err != nil {
			return err
		}
		sc.freqHz = freqHz
	} else if sc.freqHz != freqHz {
		return errcode.Conflict
	}
	sc.users++
	return nil
}

// pwmChannel is one pin of a PWM slice.
type pwmChannel struct {
	ctrl    pwmCtrl
	ch      uint8
	top     uint32
	enabled atomic.Bool
}

func (p *pwmChannel) Enable() {
	p.ctrl.Set(p.ch, 0)
	p.enabled.Store(true)
}

func (p *pwmChannel) MaxDuty() uint32 { return p.top }

func (p *pwmChannel) SetDuty(duty uint32) {
	if !p.enabled.Load() {
		return
	}
	p.ctrl.Set(p.ch, mathx.Min(duty, p.top))
}

func newPWMChannels(plan setups.Plan) ([core.NumChannels]core.Channel, error) {
	var out [core.NumChannels]core.Channel
	for i, n := range plan.RGBPins {
		pin := machine.Pin(n)
		slice, err := machine.PWMPeripheral(pin)
		if err != nil {
			return out, errcode.Wrap("pwm.peripheral", errcode.UnknownPin, err)
		}
		ctrl := pwmGroupBySlice(slice)
		if err := claimSlice(slice, ctrl, plan.PWMFreqHz); err != nil {
			return out, errcode.Wrap("pwm.configure", errcode.Of(err), err)
		}
		ch, err := ctrl.Channel(pin)
		if err != nil {
			return out, errcode.Wrap("pwm.channel", errcode.UnknownPin, err)
		}
		out[i] = &pwmChannel{ctrl: ctrl, ch: ch, top: ctrl.Top()}
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Buttons
// -----------------------------------------------------------------------------

// irqButton latches rising edges on an input with pull-down.
type irqButton struct {
	pin     machine.Pin
	pending atomic.Bool
}

func newButton(n int) (*irqButton, error) {
	if err := checkPin("button", n, maxGPIO); err != nil {
		return nil, err
	}
	b := &irqButton{pin: machine.Pin(n)}
	b.pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return b, nil
}

func (b *irqButton) OnEdge(h func()) error {
	if h == nil {
		var zero machine.PinChange
		return b.pin.SetInterrupt(zero, nil)
	}
	return b.pin.SetInterrupt(machine.PinRising, func(machine.Pin) {
		b.pending.Store(true)
		h()
	})
}

func (b *irqButton) Pending() bool { return b.pending.Load() }
func (b *irqButton) ClearPending() { b.pending.Store(false) }
