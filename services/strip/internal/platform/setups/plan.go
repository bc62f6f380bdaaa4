package setups

import (
	"time"

	"ledstrip-go/errcode"
)

// Output backends.
const (
	BackendPWM     = "pwm"     // on-chip PWM slices, one pin per color
	BackendPCA9685 = "pca9685" // I²C PWM expander, one expander channel per color
)

// Plan specifies wiring and operating parameters chosen by a setup.
// The platform consumes it once at boot.
type Plan struct {
	Name    string
	Backend string // BackendPWM (default) or BackendPCA9685

	// RGBPins are GPIO numbers for BackendPWM, expander channels (0..15)
	// for BackendPCA9685. Index 0=R, 1=G, 2=B.
	RGBPins   [3]int
	ModePin   int
	ColorPin  int
	PWMFreqHz uint32
	PWMTop    uint32 // full scale of simulated host channels

	I2C     I2CPlan
	Console UARTPlan

	MaxDivisor   uint32 // 1 = full duty
	InitialMode  uint8
	InitialColor uint8
	Tick         time.Duration
	Dwell        time.Duration
}

type I2CPlan struct {
	SDA  int    // GPIO number
	SCL  int    // GPIO number
	Hz   uint32 // bus frequency
	Addr uint8  // expander address
}

type UARTPlan struct {
	TX   int
	RX   int
	Baud uint32
}

// Validate checks the plan for wiring mistakes that would otherwise surface
// as silent misbehaviour on the board.
func (p Plan) Validate() error {
	if p.PWMFreqHz == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "plan.pwm_freq"}
	}
	if p.InitialMode > 3 || p.InitialColor > 7 {
		return &errcode.E{C: errcode.InvalidParams, Op: "plan.initial_state"}
	}
	if p.ModePin == p.ColorPin {
		return &errcode.E{C: errcode.PinInUse, Op: "plan.buttons"}
	}
	for i, a := range p.RGBPins {
		if a < 0 {
			return &errcode.E{C: errcode.UnknownPin, Op: "plan.rgb"}
		}
		for _, b := range p.RGBPins[i+1:] {
			if a == b {
				return &errcode.E{C: errcode.PinInUse, Op: "plan.rgb"}
			}
		}
	}
	switch p.Backend {
	case "", BackendPWM:
		for _, a := range p.RGBPins {
			if a == p.ModePin || a == p.ColorPin {
				return &errcode.E{C: errcode.PinInUse, Op: "plan.rgb"}
			}
		}
	case BackendPCA9685:
		for _, ch := range p.RGBPins {
			if ch > 15 {
				return &errcode.E{C: errcode.InvalidParams, Op: "plan.pca9685_channel"}
			}
		}
		if p.I2C.Addr == 0 {
			return &errcode.E{C: errcode.InvalidParams, Op: "plan.pca9685_addr"}
		}
	default:
		return &errcode.E{C: errcode.Unsupported, Op: "plan.backend"}
	}
	return nil
}
