//go:build !strip_pca9685

package setups

import "time"

// Selected drives the strip MOSFETs straight from RP2 PWM pins.
// GP16/GP17 share slice 0, GP18 sits on slice 1.
var Selected = Plan{
	Name:      "pico_direct_pwm",
	Backend:   BackendPWM,
	RGBPins:   [3]int{16, 17, 18},
	ModePin:   14,
	ColorPin:  15,
	PWMFreqHz: 1_000,
	PWMTop:    65_535,

	Console: UARTPlan{TX: 0, RX: 1, Baud: 115_200},

	MaxDivisor:   1,
	InitialMode:  0,
	InitialColor: 1,
	Tick:         time.Millisecond,
	Dwell:        10 * time.Second,
}
