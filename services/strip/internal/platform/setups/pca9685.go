//go:build strip_pca9685

package setups

import "time"

// Selected drives the strip from a PCA9685 expander on I²C0.
var Selected = Plan{
	Name:      "pico_pca9685",
	Backend:   BackendPCA9685,
	RGBPins:   [3]int{0, 1, 2},
	ModePin:   14,
	ColorPin:  15,
	PWMFreqHz: 1_000,

	I2C:     I2CPlan{SDA: 4, SCL: 5, Hz: 400_000, Addr: 0x40},
	Console: UARTPlan{TX: 0, RX: 1, Baud: 115_200},

	// The expander is only 12-bit; a quarter of that is plenty indoors.
	MaxDivisor:   4,
	InitialMode:  0,
	InitialColor: 1,
	Tick:         time.Millisecond,
	Dwell:        10 * time.Second,
}
