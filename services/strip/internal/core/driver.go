package core

import "ledstrip-go/x/mathx"

// Channel is one PWM output handed over by the platform.
type Channel interface {
	Enable()
	MaxDuty() uint32
	SetDuty(duty uint32)
}

// Driver owns the three outputs (R, G, B) on behalf of whichever mode
// handler is running.
type Driver struct {
	ch [NumChannels]Channel
}

func NewDriver(r, g, b Channel) *Driver {
	return &Driver{ch: [NumChannels]Channel{r, g, b}}
}

// EnableAll switches the three outputs on; call once at startup.
func (d *Driver) EnableAll() {
	for _, c := range d.ch {
		c.Enable()
	}
}

// Apply drives every channel in mask to level and every other channel to 0.
// All three channels are written on every call.
func (d *Driver) Apply(mask ColorMask, level uint32) {
	for i, c := range d.ch {
		if mask.Has(i) {
			c.SetDuty(level)
		} else {
			c.SetDuty(0)
		}
	}
}

// Off forces all channels to 0.
func (d *Driver) Off() { d.Apply(0, 0) }

// Max returns the common full-scale duty: the smallest hardware maximum of
// the three channels divided by divisor (0 and 1 both mean full scale).
func (d *Driver) Max(divisor uint32) uint32 {
	top := d.ch[0].MaxDuty()
	for _, c := range d.ch[1:] {
		top = mathx.Min(top, c.MaxDuty())
	}
	return top / mathx.Max(divisor, 1)
}
