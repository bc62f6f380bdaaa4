package platform

import (
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pca9685"

	"ledstrip-go/errcode"
	"ledstrip-go/services/strip/internal/core"
	"ledstrip-go/services/strip/internal/platform/setups"
	"ledstrip-go/x/mathx"
	"ledstrip-go/x/timex"
)

// expander is the subset of the PCA9685 driver the strip uses.
type expander interface {
	Top() uint32
	Set(channel uint8, value uint32)
}

// expanderChannel is one output of a PWM expander. Writes are ignored until
// the channel is enabled.
type expanderChannel struct {
	mu      sync.Mutex
	dev     expander
	ch      uint8
	enabled bool
}

func (c *expanderChannel) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.dev.Set(c.ch, 0)
	c.mu.Unlock()
}

func (c *expanderChannel) MaxDuty() uint32 { return c.dev.Top() }

func (c *expanderChannel) SetDuty(duty uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.dev.Set(c.ch, mathx.Min(duty, c.dev.Top()))
}

func expanderChannels(dev expander, chs [core.NumChannels]int) [core.NumChannels]core.Channel {
	var out [core.NumChannels]core.Channel
	for i, n := range chs {
		out[i] = &expanderChannel{dev: dev, ch: uint8(n)}
	}
	return out
}

// newPCA9685 configures a PCA9685 on bus and hands out the three channels
// named by the plan.
func newPCA9685(bus drivers.I2C, p setups.Plan) ([core.NumChannels]core.Channel, error) {
	dev := pca9685.New(bus, p.I2C.Addr)
	err := dev.Configure(pca9685.PWMConfig{Period: timex.PeriodFromHz(p.PWMFreqHz)})
	if err != nil {
		return [core.NumChannels]core.Channel{}, errcode.Wrap("pca9685.configure", errcode.NotConnected, err)
	}
	println("[platform] pca9685 at", p.I2C.Addr, "top", dev.Top())
	return expanderChannels(dev, p.RGBPins), nil
}
