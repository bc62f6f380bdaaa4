//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"io"
	"os"
	"sync"

	"ledstrip-go/services/strip/internal/core"
	"ledstrip-go/services/strip/internal/hostirq"
	"ledstrip-go/services/strip/internal/platform/setups"
	"ledstrip-go/x/mathx"
)

const defaultHostTop = 65_535

// Setup builds a simulated board writing its console to stdout. The
// interrupt dispatcher runs for the life of the process.
func Setup(plan setups.Plan) (*Board, error) {
	hb, err := SetupHost(context.Background(), plan, os.Stdout)
	if err != nil {
		return nil, err
	}
	return hb.Board, nil
}

// HostBoard is a simulated board. Button presses are injected with
// PressMode/PressColor and the last duty of each channel read with Levels.
type HostBoard struct {
	*Board
	IRQ   *hostirq.Controller
	I2C   *HostI2C // nil unless the plan uses the expander backend
	mode  *hostirq.Line
	color *hostirq.Line
	rec   [core.NumChannels]*recorder
}

// SetupHost builds a simulated board. The interrupt dispatcher stops when
// ctx is cancelled.
func SetupHost(ctx context.Context, plan setups.Plan, console io.Writer) (*HostBoard, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	hb := &HostBoard{IRQ: hostirq.New(8)}

	var chs [core.NumChannels]core.Channel
	switch plan.Backend {
	case setups.BackendPCA9685:
		hb.I2C = NewHostI2C()
		var err error
		if chs, err = newPCA9685(hb.I2C, plan); err != nil {
			return nil, err
		}
	default:
		top := plan.PWMTop
		if top == 0 {
			top = defaultHostTop
		}
		for i := range chs {
			chs[i] = &hostChannel{top: top}
		}
	}
	for i, c := range chs {
		hb.rec[i] = &recorder{Channel: c}
		chs[i] = hb.rec[i]
	}

	hb.mode = hb.IRQ.Line("mode")
	hb.color = hb.IRQ.Line("color")
	hb.Board = &Board{
		Name:        plan.Name,
		Channels:    chs,
		ModeButton:  hb.mode,
		ColorButton: hb.color,
		Delay:       sleepDelay{},
		Console:     console,
	}
	hb.IRQ.Start(ctx)
	println("[platform] host board", plan.Name, "backend", plan.Backend)
	return hb, nil
}

func (h *HostBoard) PressMode()  { h.mode.Raise() }
func (h *HostBoard) PressColor() { h.color.Raise() }

// Levels returns the last duty written to each channel.
func (h *HostBoard) Levels() [core.NumChannels]uint32 {
	var out [core.NumChannels]uint32
	for i, r := range h.rec {
		out[i] = r.last()
	}
	return out
}

// Writes returns how many duty writes the board has seen in total.
func (h *HostBoard) Writes() int {
	n := 0
	for _, r := range h.rec {
		n += r.count()
	}
	return n
}

// ---- channels ----

// hostChannel is an in-memory PWM output.
type hostChannel struct {
	mu      sync.Mutex
	top     uint32
	duty    uint32
	enabled bool
}

func (c *hostChannel) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()
}

func (c *hostChannel) MaxDuty() uint32 { return c.top }

func (c *hostChannel) SetDuty(d uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.duty = mathx.Min(d, c.top)
}

// recorder remembers the last duty handed to a channel.
type recorder struct {
	core.Channel
	mu     sync.Mutex
	duty   uint32
	writes int
}

func (r *recorder) SetDuty(d uint32) {
	r.Channel.SetDuty(d)
	r.mu.Lock()
	r.duty = d
	r.writes++
	r.mu.Unlock()
}

func (r *recorder) last() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duty
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// ---- I²C ----

// HostI2C is a register-file stand-in for devices on an I²C bus. A write
// stores bytes from the register named by its first byte onward; a read
// returns bytes from the last register written.
type HostI2C struct {
	mu   sync.Mutex
	regs map[uint16]*[256]byte
	ptr  map[uint16]byte
	txs  int
}

func NewHostI2C() *HostI2C {
	return &HostI2C{regs: map[uint16]*[256]byte{}, ptr: map[uint16]byte{}}
}

func (b *HostI2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txs++
	regs := b.regs[addr]
	if regs == nil {
		regs = new([256]byte)
		b.regs[addr] = regs
	}
	if len(w) > 0 {
		b.ptr[addr] = w[0]
		for i, v := range w[1:] {
			regs[byte(int(w[0])+i)] = v
		}
	}
	p := b.ptr[addr]
	for i := range r {
		r[i] = regs[byte(int(p)+i)]
	}
	return nil
}

// Reg returns the current value of one device register.
func (b *HostI2C) Reg(addr uint16, reg byte) byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if regs := b.regs[addr]; regs != nil {
		return regs[reg]
	}
	return 0
}

// Txs returns the number of transactions seen.
func (b *HostI2C) Txs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs
}
