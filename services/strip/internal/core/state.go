package core

import "sync/atomic"

// Mode selects the lighting behaviour. Values cycle 0..3.
type Mode uint32

const (
	ConstantCycling Mode = iota
	ConstantSingle
	PulseCycling
	PulseSingle

	numModes
)

// Next returns the mode following m in the button cycle.
func (m Mode) Next() Mode { return (m + 1) % numModes }

func (m Mode) Valid() bool { return m < numModes }

func (m Mode) String() string {
	switch m {
	case ConstantCycling:
		return "constant-cycling"
	case ConstantSingle:
		return "constant-single"
	case PulseCycling:
		return "pulse-cycling"
	case PulseSingle:
		return "pulse-single"
	default:
		return "invalid"
	}
}

// ColorMask is a 3-bit channel selector: bit0=R, bit1=G, bit2=B.
type ColorMask uint32

const (
	Red   ColorMask = 1 << iota
	Green
	Blue

	White     = Red | Green | Blue
	colorMask = White
)

// NumChannels is the fixed number of output channels.
const NumChannels = 3

// Next returns (c+1) mod 8. It may land on 0 (all off).
func (c ColorMask) Next() ColorMask { return (c + 1) & colorMask }

// Has reports whether channel ch (0=R, 1=G, 2=B) is enabled.
func (c ColorMask) Has(ch int) bool {
	if ch < 0 || ch >= NumChannels {
		return false
	}
	return c&(1<<ch) != 0
}

func (c ColorMask) String() string {
	c &= colorMask
	if c == 0 {
		return "off"
	}
	const names = "RGB"
	var buf [5]byte
	n := 0
	for ch := 0; ch < NumChannels; ch++ {
		if !c.Has(ch) {
			continue
		}
		if n > 0 {
			buf[n] = '+'
			n++
		}
		buf[n] = names[ch]
		n++
	}
	return string(buf[:n])
}

// State holds the two values shared between the control loop and the
// interrupt handlers. Every access is a single atomic load, store or CAS.
type State struct {
	mode  atomic.Uint32
	color atomic.Uint32
}

// NewState builds the shared cells. Out-of-range inputs are reduced into
// range rather than rejected.
func NewState(mode Mode, color ColorMask) *State {
	s := &State{}
	s.mode.Store(uint32(mode % numModes))
	s.color.Store(uint32(color & colorMask))
	return s
}

func (s *State) Mode() Mode       { return Mode(s.mode.Load()) }
func (s *State) Color() ColorMask { return ColorMask(s.color.Load()) }

// AdvanceMode moves to the next mode and returns it.
func (s *State) AdvanceMode() Mode {
	for {
		old := s.mode.Load()
		next := uint32(Mode(old).Next())
		if s.mode.CompareAndSwap(old, next) {
			return Mode(next)
		}
	}
}

// AdvanceColor moves to the next mask; it may select 0.
func (s *State) AdvanceColor() ColorMask {
	return s.updateColor(ColorMask.Next)
}

// AutoAdvanceColor is the cycling-mode advance: a landing value of 0 is
// replaced by Red so the strip never goes dark on its own.
func (s *State) AutoAdvanceColor() ColorMask {
	return s.updateColor(func(c ColorMask) ColorMask {
		n := c.Next()
		if n == 0 {
			n = Red
		}
		return n
	})
}

func (s *State) updateColor(f func(ColorMask) ColorMask) ColorMask {
	for {
		old := s.color.Load()
		next := uint32(f(ColorMask(old)))
		if s.color.CompareAndSwap(old, next) {
			return ColorMask(next)
		}
	}
}
