package core

// Triangle is the pulsing duty generator: a closed ramp 0→max→0 moving by
// exactly one count per Step. The zero value is a flat wave at 0.
type Triangle struct {
	duty uint32
	max  uint32
	down bool
}

// NewTriangle starts at duty 0, increasing.
func NewTriangle(max uint32) Triangle { return Triangle{max: max} }

func (t *Triangle) Duty() uint32 { return t.duty }
func (t *Triangle) Max() uint32  { return t.max }

// Rising reports the direction the next Step will move in.
func (t *Triangle) Rising() bool { return !t.down }

// Step advances one tick and returns the new duty. floor is true on the tick
// the falling ramp lands back on 0.
func (t *Triangle) Step() (duty uint32, floor bool) {
	if t.max == 0 {
		return 0, false
	}
	if !t.down {
		t.duty++
		if t.duty == t.max {
			t.down = true
		}
		return t.duty, false
	}
	t.duty--
	if t.duty == 0 {
		t.down = false
		return 0, true
	}
	return t.duty, false
}
