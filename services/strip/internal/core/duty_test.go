package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestTriangleFirstTicks(t *testing.T) {
	tri := NewTriangle(3)
	want := []uint32{1, 2, 3, 2, 1, 0, 1, 2}
	for i, w := range want {
		got, floor := tri.Step()
		if got != w {
			t.Fatalf("tick %d: duty %d, want %d", i+1, got, w)
		}
		if floor != (i == 5) {
			t.Fatalf("tick %d: floor=%v", i+1, floor)
		}
	}
}

func TestTriangleFlatAtZeroMax(t *testing.T) {
	tri := NewTriangle(0)
	for i := 0; i < 5; i++ {
		if d, floor := tri.Step(); d != 0 || floor {
			t.Fatalf("tick %d: duty=%d floor=%v", i, d, floor)
		}
	}
}

func TestTriangleProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := uint32(rapid.IntRange(1, 400).Draw(t, "max"))
		ticks := rapid.IntRange(1, 2000).Draw(t, "ticks")

		tri := NewTriangle(max)
		if tri.Duty() != 0 || !tri.Rising() {
			t.Fatalf("fresh triangle: duty=%d rising=%v", tri.Duty(), tri.Rising())
		}
		prev := uint32(0)
		period := 2 * int(max)
		for k := 1; k <= ticks; k++ {
			d, floor := tri.Step()
			if d > max {
				t.Fatalf("tick %d: duty %d exceeds max %d", k, d, max)
			}
			if diff := int(d) - int(prev); diff != 1 && diff != -1 {
				t.Fatalf("tick %d: moved by %d", k, diff)
			}
			p := k % period
			want := p
			if p > int(max) {
				want = period - p
			}
			if int(d) != want {
				t.Fatalf("tick %d: duty %d, want %d", k, d, want)
			}
			if floor != (p == 0) {
				t.Fatalf("tick %d: floor=%v at duty %d", k, floor, d)
			}
			prev = d
		}
	})
}
