package core

import "testing"

func TestModeButtonHandler(t *testing.T) {
	st := NewState(ConstantCycling, Red)
	in := &fakeEdge{}
	h := ModeButtonHandler(st, in)

	want := []Mode{ConstantSingle, PulseCycling, PulseSingle, ConstantCycling}
	for i, w := range want {
		in.press(h)
		if got := st.Mode(); got != w {
			t.Fatalf("press %d: mode %v, want %v", i+1, got, w)
		}
		if in.pending {
			t.Fatalf("press %d: pending flag left set", i+1)
		}
	}
	if in.clears != 4 {
		t.Fatalf("clears = %d, want 4", in.clears)
	}
}

func TestHandlerWithoutPendingStillClears(t *testing.T) {
	st := NewState(ConstantSingle, Green)
	mode := &fakeEdge{}
	color := &fakeEdge{}

	ModeButtonHandler(st, mode)()
	ColorButtonHandler(st, color)()

	if st.Mode() != ConstantSingle || st.Color() != Green {
		t.Fatalf("state moved without a pending edge: %v %v", st.Mode(), st.Color())
	}
	if mode.clears != 1 || color.clears != 1 {
		t.Fatalf("clears: mode=%d color=%d, want 1 each", mode.clears, color.clears)
	}
}

func TestColorButtonHandlerCyclesThroughOff(t *testing.T) {
	st := NewState(ConstantSingle, Red)
	in := &fakeEdge{}
	h := ColorButtonHandler(st, in)

	var seq []ColorMask
	for i := 0; i < 8; i++ {
		in.press(h)
		seq = append(seq, st.Color())
	}
	want := []ColorMask{2, 3, 4, 5, 6, 7, 0, 1}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence %v, want %v", seq, want)
		}
	}
}

func TestBouncesEachCount(t *testing.T) {
	// No debounce: three edges in a row are three presses.
	st := NewState(ConstantCycling, Red)
	in := &fakeEdge{}
	h := ModeButtonHandler(st, in)
	for i := 0; i < 3; i++ {
		in.press(h)
	}
	if st.Mode() != PulseSingle {
		t.Fatalf("mode = %v, want %v", st.Mode(), PulseSingle)
	}
}
