package core

// EdgeInput is a button line with a hardware-latched pending flag.
type EdgeInput interface {
	Pending() bool
	ClearPending()
}

// ModeButtonHandler returns the interrupt entry point for the mode button.
// It must stay short: no blocking, no logging. The pending flag is cleared on
// every invocation, otherwise the interrupt would refire forever.
func ModeButtonHandler(st *State, in EdgeInput) func() {
	return func() {
		if in.Pending() {
			st.AdvanceMode()
		}
		in.ClearPending()
	}
}

// ColorButtonHandler is the color button counterpart of ModeButtonHandler.
// A press may select mask 0 (all channels off).
func ColorButtonHandler(st *State, in EdgeInput) func() {
	return func() {
		if in.Pending() {
			st.AdvanceColor()
		}
		in.ClearPending()
	}
}
