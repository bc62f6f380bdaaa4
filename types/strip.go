package types

// ---- Strip state (retained on strip/state) ----

// StripState is the observable (mode, color) pair of the controller.
type StripState struct {
	Mode      uint8  `json:"mode"`       // 0..3
	ModeName  string `json:"mode_name"`  // e.g. "pulse-single"
	Color     uint8  `json:"color"`      // 3-bit mask, bit0=R bit1=G bit2=B
	ColorName string `json:"color_name"` // e.g. "R+B", "off"
	TSms      int64  `json:"ts_ms"`
}

// StripEvent is published (non-retained) when one half of the state moves.
type StripEvent struct {
	From uint8 `json:"from"`
	To   uint8 `json:"to"`
	TSms int64 `json:"ts_ms"`
}
