package platform

import (
	"io"
	"time"

	"ledstrip-go/errcode"
	"ledstrip-go/services/strip/internal/core"
	"ledstrip-go/x/timex"
)

// Button is an edge-triggered input. The handler installed with OnEdge runs
// in interrupt context and must acknowledge the edge with ClearPending.
type Button interface {
	core.EdgeInput
	OnEdge(h func()) error
}

// Board is everything the strip firmware needs from the hardware.
type Board struct {
	Name        string
	Channels    [core.NumChannels]core.Channel // R, G, B
	ModeButton  Button
	ColorButton Button
	Delay       core.Delayer
	Console     io.Writer
}

// sleepDelay blocks the calling goroutine for the requested time.
type sleepDelay struct{}

func (sleepDelay) DelayMs(ms uint32) { time.Sleep(timex.Ms(ms)) }

// checkPin rejects GPIO numbers outside 0..hi.
func checkPin(op string, n, hi int) error {
	if n < 0 || n > hi {
		return &errcode.E{C: errcode.UnknownPin, Op: op}
	}
	return nil
}
