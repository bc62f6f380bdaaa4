//go:build !rp2040 && !rp2350

package main

import (
	"strings"
	"time"

	"github.com/google/shlex"

	"ledstrip-go/errcode"
)

type action int

const (
	pressMode action = iota
	pressColor
	wait
)

type step struct {
	act action
	d   time.Duration
}

// parseScript reads a whitespace separated list of steps:
//
//	mode | m          press the mode button
//	color | c        press the color button
//	wait <duration>  sleep, e.g. "wait 1.5s"
//	<duration>       shorthand for wait
//
// '#' starts a comment running to the end of the line.
func parseScript(src string) ([]step, error) {
	var lines []string
	for _, l := range strings.Split(src, "\n") {
		if i := strings.IndexByte(l, '#'); i >= 0 {
			l = l[:i]
		}
		lines = append(lines, l)
	}
	toks, err := shlex.Split(strings.Join(lines, "\n"))
	if err != nil {
		return nil, errcode.Wrap("script", errcode.InvalidParams, err)
	}

	var out []step
	for i := 0; i < len(toks); i++ {
		switch tok := strings.ToLower(toks[i]); tok {
		case "mode", "m":
			out = append(out, step{act: pressMode})
		case "color", "c":
			out = append(out, step{act: pressColor})
		case "wait":
			if i+1 >= len(toks) {
				return nil, &errcode.E{C: errcode.InvalidParams, Op: "script.wait"}
			}
			i++
			d, err := time.ParseDuration(toks[i])
			if err != nil {
				return nil, errcode.Wrap("script.wait", errcode.InvalidParams, err)
			}
			if d < 0 {
				return nil, &errcode.E{C: errcode.InvalidParams, Op: "script.wait"}
			}
			out = append(out, step{act: wait, d: d})
		default:
			d, err := time.ParseDuration(tok)
			if err != nil || d < 0 {
				return nil, &errcode.E{C: errcode.InvalidParams, Op: "script." + tok}
			}
			out = append(out, step{act: wait, d: d})
		}
	}
	return out, nil
}
