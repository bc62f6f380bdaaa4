package main

import (
	"time"

	"ledstrip-go/services/strip"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	strip.Main()
}
