//go:build rp2040

package platform

// GP0..GP29.
const maxGPIO = 29
