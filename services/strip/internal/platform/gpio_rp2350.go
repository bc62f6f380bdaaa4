//go:build rp2350

package platform

// RP2350B exposes GP0..GP47; on the A package the upper pins do not exist
// and are caught when the pin is configured.
const maxGPIO = 47
