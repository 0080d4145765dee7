package render

import "image/color"

// Defaults shared by the hosts.
var (
	// Background fills whatever the clock layers leave transparent.
	Background = color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xFF}

	// Logical canvas size used when a host does not dictate one.
	CanvasWidth  = 480
	CanvasHeight = 480
)
