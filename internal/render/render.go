package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrEmptySurface is returned when a surface has no drawable area.
var ErrEmptySurface = errors.New("surface has no drawable area")

// Host owns the surface a clock is drawn on. The clock allocates its layers
// at the size reported by Size and hands them back, bottom first, to Present
// after every redraw.
type Host interface {
	// Size returns the content-box size in pixels.
	Size() (width int, height int)
	Present(layers ...*image.RGBA) error
}

// Snapshotter is implemented by hosts that keep the last presented frame.
type Snapshotter interface {
	Snapshot() *image.RGBA
}

// Compose flattens layers over background into dst, bottom layer first.
// A nil background leaves dst's existing pixels underneath.
func Compose(dst draw.Image, background color.Color, layers ...*image.RGBA) {
	bounds := dst.Bounds()
	if background != nil {
		draw.Draw(dst, bounds, &image.Uniform{C: background}, image.Point{}, draw.Src)
	}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		draw.Draw(dst, bounds, layer, layer.Bounds().Min, draw.Over)
	}
}

// ErrNoFrame is returned when a snapshot is requested before any frame was
// presented.
var ErrNoFrame = errors.New("no frame presented yet")
