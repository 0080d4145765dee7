package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// PNGHost writes every presented frame to Path. The file is replaced
// atomically so readers never see a partial image.
type PNGHost struct {
	Path       string
	Width      int
	Height     int
	Background color.Color

	frame *image.RGBA
	err   error
}

func NewPNGHost(path string, width, height int) *PNGHost {
	return &PNGHost{Path: path, Width: width, Height: height, Background: Background}
}

func (h *PNGHost) Size() (int, int) { return h.Width, h.Height }

func (h *PNGHost) Present(layers ...*image.RGBA) error {
	h.err = h.write(layers)
	return h.err
}

// Err is the result of the last Present; nil before the first one.
func (h *PNGHost) Err() error { return h.err }

func (h *PNGHost) write(layers []*image.RGBA) error {
	if h.frame == nil {
		h.frame = image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	}
	Compose(h.frame, h.Background, layers...)

	tmp, err := os.CreateTemp(filepath.Dir(h.Path), ".clock-*.png")
	if err != nil {
		return fmt.Errorf("png host: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := png.Encode(tmp, h.frame); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("png host encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("png host: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.Path); err != nil {
		return fmt.Errorf("png host: %w", err)
	}
	return nil
}
