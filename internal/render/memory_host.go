package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
)

// MemoryHost keeps the composited frame in memory. It backs the simulator,
// the web snapshot endpoint and tests.
type MemoryHost struct {
	Width      int
	Height     int
	Background color.Color

	mu       sync.RWMutex
	frame    *image.RGBA
	presents int
}

func NewMemoryHost(width, height int) *MemoryHost {
	return &MemoryHost{Width: width, Height: height, Background: Background}
}

func (h *MemoryHost) Size() (int, int) { return h.Width, h.Height }

func (h *MemoryHost) Present(layers ...*image.RGBA) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frame == nil {
		h.frame = image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	}
	Compose(h.frame, h.Background, layers...)
	h.presents++
	return nil
}

// Snapshot returns a copy of the last presented frame, or nil before the
// first Present.
func (h *MemoryHost) Snapshot() *image.RGBA {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return cloneRGBA(h.frame)
}

// Presents counts Present calls.
func (h *MemoryHost) Presents() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.presents
}

// EncodePNG writes the current snapshot of s as PNG.
func EncodePNG(w io.Writer, s Snapshotter) error {
	frame := s.Snapshot()
	if frame == nil {
		return ErrNoFrame
	}
	return png.Encode(w, frame)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
