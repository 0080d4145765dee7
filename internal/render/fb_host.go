package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/analogclock/internal/render/layout"
)

// FBHost presents frames on a Linux framebuffer. The clock draws on a
// logical canvas which is scaled, aspect preserved, onto the device.
type FBHost struct {
	DevicePath string
	// Logical canvas size; zero means the device resolution.
	Width      int
	Height     int
	Background color.Color
	Logger     interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	mu      sync.RWMutex
	dev     *fb.Device
	canvas  *image.RGBA
	dest    image.Rectangle
	frames  int
	lastLog time.Time
}

func NewFBHost(devicePath string) *FBHost {
	return &FBHost{DevicePath: devicePath, Background: Background}
}

// Open opens the device and clears it to the background color.
func (h *FBHost) Open() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dev != nil {
		return nil
	}
	path := h.DevicePath
	if path == "" {
		path = "/dev/fb0"
	}
	dev, err := fb.Open(path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	h.dev = dev

	bounds := dev.Bounds()
	if h.Width <= 0 || h.Height <= 0 {
		h.Width, h.Height = bounds.Dx(), bounds.Dy()
	}
	h.canvas = image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	h.dest = layout.FitCentered(bounds, h.Width, h.Height)
	draw.Draw(dev, bounds, &image.Uniform{C: h.background()}, image.Point{}, draw.Src)
	if h.Logger != nil {
		h.Logger.Infof("fb", "framebuffer open, bounds=%dx%d canvas=%dx%d", bounds.Dx(), bounds.Dy(), h.Width, h.Height)
	}
	return nil
}

func (h *FBHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dev == nil {
		return nil
	}
	h.dev.Close()
	h.dev = nil
	return nil
}

// Size is only meaningful after Open when the canvas follows the device.
func (h *FBHost) Size() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.Width, h.Height
}

func (h *FBHost) Present(layers ...*image.RGBA) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dev == nil {
		return errors.New("framebuffer not open")
	}
	Compose(h.canvas, h.background(), layers...)
	if h.dest.Dx() == h.Width && h.dest.Dy() == h.Height {
		draw.Draw(h.dev, h.dest, h.canvas, image.Point{}, draw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(h.dev, h.dest, h.canvas, h.canvas.Bounds(), xdraw.Src, nil)
	}
	h.frames++
	if h.Logger != nil && time.Since(h.lastLog) > time.Minute {
		h.Logger.Infof("fb", "heartbeat, frames=%d", h.frames)
		h.lastLog = time.Now()
	}
	return nil
}

func (h *FBHost) Snapshot() *image.RGBA {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.frames == 0 {
		return nil
	}
	return cloneRGBA(h.canvas)
}

func (h *FBHost) background() color.Color {
	if h.Background == nil {
		return color.Black
	}
	return h.Background
}
