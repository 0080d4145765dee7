package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/analogclock/internal/options"
)

// Layer is one independently drawable surface. Shapes are rasterized with
// anti-aliasing and composited with draw.Over.
type Layer struct {
	img     *image.RGBA
	rast    *raster.Rasterizer
	scratch *Layer
}

func NewLayer(width, height int) (*Layer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layer %dx%d: %w", width, height, ErrEmptySurface)
	}
	return &Layer{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		rast: raster.NewRasterizer(width, height),
	}, nil
}

func (l *Layer) Image() *image.RGBA      { return l.img }
func (l *Layer) Bounds() image.Rectangle { return l.img.Bounds() }

// Clear makes every pixel transparent.
func (l *Layer) Clear() {
	draw.Draw(l.img, l.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillCircle fills a disc centered at (cx, cy).
func (l *Layer) FillCircle(cx, cy, r float64, fill Fill) {
	if r <= 0 || fill == nil || !finite(cx, cy, r) {
		return
	}
	l.rast.Clear()
	l.rast.UseNonZeroWinding = true
	l.rast.AddPath(circlePath(cx, cy, r))
	l.rast.Rasterize(fill.painter(l.img))
}

// StrokeCircle outlines a circle with a line of the given width.
func (l *Layer) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	if r <= 0 || width <= 0 || !finite(cx, cy, r, width) {
		return
	}
	l.rast.Clear()
	l.rast.UseNonZeroWinding = true
	l.rast.AddStroke(circlePath(cx, cy, r), fix(width), raster.RoundCapper, raster.RoundJoiner)
	l.rast.Rasterize(Solid{Color: c}.painter(l.img))
}

// StrokeLine draws a segment with the given width and end caps.
func (l *Layer) StrokeLine(x0, y0, x1, y1, width float64, lineCap options.LineCap, c color.Color) {
	if width <= 0 || !finite(x0, y0, x1, y1, width) {
		return
	}
	if math.Hypot(x1-x0, y1-y0) < 1.0/64 {
		// A degenerate segment has no direction to cap along.
		if lineCap == options.CapRound {
			l.FillCircle(x0, y0, width/2, Solid{Color: c})
		}
		return
	}
	var path raster.Path
	path.Start(point(x0, y0))
	path.Add1(point(x1, y1))

	l.rast.Clear()
	l.rast.UseNonZeroWinding = true
	l.rast.AddStroke(path, fix(width), capper(lineCap), raster.RoundJoiner)
	l.rast.Rasterize(Solid{Color: c}.painter(l.img))
}

// Shadowed runs paint twice. The first pass draws into a scratch layer with
// every color replaced by the shadow color; the scratch is blurred and laid
// under the final pass at the shadow offset. The second pass draws with the
// shape's own colors (tint is nil).
func (l *Layer) Shadowed(shadow options.Shadow, paint func(dst *Layer, tint color.Color)) {
	if shadow.Visible() && finite(shadow.OffsetX, shadow.OffsetY) {
		scratch := l.scratchLayer()
		paint(scratch, shadow.Color)
		if radius := blurRadius(shadow.Blur, l.img.Bounds()); radius > 0 {
			boxBlur(scratch.img, radius)
		}
		offset := image.Pt(int(math.Round(shadow.OffsetX)), int(math.Round(shadow.OffsetY)))
		draw.Draw(l.img, l.img.Bounds().Add(offset), scratch.img, image.Point{}, draw.Over)
	}
	paint(l, nil)
}

// blurRadius maps a CSS shadow blur onto a box radius. A box wider than the
// layer averages everything to the same result, so the radius stops there.
func blurRadius(blur float64, bounds image.Rectangle) int {
	if !(blur > 0) {
		return 0
	}
	limit := float64(max(bounds.Dx(), bounds.Dy()))
	return int(math.Round(math.Min(blur/2, limit)))
}

func (l *Layer) scratchLayer() *Layer {
	if l.scratch == nil {
		b := l.img.Bounds()
		l.scratch = &Layer{
			img:  image.NewRGBA(b),
			rast: raster.NewRasterizer(b.Dx(), b.Dy()),
		}
	}
	l.scratch.Clear()
	return l.scratch
}

func capper(lineCap options.LineCap) raster.Capper {
	switch lineCap {
	case options.CapButt:
		return raster.ButtCapper
	case options.CapSquare:
		return raster.SquareCapper
	default:
		return raster.RoundCapper
	}
}

// circlePath approximates a circle with straight segments; the stroker only
// needs first-order segments this way.
func circlePath(cx, cy, r float64) raster.Path {
	segments := int(math.Ceil(r))
	if segments < 24 {
		segments = 24
	}
	if segments > 360 {
		segments = 360
	}
	var path raster.Path
	path.Start(point(cx+r, cy))
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		path.Add1(point(cx+r*math.Cos(theta), cy+r*math.Sin(theta)))
	}
	return path
}

// finite reports whether every value can be turned into a raster coordinate.
// The rasterizer never terminates on NaN or infinite input.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func fix(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func point(x, y float64) fixed.Point26_6 { return fixed.Point26_6{X: fix(x), Y: fix(y)} }
