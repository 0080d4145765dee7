package render

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype/raster"
)

// Fill supplies the painter used to color rasterized spans.
type Fill interface {
	painter(dst *image.RGBA) raster.Painter
}

// Solid fills with a single color.
type Solid struct {
	Color color.Color
}

func (s Solid) painter(dst *image.RGBA) raster.Painter {
	p := raster.NewRGBAPainter(dst)
	p.SetColor(s.Color)
	return p
}

// RadialGradient blends Inner at the center to Outer at Radius. Points beyond
// Radius take Outer.
type RadialGradient struct {
	CenterX float64
	CenterY float64
	Radius  float64
	Inner   color.NRGBA
	Outer   color.NRGBA
}

// At returns the gradient color at (x, y).
func (g RadialGradient) At(x, y float64) color.NRGBA {
	t := 1.0
	if g.Radius > 0 {
		t = math.Min(1, math.Hypot(x-g.CenterX, y-g.CenterY)/g.Radius)
	}
	return color.NRGBA{
		R: lerp(g.Inner.R, g.Outer.R, t),
		G: lerp(g.Inner.G, g.Outer.G, t),
		B: lerp(g.Inner.B, g.Outer.B, t),
		A: lerp(g.Inner.A, g.Outer.A, t),
	}
}

func (g RadialGradient) painter(dst *image.RGBA) raster.Painter {
	return &gradientPainter{img: dst, gradient: g}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

type gradientPainter struct {
	img      *image.RGBA
	gradient RadialGradient
}

// Paint blends each covered pixel with draw.Over, sampling the gradient at
// the pixel center. The arithmetic mirrors raster.RGBAPainter.
func (p *gradientPainter) Paint(ss []raster.Span, done bool) {
	const m = 1<<16 - 1
	b := p.img.Bounds()
	for _, s := range ss {
		if s.Y < b.Min.Y || s.Y >= b.Max.Y {
			continue
		}
		x0, x1 := s.X0, s.X1
		if x0 < b.Min.X {
			x0 = b.Min.X
		}
		if x1 > b.Max.X {
			x1 = b.Max.X
		}
		ma := s.Alpha
		for x := x0; x < x1; x++ {
			cr, cg, cb, ca := p.gradient.At(float64(x)+0.5, float64(s.Y)+0.5).RGBA()
			a := (m - (ca * ma / m)) * 0x101
			i := p.img.PixOffset(x, s.Y)
			pix := p.img.Pix[i : i+4 : i+4]
			pix[0] = uint8((uint32(pix[0])*a + cr*ma) / m >> 8)
			pix[1] = uint8((uint32(pix[1])*a + cg*ma) / m >> 8)
			pix[2] = uint8((uint32(pix[2])*a + cb*ma) / m >> 8)
			pix[3] = uint8((uint32(pix[3])*a + ca*ma) / m >> 8)
		}
	}
}
