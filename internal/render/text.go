package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/analogclock/internal/options"
)

// FallbackFace is used when a requested face cannot be built.
var FallbackFace font.Face = basicfont.Face7x13

// LoadFace builds a font face for f. Family names are not resolved against
// the system; the Go fonts stand in for any family, matched by weight and
// style. Sizes are pixels.
func LoadFace(f options.Font) (font.Face, error) {
	data := goregular.TTF
	switch {
	case f.Bold && f.Italic:
		data = gobolditalic.TTF
	case f.Bold:
		data = gobold.TTF
	case f.Italic:
		data = goitalic.TTF
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	size := f.Size
	if size <= 0 {
		size = 12
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", f, err)
	}
	return face, nil
}

// FillText draws text centered horizontally on x and vertically on y.
func (l *Layer) FillText(text string, x, y float64, face font.Face, c color.Color) {
	if !finite(x, y) {
		return
	}
	if face == nil {
		face = FallbackFace
	}
	drawer := &font.Drawer{
		Dst:  l.img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := drawer.MeasureString(text)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: fix(x) - width/2,
		Y: fix(y) + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(text)
}
