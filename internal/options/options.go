// Package options holds the visual configuration of a clock.
//
// Each view has its own hard-coded defaults. Callers override them key by key
// with Resolve; the resulting Options is a plain value and is never changed
// after a view has been built from it.
package options

import "image/color"

type LineCap string

const (
	CapRound  LineCap = "round"
	CapButt   LineCap = "butt"
	CapSquare LineCap = "square"
)

// Shadow is a drop shadow drawn under a shape.
type Shadow struct {
	Color   color.NRGBA
	OffsetX float64
	OffsetY float64
	Blur    float64
}

// Visible reports whether drawing the shadow can change any pixel.
func (s Shadow) Visible() bool {
	return s.Color.A != 0 && (s.OffsetX != 0 || s.OffsetY != 0 || s.Blur > 0)
}

// Font is the subset of a CSS font shorthand that affects rendering.
type Font struct {
	Family string
	Bold   bool
	Italic bool
	Size   float64 // pixels
}

type FaceOptions struct {
	BorderColor color.NRGBA
	BorderWidth float64
	CenterColor color.NRGBA
	EdgeColor   color.NRGBA
	Shadow      Shadow

	DigitsColor  color.NRGBA
	DigitsFont   Font
	DigitsShadow Shadow
	DigitsOffset float64

	MarksColor        color.NRGBA
	MarksOffset       float64
	MarksOtherRadius  float64
	MarksDigitsRadius float64
}

// Hand describes one arrow.
type Hand struct {
	Color  color.NRGBA
	Width  float64
	Offset float64 // distance from the rim to the tip
}

type ArrowOptions struct {
	LineCap      LineCap
	Shadow       Shadow
	Hours        Hand
	Minutes      Hand
	Seconds      Hand
	CenterColor  color.NRGBA
	CenterRadius float64
}

type Options struct {
	Face   FaceOptions
	Arrows ArrowOptions
	Margin float64
	IsWork bool
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alpha(a)}
}

func DefaultFace() FaceOptions {
	return FaceOptions{
		BorderColor: rgba(1, 1, 1, 1),
		BorderWidth: 1,
		CenterColor: rgba(255, 255, 255, 1),
		EdgeColor:   rgba(1, 1, 1, 1),
		Shadow:      Shadow{Color: rgba(0, 0, 0, 0.5), OffsetX: 5, OffsetY: 5},

		DigitsColor:  rgba(255, 255, 255, 1),
		DigitsFont:   Font{Family: "Helvetica, Verdana, Times New Romans, sans-serif", Bold: true, Size: 30},
		DigitsShadow: Shadow{Color: rgba(0, 0, 0, 0.5), OffsetX: 2, OffsetY: 2},
		DigitsOffset: 30,

		MarksColor:        rgba(255, 0, 0, 1),
		MarksOffset:       60,
		MarksOtherRadius:  2,
		MarksDigitsRadius: 4,
	}
}

func DefaultArrows() ArrowOptions {
	return ArrowOptions{
		LineCap:      CapRound,
		Shadow:       Shadow{Color: rgba(10, 10, 10, 1), OffsetX: 4, OffsetY: 4},
		Hours:        Hand{Color: rgba(255, 0, 0, 1), Width: 15, Offset: 100},
		Minutes:      Hand{Color: rgba(255, 0, 0, 1), Width: 10, Offset: 60},
		Seconds:      Hand{Color: rgba(255, 255, 255, 1), Width: 2, Offset: 50},
		CenterColor:  rgba(1, 1, 1, 1),
		CenterRadius: 2,
	}
}

func Default() Options {
	return Options{
		Face:   DefaultFace(),
		Arrows: DefaultArrows(),
		Margin: 10,
		IsWork: true,
	}
}
