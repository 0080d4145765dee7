// Package view draws the two layers of a clock: the static face and the
// arrows that are redrawn on every tick.
package view

import (
	"image/color"
	"strconv"

	"golang.org/x/image/font"

	"github.com/rook-computer/analogclock/internal/geometry"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
)

// FaceView draws the dial, the 60 marks and the 12 digits.
type FaceView struct {
	layer  *render.Layer
	dial   geometry.Dial
	opts   options.FaceOptions
	digits font.Face
}

// NewFaceView binds a face to its layer. A nil digits face falls back to
// render.FallbackFace.
func NewFaceView(layer *render.Layer, dial geometry.Dial, opts options.FaceOptions, digits font.Face) *FaceView {
	if digits == nil {
		digits = render.FallbackFace
	}
	return &FaceView{layer: layer, dial: dial, opts: opts, digits: digits}
}

func (v *FaceView) Layer() *render.Layer { return v.layer }

// Draw renders the complete face. Repeated calls produce identical pixels.
func (v *FaceView) Draw() {
	v.layer.Clear()
	v.drawCircle()
	v.drawMarks()
	v.drawDigits()
}

func (v *FaceView) drawCircle() {
	d, o := v.dial, v.opts
	v.layer.StrokeCircle(d.CenterX, d.CenterY, d.Radius, o.BorderWidth, o.BorderColor)

	gradient := render.RadialGradient{
		CenterX: d.CenterX,
		CenterY: d.CenterY,
		Radius:  d.Radius,
		Inner:   o.CenterColor,
		Outer:   o.EdgeColor,
	}
	v.layer.Shadowed(o.Shadow, func(dst *render.Layer, tint color.Color) {
		var fill render.Fill = gradient
		if tint != nil {
			fill = render.Solid{Color: tint}
		}
		dst.FillCircle(d.CenterX, d.CenterY, d.Radius, fill)
	})
}

func (v *FaceView) drawMarks() {
	o := v.opts
	v.layer.Shadowed(o.DigitsShadow, func(dst *render.Layer, tint color.Color) {
		fill := render.Solid{Color: pick(tint, o.MarksColor)}
		for i := 0; i < 60; i++ {
			x, y := v.dial.Point(geometry.MarkAngle(i), o.MarksOffset)
			r := o.MarksOtherRadius
			if i%5 == 0 {
				r = o.MarksDigitsRadius
			}
			dst.FillCircle(x, y, r, fill)
		}
	})
}

func (v *FaceView) drawDigits() {
	o := v.opts
	v.layer.Shadowed(o.DigitsShadow, func(dst *render.Layer, tint color.Color) {
		c := pick(tint, o.DigitsColor)
		for i := 1; i <= 12; i++ {
			x, y := v.dial.Point(geometry.DigitAngle(i), o.DigitsOffset)
			dst.FillText(strconv.Itoa(i), x, y, v.digits, c)
		}
	})
}

func pick(tint color.Color, own color.NRGBA) color.Color {
	if tint != nil {
		return tint
	}
	return own
}
