package view

import (
	"image/color"

	"github.com/rook-computer/analogclock/internal/clocktime"
	"github.com/rook-computer/analogclock/internal/geometry"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
)

// HandStroke is one computed hand segment, from the center to the tip.
type HandStroke struct {
	Name  string
	Angle float64
	X0    float64
	Y0    float64
	X1    float64
	Y1    float64
	Hand  options.Hand
}

// ArrowsView draws the hour, minute and second hands and the pivot cap. It
// keeps nothing between calls: every Draw starts from a blank layer.
type ArrowsView struct {
	layer    *render.Layer
	dial     geometry.Dial
	opts     options.ArrowOptions
	onSecond func(seconds float64)
}

// NewArrowsView binds the arrows to their layer. onSecondHandTick, when not
// nil, receives the second hand angle once per Draw.
func NewArrowsView(layer *render.Layer, dial geometry.Dial, opts options.ArrowOptions, onSecondHandTick func(seconds float64)) *ArrowsView {
	return &ArrowsView{layer: layer, dial: dial, opts: opts, onSecond: onSecondHandTick}
}

func (v *ArrowsView) Layer() *render.Layer { return v.layer }

// Strokes computes the hand segments for s in draw order.
func (v *ArrowsView) Strokes(s clocktime.Sample) [3]HandStroke {
	return [3]HandStroke{
		v.stroke("hours", s.HourAngle(), v.opts.Hours),
		v.stroke("minutes", s.MinuteAngle(), v.opts.Minutes),
		v.stroke("seconds", s.SecondAngle(), v.opts.Seconds),
	}
}

func (v *ArrowsView) stroke(name string, angle float64, hand options.Hand) HandStroke {
	x, y := v.dial.Point(angle, hand.Offset)
	return HandStroke{
		Name:  name,
		Angle: angle,
		X0:    v.dial.CenterX,
		Y0:    v.dial.CenterY,
		X1:    x,
		Y1:    y,
		Hand:  hand,
	}
}

// Draw clears the layer and redraws hour, minute and second hands, then the
// pivot on top of them.
func (v *ArrowsView) Draw(s clocktime.Sample) {
	strokes := v.Strokes(s)
	o := v.opts

	v.layer.Clear()
	// Each shape casts its own shadow, so a later hand's shadow falls on the
	// hands drawn before it.
	for _, st := range strokes {
		v.layer.Shadowed(o.Shadow, func(dst *render.Layer, tint color.Color) {
			dst.StrokeLine(st.X0, st.Y0, st.X1, st.Y1, st.Hand.Width, o.LineCap, pick(tint, st.Hand.Color))
		})
	}
	v.layer.Shadowed(o.Shadow, func(dst *render.Layer, tint color.Color) {
		dst.FillCircle(v.dial.CenterX, v.dial.CenterY, o.CenterRadius, render.Solid{Color: pick(tint, o.CenterColor)})
	})

	if v.onSecond != nil {
		v.onSecond(strokes[2].Angle)
	}
}
