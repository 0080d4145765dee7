// Package geometry places clock elements on a surface.
//
// Angles are degrees clockwise from 12 o'clock. Surface coordinates have
// their origin at the top-left corner with Y growing downward.
package geometry

import "math"

// Dial is the drawing origin and usable radius of one surface.
type Dial struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// FromSize derives the dial from a surface size. The result is frozen: the
// surface is not observed afterwards.
func FromSize(width, height int, margin float64) Dial {
	w := float64(width)
	h := float64(height)
	return Dial{
		CenterX: w / 2,
		CenterY: h / 2,
		Radius:  math.Min(w, h)/2 - margin,
	}
}

// Point returns the position at angle, offset inward from the rim.
//
// The clockwise-from-12 angle is turned into standard trigonometry by a 90
// degree rotation, and Y is flipped because it grows downward.
func (d Dial) Point(angle, offset float64) (x, y float64) {
	length := d.Radius - offset
	theta := (90 - angle) * math.Pi / 180
	return d.CenterX + length*math.Cos(theta), d.CenterY - length*math.Sin(theta)
}

// MarkAngle is the angle of tick mark i (0-59), i=0 at 12 o'clock.
func MarkAngle(i int) float64 { return 6 * float64(i) }

// DigitAngle is the angle of digit i (1-12).
func DigitAngle(i int) float64 { return 30 * float64(i) }
