package anim

import (
	"github.com/amp-labs/amp-anim/calc"
	"github.com/amp-labs/amp-anim/value"
)

// Point is one keyframe in an attribute's animation data.
type Point struct {
	Time   float64
	Easing Easing
	Data   value.Value
}

// Path converts keyframes into a single value given a normalized time in
// [0, 1]. A path may leave out untouched when the time falls outside the
// range it covers.
type Path func(points []Point, time float64, out *value.Value)

// PointPath always produces the first point.
func PointPath(points []Point, _ float64, out *value.Value) {
	out.Set(points[0].Data)
}

// TweenPath interpolates between the first two points, honoring the first
// point's easing.
func TweenPath(points []Point, time float64, out *value.Value) {
	c := calc.For(out.Type())
	easedDelta := Ease(time, points[0].Easing)
	out.Set(c.Lerp(points[0].Data, points[1].Data, easedDelta))
}

// LinearPath interpolates between the pair of points surrounding the given
// time, honoring the earlier point's easing. Times at or past the last point
// leave out untouched.
func LinearPath(points []Point, time float64, out *value.Value) {
	for i := 1; i < len(points); i++ {
		curr := &points[i]
		if time < curr.Time {
			prev := &points[i-1]
			delta := (time - prev.Time) / (curr.Time - prev.Time)
			easedDelta := Ease(delta, prev.Easing)
			c := calc.For(out.Type())
			out.Set(c.Lerp(prev.Data, curr.Data, easedDelta))

			break
		}
	}
}

// QuadraticPath evaluates a quadratic bezier through the first three points.
func QuadraticPath(points []Point, time float64, out *value.Value) {
	d1 := time
	d2 := d1 * d1
	i1 := 1 - d1
	i2 := i1 * i1

	c := calc.For(out.Type())
	c.Zero(out)
	out.Set(c.Adds(*out, points[0].Data, i2))
	out.Set(c.Adds(*out, points[1].Data, 2*i1*d1))
	out.Set(c.Adds(*out, points[2].Data, d2))
}

// CubicPath evaluates a cubic bezier through the first four points.
func CubicPath(points []Point, time float64, out *value.Value) {
	d1 := time
	d2 := d1 * d1
	d3 := d1 * d2
	i1 := 1 - d1
	i2 := i1 * i1
	i3 := i1 * i2

	c := calc.For(out.Type())
	c.Zero(out)
	out.Set(c.Adds(*out, points[0].Data, i3))
	out.Set(c.Adds(*out, points[1].Data, 3*i2*d1))
	out.Set(c.Adds(*out, points[2].Data, 3*i1*d2))
	out.Set(c.Adds(*out, points[3].Data, d3))
}
