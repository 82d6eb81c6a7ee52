package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/amp-anim/calc"
	"github.com/amp-labs/amp-anim/value"
)

//nolint:gochecknoglobals // shared immutable test type
var pathScalar = calc.RegisterScalar("anim-test-path-scalar")

func scalarPoints(values ...float64) []Point {
	points := make([]Point, len(values))
	step := 1.0 / float64(len(values)-1)

	for i, v := range values {
		points[i] = Point{Time: float64(i) * step, Data: pathScalar.New(v)}
	}

	return points
}

func sample(t *testing.T, path Path, points []Point, time float64) float64 {
	t.Helper()

	out := pathScalar.Create()
	path(points, time, &out)

	f, ok := out.Data().(float64)
	require.True(t, ok)

	return f
}

func TestPointPath(t *testing.T) {
	t.Parallel()

	points := scalarPoints(4, 8)
	assert.InDelta(t, 4.0, sample(t, PointPath, points, 0.9), 1e-9)
}

func TestTweenPath(t *testing.T) {
	t.Parallel()

	points := scalarPoints(0, 10)
	assert.InDelta(t, 5.0, sample(t, TweenPath, points, 0.5), 1e-9)

	points[0].Easing = Quad
	assert.InDelta(t, 2.5, sample(t, TweenPath, points, 0.5), 1e-9)
}

func TestLinearPath(t *testing.T) {
	t.Parallel()

	points := scalarPoints(0, 10, 0)

	assert.InDelta(t, 5.0, sample(t, LinearPath, points, 0.25), 1e-9)
	assert.InDelta(t, 10.0, sample(t, LinearPath, points, 0.5), 1e-9)
	assert.InDelta(t, 5.0, sample(t, LinearPath, points, 0.75), 1e-9)
}

func TestLinearPathPastEndLeavesValue(t *testing.T) {
	t.Parallel()

	points := scalarPoints(0, 10)

	out := pathScalar.New(42.0)
	LinearPath(points, 1.0, &out)
	assert.InDelta(t, 42.0, out.Data(), 1e-9, "a time at or past the last point must not write")

	LinearPath(points, 0.5, &out)
	assert.InDelta(t, 5.0, out.Data(), 1e-9)
}

func TestQuadraticPath(t *testing.T) {
	t.Parallel()

	points := scalarPoints(0, 10, 20)

	assert.InDelta(t, 0.0, sample(t, QuadraticPath, points, 0), 1e-9)
	assert.InDelta(t, 20.0, sample(t, QuadraticPath, points, 1), 1e-9)
	assert.InDelta(t, 10.0, sample(t, QuadraticPath, points, 0.5), 1e-9)
}

func TestCubicPath(t *testing.T) {
	t.Parallel()

	points := scalarPoints(0, 0, 30, 30)

	assert.InDelta(t, 0.0, sample(t, CubicPath, points, 0), 1e-9)
	assert.InDelta(t, 30.0, sample(t, CubicPath, points, 1), 1e-9)
	assert.InDelta(t, 15.0, sample(t, CubicPath, points, 0.5), 1e-9)
}

func TestVecPath(t *testing.T) {
	t.Parallel()

	vecType := calc.RegisterVec("anim-test-path-vec")
	points := []Point{
		{Time: 0, Data: vecType.New(calc.Vec{X: 0, Y: 0})},
		{Time: 1, Data: vecType.New(calc.Vec{X: 10, Y: -4})},
	}

	out := vecType.Create()
	LinearPath(points, 0.5, &out)

	v, ok := out.Data().(calc.Vec)
	require.True(t, ok)
	assert.InDelta(t, 5.0, v.X, 1e-9)
	assert.InDelta(t, -2.0, v.Y, 1e-9)

	var invalid value.Value

	// Paths write through value.Set, which adopts the output's type.
	invalid.Set(out)
	assert.True(t, invalid.Is(vecType))
}
