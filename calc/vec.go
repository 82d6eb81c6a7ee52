package calc

import (
	"math"

	"github.com/amp-labs/amp-anim/value"
)

// Vec is a three-component vector value.
type Vec struct {
	X float64
	Y float64
	Z float64
}

// Dot returns the dot product of two vectors.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the vector's length.
func (v Vec) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v with a length of 1, or v unchanged when its length is
// zero.
func (v Vec) Normalize() Vec {
	lenSq := v.Dot(v)
	if lenSq == 0 {
		return v
	}

	inv := 1 / math.Sqrt(lenSq)

	return Vec{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// vecCalculator blends Vec values.
type vecCalculator struct {
	typ *value.Type
}

// NewVec returns a calculator for a type whose data is a Vec.
func NewVec(t *value.Type) Calculator {
	return &vecCalculator{typ: t}
}

// RegisterVec creates a Vec-backed value type with the given name and
// registers a vector calculator for it.
func RegisterVec(name string) *value.Type {
	t := value.NewType(name, func() any {
		return Vec{}
	})
	Register(t, NewVec(t))

	return t
}

func (c *vecCalculator) Create() value.Value {
	return c.typ.Create()
}

func (c *vecCalculator) Zero(out *value.Value) {
	out.SetData(Vec{})
}

func (c *vecCalculator) Adds(a, b value.Value, scale float64) value.Value {
	av, bv := vec(a), vec(b)

	return c.typ.New(Vec{
		X: av.X + bv.X*scale,
		Y: av.Y + bv.Y*scale,
		Z: av.Z + bv.Z*scale,
	})
}

func (c *vecCalculator) Lerp(a, b value.Value, t float64) value.Value {
	av, bv := vec(a), vec(b)

	return c.typ.New(Vec{
		X: av.X + (bv.X-av.X)*t,
		Y: av.Y + (bv.Y-av.Y)*t,
		Z: av.Z + (bv.Z-av.Z)*t,
	})
}

// vec extracts Vec data, treating anything else as the zero vector.
func vec(v value.Value) Vec {
	val, ok := v.Data().(Vec)
	if !ok {
		return Vec{}
	}

	return val
}
