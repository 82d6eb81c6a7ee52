package calc

import (
	"github.com/amp-labs/amp-anim/value"
)

// scalarCalculator blends float64 values.
type scalarCalculator struct {
	typ *value.Type
}

// NewScalar returns a calculator for a type whose data is a float64.
func NewScalar(t *value.Type) Calculator {
	return &scalarCalculator{typ: t}
}

// RegisterScalar creates a float64-backed value type with the given name and
// registers a scalar calculator for it.
func RegisterScalar(name string) *value.Type {
	t := value.NewType(name, func() any {
		return float64(0)
	})
	Register(t, NewScalar(t))

	return t
}

func (c *scalarCalculator) Create() value.Value {
	return c.typ.Create()
}

func (c *scalarCalculator) Zero(out *value.Value) {
	out.SetData(float64(0))
}

func (c *scalarCalculator) Adds(a, b value.Value, scale float64) value.Value {
	return c.typ.New(scalar(a) + scalar(b)*scale)
}

func (c *scalarCalculator) Lerp(a, b value.Value, t float64) value.Value {
	av := scalar(a)

	return c.typ.New(av + (scalar(b)-av)*t)
}

// scalar extracts float64 data, treating anything else as zero.
func scalar(v value.Value) float64 {
	f, ok := v.Data().(float64)
	if !ok {
		return 0
	}

	return f
}
