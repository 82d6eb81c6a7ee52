// Package calc defines per-type numeric calculators used by the animation
// blending engine. A Calculator provides the small vector-style operation set
// (create, zero, scaled add, lerp) over value handles, and calculators are
// registered and looked up by value type. A missing calculator is never an
// error; callers are expected to skip blending for that type.
package calc

import (
	"github.com/amp-labs/amp-anim/value"
)

// Calculator implements the math needed to blend values of one type.
type Calculator interface {
	// Create returns a zeroed value.
	Create() value.Value
	// Zero zeroes the value in place.
	Zero(out *value.Value)
	// Adds returns a + b*scale.
	Adds(a, b value.Value, scale float64) value.Value
	// Lerp returns a + (b-a)*t.
	Lerp(a, b value.Value, t float64) value.Value
}

var calculators = map[*value.Type]Calculator{}

// Register associates a calculator with a value type, replacing any previous
// registration.
func Register(t *value.Type, c Calculator) {
	calculators[t] = c
}

// For returns the calculator registered for the given type, or nil when none
// is registered.
func For(t *value.Type) Calculator {
	return calculators[t]
}
