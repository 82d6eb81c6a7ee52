package calc

import "math"

// Epsilon is how close two floating point numbers must be to be considered
// equal by the helpers in this package.
const Epsilon = 0.00001

// Clamp returns v no smaller than min and no larger than max.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}

	if v > max {
		return max
	}

	return v
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Div returns a / b, or zero when b is zero.
func Div(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}

// QuadraticFormula returns the smallest positive root of a*t^2 + b*t + c.
// When no positive root can be computed, none is returned.
func QuadraticFormula(a, b, c, none float64) float64 {
	unset := -math.MaxFloat64
	t0, t1 := unset, unset

	switch {
	case math.Abs(a) < Epsilon:
		if math.Abs(b) < Epsilon {
			if math.Abs(c) < Epsilon {
				t0, t1 = 0, 0
			}
		} else {
			t0 = -c / b
			t1 = t0
		}
	default:
		disc := b*b - 4*a*c
		if disc >= 0 {
			disc = math.Sqrt(disc)
			den := 2 * a
			t0 = (-b - disc) / den
			t1 = (-b + disc) / den
		}
	}

	if t0 != unset {
		t := math.Min(t0, t1)
		if t < 0 {
			t = math.Max(t0, t1)
		}

		if t > 0 {
			return t
		}
	}

	return none
}

// TriangleHeight returns the height of a triangle given its base length and
// the lengths of the two remaining sides.
func TriangleHeight(base, side1, side2 float64) float64 {
	p := (base + side1 + side2) * 0.5
	area := math.Sqrt(p * (p - base) * (p - side1) * (p - side2))

	return Div(area*2, base)
}
