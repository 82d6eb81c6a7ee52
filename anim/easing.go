package anim

// Easing describes animation velocity: it maps a normalized time delta in
// [0, 1] to an eased delta.
type Easing func(delta float64) float64

// Linear returns the delta unchanged.
func Linear(delta float64) float64 { return delta }

// Quad accelerates from zero velocity.
func Quad(delta float64) float64 { return delta * delta }

// Cubic accelerates from zero velocity, more sharply than Quad.
func Cubic(delta float64) float64 { return delta * delta * delta }

// SmoothStep accelerates in and decelerates out.
func SmoothStep(delta float64) float64 { return delta * delta * (3 - 2*delta) }

// Ease applies the easing to the delta; a nil easing is linear.
func Ease(delta float64, easing Easing) float64 {
	if easing == nil {
		return delta
	}

	return easing(delta)
}

// Flip mirrors an easing, turning an ease-in into an ease-out.
func Flip(easing Easing) Easing {
	return func(delta float64) float64 { return 1 - Ease(1-delta, easing) }
}

// JoinEasing composes two easings, applying a then b. Either side may be nil.
func JoinEasing(a, b Easing) Easing {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	return func(delta float64) float64 { return b(a(delta)) }
}
