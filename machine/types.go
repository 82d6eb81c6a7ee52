// Package machine implements a generic hierarchical, weight-blended state
// machine. A machine can operate fuzzy or finite: a fuzzy machine keeps any
// number of weighted states active at once and blends them, while a finite
// machine (see Finite) keeps at most one. A state can itself be an entire
// sub-machine.
//
// Concepts:
//   - Subject: the thing that has states and can move through them.
//   - Data: the state payload that is applied to the subject.
//   - Input: environmental values that can trigger transitions.
//   - Options: values that control how state data is applied or transitioned.
//   - Condition: given input, should a state be transitioned to?
//   - Transition: given a start state (optional), end state, and condition,
//     controls which state(s) are moved to next.
//   - Def: defines states, transitions, and the hooks necessary to update a
//     subject.
//   - Machine: an instance of a Def, moving a subject through state(s).
//
// The package is generic over six types: S the subject, D the state payload,
// I the input, U the per-tick update value, O the options bundle carried by
// states and transitions, and W the state weight.
//
// A machine is single-threaded by contract: one driver calls Update then
// Apply once per tick, and all mutation of active and queued states happens
// inside those calls. Hooks must not re-enter the same machine.
package machine

// Condition reports whether a transition should fire given the current input
// and update values. Conditions of live transitions are evaluated every tick;
// all others only once their start state is done.
type Condition[I, U any] func(input I, update U) bool

// WeightFunc computes a state's weight from the current input and update.
// For fuzzy machines the weight controls blending; for finite machines with
// multiple candidate states the greatest weight wins.
type WeightFunc[I, U, W any] func(input I, update U) W

// Priority orders active states. It reports whether a should be kept ahead
// of b when a machine must drop states beyond a configured maximum.
type Priority[S, D, I, U, O, W any] func(a, b *Active[S, D, I, U, O, W]) bool

// Hooks connects a machine definition to its subject. The animation binding
// is one implementation; any consumer can drive the generic machine by
// providing another.
type Hooks[S, D, I, U, O, W any] interface {
	// Start is called when a transition fires and a state is about to be
	// queued for activation. outro is the state being exited, if any.
	// Returning false rejects the activation.
	Start(subject S, state *Active[S, D, I, U, O, W], trans *Transition[I, U, O], outro *Active[S, D, I, U, O, W]) bool

	// Apply applies the given active states to the subject. The states'
	// weights may add up to any number; it is up to the implementation to
	// adjust them (for example normalize) before use.
	Apply(subject S, active []*Active[S, D, I, U, O, W], update U)

	// Done reports whether the given leaf state has finished. Once a state
	// is done its deferred transitions are evaluated.
	Done(subject S, state *Active[S, D, I, U, O, W]) bool
}

// And produces a condition that is true when every condition is true.
func And[I, U any](conditions ...Condition[I, U]) Condition[I, U] {
	return func(input I, update U) bool {
		for _, c := range conditions {
			if !c(input, update) {
				return false
			}
		}

		return true
	}
}

// Or produces a condition that is true when any condition is true.
func Or[I, U any](conditions ...Condition[I, U]) Condition[I, U] {
	return func(input I, update U) bool {
		for _, c := range conditions {
			if c(input, update) {
				return true
			}
		}

		return false
	}
}

// Not produces a condition that is true when every condition is false.
func Not[I, U any](conditions ...Condition[I, U]) Condition[I, U] {
	return func(input I, update U) bool {
		for _, c := range conditions {
			if c(input, update) {
				return false
			}
		}

		return true
	}
}
