package machine

// State is the static definition of one state a machine can be in: an id,
// payload data, a fixed or input-dependent weight, options, outgoing
// transitions, and optionally a nested sub-machine definition. States are
// created once at setup and immutable for the run.
type State[S, D, I, U, O, W any] struct {
	id          string
	data        D
	fixedWeight W
	weight      WeightFunc[I, U, W]
	weightLive  bool
	options     O
	transitions []Transition[I, U, O]
	sub         *Def[S, D, I, U, O, W]
}

// NewState creates a state with a fixed weight.
func NewState[S, D, I, U, O, W any](id string, data D, weight W) *State[S, D, I, U, O, W] {
	return &State[S, D, I, U, O, W]{
		id:          id,
		data:        data,
		fixedWeight: weight,
	}
}

// NewDynamicState creates a state whose weight is computed from input. When
// live is true the weight is recomputed every tick, otherwise only at start.
func NewDynamicState[S, D, I, U, O, W any](id string, data D, weight WeightFunc[I, U, W], live bool) *State[S, D, I, U, O, W] {
	return &State[S, D, I, U, O, W]{
		id:         id,
		data:       data,
		weight:     weight,
		weightLive: live,
	}
}

// NewSubState creates a state that is itself an entire sub-machine.
func NewSubState[S, D, I, U, O, W any](id string, sub *Def[S, D, I, U, O, W]) *State[S, D, I, U, O, W] {
	return &State[S, D, I, U, O, W]{
		id:  id,
		sub: sub,
	}
}

// WithOptions attaches an options bundle to the state and returns it.
func (s *State[S, D, I, U, O, W]) WithOptions(options O) *State[S, D, I, U, O, W] {
	s.options = options

	return s
}

// ID returns the state's identifier.
func (s *State[S, D, I, U, O, W]) ID() string {
	return s.id
}

// Data returns the state's payload.
func (s *State[S, D, I, U, O, W]) Data() D {
	return s.data
}

// Weight returns the state's weight for the given input and update, falling
// back to the fixed weight when no weight function is set.
func (s *State[S, D, I, U, O, W]) Weight(input I, update U) W {
	if s.weight != nil {
		return s.weight(input, update)
	}

	return s.fixedWeight
}

// FixedWeight returns the state's fixed weight.
func (s *State[S, D, I, U, O, W]) FixedWeight() W {
	return s.fixedWeight
}

// WeightLive reports whether the weight must be recomputed every tick.
func (s *State[S, D, I, U, O, W]) WeightLive() bool {
	return s.weight != nil && s.weightLive
}

// Options returns the state's options bundle.
func (s *State[S, D, I, U, O, W]) Options() O {
	return s.options
}

// Transitions returns the state's outgoing transitions.
func (s *State[S, D, I, U, O, W]) Transitions() []Transition[I, U, O] {
	return s.transitions
}

// Sub returns the state's nested machine definition, or nil.
func (s *State[S, D, I, U, O, W]) Sub() *Def[S, D, I, U, O, W] {
	return s.sub
}
