package machine

// Transition moves a machine from a start state (or any state) into an end
// state when its condition holds. A nil condition always holds. Live
// transitions are checked every tick; deferred transitions only once their
// start state reports itself done. Transitions are immutable once created.
type Transition[I, U, O any] struct {
	hasStart  bool
	start     string
	end       string
	condition Condition[I, U]
	live      bool
	options   O
}

// To creates a transition from any state into end that fires instantly.
func To[I, U, O any](end string) Transition[I, U, O] {
	return Transition[I, U, O]{end: end}
}

// ToWhen creates a transition from any state into end given a condition.
func ToWhen[I, U, O any](end string, condition Condition[I, U]) Transition[I, U, O] {
	return Transition[I, U, O]{end: end, condition: condition}
}

// ToWhenLive creates a transition from any state into end given a condition,
// a live flag, and options.
func ToWhenLive[I, U, O any](end string, condition Condition[I, U], live bool, options O) Transition[I, U, O] {
	return Transition[I, U, O]{
		end:       end,
		condition: condition,
		live:      live,
		options:   options,
	}
}

// FromTo creates a transition from start to end that fires when the condition
// holds.
func FromTo[I, U, O any](start, end string, condition Condition[I, U], live bool, options O) Transition[I, U, O] {
	return Transition[I, U, O]{
		hasStart:  true,
		start:     start,
		end:       end,
		condition: condition,
		live:      live,
		options:   options,
	}
}

// FromToAuto creates an unconditional transition from start to end. When
// waitForDone is true the transition only fires once start is done.
func FromToAuto[I, U, O any](start, end string, waitForDone bool, options O) Transition[I, U, O] {
	return Transition[I, U, O]{
		hasStart: true,
		start:    start,
		end:      end,
		live:     !waitForDone,
		options:  options,
	}
}

// HasStart reports whether the transition names a start state. Transitions
// without one belong to the machine definition as a whole.
func (t *Transition[I, U, O]) HasStart() bool {
	return t.hasStart
}

// Start returns the start state id, meaningful only when HasStart is true.
func (t *Transition[I, U, O]) Start() string {
	return t.start
}

// End returns the end state id.
func (t *Transition[I, U, O]) End() string {
	return t.end
}

// IsLive reports whether the transition is checked every tick.
func (t *Transition[I, U, O]) IsLive() bool {
	return t.live
}

// Options returns the options bundle attached to the transition.
func (t *Transition[I, U, O]) Options() O {
	return t.options
}

// Eval evaluates the transition's condition. An absent condition holds.
func (t *Transition[I, U, O]) Eval(input I, update U) bool {
	return t.condition == nil || t.condition(input, update)
}
