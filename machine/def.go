package machine

import "fmt"

// Options is the machine-wide policy of a definition.
type Options[S, D, I, U, O, W any] struct {
	// AppliedMax, when > 0, limits how many states are passed to the apply
	// hook each tick.
	AppliedMax int
	// AppliedPriority orders states before the AppliedMax cut. When nil the
	// active order is used.
	AppliedPriority Priority[S, D, I, U, O, W]
	// ActiveMax, when > 0, limits how many states may be active at once.
	// Queued states beyond the cap are dropped, not retried.
	ActiveMax int
	// ActivePriority orders queued states before the ActiveMax cut. When nil
	// the queue order is used.
	ActivePriority Priority[S, D, I, U, O, W]
	// FullyActive marks every defined state as always active, with no
	// transition-driven activation or deactivation.
	FullyActive bool
	// FlushImmediately flushes the activation queue produced by an Update
	// into the active list before the Update returns, instead of on the next
	// tick.
	FlushImmediately bool
}

// Finite returns the policy of a classic finite state machine: at most one
// state active and at most one state applied.
func Finite[S, D, I, U, O, W any]() Options[S, D, I, U, O, W] {
	return Options[S, D, I, U, O, W]{
		AppliedMax: 1,
		ActiveMax:  1,
	}
}

// Def is a machine definition: the states it can be in, machine-wide
// transitions, the initial input, policy, and the hooks used to drive a
// subject. One Def is shared by every Machine instance built from it.
type Def[S, D, I, U, O, W any] struct {
	name         string
	states       []*State[S, D, I, U, O, W]
	transitions  []Transition[I, U, O]
	initialInput I
	hooks        Hooks[S, D, I, U, O, W]
	options      Options[S, D, I, U, O, W]
}

// NewDef creates a root machine definition.
func NewDef[S, D, I, U, O, W any](
	name string,
	hooks Hooks[S, D, I, U, O, W],
	initialInput I,
	options Options[S, D, I, U, O, W],
) *Def[S, D, I, U, O, W] {
	return &Def[S, D, I, U, O, W]{
		name:         name,
		hooks:        hooks,
		initialInput: initialInput,
		options:      options,
	}
}

// NewSubDef creates a definition meant to be nested inside a state of another
// machine. Nested machines observe their root's input, so none of their own.
func NewSubDef[S, D, I, U, O, W any](
	name string,
	hooks Hooks[S, D, I, U, O, W],
	options Options[S, D, I, U, O, W],
) *Def[S, D, I, U, O, W] {
	return &Def[S, D, I, U, O, W]{
		name:    name,
		hooks:   hooks,
		options: options,
	}
}

// Name returns the definition's name, used in logs, metrics, and diagrams.
func (d *Def[S, D, I, U, O, W]) Name() string {
	return d.name
}

// AddState appends a state to the definition. State ids must be unique
// within one definition.
func (d *Def[S, D, I, U, O, W]) AddState(state *State[S, D, I, U, O, W]) error {
	if d.State(state.id) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateState, state.id)
	}

	d.states = append(d.states, state)

	return nil
}

// AddTransition appends a transition. Transitions with a start state are
// attached to that state; transitions without one become machine-wide.
// Referencing an undefined state is a configuration error.
func (d *Def[S, D, I, U, O, W]) AddTransition(trans Transition[I, U, O]) error {
	if d.State(trans.end) == nil {
		return fmt.Errorf("%w: transition end %q", ErrUnknownState, trans.end)
	}

	if trans.hasStart {
		start := d.State(trans.start)
		if start == nil {
			return fmt.Errorf("%w: transition start %q", ErrUnknownState, trans.start)
		}

		start.transitions = append(start.transitions, trans)

		return nil
	}

	d.transitions = append(d.transitions, trans)

	return nil
}

// State returns the state with the given id, or nil.
func (d *Def[S, D, I, U, O, W]) State(id string) *State[S, D, I, U, O, W] {
	for _, s := range d.states {
		if s.id == id {
			return s
		}
	}

	return nil
}

// States returns the definition's states in order.
func (d *Def[S, D, I, U, O, W]) States() []*State[S, D, I, U, O, W] {
	return d.states
}

// Transitions returns the machine-wide transitions.
func (d *Def[S, D, I, U, O, W]) Transitions() []Transition[I, U, O] {
	return d.transitions
}

// InitialInput returns the input a root machine starts with.
func (d *Def[S, D, I, U, O, W]) InitialInput() I {
	return d.initialInput
}

// Options returns the definition's policy.
func (d *Def[S, D, I, U, O, W]) Options() Options[S, D, I, U, O, W] {
	return d.options
}

// start invokes the start hook, defaulting to accepting the activation.
func (d *Def[S, D, I, U, O, W]) start(subject S, state *Active[S, D, I, U, O, W], trans *Transition[I, U, O], outro *Active[S, D, I, U, O, W]) bool {
	if d.hooks == nil {
		return true
	}

	return d.hooks.Start(subject, state, trans, outro)
}

// apply invokes the apply hook, if any.
func (d *Def[S, D, I, U, O, W]) apply(subject S, active []*Active[S, D, I, U, O, W], update U) {
	if d.hooks != nil {
		d.hooks.Apply(subject, active, update)
	}
}

// done invokes the done hook. Without hooks a state never finishes on its
// own; only a fired transition removes it.
func (d *Def[S, D, I, U, O, W]) done(subject S, state *Active[S, D, I, U, O, W]) bool {
	if d.hooks == nil {
		return false
	}

	return d.hooks.Done(subject, state)
}
