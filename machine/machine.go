package machine

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Machine is a running instance of a Def bound to a subject. It owns the
// current active-state set, the queue of states about to become active, and
// (for a root machine) the canonical input value shared with every nested
// machine. The driver ticks it with Update then Apply once per frame.
type Machine[S, D, I, U, O, W any] struct {
	id         string
	parent     *Machine[S, D, I, U, O, W]
	def        *Def[S, D, I, U, O, W]
	subject    S
	input      *I
	active     []*Active[S, D, I, U, O, W]
	queue      []*Active[S, D, I, U, O, W]
	applicable []*Active[S, D, I, U, O, W]
	logger     Logger
}

// New creates a root machine for the given subject. The machine owns the
// canonical input value, seeded from the definition's initial input.
func New[S, D, I, U, O, W any](def *Def[S, D, I, U, O, W], subject S) *Machine[S, D, I, U, O, W] {
	input := def.InitialInput()

	return &Machine[S, D, I, U, O, W]{
		id:      uuid.NewString(),
		def:     def,
		subject: subject,
		input:   &input,
		logger:  NopLogger{},
	}
}

// newSubMachine creates a machine nested under a parent. It observes the
// parent's input; the root remains the sole true owner.
func newSubMachine[S, D, I, U, O, W any](
	def *Def[S, D, I, U, O, W],
	subject S,
	parent *Machine[S, D, I, U, O, W],
) *Machine[S, D, I, U, O, W] {
	return &Machine[S, D, I, U, O, W]{
		id:      uuid.NewString(),
		parent:  parent,
		def:     def,
		subject: subject,
		input:   parent.input,
		logger:  parent.logger,
	}
}

// SetLogger replaces the machine's logger. Child machines created after this
// call inherit it.
func (m *Machine[S, D, I, U, O, W]) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}

	m.logger = logger
}

// ID returns the instance id used to correlate log lines.
func (m *Machine[S, D, I, U, O, W]) ID() string {
	return m.id
}

// Parent returns the machine this one is nested under, or nil for a root.
func (m *Machine[S, D, I, U, O, W]) Parent() *Machine[S, D, I, U, O, W] {
	return m.parent
}

// Def returns the definition this machine was built from.
func (m *Machine[S, D, I, U, O, W]) Def() *Def[S, D, I, U, O, W] {
	return m.def
}

// Subject returns the subject this machine drives.
func (m *Machine[S, D, I, U, O, W]) Subject() S {
	return m.subject
}

// Input returns the shared input value. Mutating it is how a driver feeds
// the machine tree between ticks.
func (m *Machine[S, D, I, U, O, W]) Input() *I {
	return m.input
}

// Active returns the currently active states.
func (m *Machine[S, D, I, U, O, W]) Active() []*Active[S, D, I, U, O, W] {
	return m.active
}

// Queued returns the states waiting to become active.
func (m *Machine[S, D, I, U, O, W]) Queued() []*Active[S, D, I, U, O, W] {
	return m.queue
}

// ActiveByID returns the active state with the given definition id, or nil.
func (m *Machine[S, D, I, U, O, W]) ActiveByID(id string) *Active[S, D, I, U, O, W] {
	for _, state := range m.active {
		if state.def.ID() == id {
			return state
		}
	}

	return nil
}

// Init seeds the machine and only runs while both the active set and the
// queue are empty. A fully-active machine without machine-wide transitions
// instantiates every defined state unconditionally; otherwise the
// machine-wide transitions are evaluated to pick the first state(s).
func (m *Machine[S, D, I, U, O, W]) Init(update U) {
	if len(m.active) > 0 || len(m.queue) > 0 {
		return
	}

	options := m.def.Options()
	transitions := m.def.Transitions()

	if options.FullyActive && len(transitions) == 0 {
		for _, def := range m.def.States() {
			state := newActive(def, m.subject, *m.input, update, m)
			if state.sub != nil {
				state.sub.Init(update)
			}

			trans := To[I, U, O](def.ID())
			if m.def.start(m.subject, state, &trans, nil) {
				m.logger.StateQueued(m.def.Name(), m.id, def.ID())
				m.queue = append(m.queue, state)
			}
		}

		return
	}

	if len(transitions) > 0 {
		m.transitions(transitions, update, false, nil)
	}
}

// Update runs one tick of the transition protocol: machine-wide transitions
// are considered, the queue is flushed into the active set, every remaining
// active state is advanced, and, when the policy asks for it, the queue
// produced by this tick is flushed again before returning.
func (m *Machine[S, D, I, U, O, W]) Update(update U) {
	started := time.Now()
	options := m.def.Options()

	if !options.FullyActive {
		hasState := len(m.active) > 0 || len(m.queue) > 0
		m.transitions(m.def.Transitions(), update, hasState, nil)
	}

	m.flushQueue()
	m.updateActive(update)

	if options.FlushImmediately && len(m.queue) > 0 {
		m.flushQueue()
	}

	observeTick(m.def.Name(), len(m.active), time.Since(started))
}

// Apply pushes the applicable active states into the apply hook. When an
// applied maximum is configured and exceeded, states are ordered by the
// configured priority (or left in active order) and truncated.
func (m *Machine[S, D, I, U, O, W]) Apply(update U) {
	if len(m.active) == 0 {
		return
	}

	options := m.def.Options()

	m.applicable = m.applicable[:0]
	m.applicable = append(m.applicable, m.active...)

	if options.AppliedMax > 0 && options.AppliedMax < len(m.applicable) {
		if options.AppliedPriority != nil {
			sort.SliceStable(m.applicable, func(i, j int) bool {
				return options.AppliedPriority(m.applicable[i], m.applicable[j])
			})
		}

		m.applicable = m.applicable[:options.AppliedMax]
	}

	m.def.apply(m.subject, m.applicable, update)
}

// transitions evaluates a transition list and queues every activation whose
// condition holds and whose start hook accepts. outro is the state being
// exited, passed through to the hook for crossfade bookkeeping. Returns how
// many transitions fired.
//
// A transition whose end state is already active is skipped. The check only
// covers the active set: two transitions targeting the same end state in one
// evaluation both enqueue, and the first one flushed wins any ActiveMax cut.
func (m *Machine[S, D, I, U, O, W]) transitions(
	transitions []Transition[I, U, O],
	update U,
	onlyLive bool,
	outro *Active[S, D, I, U, O, W],
) int {
	transitioned := 0

	for i := range transitions {
		trans := &transitions[i]
		if onlyLive && !trans.IsLive() {
			continue
		}

		if m.ActiveByID(trans.End()) != nil {
			continue
		}

		if !trans.Eval(*m.input, update) {
			continue
		}

		def := m.def.State(trans.End())
		if def == nil {
			continue
		}

		state := newActive(def, m.subject, *m.input, update, m)
		if state.sub != nil {
			state.sub.Init(update)
		}

		if m.def.start(m.subject, state, trans, outro) {
			m.logger.TransitionFired(m.def.Name(), m.id, trans.Start(), trans.End(), trans.IsLive())
			observeTransition(m.def.Name(), trans.End())
			m.queue = append(m.queue, state)
			transitioned++
		}
	}

	return transitioned
}

// flushQueue moves queued states into the active set, honoring the ActiveMax
// cap. States beyond the cap are dropped, not retried.
func (m *Machine[S, D, I, U, O, W]) flushQueue() {
	if len(m.queue) == 0 {
		return
	}

	options := m.def.Options()

	if options.ActiveMax > 0 {
		remaining := options.ActiveMax - len(m.active)

		switch {
		case remaining >= len(m.queue):
			// Plenty of space.
		case remaining > 0:
			if options.ActivePriority != nil {
				sort.SliceStable(m.queue, func(i, j int) bool {
					return options.ActivePriority(m.queue[i], m.queue[j])
				})
			}

			m.logger.QueueTruncated(m.def.Name(), m.id, len(m.queue)-remaining)
			m.queue = m.queue[:remaining]
		default:
			m.logger.QueueTruncated(m.def.Name(), m.id, len(m.queue))
			m.queue = m.queue[:0]
		}
	}

	for _, state := range m.queue {
		m.logger.StateActivated(m.def.Name(), m.id, state.def.ID())
		m.active = append(m.active, state)
	}

	m.queue = m.queue[:0]
}

// updateActive advances every active state. Fully-active machines skip done
// and transition logic entirely. Otherwise each state is checked for
// completion, advanced if alive, and its outgoing transitions are evaluated;
// a fired transition forces the state done regardless of the done hook.
func (m *Machine[S, D, I, U, O, W]) updateActive(update U) {
	if m.def.Options().FullyActive {
		for _, state := range m.active {
			state.update(*m.input, update)
		}

		return
	}

	i := 0
	for i < len(m.active) {
		state := m.active[i]

		done := state.IsDone(m.subject, m.def)
		if !done {
			state.update(*m.input, update)
		}

		if m.transitions(state.def.Transitions(), update, !done, state) > 0 {
			done = true
		}

		if done {
			m.logger.StateFinished(m.def.Name(), m.id, state.def.ID())
			m.active = append(m.active[:i], m.active[i+1:]...)
		} else {
			i++
		}
	}
}
