package machine

// Active is one instantiated state: the definition it was built from, the
// live weight, and, when the definition nests a machine, a running child
// Machine instance. Actives are created when a transition fires and removed
// once they are done and no transition supersedes them.
type Active[S, D, I, U, O, W any] struct {
	def    *State[S, D, I, U, O, W]
	weight W
	sub    *Machine[S, D, I, U, O, W]
}

// newActive instantiates a state, computing its initial weight and building
// a child machine when the definition has one.
func newActive[S, D, I, U, O, W any](
	def *State[S, D, I, U, O, W],
	subject S,
	input I,
	update U,
	parent *Machine[S, D, I, U, O, W],
) *Active[S, D, I, U, O, W] {
	active := &Active[S, D, I, U, O, W]{
		def:    def,
		weight: def.Weight(input, update),
	}

	if def.sub != nil {
		active.sub = newSubMachine(def.sub, subject, parent)
	}

	return active
}

// Def returns the state definition this active was built from.
func (a *Active[S, D, I, U, O, W]) Def() *State[S, D, I, U, O, W] {
	return a.def
}

// Weight returns the state's current weight.
func (a *Active[S, D, I, U, O, W]) Weight() W {
	return a.weight
}

// HasSub reports whether this active owns a child machine.
func (a *Active[S, D, I, U, O, W]) HasSub() bool {
	return a.sub != nil
}

// Sub returns the child machine, or nil.
func (a *Active[S, D, I, U, O, W]) Sub() *Machine[S, D, I, U, O, W] {
	return a.sub
}

// update advances the active state one tick: a child machine is ticked,
// otherwise a live weight is refreshed.
func (a *Active[S, D, I, U, O, W]) update(input I, update U) {
	if a.sub != nil {
		a.sub.Update(update)

		return
	}

	if a.def.WeightLive() {
		a.weight = a.def.Weight(input, update)
	}
}

// Iterate visits every leaf state, descending through child machines. The
// walk stops and reports false as soon as fn does.
func (a *Active[S, D, I, U, O, W]) Iterate(fn func(*Active[S, D, I, U, O, W]) bool) bool {
	if a.sub != nil {
		for _, sub := range a.sub.Active() {
			if !sub.Iterate(fn) {
				return false
			}
		}

		return true
	}

	return fn(a)
}

// IsDone reports whether this active has finished according to the owning
// definition's done hook. A state with a child machine is never done while
// the child still has queued states.
func (a *Active[S, D, I, U, O, W]) IsDone(subject S, def *Def[S, D, I, U, O, W]) bool {
	if a.sub != nil && len(a.sub.Queued()) > 0 {
		return false
	}

	return !a.Iterate(func(state *Active[S, D, I, U, O, W]) bool {
		return !def.done(subject, state)
	})
}
