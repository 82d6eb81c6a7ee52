package anim

import (
	"github.com/amp-labs/amp-anim/machine"
)

// Update is the per-tick payload passed through the machine to the animation
// hooks.
type Update struct {
	// DeltaTime is the seconds elapsed since the previous tick.
	DeltaTime float64
}

// Machine types instantiated for animation: the subject is an Animator,
// state payloads are Animations, state options are AnimationOptions (the
// state's weight doubles as the options its animation plays with), and
// transition options carry both transition and animation options. The input
// type stays caller-defined.
type (
	Machine[I any]        = machine.Machine[*Animator, *Animation, I, Update, Options, AnimationOptions]
	Def[I any]            = machine.Def[*Animator, *Animation, I, Update, Options, AnimationOptions]
	State[I any]          = machine.State[*Animator, *Animation, I, Update, Options, AnimationOptions]
	ActiveState[I any]    = machine.Active[*Animator, *Animation, I, Update, Options, AnimationOptions]
	MachineOptions[I any] = machine.Options[*Animator, *Animation, I, Update, Options, AnimationOptions]
	Transition[I any]     = machine.Transition[I, Update, Options]
	Condition[I any]      = machine.Condition[I, Update]
	WeightFunc[I any]     = machine.WeightFunc[I, Update, AnimationOptions]
)

type hooks[I any] struct{}

// Start begins the state's animation on the animator, crossfading away from
// the animations under outro. A sub-machine state carries no animation of
// its own; its child states each get their own Start, so only the outro
// bookkeeping matters here.
func (hooks[I]) Start(subject *Animator, state *ActiveState[I], trans *Transition[I], outro *ActiveState[I]) bool {
	var requests []AnimateRequest

	transitionOptions := trans.Options()

	if def := state.Def(); !state.HasSub() && def.Data() != nil {
		weight := state.Weight()
		options := def.Options().Animation.Join(transitionOptions.Animation).Join(weight)

		requests = append(requests, AnimateRequest{Animation: def.Data(), Options: options})
	}

	outroAnimations := make(map[string]bool)

	if outro != nil {
		outro.Iterate(func(leaf *ActiveState[I]) bool {
			if animation := leaf.Def().Data(); animation != nil {
				outroAnimations[animation.Name] = true
			}

			return true
		})
	}

	subject.Transition(requests, transitionOptions.Transition, outroAnimations)

	return true
}

// Apply normalizes the active states' scales against the animator's total
// scale bounds, pushes the normalized weights onto the running animations,
// and advances the animator by the tick's delta time.
func (hooks[I]) Apply(subject *Animator, active []*ActiveState[I], update Update) {
	totalEffectiveScale := 0.0

	for _, state := range active {
		state.Iterate(func(leaf *ActiveState[I]) bool {
			scale := leaf.Weight().Scale.Get(1)
			if scale > subject.MinEffectiveScale {
				totalEffectiveScale += scale
			}

			return true
		})
	}

	// A zero total leaves everything alone; totals outside the bounds are
	// scaled back into them. MinTotalScale below 1 permits a combined weight
	// under 1.
	scaleModifier := 1.0

	switch {
	case totalEffectiveScale == 0:
	case totalEffectiveScale < subject.MinTotalScale:
		scaleModifier = subject.MinTotalScale / totalEffectiveScale
	case totalEffectiveScale > subject.MaxTotalScale && subject.MaxTotalScale != 0:
		scaleModifier = subject.MaxTotalScale / totalEffectiveScale
	}

	for _, state := range active {
		state.Iterate(func(leaf *ActiveState[I]) bool {
			animation := leaf.Def().Data()
			if animation == nil {
				return true
			}

			weight := leaf.Weight()
			scale := weight.Scale.Get(1)

			if scale <= subject.MinEffectiveScale {
				scale = 0
			}

			weight.Scale = Set(scale * scaleModifier)
			subject.ApplyOptions(animation.Name, weight)

			return true
		})
	}

	subject.Update(update.DeltaTime)
}

// Done reports a state finished once its animation no longer runs on the
// animator.
func (hooks[I]) Done(subject *Animator, state *ActiveState[I]) bool {
	animation := state.Def().Data()
	if animation == nil {
		return true
	}

	return !subject.IsAnimating(animation.Name)
}

// NewDefinition creates a root machine definition wired to the animation
// hooks.
func NewDefinition[I any](name string, initialInput I, options MachineOptions[I]) *Def[I] {
	return machine.NewDef(name, hooks[I]{}, initialInput, options)
}

// NewSubDefinition creates a sub-machine definition wired to the animation
// hooks.
func NewSubDefinition[I any](name string, options MachineOptions[I]) *Def[I] {
	return machine.NewSubDef(name, hooks[I]{}, options)
}
