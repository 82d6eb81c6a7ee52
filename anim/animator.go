// Package anim animates any sort of value.
//
// Concepts:
//   - Easing: a function describing animation velocity, mapping a normalized
//     time delta in [0, 1] to an eased delta.
//   - Path: converts keyframe points into a single value given a time.
//   - Param: an optional parameter controlling an animation or transition;
//     params stack.
//   - AnimationOptions: describe how to animate a single attribute or an
//     entire animation.
//   - TransitionOptions: describe how to transition to another animation.
//   - Attribute: a property on a subject that can be animated.
//   - AnimationAttribute: keyframes and options for a specific attribute.
//   - Animation: a named collection of AnimationAttribute plus options.
//   - Animator: something that animates a subject's attribute values.
//
// The machine sub-package drives animators through weight-blended state
// machines; see Start, Apply, and IsDone in binding.go for the wiring.
package anim

import (
	"math"

	"github.com/amp-labs/amp-anim/calc"
	"github.com/amp-labs/amp-anim/value"
)

// AttributeAnimator plays one attribute animation: it tracks elapsed time
// against the resolved timing options and samples the attribute's path when
// the time falls inside an iteration.
type AttributeAnimator struct {
	animation string
	attribute *AnimationAttribute
	options   AnimationOptions

	delay     float64
	duration  float64
	sleep     float64
	repeat    int
	clipStart float64
	clipEnd   float64
	scale     float64

	time       float64
	stopAt     float64
	done       bool
	apply      bool
	applyDelta float64
}

func newAttributeAnimator(animation string, attribute *AnimationAttribute, options AnimationOptions) *AttributeAnimator {
	animator := &AttributeAnimator{
		animation: animation,
		attribute: attribute,
		options:   options,
		stopAt:    -1,
	}

	animator.applyOptions()
	animator.done = animator.duration == 0 || animator.repeat == 0

	observeAnimatorStarted(animation)

	return animator
}

// Animation returns the name of the animation this animator plays.
func (a *AttributeAnimator) Animation() string { return a.animation }

// Attribute returns the attribute animation being played.
func (a *AttributeAnimator) Attribute() *AnimationAttribute { return a.attribute }

// Scale returns the resolved contribution scale.
func (a *AttributeAnimator) Scale() float64 { return a.scale }

// Time returns how many seconds the animator has been playing.
func (a *AttributeAnimator) Time() float64 { return a.time }

// IsDone returns whether the animator has finished.
func (a *AttributeAnimator) IsDone() bool { return a.done }

// IterationTime is the length of one iteration including its rest.
func (a *AttributeAnimator) IterationTime() float64 { return a.duration + a.sleep }

// MaxLifetime is the total lifetime implied by the timing options, or -1
// when the animator repeats forever.
func (a *AttributeAnimator) MaxLifetime() float64 {
	if a.repeat < 0 {
		return -1
	}

	return a.delay + a.duration + float64(a.repeat-1)*a.IterationTime()
}

// ActualLifetime is the scheduled stop when one is set, otherwise the
// maximum lifetime.
func (a *AttributeAnimator) ActualLifetime() float64 {
	if a.stopAt >= 0 {
		return a.stopAt
	}

	return a.MaxLifetime()
}

// IsEffective returns whether the animator contributes to blending.
func (a *AttributeAnimator) IsEffective() bool { return a.scale != 0 }

// IsStopping returns whether a stop has been scheduled.
func (a *AttributeAnimator) IsStopping() bool { return a.stopAt != -1 }

// Iteration returns the iteration index at time t, or -1 before the delay
// elapses.
func (a *AttributeAnimator) Iteration(t float64) int {
	if t < a.delay {
		return -1
	}

	return int(math.Floor(a.intoAnimation(t) / a.IterationTime()))
}

func (a *AttributeAnimator) intoAnimation(t float64) float64 {
	return t - a.delay
}

func (a *AttributeAnimator) animationTime(t float64) float64 {
	return math.Mod(a.intoAnimation(t), a.IterationTime())
}

// applyDeltaAt resolves the eased, clipped path delta at time t, or -1 when
// t falls outside an iteration (during the delay or a sleep).
func (a *AttributeAnimator) applyDeltaAt(t float64) float64 {
	delta := a.animationTime(t) / a.duration
	if delta < 0 || delta > 1 {
		return -1
	}

	return Ease(calc.Lerp(a.clipStart, a.clipEnd, delta), a.options.Easing)
}

// Update advances the animator. The frame after the delta leaves the
// iteration window still applies once, pinned to the end of the data, so the
// animation settles exactly on its final value.
func (a *AttributeAnimator) Update(dt float64) {
	if a.done {
		return
	}

	next := a.time + dt
	nextApplyDelta := a.applyDeltaAt(next)
	end := a.ActualLifetime()

	a.time = next
	a.apply = nextApplyDelta != -1 || a.applyDelta != -1

	if nextApplyDelta != -1 {
		a.applyDelta = nextApplyDelta
	} else {
		a.applyDelta = 1
	}

	a.done = end != -1 && a.time >= end
}

// StopIn schedules the animator to stop dt seconds from now.
func (a *AttributeAnimator) StopIn(dt float64) {
	a.stopAt = a.time + dt
}

// AddOptions layers additional options onto the animator and re-resolves its
// timing.
func (a *AttributeAnimator) AddOptions(additional AnimationOptions) {
	a.options = a.options.Join(additional)
	a.applyOptions()
}

func (a *AttributeAnimator) applyOptions() {
	a.delay = a.options.Delay.Get(0)
	a.duration = a.options.Duration.Get(0)
	a.sleep = a.options.Sleep.Get(0)
	a.repeat = a.options.Repeat.Get(1)
	a.clipStart = a.options.ClipStart.Get(0)
	a.clipEnd = a.options.ClipEnd.Get(1)
	a.scale = a.options.Scale.Get(1)
}

// Attribute tracks the animators currently playing against one subject
// attribute.
type Attribute struct {
	animators        []*AttributeAnimator
	frame            int64
	lastUpdatedFrame int64
}

// Animators returns the animators currently attached to the attribute.
func (a *Attribute) Animators() []*AttributeAnimator { return a.animators }

// Update advances every animator by dt, accumulates the scaled samples of
// the effective ones into the attribute value, and prunes finished
// animators. When the value's type has no registered calculator the
// animators still advance and prune but no blending happens.
func (a *Attribute) Update(dt float64, out *value.Value) {
	c := calc.For(out.Type())

	var temp1, temp2 value.Value
	if c != nil {
		temp1 = c.Create()
		temp2 = c.Create()
	}

	a.frame++

	kept := a.animators[:0]

	for _, animator := range a.animators {
		animator.Update(dt)

		if animator.apply && c != nil {
			if scale := animator.scale; scale > 0 {
				path := animator.options.Path
				if path == nil {
					path = LinearPath
				}

				// temp1 keeps the previous animator's sample when the path
				// declines to write, matching how a settled animation holds
				// its last value.
				path(animator.attribute.Points, animator.applyDelta, &temp1)
				temp2.Set(c.Adds(temp2, temp1, scale))

				a.lastUpdatedFrame = a.frame
			}
		}

		if animator.done {
			observeAnimatorFinished(animator.animation)
		} else {
			kept = append(kept, animator)
		}
	}

	for i := len(kept); i < len(a.animators); i++ {
		a.animators[i] = nil
	}

	a.animators = kept

	if a.lastUpdatedFrame == a.frame {
		out.Set(temp2)
	}
}

// WasUpdated returns whether the last Update wrote the attribute value.
func (a *Attribute) WasUpdated() bool {
	return a.lastUpdatedFrame == a.frame
}

// IsAnimating returns whether the named animation still has a running
// animator on this attribute.
func (a *Attribute) IsAnimating(animation string) bool {
	for _, animator := range a.animators {
		if !animator.done && animator.animation == animation {
			return true
		}
	}

	return false
}

// ApplyOptions layers options onto the most recent running animator of the
// named animation.
func (a *Attribute) ApplyOptions(animation string, options AnimationOptions) {
	for i := len(a.animators) - 1; i >= 0; i-- {
		animator := a.animators[i]
		if !animator.done && animator.animation == animation {
			animator.AddOptions(options)

			return
		}
	}
}

// StopIn schedules every running animator of the named animation to stop.
func (a *Attribute) StopIn(animation string, dt float64) {
	for _, animator := range a.animators {
		if !animator.done && animator.animation == animation {
			animator.StopIn(dt)
		}
	}
}

func (a *Attribute) forAnimations(animations map[string]bool) []*AttributeAnimator {
	var found []*AttributeAnimator

	for _, animator := range a.animators {
		if !animator.done && animations[animator.animation] {
			found = append(found, animator)
		}
	}

	return found
}

// AttributeSet groups attributes by name.
type AttributeSet struct {
	set map[string]*Attribute
}

// NewAttributeSet builds a set populated with one animator per attribute per
// request. Each animator's options resolve as the animation's options,
// layered with the attribute's, layered with the request's.
func NewAttributeSet(requests []AnimateRequest) *AttributeSet {
	attrs := &AttributeSet{set: make(map[string]*Attribute)}

	for _, request := range requests {
		animation := request.Animation
		for i := range animation.Attributes {
			attr := &animation.Attributes[i]
			resolved := animation.Options.Join(attr.Options).Join(request.Options)

			existing := attrs.Attribute(attr.Attribute)
			if existing == nil {
				existing = &Attribute{}
				attrs.set[attr.Attribute] = existing
			}

			existing.animators = append(existing.animators,
				newAttributeAnimator(animation.Name, attr, resolved))
		}
	}

	return attrs
}

// Attribute returns the named attribute, or nil.
func (s *AttributeSet) Attribute(name string) *Attribute {
	if s.set == nil {
		return nil
	}

	return s.set[name]
}

// IsAnimating returns whether the named animation still runs on any
// attribute.
func (s *AttributeSet) IsAnimating(animation string) bool {
	for _, attr := range s.set {
		if attr.IsAnimating(animation) {
			return true
		}
	}

	return false
}

// Transition merges the incoming attributes into the set. Attributes with no
// running animators adopt the incoming ones directly; otherwise animators
// belonging to outro animations are scheduled to stop in step with the
// incoming animators' shortest delay, so the fade-out crosses the fade-in,
// and the incoming animators are appended. Outro animators on attributes the
// incoming set never touches stop immediately.
func (s *AttributeSet) Transition(next *AttributeSet, options TransitionOptions, outro map[string]bool) {
	_ = options // TODO: generate intermediate animators along Time/Intro/Outro.

	if s.set == nil {
		s.set = make(map[string]*Attribute)
	}

	for name, attr := range next.set {
		if len(attr.animators) == 0 {
			continue
		}

		existing := s.Attribute(name)
		if existing == nil || len(existing.animators) == 0 {
			s.set[name] = attr

			continue
		}

		forOutro := existing.forAnimations(outro)
		if len(forOutro) > 0 {
			minDelay := attr.animators[0].delay
			for _, incoming := range attr.animators[1:] {
				if incoming.delay < minDelay {
					minDelay = incoming.delay
				}
			}

			for _, animator := range forOutro {
				animator.StopIn(minDelay)
			}
		}

		existing.animators = append(existing.animators, attr.animators...)
	}

	for _, attr := range s.set {
		for _, animator := range attr.forAnimations(outro) {
			if !animator.IsStopping() {
				animator.StopIn(0)
			}
		}
	}
}

// Update advances every attribute that has a value to write into.
func (s *AttributeSet) Update(dt float64, values map[string]value.Value) {
	for name, attr := range s.set {
		if v, ok := values[name]; ok {
			attr.Update(dt, &v)
			values[name] = v
		}
	}
}

// ApplyOptions layers options onto the named animation across all
// attributes.
func (s *AttributeSet) ApplyOptions(animation string, options AnimationOptions) {
	for _, attr := range s.set {
		attr.ApplyOptions(animation, options)
	}
}

// StopIn schedules the named animation to stop across all attributes.
func (s *AttributeSet) StopIn(animation string, dt float64) {
	for _, attr := range s.set {
		attr.StopIn(animation, dt)
	}
}

// Animator animates a subject's attribute values by blending the animations
// playing against them.
type Animator struct {
	attributes AttributeSet
	values     map[string]value.Value

	// MinTotalScale boosts the combined effective scale up to this floor.
	MinTotalScale float64
	// MaxTotalScale caps the combined effective scale; 0 means uncapped.
	MaxTotalScale float64
	// MinEffectiveScale is the threshold below which a state's contribution
	// is treated as zero.
	MinEffectiveScale float64
}

// NewAnimator creates an empty animator.
func NewAnimator() *Animator {
	return &Animator{values: make(map[string]value.Value)}
}

// Attributes returns the animator's attribute set.
func (a *Animator) Attributes() *AttributeSet { return &a.attributes }

// IsAnimating returns whether the named animation is still running.
func (a *Animator) IsAnimating(animation string) bool {
	return a.attributes.IsAnimating(animation)
}

// Transition starts the requested animations, crossfading away from the
// outro animations.
func (a *Animator) Transition(requests []AnimateRequest, options TransitionOptions, outro map[string]bool) {
	a.attributes.Transition(NewAttributeSet(requests), options, outro)
}

// ApplyOptions layers options onto the named animation.
func (a *Animator) ApplyOptions(animation string, options AnimationOptions) {
	a.attributes.ApplyOptions(animation, options)
}

// Update advances all animations by dt seconds and writes the blended
// results into the attribute values.
func (a *Animator) Update(dt float64) {
	a.attributes.Update(dt, a.values)
}

// Play starts an animation with no extra options and no crossfade.
func (a *Animator) Play(animation *Animation) {
	a.PlayWith(animation, AnimationOptions{})
}

// PlayWith starts an animation with the given options and no crossfade.
func (a *Animator) PlayWith(animation *Animation, options AnimationOptions) {
	a.Transition([]AnimateRequest{{Animation: animation, Options: options}}, TransitionOptions{}, nil)
}

// StopIn schedules the named animation to stop dt seconds from now.
func (a *Animator) StopIn(animation string, dt float64) {
	a.attributes.StopIn(animation, dt)
}

// Set stores an attribute value.
func (a *Animator) Set(attribute string, v value.Value) {
	a.values[attribute] = v
}

// Init stores a fresh zero value of the given type for an attribute.
func (a *Animator) Init(attribute string, t *value.Type) {
	a.Set(attribute, t.Create())
}

// Get returns an attribute value, or the invalid value when the attribute
// was never set.
func (a *Animator) Get(attribute string) value.Value {
	v, ok := a.values[attribute]
	if !ok {
		return value.Invalid()
	}

	return v
}
