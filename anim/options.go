package anim

// AnimationOptions describe how to animate a single attribute or an entire
// animation. Unset params inherit from whatever they are joined onto.
type AnimationOptions struct {
	// Delay is the seconds before the animation starts.
	Delay Param[float64]
	// Duration is how long one iteration lasts.
	Duration Param[float64]
	// Sleep is the seconds to rest between iterations.
	Sleep Param[float64]
	// Repeat is the iteration count; -1 repeats forever.
	Repeat Param[int]
	// Scale is how much the animation contributes relative to its resting
	// value.
	Scale Param[float64]
	// ClipStart is the normalized time in the animation data to start at.
	ClipStart Param[float64]
	// ClipEnd is the normalized time in the animation data to end at.
	ClipEnd Param[float64]
	// Path converts animation data into a single value given a time in
	// [0, 1].
	Path Path
	// Easing is the animation velocity function.
	Easing Easing
}

// Join layers next over these options. Param fields fold over their
// defaults, next's path wins when set, and easings compose.
func (o AnimationOptions) Join(next AnimationOptions) AnimationOptions {
	joined := AnimationOptions{
		Delay:     o.Delay.Join(0, next.Delay),
		Duration:  o.Duration.Join(0, next.Duration),
		Sleep:     o.Sleep.Join(0, next.Sleep),
		Repeat:    o.Repeat.Join(1, next.Repeat),
		ClipStart: o.ClipStart.Join(0, next.ClipStart),
		ClipEnd:   o.ClipEnd.Join(1, next.ClipEnd),
		Scale:     o.Scale.Join(1, next.Scale),
		Path:      o.Path,
		Easing:    JoinEasing(o.Easing, next.Easing),
	}

	if next.Path != nil {
		joined.Path = next.Path
	}

	return joined
}

// TransitionOptions describe how to transition from the current animations
// to the next.
type TransitionOptions struct {
	// Time is how long the transition should take.
	Time Param[float64]
	// Intro is how many seconds into the next animation to transition into;
	// 0 transitions into its start.
	Intro Param[float64]
	// Outro is how many seconds past the current point to transition out of;
	// 0 transitions from the current value.
	Outro Param[float64]
	// Lookup is the seconds used to compute a velocity-matched entry when
	// Intro is negative.
	Lookup Param[float64]
	// Granularity above 2 maintains outro and intro velocity using this many
	// points along the transition path.
	Granularity Param[int]
	// Easing applies along the transition path.
	Easing Easing
}

// Join layers next over these options.
func (o TransitionOptions) Join(next TransitionOptions) TransitionOptions {
	return TransitionOptions{
		Time:        o.Time.Join(0, next.Time),
		Intro:       o.Intro.Join(0, next.Intro),
		Outro:       o.Outro.Join(0, next.Outro),
		Lookup:      o.Lookup.Join(0, next.Lookup),
		Granularity: o.Granularity.Join(0, next.Granularity),
		Easing:      JoinEasing(o.Easing, next.Easing),
	}
}

// Options bundle transition and animation options for one machine
// transition.
type Options struct {
	Transition TransitionOptions
	Animation  AnimationOptions
}

// Join layers next over these options.
func (o Options) Join(next Options) Options {
	return Options{
		Transition: o.Transition.Join(next.Transition),
		Animation:  o.Animation.Join(next.Animation),
	}
}
