package anim

// AnimationAttribute holds the keyframes and options animating one attribute
// within an animation.
type AnimationAttribute struct {
	Attribute string
	Options   AnimationOptions
	Points    []Point
}

// Animation is a named collection of attribute animations plus options that
// apply to all of them.
type Animation struct {
	Name       string
	Options    AnimationOptions
	Attributes []AnimationAttribute
}

// AnimateRequest pairs an animation with the options to play it with.
type AnimateRequest struct {
	Animation *Animation
	Options   AnimationOptions
}
