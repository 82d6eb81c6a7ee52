package anim

import "errors"

// Library configuration errors.
var (
	ErrAnimationNameRequired = errors.New("animation name is required")
	ErrDuplicateAnimation    = errors.New("duplicate animation name")
	ErrAttributeRequired     = errors.New("attribute name is required")
	ErrUnknownEasing         = errors.New("unknown easing")
	ErrUnknownPath           = errors.New("unknown path")
	ErrUnknownValueType      = errors.New("unknown value type")
	ErrUnknownAnimation      = errors.New("unknown animation")
	ErrPointData             = errors.New("invalid point data")
)
