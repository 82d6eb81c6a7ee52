package anim

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/amp-labs/amp-anim/machine"
)

// Registry is a machine config registry instantiated for animation.
type Registry[I any] = machine.Registry[*Animator, *Animation, I, Update, Options, AnimationOptions]

// NewRegistry creates a machine config registry wired to the animation
// hooks. Fixed state weights from YAML become scale params, and options
// nodes decode through the loader's easing and path names.
func NewRegistry[I any](loader *Loader) *Registry[I] {
	registry := machine.NewRegistry[*Animator, *Animation, I, Update, Options, AnimationOptions](hooks[I]{})

	registry.FixedWeight = func(scalar float64) AnimationOptions {
		return AnimationOptions{Scale: Set(scalar)}
	}

	registry.DecodeOptions = func(node *yaml.Node) (Options, error) {
		return decodeMachineOptions(loader, node)
	}

	return registry
}

// RegisterLibrary registers every animation in the library as state payload
// data under its own name.
func RegisterLibrary[I any](registry *Registry[I], library *Library) error {
	for _, name := range library.Names() {
		animation, err := library.Get(name)
		if err != nil {
			return err
		}

		registry.RegisterData(name, animation)
	}

	return nil
}

type machineOptionsConfig struct {
	Transition *transitionOptionsConfig `json:"transition" yaml:"transition"`
	Animation  *OptionsConfig           `json:"animation"  yaml:"animation"`
}

type transitionOptionsConfig struct {
	Time        *float64 `json:"time"        yaml:"time"`
	Intro       *float64 `json:"intro"       yaml:"intro"`
	Outro       *float64 `json:"outro"       yaml:"outro"`
	Lookup      *float64 `json:"lookup"      yaml:"lookup"`
	Granularity *int     `json:"granularity" yaml:"granularity"`
	Easing      string   `json:"easing"      yaml:"easing"`
}

func decodeMachineOptions(loader *Loader, node *yaml.Node) (Options, error) {
	var config machineOptionsConfig

	err := node.Decode(&config)
	if err != nil {
		return Options{}, fmt.Errorf("failed to decode options: %w", err)
	}

	options := Options{}

	if config.Animation != nil {
		options.Animation, err = loader.buildOptions(config.Animation)
		if err != nil {
			return Options{}, err
		}
	}

	if config.Transition != nil {
		options.Transition, err = buildTransitionOptions(loader, config.Transition)
		if err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

func buildTransitionOptions(loader *Loader, config *transitionOptionsConfig) (TransitionOptions, error) {
	options := TransitionOptions{}

	if config.Time != nil {
		options.Time = Set(*config.Time)
	}

	if config.Intro != nil {
		options.Intro = Set(*config.Intro)
	}

	if config.Outro != nil {
		options.Outro = Set(*config.Outro)
	}

	if config.Lookup != nil {
		options.Lookup = Set(*config.Lookup)
	}

	if config.Granularity != nil {
		options.Granularity = Set(*config.Granularity)
	}

	if config.Easing != "" {
		easing, err := loader.easing(config.Easing)
		if err != nil {
			return TransitionOptions{}, err
		}

		options.Easing = easing
	}

	return options, nil
}
