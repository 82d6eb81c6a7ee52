package anim

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/amp-labs/amp-anim/calc"
	"github.com/amp-labs/amp-anim/value"
)

// LibraryConfig is the YAML shape of an animation library file.
type LibraryConfig struct {
	Animations []AnimationConfig `json:"animations" yaml:"animations"`
}

// AnimationConfig defines one named animation.
type AnimationConfig struct {
	Name       string            `json:"name"       yaml:"name"`
	Options    *OptionsConfig    `json:"options"    yaml:"options"`
	Attributes []AttributeConfig `json:"attributes" yaml:"attributes"`
}

// AttributeConfig defines the keyframes for one attribute. Type names a
// registered value type used to decode point data.
type AttributeConfig struct {
	Attribute string         `json:"attribute" yaml:"attribute"`
	Type      string         `json:"type"      yaml:"type"`
	Options   *OptionsConfig `json:"options"   yaml:"options"`
	Points    []PointConfig  `json:"points"    yaml:"points"`
}

// PointConfig defines one keyframe. Data decodes according to the
// attribute's value type: a bare number for scalars, an {x, y, z} mapping
// for vectors.
type PointConfig struct {
	Time   float64   `json:"time"   yaml:"time"`
	Easing string    `json:"easing" yaml:"easing"`
	Data   yaml.Node `json:"data"   yaml:"data"`
}

// OptionsConfig is the YAML shape of AnimationOptions. Absent fields stay
// unset and inherit on join; present fields become set params.
type OptionsConfig struct {
	Delay     *float64 `json:"delay"     yaml:"delay"`
	Duration  *float64 `json:"duration"  yaml:"duration"`
	Sleep     *float64 `json:"sleep"     yaml:"sleep"`
	Repeat    *int     `json:"repeat"    yaml:"repeat"`
	Scale     *float64 `json:"scale"     yaml:"scale"`
	ClipStart *float64 `json:"clipStart" yaml:"clipStart"`
	ClipEnd   *float64 `json:"clipEnd"   yaml:"clipEnd"`
	Path      string   `json:"path"      yaml:"path"`
	Easing    string   `json:"easing"    yaml:"easing"`
}

// Loader resolves the names a library config uses into easings, paths, and
// value types.
type Loader struct {
	easings map[string]Easing
	paths   map[string]Path
	types   map[string]*value.Type

	// DecodePoint decodes a keyframe data node into a value of the given
	// type. When nil, a default decoder handles scalar and Vec types.
	DecodePoint func(t *value.Type, node *yaml.Node) (value.Value, error)
}

// NewLoader creates a loader pre-populated with the built-in easings and
// paths.
func NewLoader() *Loader {
	return &Loader{
		easings: map[string]Easing{
			"linear":     Linear,
			"quad":       Quad,
			"cubic":      Cubic,
			"smoothstep": SmoothStep,
		},
		paths: map[string]Path{
			"point":     PointPath,
			"tween":     TweenPath,
			"linear":    LinearPath,
			"quadratic": QuadraticPath,
			"cubic":     CubicPath,
		},
		types: make(map[string]*value.Type),
	}
}

// RegisterEasing registers a named easing.
func (l *Loader) RegisterEasing(name string, easing Easing) {
	l.easings[name] = easing
}

// RegisterPath registers a named path.
func (l *Loader) RegisterPath(name string, path Path) {
	l.paths[name] = path
}

// RegisterType registers a value type under its own name.
func (l *Loader) RegisterType(t *value.Type) {
	l.types[t.Name()] = t
}

// Load reads and builds an animation library from a YAML file.
func (l *Loader) Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library %s: %w", path, err)
	}

	var config LibraryConfig

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse library %s: %w", path, err)
	}

	return l.Build(&config)
}

// Build constructs an animation library from a parsed config.
func (l *Loader) Build(config *LibraryConfig) (*Library, error) {
	library := &Library{animations: make(map[string]*Animation, len(config.Animations))}

	for _, ac := range config.Animations {
		if ac.Name == "" {
			return nil, ErrAnimationNameRequired
		}

		if _, exists := library.animations[ac.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnimation, ac.Name)
		}

		animation, err := l.buildAnimation(ac)
		if err != nil {
			return nil, fmt.Errorf("failed to build animation %s: %w", ac.Name, err)
		}

		library.animations[ac.Name] = animation
	}

	return library, nil
}

func (l *Loader) buildAnimation(config AnimationConfig) (*Animation, error) {
	options, err := l.buildOptions(config.Options)
	if err != nil {
		return nil, err
	}

	animation := &Animation{
		Name:       config.Name,
		Options:    options,
		Attributes: make([]AnimationAttribute, 0, len(config.Attributes)),
	}

	for _, attr := range config.Attributes {
		built, err := l.buildAttribute(attr)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attr.Attribute, err)
		}

		animation.Attributes = append(animation.Attributes, built)
	}

	return animation, nil
}

func (l *Loader) buildAttribute(config AttributeConfig) (AnimationAttribute, error) {
	if config.Attribute == "" {
		return AnimationAttribute{}, ErrAttributeRequired
	}

	valueType, ok := l.types[config.Type]
	if !ok {
		return AnimationAttribute{}, fmt.Errorf("%w: %q", ErrUnknownValueType, config.Type)
	}

	options, err := l.buildOptions(config.Options)
	if err != nil {
		return AnimationAttribute{}, err
	}

	attribute := AnimationAttribute{
		Attribute: config.Attribute,
		Options:   options,
		Points:    make([]Point, 0, len(config.Points)),
	}

	for i, pc := range config.Points {
		easing, err := l.easing(pc.Easing)
		if err != nil {
			return AnimationAttribute{}, fmt.Errorf("point %d: %w", i, err)
		}

		data, err := l.decodePoint(valueType, pc.Data)
		if err != nil {
			return AnimationAttribute{}, fmt.Errorf("point %d: %w", i, err)
		}

		attribute.Points = append(attribute.Points, Point{
			Time:   pc.Time,
			Easing: easing,
			Data:   data,
		})
	}

	return attribute, nil
}

func (l *Loader) buildOptions(config *OptionsConfig) (AnimationOptions, error) {
	if config == nil {
		return AnimationOptions{}, nil
	}

	options := AnimationOptions{}

	if config.Delay != nil {
		options.Delay = Set(*config.Delay)
	}

	if config.Duration != nil {
		options.Duration = Set(*config.Duration)
	}

	if config.Sleep != nil {
		options.Sleep = Set(*config.Sleep)
	}

	if config.Repeat != nil {
		options.Repeat = Set(*config.Repeat)
	}

	if config.Scale != nil {
		options.Scale = Set(*config.Scale)
	}

	if config.ClipStart != nil {
		options.ClipStart = Set(*config.ClipStart)
	}

	if config.ClipEnd != nil {
		options.ClipEnd = Set(*config.ClipEnd)
	}

	if config.Path != "" {
		path, ok := l.paths[config.Path]
		if !ok {
			return AnimationOptions{}, fmt.Errorf("%w: %q", ErrUnknownPath, config.Path)
		}

		options.Path = path
	}

	if config.Easing != "" {
		easing, err := l.easing(config.Easing)
		if err != nil {
			return AnimationOptions{}, err
		}

		options.Easing = easing
	}

	return options, nil
}

func (l *Loader) easing(name string) (Easing, error) {
	if name == "" {
		return nil, nil
	}

	easing, ok := l.easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}

	return easing, nil
}

func (l *Loader) decodePoint(t *value.Type, node yaml.Node) (value.Value, error) {
	if l.DecodePoint != nil {
		return l.DecodePoint(t, &node)
	}

	switch t.Create().Data().(type) {
	case float64:
		var scalar float64

		err := node.Decode(&scalar)
		if err != nil {
			return value.Invalid(), fmt.Errorf("%w: %w", ErrPointData, err)
		}

		return t.New(scalar), nil
	case calc.Vec:
		var vec struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
			Z float64 `yaml:"z"`
		}

		err := node.Decode(&vec)
		if err != nil {
			return value.Invalid(), fmt.Errorf("%w: %w", ErrPointData, err)
		}

		return t.New(calc.Vec{X: vec.X, Y: vec.Y, Z: vec.Z}), nil
	default:
		return value.Invalid(), fmt.Errorf("%w: no decoder for type %s", ErrPointData, t.Name())
	}
}

// Library is a named, reloadable collection of animations.
type Library struct {
	mutex      sync.RWMutex
	animations map[string]*Animation
}

// Get returns the named animation.
func (l *Library) Get(name string) (*Animation, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	animation, ok := l.animations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAnimation, name)
	}

	return animation, nil
}

// Names returns the names of every animation in the library.
func (l *Library) Names() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	names := make([]string, 0, len(l.animations))
	for name := range l.animations {
		names = append(names, name)
	}

	return names
}

// replace swaps in the animations of another library.
func (l *Library) replace(other *Library) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.animations = other.animations
}
