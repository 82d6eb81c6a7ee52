package machine

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines the declarative structure of a machine definition. Payload
// data, conditions, and weight functions are referenced by name and resolved
// through a Registry; priority comparators cannot be expressed in YAML and
// stay programmatic.
type Config struct {
	Name        string             `json:"name"        yaml:"name"`
	Policy      PolicyConfig       `json:"policy"      yaml:"policy"`
	States      []StateConfig      `json:"states"      yaml:"states"`
	Transitions []TransitionConfig `json:"transitions" yaml:"transitions"`
}

// PolicyConfig defines the machine-wide policy.
type PolicyConfig struct {
	ActiveMax        int  `json:"activeMax"        yaml:"activeMax"`
	AppliedMax       int  `json:"appliedMax"       yaml:"appliedMax"`
	FullyActive      bool `json:"fullyActive"      yaml:"fullyActive"`
	FlushImmediately bool `json:"flushImmediately" yaml:"flushImmediately"`
}

// StateConfig defines the configuration for one state. Exactly one of Sub,
// WeightFunc, or Weight should be set; a state with none gets the zero
// weight.
type StateConfig struct {
	Name       string     `json:"name"       yaml:"name"`
	Data       string     `json:"data"       yaml:"data"`
	Weight     *float64   `json:"weight"     yaml:"weight"`
	WeightFunc string     `json:"weightFunc" yaml:"weightFunc"`
	WeightLive bool       `json:"weightLive" yaml:"weightLive"`
	Options    *yaml.Node `json:"options"    yaml:"options"`
	Sub        *Config    `json:"sub"        yaml:"sub"`
}

// TransitionConfig defines the configuration for one transition. Condition
// is empty or "always" for an unconditional transition, the name of a
// registered condition, or an expression evaluated against the registry's
// expression variables (e.g. "v.speed > 0.5").
type TransitionConfig struct {
	From      string     `json:"from"      yaml:"from"`
	To        string     `json:"to"        yaml:"to"`
	Condition string     `json:"condition" yaml:"condition"`
	Live      bool       `json:"live"      yaml:"live"`
	Options   *yaml.Node `json:"options"   yaml:"options"`
}

// LoadConfig loads and validates a machine configuration from a YAML file.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	_, span := startLoadSpan(ctx, path)
	defer span.End()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// Validate checks the configuration for structural errors, descending into
// sub-machine configs.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrConfigNameRequired
	}

	if c.Policy.ActiveMax < 0 || c.Policy.AppliedMax < 0 {
		return fmt.Errorf("%w: negative maximum", ErrInvalidPolicy)
	}

	names := make(map[string]bool, len(c.States))

	for _, state := range c.States {
		if state.Name == "" {
			return fmt.Errorf("%w: machine %s", ErrStateNameRequired, c.Name)
		}

		if names[state.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateState, state.Name)
		}

		names[state.Name] = true

		if state.Sub != nil {
			err := state.Sub.Validate()
			if err != nil {
				return err
			}
		}
	}

	for _, trans := range c.Transitions {
		if trans.To == "" {
			return fmt.Errorf("%w: machine %s", ErrTransitionToRequired, c.Name)
		}

		if !names[trans.To] {
			return fmt.Errorf("%w: transition end %q", ErrUnknownState, trans.To)
		}

		if trans.From != "" && !names[trans.From] {
			return fmt.Errorf("%w: transition start %q", ErrUnknownState, trans.From)
		}
	}

	return nil
}

// Registry resolves the names used in a Config to payload data, conditions,
// and weight functions, and carries the decoders a generic definition needs.
type Registry[S, D, I, U, O, W any] struct {
	hooks      Hooks[S, D, I, U, O, W]
	data       map[string]D
	conditions map[string]Condition[I, U]
	weights    map[string]WeightFunc[I, U, W]

	// DecodeOptions decodes a state or transition options node into O. When
	// nil, options nodes are ignored and the zero O is used.
	DecodeOptions func(node *yaml.Node) (O, error)
	// FixedWeight converts a scalar weight from YAML into W. Required when
	// configs use fixed weights.
	FixedWeight func(scalar float64) W
	// ExprVars extracts the variable map a condition expression is evaluated
	// against. Required when configs use expression conditions.
	ExprVars func(input I, update U) map[string]any
}

// NewRegistry creates a registry that builds definitions driven by the given
// hooks.
func NewRegistry[S, D, I, U, O, W any](hooks Hooks[S, D, I, U, O, W]) *Registry[S, D, I, U, O, W] {
	return &Registry[S, D, I, U, O, W]{
		hooks:      hooks,
		data:       make(map[string]D),
		conditions: make(map[string]Condition[I, U]),
		weights:    make(map[string]WeightFunc[I, U, W]),
	}
}

// RegisterData registers state payload data under a name.
func (r *Registry[S, D, I, U, O, W]) RegisterData(name string, data D) {
	r.data[name] = data
}

// RegisterCondition registers a named transition condition.
func (r *Registry[S, D, I, U, O, W]) RegisterCondition(name string, condition Condition[I, U]) {
	r.conditions[name] = condition
}

// RegisterWeight registers a named weight function.
func (r *Registry[S, D, I, U, O, W]) RegisterWeight(name string, weight WeightFunc[I, U, W]) {
	r.weights[name] = weight
}

// Build constructs a machine definition from a validated configuration.
func Build[S, D, I, U, O, W any](
	config *Config,
	registry *Registry[S, D, I, U, O, W],
	initialInput I,
) (*Def[S, D, I, U, O, W], error) {
	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	def := NewDef(config.Name, registry.hooks, initialInput, policyOptions[S, D, I, U, O, W](config.Policy))

	err = populate(def, config, registry)
	if err != nil {
		return nil, err
	}

	return def, nil
}

func policyOptions[S, D, I, U, O, W any](policy PolicyConfig) Options[S, D, I, U, O, W] {
	return Options[S, D, I, U, O, W]{
		ActiveMax:        policy.ActiveMax,
		AppliedMax:       policy.AppliedMax,
		FullyActive:      policy.FullyActive,
		FlushImmediately: policy.FlushImmediately,
	}
}

func populate[S, D, I, U, O, W any](
	def *Def[S, D, I, U, O, W],
	config *Config,
	registry *Registry[S, D, I, U, O, W],
) error {
	for _, sc := range config.States {
		state, err := buildState(sc, registry)
		if err != nil {
			return fmt.Errorf("failed to build state %s: %w", sc.Name, err)
		}

		err = def.AddState(state)
		if err != nil {
			return err
		}
	}

	for _, tc := range config.Transitions {
		trans, err := buildTransition(tc, registry)
		if err != nil {
			return fmt.Errorf("failed to build transition to %s: %w", tc.To, err)
		}

		err = def.AddTransition(trans)
		if err != nil {
			return err
		}
	}

	return nil
}

func buildState[S, D, I, U, O, W any](
	config StateConfig,
	registry *Registry[S, D, I, U, O, W],
) (*State[S, D, I, U, O, W], error) {
	if config.Sub != nil {
		sub := NewSubDef(config.Sub.Name, registry.hooks, policyOptions[S, D, I, U, O, W](config.Sub.Policy))

		err := populate(sub, config.Sub, registry)
		if err != nil {
			return nil, err
		}

		return withConfigOptions(NewSubState[S, D, I, U, O, W](config.Name, sub), config.Options, registry)
	}

	var data D

	if config.Data != "" {
		registered, ok := registry.data[config.Data]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownData, config.Data)
		}

		data = registered
	}

	if config.WeightFunc != "" {
		weight, ok := registry.weights[config.WeightFunc]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownWeightFunc, config.WeightFunc)
		}

		return withConfigOptions(NewDynamicState[S, D, I, U, O, W](config.Name, data, weight, config.WeightLive), config.Options, registry)
	}

	var fixed W
	if config.Weight != nil && registry.FixedWeight != nil {
		fixed = registry.FixedWeight(*config.Weight)
	}

	return withConfigOptions(NewState[S, D, I, U, O, W](config.Name, data, fixed), config.Options, registry)
}

func withConfigOptions[S, D, I, U, O, W any](
	state *State[S, D, I, U, O, W],
	node *yaml.Node,
	registry *Registry[S, D, I, U, O, W],
) (*State[S, D, I, U, O, W], error) {
	if node == nil || registry.DecodeOptions == nil {
		return state, nil
	}

	options, err := registry.DecodeOptions(node)
	if err != nil {
		return nil, err
	}

	return state.WithOptions(options), nil
}

func buildTransition[S, D, I, U, O, W any](
	config TransitionConfig,
	registry *Registry[S, D, I, U, O, W],
) (Transition[I, U, O], error) {
	var options O

	if config.Options != nil && registry.DecodeOptions != nil {
		decoded, err := registry.DecodeOptions(config.Options)
		if err != nil {
			return Transition[I, U, O]{}, err
		}

		options = decoded
	}

	condition, err := resolveCondition(config.Condition, registry)
	if err != nil {
		return Transition[I, U, O]{}, err
	}

	if config.From != "" {
		return FromTo(config.From, config.To, condition, config.Live, options), nil
	}

	return ToWhenLive(config.To, condition, config.Live, options), nil
}

// resolveCondition maps a condition string to a Condition: empty or "always"
// is unconditional, a registered name wins over everything, and anything else
// is compiled as an expression.
func resolveCondition[S, D, I, U, O, W any](
	condition string,
	registry *Registry[S, D, I, U, O, W],
) (Condition[I, U], error) {
	if condition == "" || condition == "always" {
		return nil, nil
	}

	if registered, ok := registry.conditions[condition]; ok {
		return registered, nil
	}

	if registry.ExprVars == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoExprVars, condition)
	}

	return compileCondition(condition, registry.ExprVars)
}
