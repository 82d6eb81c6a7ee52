package machine

import "errors"

// Definition and configuration errors. Building a definition is the only
// place this package reports errors; at runtime all failure modes are
// absorbing defaults (a transition into an already-active state is ignored,
// a state with no hooks simply never finishes).
var (
	// ErrUnknownState indicates a transition references a state id that is
	// not defined.
	ErrUnknownState = errors.New("unknown state")
	// ErrDuplicateState indicates two states share an id within one
	// definition.
	ErrDuplicateState = errors.New("duplicate state id")

	// ErrConfigNameRequired indicates the config has no machine name.
	ErrConfigNameRequired = errors.New("machine name is required")
	// ErrStateNameRequired indicates a state config has no name.
	ErrStateNameRequired = errors.New("state name is required")
	// ErrTransitionToRequired indicates a transition config has no end state.
	ErrTransitionToRequired = errors.New("transition 'to' state is required")
	// ErrUnknownData indicates a state config references payload data that
	// was never registered.
	ErrUnknownData = errors.New("unknown state data")
	// ErrUnknownWeightFunc indicates a state config references a weight
	// function that was never registered.
	ErrUnknownWeightFunc = errors.New("unknown weight function")
	// ErrNoExprVars indicates a condition expression was used but the
	// registry has no variable extractor to evaluate it against.
	ErrNoExprVars = errors.New("expression condition requires registered expression variables")
	// ErrInvalidPolicy indicates a negative active or applied maximum.
	ErrInvalidPolicy = errors.New("invalid machine policy")
)
