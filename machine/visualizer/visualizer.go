// Package visualizer generates Mermaid diagrams from machine configurations.
//
//nolint:varnamelen // short names idiomatic
package visualizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amp-labs/amp-anim/machine"
)

// Visualizer errors.
var (
	ErrConfigNil = errors.New("config cannot be nil")
)

// GenerateMermaid converts a machine Config to a Mermaid state diagram.
// Sub-machines render as nested composite states.
func GenerateMermaid(config *machine.Config) (string, error) {
	return GenerateMermaidWithOptions(config, DefaultOptions())
}

// GenerateMermaidFromFile loads a config from a file and generates a Mermaid diagram.
func GenerateMermaidFromFile(path string) (string, error) {
	config, err := machine.LoadConfig(context.Background(), path)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	return GenerateMermaid(config)
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
func GenerateMermaidWithOptions(config *machine.Config, opts Options) (string, error) {
	if config == nil {
		return "", ErrConfigNil
	}

	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("stateDiagram-%s\n", opts.Direction))

	highlightMap := make(map[string]bool)
	for _, state := range opts.HighlightPath {
		highlightMap[state] = true
	}

	writeMachine(&sb, config, opts, highlightMap, 1)

	sb.WriteString("\n")
	sb.WriteString("    classDef liveState fill:#e1f5ff,stroke:#01579b,stroke-width:2px\n")
	sb.WriteString("    classDef highlighted fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")

	sb.WriteString("```\n")

	return sb.String(), nil
}

// writeMachine emits one machine level; sub-machine configs recurse as
// Mermaid composite states.
func writeMachine(
	sb *strings.Builder,
	config *machine.Config,
	opts Options,
	highlightMap map[string]bool,
	depth int,
) {
	indent := strings.Repeat("    ", depth)

	// Build transition map: from state -> list of transitions. Machine-wide
	// transitions (no From) are rendered from the entry marker.
	transitionMap := make(map[string][]machine.TransitionConfig)
	for _, transition := range config.Transitions {
		transitionMap[transition.From] = append(transitionMap[transition.From], transition)
	}

	for _, transition := range transitionMap[""] {
		sb.WriteString(fmt.Sprintf("%s[*] --> %s%s\n",
			indent, transition.To, transitionLabel(transition, opts)))
	}

	for _, state := range config.States {
		if state.Sub != nil {
			sb.WriteString(fmt.Sprintf("%sstate %s {\n", indent, state.Name))
			writeMachine(sb, state.Sub, opts, highlightMap, depth+1)
			sb.WriteString(indent + "}\n")
		} else if label := stateLabel(state, opts); label != "" {
			sb.WriteString(fmt.Sprintf("%s%s: %s%s\n", indent, state.Name, state.Name, label))
		}

		switch {
		case highlightMap[state.Name]:
			sb.WriteString(fmt.Sprintf("%sclass %s highlighted\n", indent, state.Name))
		case state.WeightLive:
			sb.WriteString(fmt.Sprintf("%sclass %s liveState\n", indent, state.Name))
		}

		for _, transition := range transitionMap[state.Name] {
			sb.WriteString(fmt.Sprintf("%s%s --> %s%s\n",
				indent, state.Name, transition.To, transitionLabel(transition, opts)))
		}
	}
}

func stateLabel(state machine.StateConfig, opts Options) string {
	if !opts.ShowWeights {
		return ""
	}

	switch {
	case state.WeightFunc != "":
		return fmt.Sprintf("\\nw = %s()", state.WeightFunc)
	case state.Weight != nil:
		return fmt.Sprintf("\\nw = %g", *state.Weight)
	default:
		return ""
	}
}

func transitionLabel(transition machine.TransitionConfig, opts Options) string {
	label := ""

	if opts.ShowConditions && transition.Condition != "" && transition.Condition != "always" {
		label = transition.Condition
	}

	if transition.Live {
		if label != "" {
			label += " "
		}

		label += "(live)"
	}

	if label == "" {
		return ""
	}

	return ": " + label
}
