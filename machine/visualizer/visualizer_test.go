package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/amp-anim/machine"
)

func float(v float64) *float64 { return &v }

func movementConfig() *machine.Config {
	return &machine.Config{
		Name: "movement",
		States: []machine.StateConfig{
			{Name: "idle", Weight: float(1)},
			{Name: "running", WeightFunc: "speed", WeightLive: true},
			{
				Name: "airborne",
				Sub: &machine.Config{
					Name: "air",
					States: []machine.StateConfig{
						{Name: "jump", Weight: float(1)},
						{Name: "fall", Weight: float(1)},
					},
					Transitions: []machine.TransitionConfig{
						{To: "jump"},
						{From: "jump", To: "fall", Condition: "falling", Live: true},
					},
				},
			},
		},
		Transitions: []machine.TransitionConfig{
			{To: "idle"},
			{From: "idle", To: "running", Condition: "v.speed > 0.5", Live: true},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	t.Parallel()

	diagram, err := GenerateMermaid(movementConfig())
	require.NoError(t, err)

	assert.Contains(t, diagram, "stateDiagram-TD")
	assert.Contains(t, diagram, "[*] --> idle")
	assert.Contains(t, diagram, "idle --> running: v.speed > 0.5 (live)")
	assert.Contains(t, diagram, "running: running\\nw = speed()")
	assert.Contains(t, diagram, "idle: idle\\nw = 1")
	assert.Contains(t, diagram, "class running liveState")

	// The sub-machine renders as a nested composite state.
	assert.Contains(t, diagram, "state airborne {")
	assert.Contains(t, diagram, "jump --> fall: falling (live)")
}

func TestGenerateMermaidOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions().
		WithDirection("LR").
		WithShowConditions(false).
		WithShowWeights(false).
		WithHighlightPath([]string{"running"})

	diagram, err := GenerateMermaidWithOptions(movementConfig(), opts)
	require.NoError(t, err)

	assert.Contains(t, diagram, "stateDiagram-LR")
	assert.Contains(t, diagram, "idle --> running: (live)")
	assert.NotContains(t, diagram, "v.speed")
	assert.NotContains(t, diagram, "w = speed()")
	assert.Contains(t, diagram, "class running highlighted")
}

func TestGenerateMermaidNilConfig(t *testing.T) {
	t.Parallel()

	_, err := GenerateMermaid(nil)
	assert.ErrorIs(t, err, ErrConfigNil)
}
