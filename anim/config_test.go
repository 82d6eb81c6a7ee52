package anim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/amp-labs/amp-anim/calc"
	"github.com/amp-labs/amp-anim/machine"
)

const libraryYAML = `
animations:
  - name: rise
    options:
      duration: 1
      easing: linear
    attributes:
      - attribute: position
        type: library-scalar
        points:
          - {time: 0, data: 0}
          - {time: 1, data: 10}
  - name: sway
    options:
      duration: 2
      repeat: -1
      path: linear
    attributes:
      - attribute: offset
        type: library-vec
        options:
          easing: quad
        points:
          - {time: 0, data: {x: 0, y: 0}}
          - {time: 1, data: {x: 1, y: -1}}
`

func newTestLoader() *Loader {
	loader := NewLoader()
	loader.RegisterType(libraryScalar)
	loader.RegisterType(libraryVec)

	return loader
}

//nolint:gochecknoglobals // shared immutable test types
var (
	libraryScalar = calc.RegisterScalar("library-scalar")
	libraryVec    = calc.RegisterVec("library-vec")
)

func parseLibrary(t *testing.T, text string) *LibraryConfig {
	t.Helper()

	var config LibraryConfig

	require.NoError(t, yaml.Unmarshal([]byte(text), &config))

	return &config
}

func TestLoaderBuildsLibrary(t *testing.T) {
	t.Parallel()

	library, err := newTestLoader().Build(parseLibrary(t, libraryYAML))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"rise", "sway"}, library.Names())

	rise, err := library.Get("rise")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rise.Options.Duration.Get(0), 1e-9)
	require.Len(t, rise.Attributes, 1)
	require.Len(t, rise.Attributes[0].Points, 2)
	assert.True(t, rise.Attributes[0].Points[1].Data.Is(libraryScalar))
	assert.InDelta(t, 10.0, rise.Attributes[0].Points[1].Data.Data(), 1e-9)

	sway, err := library.Get("sway")
	require.NoError(t, err)
	assert.Equal(t, -1, sway.Options.Repeat.Get(1))

	v, ok := sway.Attributes[0].Points[1].Data.Data().(calc.Vec)
	require.True(t, ok)
	assert.InDelta(t, -1.0, v.Y, 1e-9)

	_, err = library.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownAnimation)
}

func TestLoaderPlaysBuiltAnimation(t *testing.T) {
	t.Parallel()

	library, err := newTestLoader().Build(parseLibrary(t, libraryYAML))
	require.NoError(t, err)

	rise, err := library.Get("rise")
	require.NoError(t, err)

	animator := NewAnimator()
	animator.Init("position", libraryScalar)
	animator.Play(rise)

	animator.Update(0.5)
	assert.InDelta(t, 5.0, animator.Get("position").Data(), 1e-9)
}

func TestLoaderErrors(t *testing.T) {
	t.Parallel()

	loader := newTestLoader()

	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "unnamed animation",
			yaml: `animations: [{attributes: []}]`,
			err:  ErrAnimationNameRequired,
		},
		{
			name: "duplicate animation",
			yaml: `animations: [{name: a}, {name: a}]`,
			err:  ErrDuplicateAnimation,
		},
		{
			name: "unnamed attribute",
			yaml: `animations: [{name: a, attributes: [{type: library-scalar}]}]`,
			err:  ErrAttributeRequired,
		},
		{
			name: "unknown type",
			yaml: `animations: [{name: a, attributes: [{attribute: x, type: nope}]}]`,
			err:  ErrUnknownValueType,
		},
		{
			name: "unknown easing",
			yaml: `animations: [{name: a, options: {easing: bouncy}}]`,
			err:  ErrUnknownEasing,
		},
		{
			name: "unknown path",
			yaml: `animations: [{name: a, options: {path: spiral}}]`,
			err:  ErrUnknownPath,
		},
		{
			name: "bad point data",
			yaml: `animations: [{name: a, attributes: [{attribute: x, type: library-scalar, points: [{time: 0, data: [1, 2]}]}]}]`,
			err:  ErrPointData,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := loader.Build(parseLibrary(t, tc.yaml))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestRegistryBuildsAnimationMachine(t *testing.T) {
	t.Parallel()

	loader := newTestLoader()
	library, err := loader.Build(parseLibrary(t, libraryYAML))
	require.NoError(t, err)

	registry := NewRegistry[speedInput](loader)
	require.NoError(t, RegisterLibrary(registry, library))
	registry.ExprVars = func(in speedInput, _ Update) map[string]any {
		return map[string]any{"speed": in.Speed}
	}

	config := &machine.Config{
		Name:   "motion",
		Policy: machine.PolicyConfig{ActiveMax: 1, AppliedMax: 1, FlushImmediately: true},
		States: []machine.StateConfig{
			{Name: "rising", Data: "rise", Weight: float64Ptr(1)},
			{Name: "swaying", Data: "sway", Weight: float64Ptr(0.5)},
		},
		Transitions: []machine.TransitionConfig{
			{To: "rising"},
			{From: "rising", To: "swaying", Condition: "v.speed > 0.5", Live: true},
		},
	}

	def, err := machine.Build(config, registry, speedInput{})
	require.NoError(t, err)

	animator := NewAnimator()
	animator.Init("position", libraryScalar)
	animator.Init("offset", libraryVec)

	m := machine.New(def, animator)
	update := Update{DeltaTime: 0.25}

	m.Init(update)
	m.Update(update)
	m.Apply(update)

	require.Len(t, m.Active(), 1)
	assert.Equal(t, "rising", m.Active()[0].Def().ID())
	assert.InDelta(t, 2.5, animator.Get("position").Data(), 1e-9)

	m.Input().Speed = 1.0
	m.Update(update)
	m.Apply(update)

	require.Len(t, m.Active(), 1)
	assert.Equal(t, "swaying", m.Active()[0].Def().ID())
	assert.True(t, animator.IsAnimating("sway"))
}

func TestDecodeMachineOptions(t *testing.T) {
	t.Parallel()

	var node yaml.Node

	require.NoError(t, yaml.Unmarshal([]byte(`
transition:
  time: 0.5
  easing: quad
animation:
  delay: 0.2
  scale: 0.8
`), &node))

	options, err := decodeMachineOptions(newTestLoader(), &node)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, options.Transition.Time.Get(0), 1e-9)
	assert.InDelta(t, 0.25, options.Transition.Easing(0.5), 1e-9)
	assert.InDelta(t, 0.2, options.Animation.Delay.Get(0), 1e-9)
	assert.InDelta(t, 0.8, options.Animation.Scale.Get(1), 1e-9)
}

func TestLibraryWatchReloads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(libraryYAML), 0o600))

	library, watcher, err := newTestLoader().Watch(path, slogt.New(t))
	require.NoError(t, err)

	defer func() { _ = watcher.Close() }()

	assert.ElementsMatch(t, []string{"rise", "sway"}, library.Names())

	updated := `
animations:
  - name: rise
    options: {duration: 2}
    attributes:
      - attribute: position
        type: library-scalar
        points:
          - {time: 0, data: 0}
          - {time: 1, data: 20}
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case reloaded := <-watcher.Reloaded:
		assert.Equal(t, path, reloaded)
	case err := <-watcher.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("library was not reloaded")
	}

	assert.Equal(t, []string{"rise"}, library.Names())

	rise, err := library.Get("rise")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, rise.Options.Duration.Get(0), 1e-9)
}

func TestLibraryWatcherCloseLeavesChannelsSendable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(libraryYAML), 0o600))

	_, watcher, err := newTestLoader().Watch(path, slogt.New(t))
	require.NoError(t, err)

	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())

	// A reload that lost the race against Close still completes: both its
	// success and failure sends land on open channels.
	require.NotPanics(t, func() { watcher.reload(path) })
	require.NoError(t, os.WriteFile(path, []byte("animations: ["), 0o600))
	require.NotPanics(t, func() { watcher.reload(path) })

	select {
	case reloaded := <-watcher.Reloaded:
		assert.Equal(t, path, reloaded)
	default:
		t.Fatal("reload was not reported")
	}

	select {
	case err := <-watcher.Errors:
		require.Error(t, err)
	default:
		t.Fatal("reload failure was not reported")
	}
}

func float64Ptr(v float64) *float64 { return &v }
