package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/amp-anim/value"
)

func scalarAnimation(name, attribute string, options AnimationOptions, values ...float64) *Animation {
	return &Animation{
		Name:    name,
		Options: options,
		Attributes: []AnimationAttribute{{
			Attribute: attribute,
			Points:    scalarPoints(values...),
		}},
	}
}

func animatorFor(animator *Animator, attribute, animation string) *AttributeAnimator {
	attr := animator.Attributes().Attribute(attribute)
	if attr == nil {
		return nil
	}

	for _, candidate := range attr.Animators() {
		if candidate.Animation() == animation {
			return candidate
		}
	}

	return nil
}

func TestAttributeAnimatorLifetime(t *testing.T) {
	t.Parallel()

	animation := scalarAnimation("walk", "x", AnimationOptions{}, 0, 10)
	attr := &animation.Attributes[0]

	animator := newAttributeAnimator("walk", attr, AnimationOptions{
		Duration: Set(1.0),
		Repeat:   Set(2),
	})

	assert.InDelta(t, 2.0, animator.MaxLifetime(), 1e-9)
	assert.False(t, animator.IsDone())

	// Done exactly when the elapsed time reaches delay + duration + (repeat-1)*(duration+sleep).
	for range 3 {
		animator.Update(0.5)
		assert.False(t, animator.IsDone())
	}

	animator.Update(0.5)
	assert.True(t, animator.IsDone())
	assert.InDelta(t, 2.0, animator.Time(), 1e-9)
}

func TestAttributeAnimatorForeverAndDegenerate(t *testing.T) {
	t.Parallel()

	animation := scalarAnimation("walk", "x", AnimationOptions{}, 0, 10)
	attr := &animation.Attributes[0]

	forever := newAttributeAnimator("walk", attr, AnimationOptions{
		Duration: Set(1.0),
		Repeat:   Set(-1),
	})
	assert.InDelta(t, -1.0, forever.MaxLifetime(), 1e-9)

	for range 100 {
		forever.Update(0.5)
	}

	assert.False(t, forever.IsDone())

	// Zero duration or zero repeat is done before the first update.
	zeroDuration := newAttributeAnimator("walk", attr, AnimationOptions{Repeat: Set(5)})
	assert.True(t, zeroDuration.IsDone())

	zeroRepeat := newAttributeAnimator("walk", attr, AnimationOptions{
		Duration: Set(1.0),
		Repeat:   Set(0),
	})
	assert.True(t, zeroRepeat.IsDone())
}

func TestAttributeAnimatorStopOverridesLifetime(t *testing.T) {
	t.Parallel()

	animation := scalarAnimation("walk", "x", AnimationOptions{}, 0, 10)
	attr := &animation.Attributes[0]

	animator := newAttributeAnimator("walk", attr, AnimationOptions{
		Duration: Set(1.0),
		Repeat:   Set(-1),
	})

	animator.Update(0.5)
	require.False(t, animator.IsStopping())

	animator.StopIn(0.2)
	assert.True(t, animator.IsStopping())
	assert.InDelta(t, 0.7, animator.ActualLifetime(), 1e-9)

	animator.Update(0.1)
	assert.False(t, animator.IsDone())

	animator.Update(0.1)
	assert.True(t, animator.IsDone())
}

func TestAnimatorBlendsScalar(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Init("x", pathScalar)

	animation := scalarAnimation("rise", "x", AnimationOptions{Duration: Set(1.0)}, 0, 10)
	animator.Play(animation)

	animator.Update(0.25)
	assert.InDelta(t, 2.5, animator.Get("x").Data(), 1e-9)

	animator.Update(0.25)
	assert.InDelta(t, 5.0, animator.Get("x").Data(), 1e-9)

	assert.True(t, animator.IsAnimating("rise"))
	assert.False(t, animator.IsAnimating("other"))
}

func TestAnimatorScaleAndClip(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Init("x", pathScalar)

	animation := scalarAnimation("rise", "x", AnimationOptions{Duration: Set(1.0)}, 0, 10)
	animator.PlayWith(animation, AnimationOptions{Scale: Set(0.5)})

	animator.Update(0.5)
	assert.InDelta(t, 2.5, animator.Get("x").Data(), 1e-9)

	clipped := NewAnimator()
	clipped.Init("x", pathScalar)
	clipped.PlayWith(animation, AnimationOptions{ClipStart: Set(0.5)})

	// ClipStart remaps the sampled range to [0.5, 1].
	clipped.Update(0.5)
	assert.InDelta(t, 7.5, clipped.Get("x").Data(), 1e-9)
}

func TestAnimatorUntouchedWithoutAnimators(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Set("x", pathScalar.New(7.0))

	animator.Update(0.1)
	assert.InDelta(t, 7.0, animator.Get("x").Data(), 1e-9)

	assert.False(t, animator.Get("missing").IsValid())
}

func TestAnimatorHoldsLastValueAfterFinish(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Init("x", pathScalar)

	animation := scalarAnimation("rise", "x", AnimationOptions{Duration: Set(1.0)}, 0, 10)
	animator.Play(animation)

	animator.Update(0.5)
	assert.InDelta(t, 5.0, animator.Get("x").Data(), 1e-9)

	// The finishing tick applies once more, then the animator is pruned and
	// later updates leave the value alone.
	animator.Update(0.6)
	assert.False(t, animator.IsAnimating("rise"))
	assert.Empty(t, animator.Attributes().Attribute("x").Animators())

	settled, ok := animator.Get("x").Data().(float64)
	require.True(t, ok)

	animator.Update(0.5)
	animator.Update(0.5)
	assert.InDelta(t, settled, animator.Get("x").Data(), 1e-9)
}

func TestAnimatorMissingCalculatorAdvancesOnly(t *testing.T) {
	t.Parallel()

	opaque := value.NewType("anim-test-opaque", func() any { return "" })

	animator := NewAnimator()
	animator.Init("label", opaque)

	animation := &Animation{
		Name:    "flip",
		Options: AnimationOptions{Duration: Set(0.5)},
		Attributes: []AnimationAttribute{{
			Attribute: "label",
			Points: []Point{
				{Time: 0, Data: opaque.New("a")},
				{Time: 1, Data: opaque.New("b")},
			},
		}},
	}

	animator.Play(animation)
	require.True(t, animator.IsAnimating("flip"))

	// No calculator for the type: time still advances and the animator is
	// pruned at end of life, but the value is never written.
	animator.Update(0.25)
	assert.Equal(t, "", animator.Get("label").Data())

	animator.Update(0.5)
	assert.False(t, animator.IsAnimating("flip"))
	assert.Empty(t, animator.Attributes().Attribute("label").Animators())
}

func TestTransitionSchedulesOutroCrossfade(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Init("x", pathScalar)

	idle := scalarAnimation("idle", "x", AnimationOptions{Duration: Set(1.0), Repeat: Set(-1)}, 0, 1)
	run := scalarAnimation("run", "x", AnimationOptions{Duration: Set(1.0), Repeat: Set(-1)}, 0, 10)

	animator.Play(idle)
	animator.Update(0.1)

	animator.Transition(
		[]AnimateRequest{{Animation: run, Options: AnimationOptions{Delay: Set(0.2)}}},
		TransitionOptions{},
		map[string]bool{"idle": true},
	)

	// The outgoing animation stops in step with the incoming one's delay.
	idleAnimator := animatorFor(animator, "x", "idle")
	require.NotNil(t, idleAnimator)
	assert.True(t, idleAnimator.IsStopping())
	assert.InDelta(t, 0.3, idleAnimator.ActualLifetime(), 1e-9)

	require.NotNil(t, animatorFor(animator, "x", "run"))

	animator.Update(0.1)
	assert.True(t, animator.IsAnimating("idle"))

	animator.Update(0.15)
	assert.False(t, animator.IsAnimating("idle"))
	assert.True(t, animator.IsAnimating("run"))
}

func TestTransitionStopsOutroOnUntouchedAttributes(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Init("x", pathScalar)
	animator.Init("y", pathScalar)

	both := &Animation{
		Name:    "wave",
		Options: AnimationOptions{Duration: Set(1.0), Repeat: Set(-1)},
		Attributes: []AnimationAttribute{
			{Attribute: "x", Points: scalarPoints(0, 1)},
			{Attribute: "y", Points: scalarPoints(0, 1)},
		},
	}
	onlyX := scalarAnimation("point", "x", AnimationOptions{Duration: Set(1.0)}, 0, 5)

	animator.Play(both)
	animator.Update(0.1)

	animator.Transition(
		[]AnimateRequest{{Animation: onlyX}},
		TransitionOptions{},
		map[string]bool{"wave": true},
	)

	// y is not part of the incoming set, so its outro animator stops now.
	waveY := animatorFor(animator, "y", "wave")
	require.NotNil(t, waveY)
	assert.True(t, waveY.IsStopping())
	assert.InDelta(t, waveY.Time(), waveY.ActualLifetime(), 1e-9)
}

func TestAttributeApplyOptionsTargetsMostRecent(t *testing.T) {
	t.Parallel()

	animator := NewAnimator()
	animator.Init("x", pathScalar)

	animation := scalarAnimation("rise", "x",
		AnimationOptions{Duration: Set(1.0), Repeat: Set(-1)}, 0, 10)

	animator.Play(animation)
	animator.Play(animation)

	attr := animator.Attributes().Attribute("x")
	require.Len(t, attr.Animators(), 2)

	animator.ApplyOptions("rise", AnimationOptions{Scale: Set(0.3)})

	assert.InDelta(t, 1.0, attr.Animators()[0].Scale(), 1e-9)
	assert.InDelta(t, 0.3, attr.Animators()[1].Scale(), 1e-9)
}
