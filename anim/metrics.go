package anim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // prometheus metrics are package-level by convention
var (
	animatorsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anim_attribute_animators_started_total",
		Help: "Total number of attribute animators started, by animation.",
	}, []string{"animation"})

	animatorsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anim_attribute_animators_finished_total",
		Help: "Total number of attribute animators finished and pruned, by animation.",
	}, []string{"animation"})
)

func observeAnimatorStarted(animation string) {
	animatorsStarted.WithLabelValues(sanitizeAnimation(animation)).Inc()
}

func observeAnimatorFinished(animation string) {
	animatorsFinished.WithLabelValues(sanitizeAnimation(animation)).Inc()
}

func sanitizeAnimation(animation string) string {
	if animation == "" {
		return "unnamed"
	}

	return animation
}
