package machine

import "log/slog"

// Logger provides logging hooks for machine execution. The machine tick is a
// per-frame hot path, so implementations should be cheap; the default logger
// logs at debug level only.
type Logger interface {
	TransitionFired(machine, instance, from, to string, live bool)
	StateQueued(machine, instance, state string)
	StateActivated(machine, instance, state string)
	StateFinished(machine, instance, state string)
	QueueTruncated(machine, instance string, dropped int)
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) TransitionFired(machine, instance, from, to string, live bool) {}
func (NopLogger) StateQueued(machine, instance, state string)                   {}
func (NopLogger) StateActivated(machine, instance, state string)                {}
func (NopLogger) StateFinished(machine, instance, state string)                 {}
func (NopLogger) QueueTruncated(machine, instance string, dropped int)          {}

// SlogLogger implements Logger using slog at debug level.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a logger backed by the given slog.Logger, falling
// back to slog.Default when nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) TransitionFired(machine, instance, from, to string, live bool) {
	l.logger.Debug("Transition fired",
		"machine", machine,
		"instance", instance,
		"from", from,
		"to", to,
		"live", live,
	)
}

func (l *SlogLogger) StateQueued(machine, instance, state string) {
	l.logger.Debug("State queued",
		"machine", machine,
		"instance", instance,
		"state", state,
	)
}

func (l *SlogLogger) StateActivated(machine, instance, state string) {
	l.logger.Debug("State activated",
		"machine", machine,
		"instance", instance,
		"state", state,
	)
}

func (l *SlogLogger) StateFinished(machine, instance, state string) {
	l.logger.Debug("State finished",
		"machine", machine,
		"instance", instance,
		"state", state,
	)
}

func (l *SlogLogger) QueueTruncated(machine, instance string, dropped int) {
	l.logger.Debug("Activation queue truncated",
		"machine", machine,
		"instance", instance,
		"dropped", dropped,
	)
}
