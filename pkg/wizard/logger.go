package wizard

// Logger is the diagnostics capability injected into a run. The engine
// writes skip, back, and cancel events at debug level; backends report
// detached-work failures at error level. Logging never affects control
// flow.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything. Used when Config.Logger is nil.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Errorf(string, ...any) {}
