package vm

import "log/slog"

// Option defines a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for call failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}
