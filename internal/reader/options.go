package reader

import "log/slog"

type config struct {
	dropUnknown bool
	logger      *slog.Logger
}

// Option configures Read.
type Option func(*config)

// WithDropUnknown drops tokens that no branch recognizes instead of passing
// them through as Token items. Closing delimiters are always kept.
func WithDropUnknown() Option {
	return func(c *config) { c.dropUnknown = true }
}

// WithLogger logs dropped tokens at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
