package syringe

import (
	"log/slog"
	"time"
)

// Option configures a Container.
type Option func(*options)

type options struct {
	logger *slog.Logger
	types  *TypeTable

	// OnResolved is called after a successful top-level Resolve.
	onResolved func(token Token, instance any, duration time.Duration)

	// OnError is called when a top-level Resolve fails.
	onError func(token Token, err error)
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
		types:  DefaultTypes(),
	}
}

// WithLogger sets the logger used for registration, scope and resolution
// events. Events are logged at debug level. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTypes makes the container read constructor metadata from tt instead
// of DefaultTypes. A nil table is ignored.
func WithTypes(tt *TypeTable) Option {
	return func(o *options) {
		if tt != nil {
			o.types = tt
		}
	}
}

// WithResolveHook registers fn to be called after each successful top-level
// Resolve with the resolved instance and the time it took.
func WithResolveHook(fn func(token Token, instance any, duration time.Duration)) Option {
	return func(o *options) {
		o.onResolved = fn
	}
}

// WithErrorHook registers fn to be called when a top-level Resolve fails.
func WithErrorHook(fn func(token Token, err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
