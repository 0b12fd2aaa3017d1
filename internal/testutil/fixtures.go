package testutil

import (
	"log/slog"
	"testing"

	"github.com/junioryono/syringe"
)

// Common tokens used across tests.
var (
	FooToken = syringe.Named("IFoo")
	DSNToken = syringe.Named("dsn")
)

// NewContainer returns a container with its own type table and a debug
// logger writing to the test output.
func NewContainer(t *testing.T, opts ...syringe.Option) *syringe.Container {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(t.Output(), &slog.HandlerOptions{Level: slog.LevelDebug}))

	base := []syringe.Option{
		syringe.WithTypes(syringe.NewTypeTable()),
		syringe.WithLogger(logger),
	}

	return syringe.New(append(base, opts...)...)
}
