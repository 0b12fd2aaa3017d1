package syringe

import (
	"reflect"
	"sync/atomic"
)

var defaultContainer atomic.Pointer[Container]

func init() {
	defaultContainer.Store(New())
}

// Default returns the default container used by the package-level
// functions. It returns nil if SetDefault(nil) was called.
func Default() *Container {
	return defaultContainer.Load()
}

// SetDefault replaces the default container. This is similar to slog.SetDefault.
// Pass nil to remove it; the package-level functions then return ErrContainerNil.
func SetDefault(c *Container) {
	defaultContainer.Store(c)
}

// Injectable calls Injectable on the default container.
func Injectable(constructor any, opts ...InjectableOption) (reflect.Type, error) {
	c := Default()
	if c == nil {
		return nil, ErrContainerNil
	}
	return c.Injectable(constructor, opts...)
}

// Singleton calls Singleton on the default container.
func Singleton(constructor any, opts ...InjectableOption) (reflect.Type, error) {
	c := Default()
	if c == nil {
		return nil, ErrContainerNil
	}
	return c.Singleton(constructor, opts...)
}

// AutoInjectable calls AutoInjectable on the default container.
func AutoInjectable(constructor any, regs ...ProviderRegistration) (*AutoConstructor, error) {
	c := Default()
	if c == nil {
		return nil, ErrContainerNil
	}
	return c.AutoInjectable(constructor, regs...)
}

// Registry calls Registry on the default container.
func Registry(regs ...ProviderRegistration) error {
	c := Default()
	if c == nil {
		return ErrContainerNil
	}
	return c.Registry(regs...)
}
