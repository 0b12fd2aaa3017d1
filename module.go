package syringe

import "reflect"

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Container) error

// NewModule creates a new module with the given name and builders.
// Modules are a way to group related registrations together.
//
// Example:
//
//	var StorageModule = syringe.NewModule("storage",
//	    syringe.Value(syringe.Named("dsn"), "postgres://localhost/app"),
//	    syringe.Define(NewDatabase),
//	    syringe.Class(syringe.TypeOf[Repository](), syringe.TypeOf[*SQLRepository]().Type(), syringe.AsSingleton()),
//	)
//
//	var AppModule = syringe.NewModule("app",
//	    StorageModule,
//	    syringe.Alias(syringe.Named("repo"), syringe.TypeOf[Repository]()),
//	)
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(c *Container) error {
		for _, builder := range builders {
			if builder == nil {
				continue
			}

			if err := builder(c); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// AddModules applies modules to c in order and stops at the first error.
func (c *Container) AddModules(modules ...ModuleOption) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(c); err != nil {
			return err
		}
	}

	return nil
}

// Value creates a ModuleOption registering a fixed instance.
func Value(token Token, v any) ModuleOption {
	return func(c *Container) error {
		return c.Register(token, UseValue(v))
	}
}

// Factory creates a ModuleOption registering a factory.
func Factory(token Token, fn func(*Container) (any, error)) ModuleOption {
	return func(c *Container) error {
		return c.Register(token, UseFactory(fn))
	}
}

// Alias creates a ModuleOption registering from as an alias of to.
func Alias(from, to Token, opts ...RegisterOption) ModuleOption {
	return func(c *Container) error {
		return c.Register(from, UseToken(to), opts...)
	}
}

// Class creates a ModuleOption registering class under token.
func Class(token Token, class reflect.Type, opts ...RegisterOption) ModuleOption {
	return func(c *Container) error {
		return c.Register(token, UseClassOf(class), opts...)
	}
}

// Define creates a ModuleOption recording constructor metadata through
// Injectable.
func Define(constructor any, opts ...InjectableOption) ModuleOption {
	return func(c *Container) error {
		_, err := c.Injectable(constructor, opts...)
		return err
	}
}

// Provides creates a ModuleOption applying registrations through Registry.
func Provides(regs ...ProviderRegistration) ModuleOption {
	return func(c *Container) error {
		return c.Registry(regs...)
	}
}
