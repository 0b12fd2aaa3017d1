package syringe

import "reflect"

// Injectable records constructor metadata for the constructor's result type.
// WithToken additionally registers the type under a token, and
// WithRegistrations attaches a scope to the type.
//
//	t, err := c.Injectable(NewUserService,
//	    syringe.Inject(0, syringe.Named("users-db")),
//	    syringe.WithToken(syringe.Named("users")),
//	)
func (c *Container) Injectable(constructor any, opts ...InjectableOption) (reflect.Type, error) {
	info, o, err := c.define(constructor, opts)
	if err != nil {
		return nil, err
	}

	if !o.token.IsZero() {
		if err := c.Register(o.token, UseClassOf(info.Type)); err != nil {
			return nil, err
		}
	}

	return info.Type, nil
}

// Singleton is Injectable followed by a singleton registration of the type.
// A WithToken token is registered exactly as Injectable registers it, so
// only resolutions of the type itself share the cached instance.
func (c *Container) Singleton(constructor any, opts ...InjectableOption) (reflect.Type, error) {
	info, o, err := c.define(constructor, opts)
	if err != nil {
		return nil, err
	}

	if !o.token.IsZero() {
		if err := c.Register(o.token, UseClassOf(info.Type)); err != nil {
			return nil, err
		}
	}

	if err := c.RegisterSingleton(TypeToken(info.Type)); err != nil {
		return nil, err
	}

	return info.Type, nil
}

// define validates the attached registrations, records the metadata and
// registers the type's scope.
func (c *Container) define(constructor any, opts []InjectableOption) (*TypeInfo, *injectableOptions, error) {
	o := collectInjectableOptions(opts)

	if err := validateRegistrations(o.registrations); err != nil {
		return nil, nil, err
	}

	info, err := c.options.types.Define(constructor, opts...)
	if err != nil {
		return nil, nil, err
	}

	if len(o.registrations) > 0 {
		if _, err := c.RegisterScope(TypeToken(info.Type), o.registrations...); err != nil {
			return nil, nil, err
		}
	}

	return info, o, nil
}
