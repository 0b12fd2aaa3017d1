package syringe

import "sync"

// RegistrationOptions configures a registration.
type RegistrationOptions struct {
	// Singleton caches the first resolved instance on the registration.
	// Only Class and Token providers may be singletons.
	Singleton bool

	// Registrations are applied to the scope keyed by the registered token.
	Registrations []ProviderRegistration
}

// RegisterOption modifies RegistrationOptions.
type RegisterOption func(*RegistrationOptions)

// AsSingleton marks a registration as a singleton.
func AsSingleton() RegisterOption {
	return func(o *RegistrationOptions) {
		o.Singleton = true
	}
}

// WithScope attaches nested registrations. They are stored in a scope
// container keyed by the registered token and are only visible when that
// token is resolved.
func WithScope(regs ...ProviderRegistration) RegisterOption {
	return func(o *RegistrationOptions) {
		o.Registrations = append(o.Registrations, regs...)
	}
}

// ProviderRegistration is a token and provider pair, used for bulk and
// nested registration.
type ProviderRegistration struct {
	Token    Token
	Provider Provider
	Options  []RegisterOption
}

// Provide builds a ProviderRegistration.
func Provide(token Token, provider Provider, opts ...RegisterOption) ProviderRegistration {
	return ProviderRegistration{
		Token:    token,
		Provider: provider,
		Options:  opts,
	}
}

// registration is a registry entry. The mutex guards the singleton cache only.
type registration struct {
	provider Provider
	options  RegistrationOptions

	mu       sync.Mutex
	instance any
	cached   bool
}

// newRegistration validates a registration, including any nested
// registrations, without touching a container.
func newRegistration(token Token, provider Provider, opts []RegisterOption) (*registration, error) {
	if token.IsZero() {
		return nil, RegistrationError{Token: token, Operation: "register", Cause: ErrTokenZero}
	}

	p, err := normalizeProvider(provider)
	if err != nil {
		return nil, RegistrationError{Token: token, Operation: "register", Cause: err}
	}

	var options RegistrationOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if options.Singleton {
		switch p.Kind() {
		case ValueKind, FactoryKind:
			return nil, RegistrationError{Token: token, Operation: "register singleton", Cause: ErrSingletonProvider}
		}
	}

	if err := validateRegistrations(options.Registrations); err != nil {
		return nil, RegistrationError{Token: token, Operation: "register scope", Cause: err}
	}

	return &registration{
		provider: p,
		options:  options,
	}, nil
}

// validateRegistrations checks a set of registrations recursively.
func validateRegistrations(regs []ProviderRegistration) error {
	for _, r := range regs {
		if _, err := newRegistration(r.Token, r.Provider, r.Options); err != nil {
			return err
		}
	}

	return nil
}

// load returns the cached singleton, if any.
func (r *registration) load() (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.instance, r.cached
}

// store publishes a singleton instance. The first stored value wins and is
// returned to every caller.
func (r *registration) store(instance any) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached {
		return r.instance
	}

	r.instance = instance
	r.cached = true
	return instance
}
