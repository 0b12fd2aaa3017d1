package syringe

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Container maps tokens to providers and resolves them.
//
// A container looks tokens up in its own registry first and then in its
// parent chain. Tokens with a scope entry are resolved inside that scope.
// Containers are safe for concurrent use.
type Container struct {
	*core

	// call is set on the view passed to a factory. While the factory runs,
	// Resolve on the view continues the outer resolution path.
	call *factoryCall
}

// factoryCall is the resolution path of one running factory invocation.
type factoryCall struct {
	path   []Token
	active atomic.Bool
}

// continues returns the path to continue from, or false once the factory
// has returned.
func (fc *factoryCall) continues() ([]Token, bool) {
	if fc == nil || !fc.active.Load() {
		return nil, false
	}
	return fc.path, true
}

// core is the state shared by a container and the views passed to factories.
type core struct {
	id      string
	parent  *Container
	options *options

	mu       sync.RWMutex
	registry map[Token]*registration
	scopes   map[Token]*Container
}

// New creates a root container.
func New(opts ...Option) *Container {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return newContainer(nil, o)
}

func newContainer(parent *Container, o *options) *Container {
	return &Container{
		core: &core{
			id:       uuid.NewString(),
			parent:   parent,
			options:  o,
			registry: make(map[Token]*registration),
			scopes:   make(map[Token]*Container),
		},
	}
}

// ID returns the container's unique identifier.
func (c *Container) ID() string {
	return c.id
}

// Parent returns the parent container, or nil for a root container.
func (c *Container) Parent() *Container {
	return c.parent
}

// Types returns the type table the container constructs from.
func (c *Container) Types() *TypeTable {
	return c.options.types
}

// CreateChildContainer returns a new container whose lookups fall back to c.
// The child shares c's type table, logger and hooks but none of its scopes.
func (c *Container) CreateChildContainer() *Container {
	child := newContainer(c.root(), c.options)
	c.options.logger.Debug("created child container", "container", child.id, "parent", c.id)
	return child
}

// root returns the container handed out to users for a factory view.
func (c *Container) root() *Container {
	if c.call == nil {
		return c
	}
	return &Container{core: c.core}
}

// Register stores provider under token, replacing any previous registration
// in this container. Registrations from WithScope are applied to the scope
// keyed by token first.
func (c *Container) Register(token Token, provider Provider, opts ...RegisterOption) error {
	reg, err := newRegistration(token, provider, opts)
	if err != nil {
		return err
	}

	if len(reg.options.Registrations) > 0 {
		if _, err := c.RegisterScope(token, reg.options.Registrations...); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.registry[token] = reg
	c.mu.Unlock()

	c.options.logger.Debug("registered provider",
		"container", c.id,
		"token", token.String(),
		"kind", reg.provider.Kind().String(),
		"singleton", reg.options.Singleton,
	)

	return nil
}

// RegisterType registers from as an alias of to when to is a named token,
// and as a class provider for to's type otherwise.
func (c *Container) RegisterType(from, to Token, opts ...RegisterOption) error {
	if to.IsZero() {
		return RegistrationError{Token: from, Operation: "register type", Cause: ErrTokenZero}
	}

	return c.Register(from, targetProvider(to), opts...)
}

// RegisterInstance registers a fixed instance under token.
func (c *Container) RegisterInstance(token Token, instance any) error {
	return c.Register(token, UseValue(instance))
}

// RegisterSingleton registers from as a singleton. A type token without a
// target is a singleton of itself; a named token needs exactly one target.
func (c *Container) RegisterSingleton(from Token, to ...Token) error {
	if len(to) > 1 {
		return RegistrationError{Token: from, Operation: "register singleton", Cause: ErrTooManyTargets}
	}

	if len(to) == 0 {
		if from.IsNamed() {
			return RegistrationError{Token: from, Operation: "register singleton", Cause: ErrSingletonNameWithoutTarget}
		}
		return c.Register(from, UseClassOf(from.Type()), AsSingleton())
	}

	if to[0].IsZero() {
		return RegistrationError{Token: from, Operation: "register singleton", Cause: ErrTokenZero}
	}

	return c.Register(from, targetProvider(to[0]), AsSingleton())
}

func targetProvider(to Token) Provider {
	if to.IsNamed() {
		return UseToken(to)
	}
	return UseClassOf(to.Type())
}

// IsRegistered reports whether token is registered in this container.
// Parents and scopes are not consulted.
func (c *Container) IsRegistered(token Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.registry[token]
	return ok
}

// Reset removes every registration and scope from this container.
// Parents, children and the type table are unaffected.
func (c *Container) Reset() {
	c.mu.Lock()
	c.registry = make(map[Token]*registration)
	c.scopes = make(map[Token]*Container)
	c.mu.Unlock()

	c.options.logger.Debug("reset container", "container", c.id)
}

// Registry applies regs in order. All registrations are validated before
// any of them is stored.
func (c *Container) Registry(regs ...ProviderRegistration) error {
	if err := validateRegistrations(regs); err != nil {
		return err
	}

	for _, r := range regs {
		if err := c.Register(r.Token, r.Provider, r.Options...); err != nil {
			return err
		}
	}

	return nil
}

// lookup finds the registration for token in c or its parents.
func (c *Container) lookup(token Token) *registration {
	for cur := c; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		reg, ok := cur.registry[token]
		cur.mu.RUnlock()

		if ok {
			return reg
		}
	}

	return nil
}

// registrations returns the registrations visible from c, nearest first.
func (c *Container) registrations() map[Token]*registration {
	visible := make(map[Token]*registration)
	for cur := c; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		for token, reg := range cur.registry {
			if _, shadowed := visible[token]; !shadowed {
				visible[token] = reg
			}
		}
		cur.mu.RUnlock()
	}

	return visible
}
