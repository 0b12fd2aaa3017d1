package syringe

// RegisterScope applies regs to the scope keyed by token, creating the
// scope on first use. The scope is a child of c. Whenever token is resolved
// through c, resolution continues in the scope, so registrations made
// here are private to token's dependency tree.
//
// All registrations are validated before the scope is created or changed.
func (c *Container) RegisterScope(token Token, regs ...ProviderRegistration) (*Container, error) {
	if token.IsZero() {
		return nil, RegistrationError{Token: token, Operation: "register scope", Cause: ErrTokenZero}
	}

	if err := validateRegistrations(regs); err != nil {
		return nil, RegistrationError{Token: token, Operation: "register scope", Cause: err}
	}

	scope := c.ensureScope(token)
	for _, r := range regs {
		if err := scope.Register(r.Token, r.Provider, r.Options...); err != nil {
			return nil, RegistrationError{Token: token, Operation: "register scope", Cause: err}
		}
	}

	return scope, nil
}

// Scope returns the scope keyed by token, if one exists in c.
func (c *Container) Scope(token Token) (*Container, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	scope, ok := c.scopes[token]
	return scope, ok
}

func (c *Container) ensureScope(token Token) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	if scope, ok := c.scopes[token]; ok {
		return scope
	}

	scope := newContainer(c.root(), c.options)
	c.scopes[token] = scope

	c.options.logger.Debug("created scope",
		"container", c.id,
		"scope", scope.id,
		"token", token.String(),
	)

	return scope
}
