package syringe

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"slices"
	"time"

	"github.com/junioryono/syringe/internal/reflection"
)

// Resolve returns an instance for token.
//
// If c has a scope for token, resolution continues in that scope. The token
// is then looked up in the registry and the parent chain. Unregistered type
// tokens are constructed implicitly; unregistered named tokens and interface
// types without metadata fail with ErrUnregisteredToken.
func (c *Container) Resolve(token Token) (any, error) {
	if path, ok := c.call.continues(); ok {
		// Called from inside a running factory: continue the outer resolution.
		return c.resolve(token, path)
	}

	start := time.Now()
	instance, err := c.resolve(token, nil)
	duration := time.Since(start)

	if err != nil {
		c.options.logger.Debug("resolution failed",
			"container", c.id,
			"token", token.String(),
			"error", err,
		)

		if c.options.onError != nil {
			c.options.onError(token, err)
		}
		return nil, err
	}

	if c.options.onResolved != nil {
		c.options.onResolved(token, instance, duration)
	}

	return instance, nil
}

// resolve consults the scope table once and then resolves locally. The hop
// itself is not recorded on the path.
func (c *Container) resolve(token Token, path []Token) (any, error) {
	if token.IsZero() {
		return nil, ResolutionError{Token: token, Cause: ErrTokenZero}
	}

	if scope, ok := c.Scope(token); ok {
		return scope.resolveLocal(token, path)
	}

	return c.resolveLocal(token, path)
}

func (c *Container) resolveLocal(token Token, path []Token) (any, error) {
	if i := slices.Index(path, token); i >= 0 {
		return nil, CircularDependencyError{
			Node: token,
			Path: slices.Clone(path[i:]),
		}
	}

	path = append(slices.Clip(path), token)

	reg := c.lookup(token)
	if reg == nil {
		if !c.constructible(token) {
			return nil, ResolutionError{Token: token, Cause: ErrUnregisteredToken}
		}
		return c.construct(token.Type(), path)
	}

	switch p := reg.provider.(type) {
	case ValueProvider:
		return p.Value, nil

	case TokenProvider:
		return c.cached(reg, func() (any, error) {
			return c.resolve(p.Token, path)
		})

	case ClassProvider:
		return c.cached(reg, func() (any, error) {
			return c.construct(p.Class, path)
		})

	case FactoryProvider:
		return c.callFactory(token, p, path)

	default:
		return nil, ResolutionError{Token: token, Cause: fmt.Errorf("unknown provider %T", p)}
	}
}

// cached runs build for transient registrations and through the singleton
// cache otherwise. Instances are built outside the registration lock.
func (c *Container) cached(reg *registration, build func() (any, error)) (any, error) {
	if !reg.options.Singleton {
		return build()
	}

	if instance, ok := reg.load(); ok {
		return instance, nil
	}

	instance, err := build()
	if err != nil {
		return nil, err
	}

	return reg.store(instance), nil
}

// callFactory runs a factory with a view of c. The view continues path only
// until the factory returns; a view kept for later resolves from scratch.
func (c *Container) callFactory(token Token, p FactoryProvider, path []Token) (instance any, err error) {
	call := &factoryCall{path: path}
	call.active.Store(true)

	defer func() {
		call.active.Store(false)

		if r := recover(); r != nil {
			instance = nil
			err = ResolutionError{
				Token: token,
				Cause: ConstructorPanicError{
					Constructor: reflect.TypeOf(p.Factory),
					Panic:       r,
					Stack:       debug.Stack(),
				},
			}
		}
	}()

	instance, err = p.Factory(&Container{core: c.core, call: call})
	if err != nil {
		return nil, ResolutionError{Token: token, Cause: err}
	}

	return instance, nil
}

// constructible reports whether an unregistered token can be built.
func (c *Container) constructible(token Token) bool {
	if token.IsNamed() {
		return false
	}

	if token.Type().Kind() == reflect.Interface {
		_, ok := c.options.types.Lookup(token.Type())
		return ok
	}

	return true
}

// construct builds t from its metadata, resolving each parameter token in c.
func (c *Container) construct(t reflect.Type, path []Token) (any, error) {
	info, ok := c.options.types.Lookup(t)
	if !ok {
		if reflection.IsZeroConstructible(t) {
			return reflection.NewZero(t).Interface(), nil
		}
		return nil, MissingTypeInfoError{Type: t}
	}

	args := make([]reflect.Value, len(info.Params))
	for i, token := range info.Params {
		value, err := c.resolve(token, path)
		if err != nil {
			return nil, ResolutionError{Token: TypeToken(t), Cause: err}
		}

		arg, err := convertArg(value, info.ParamType(i), i)
		if err != nil {
			return nil, ResolutionError{Token: TypeToken(t), Cause: err}
		}
		args[i] = arg
	}

	return invoke(info, args)
}

// convertArg turns a resolved value into a call argument for want.
// A nil value becomes the zero value of want.
func convertArg(value any, want reflect.Type, index int) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(want), nil
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, TypeMismatchError{
			Expected: want,
			Actual:   v.Type(),
			Context:  fmt.Sprintf("parameter %d", index),
		}
	}

	return v, nil
}

// invoke calls the constructor, recovering panics.
func invoke(info *TypeInfo, args []reflect.Value) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ConstructorPanicError{
				Constructor: info.Constructor.Type(),
				Panic:       r,
				Stack:       debug.Stack(),
			}
		}
	}()

	results := info.Constructor.Call(args)

	if info.HasError && !results[1].IsNil() {
		params := make([]reflect.Type, len(args))
		for i, a := range args {
			params[i] = a.Type()
		}

		return nil, ConstructorInvocationError{
			Constructor: info.Constructor.Type(),
			Parameters:  params,
			Cause:       results[1].Interface().(error),
		}
	}

	return results[0].Interface(), nil
}
