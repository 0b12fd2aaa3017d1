package syringe

import (
	"fmt"
	"reflect"
)

// AutoConstructor wraps a constructor so that callers supply only a prefix
// of its arguments. The remaining parameters are resolved from a container.
type AutoConstructor struct {
	container *Container
	info      *TypeInfo
}

// AutoInjectable returns an AutoConstructor for constructor. Metadata
// already defined for the same constructor is reused, so parameter names
// and injected tokens apply. When regs are given they are registered in the
// scope of the constructed type and the remaining parameters are resolved
// there.
func (c *Container) AutoInjectable(constructor any, regs ...ProviderRegistration) (*AutoConstructor, error) {
	info, err := c.defineFor(constructor)
	if err != nil {
		return nil, err
	}

	resolver := c.root()
	if len(regs) > 0 {
		scope, err := c.RegisterScope(TypeToken(info.Type), regs...)
		if err != nil {
			return nil, err
		}
		resolver = scope
	}

	return &AutoConstructor{
		container: resolver,
		info:      info,
	}, nil
}

// defineFor returns the recorded metadata for constructor, defining it if
// the type has none or was defined from another constructor. Closures of
// one literal share metadata, but each wrapper calls its own closure.
func (c *Container) defineFor(constructor any) (*TypeInfo, error) {
	v := reflect.ValueOf(constructor)
	if v.Kind() == reflect.Func && !v.IsNil() && v.Type().NumOut() > 0 {
		if info, ok := c.options.types.Lookup(v.Type().Out(0)); ok && info.Constructor.Pointer() == v.Pointer() {
			bound := info.clone()
			bound.Constructor = v
			return bound, nil
		}
	}

	return c.options.types.Define(constructor)
}

// Type returns the constructed type.
func (a *AutoConstructor) Type() reflect.Type {
	return a.info.Type
}

// New calls the constructor. Explicit args fill the leading parameters and
// always win; every remaining parameter is resolved by its token.
func (a *AutoConstructor) New(args ...any) (any, error) {
	info := a.info
	if len(args) > len(info.Params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d",
			ErrTooManyArguments, formatType(info.Constructor.Type()), len(info.Params), len(args))
	}

	self := []Token{TypeToken(info.Type)}
	values := make([]reflect.Value, len(info.Params))

	for i, token := range info.Params {
		var (
			value any
			err   error
		)

		if i < len(args) {
			value = args[i]
		} else {
			value, err = a.container.resolve(token, self)
		}

		if err == nil {
			values[i], err = convertArg(value, info.ParamType(i), i)
		}

		if err != nil {
			return nil, InjectionError{
				Type:  info.Type,
				Index: i,
				Param: info.ParamName(i),
				Cause: err,
			}
		}
	}

	return invoke(info, values)
}

// AutoNew calls a.New and asserts the result to T.
func AutoNew[T any](a *AutoConstructor, args ...any) (T, error) {
	instance, err := a.New(args...)
	if err != nil {
		var zero T
		return zero, err
	}

	return assertAs[T](instance)
}
