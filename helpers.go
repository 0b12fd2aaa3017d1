package syringe

import (
	"fmt"
	"reflect"
)

// Resolve resolves token from c and asserts the result to T.
func Resolve[T any](c *Container, token Token) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrContainerNil
	}

	instance, err := c.Resolve(token)
	if err != nil {
		return zero, err
	}

	return assertAs[T](instance)
}

// ResolveType resolves the type token of T.
func ResolveType[T any](c *Container) (T, error) {
	return Resolve[T](c, TypeOf[T]())
}

// MustResolve resolves token and panics on error.
func MustResolve[T any](c *Container, token Token) T {
	result, err := Resolve[T](c, token)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", token, err))
	}
	return result
}

func assertAs[T any](instance any) (T, error) {
	var zero T
	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			Expected: reflect.TypeFor[T](),
			Actual:   reflect.TypeOf(instance),
			Context:  "type assertion",
		}
	}

	return result, nil
}
