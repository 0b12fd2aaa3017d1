// Package digbridge connects syringe containers with go.uber.org/dig
// containers, so an application can move between the two incrementally.
//
// Export makes syringe tokens available to dig constructors. Import builds
// a syringe provider that pulls a value out of a dig container.
package digbridge

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/syringe"
	"go.uber.org/dig"
)

var errorType = reflect.TypeFor[error]()

// ErrNotTypeToken is returned by Export for named and symbol tokens.
var ErrNotTypeToken = errors.New("only type tokens can be exported; use ExportNamed")

// ErrExtractFailed is returned when dig invokes an extractor without a value.
var ErrExtractFailed = errors.New("failed to extract value from dig container")

// Export provides each type token to dc. Every time dig builds the value it
// is resolved from c, so syringe singletons stay singletons.
func Export(dc *dig.Container, c *syringe.Container, tokens ...syringe.Token) error {
	if c == nil {
		return syringe.ErrContainerNil
	}

	for _, token := range tokens {
		t := token.Type()
		if t == nil {
			return fmt.Errorf("export %s: %w", token, ErrNotTypeToken)
		}

		if err := dc.Provide(exporter(c, token, t)); err != nil {
			return fmt.Errorf("export %s: %w", token, err)
		}
	}

	return nil
}

// ExportNamed provides syringe.Named(name) to dc as a value of type t under
// dig.Name(name).
func ExportNamed(dc *dig.Container, c *syringe.Container, name string, t reflect.Type) error {
	if c == nil {
		return syringe.ErrContainerNil
	}

	token := syringe.Named(name)
	if err := dc.Provide(exporter(c, token, t), dig.Name(name)); err != nil {
		return fmt.Errorf("export %s: %w", token, err)
	}

	return nil
}

// exporter builds a func() (t, error) that resolves token from c.
func exporter(c *syringe.Container, token syringe.Token, t reflect.Type) any {
	fnType := reflect.FuncOf(nil, []reflect.Type{t, errorType}, false)

	return reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		out := reflect.New(t).Elem()

		instance, err := c.Resolve(token)
		if err == nil && instance != nil {
			v := reflect.ValueOf(instance)
			if v.Type().AssignableTo(t) {
				out.Set(v)
			} else {
				err = syringe.TypeMismatchError{Expected: t, Actual: v.Type(), Context: "dig export"}
			}
		}

		errValue := reflect.Zero(errorType)
		if err != nil {
			errValue = reflect.ValueOf(&err).Elem()
		}

		return []reflect.Value{out, errValue}
	}).Interface()
}

// Import returns a factory provider that resolves t from dc.
func Import(dc *dig.Container, t reflect.Type) syringe.FactoryProvider {
	return syringe.UseFactory(func(*syringe.Container) (any, error) {
		var result any

		fnType := reflect.FuncOf([]reflect.Type{t}, []reflect.Type{errorType}, false)
		fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
			if len(args) > 0 && args[0].IsValid() {
				result = args[0].Interface()
				return []reflect.Value{reflect.Zero(errorType)}
			}

			err := ErrExtractFailed
			return []reflect.Value{reflect.ValueOf(&err).Elem()}
		})

		if err := dc.Invoke(fn.Interface()); err != nil {
			return nil, err
		}

		return result, nil
	})
}

// ImportNamed returns a factory provider that resolves the value of type t
// provided to dc under dig.Name(name).
func ImportNamed(dc *dig.Container, name string, t reflect.Type) syringe.FactoryProvider {
	paramType := reflect.StructOf([]reflect.StructField{
		{
			Name:      "In",
			Type:      reflect.TypeFor[dig.In](),
			Anonymous: true,
		},
		{
			Name: "Value",
			Type: t,
			Tag:  reflect.StructTag(fmt.Sprintf(`name:"%s"`, name)),
		},
	})

	return syringe.UseFactory(func(*syringe.Container) (any, error) {
		var result any

		fnType := reflect.FuncOf([]reflect.Type{paramType}, []reflect.Type{errorType}, false)
		fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
			if len(args) > 0 && args[0].IsValid() {
				if field := args[0].FieldByName("Value"); field.IsValid() {
					result = field.Interface()
					return []reflect.Value{reflect.Zero(errorType)}
				}
			}

			err := ErrExtractFailed
			return []reflect.Value{reflect.ValueOf(&err).Elem()}
		})

		if err := dc.Invoke(fn.Interface()); err != nil {
			return nil, err
		}

		return result, nil
	})
}
