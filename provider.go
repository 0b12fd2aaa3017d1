package syringe

import (
	"fmt"
	"reflect"
)

// ProviderKind identifies how a Provider produces its value.
type ProviderKind int

const (
	// ValueKind providers return a stored instance.
	ValueKind ProviderKind = iota

	// TokenKind providers alias another token.
	TokenKind

	// ClassKind providers construct a type from its recorded metadata.
	ClassKind

	// FactoryKind providers call a user function on every resolution.
	FactoryKind
)

func (k ProviderKind) String() string {
	switch k {
	case ValueKind:
		return "value"
	case TokenKind:
		return "token"
	case ClassKind:
		return "class"
	case FactoryKind:
		return "factory"
	default:
		return fmt.Sprintf("ProviderKind(%d)", int(k))
	}
}

// Provider describes how a token is turned into an instance. The set of
// providers is closed: ValueProvider, TokenProvider, ClassProvider and
// FactoryProvider.
type Provider interface {
	Kind() ProviderKind
	isProvider()
}

var (
	_ Provider = ValueProvider{}
	_ Provider = TokenProvider{}
	_ Provider = ClassProvider{}
	_ Provider = FactoryProvider{}
)

// ValueProvider returns Value for every resolution.
type ValueProvider struct {
	Value any
}

func (ValueProvider) Kind() ProviderKind { return ValueKind }
func (ValueProvider) isProvider()        {}

// TokenProvider resolves Token in the resolving container.
type TokenProvider struct {
	Token Token
}

func (TokenProvider) Kind() ProviderKind { return TokenKind }
func (TokenProvider) isProvider()        {}

// ClassProvider constructs Class using the metadata recorded in the
// container's TypeTable.
type ClassProvider struct {
	Class reflect.Type
}

func (ClassProvider) Kind() ProviderKind { return ClassKind }
func (ClassProvider) isProvider()        {}

// FactoryProvider calls Factory with the resolving container.
// The result is never cached. The container may be kept and used after
// the factory returns.
type FactoryProvider struct {
	Factory func(c *Container) (any, error)
}

func (FactoryProvider) Kind() ProviderKind { return FactoryKind }
func (FactoryProvider) isProvider()        {}

// UseValue returns a provider for a fixed instance.
func UseValue(v any) ValueProvider {
	return ValueProvider{Value: v}
}

// UseToken returns a provider that aliases target.
func UseToken(target Token) TokenProvider {
	return TokenProvider{Token: target}
}

// UseClass returns a provider that constructs T.
func UseClass[T any]() ClassProvider {
	return ClassProvider{Class: reflect.TypeFor[T]()}
}

// UseClassOf returns a provider that constructs t.
func UseClassOf(t reflect.Type) ClassProvider {
	return ClassProvider{Class: t}
}

// UseFactory returns a provider backed by fn.
func UseFactory(fn func(c *Container) (any, error)) FactoryProvider {
	return FactoryProvider{Factory: fn}
}

// normalizeProvider dereferences pointer providers and checks that the
// provider is usable.
func normalizeProvider(p Provider) (Provider, error) {
	switch v := p.(type) {
	case nil:
		return nil, ErrProviderNil
	case *ValueProvider:
		if v == nil {
			return nil, ErrProviderNil
		}
		return *v, nil
	case *TokenProvider:
		if v == nil {
			return nil, ErrProviderNil
		}
		return normalizeProvider(*v)
	case *ClassProvider:
		if v == nil {
			return nil, ErrProviderNil
		}
		return normalizeProvider(*v)
	case *FactoryProvider:
		if v == nil {
			return nil, ErrProviderNil
		}
		return normalizeProvider(*v)
	case TokenProvider:
		if v.Token.IsZero() {
			return nil, ErrTokenZero
		}
	case ClassProvider:
		if v.Class == nil {
			return nil, ErrClassNil
		}
	case FactoryProvider:
		if v.Factory == nil {
			return nil, ErrProviderNil
		}
	}

	return p, nil
}
