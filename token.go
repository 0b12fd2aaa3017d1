package syringe

import (
	"reflect"
	"strconv"
)

// Token identifies a dependency. It holds exactly one of a type identity,
// a string name, or a unique symbol. Tokens are comparable and are used
// directly as registry keys.
//
// The zero Token is invalid and rejected by every container operation.
type Token struct {
	typ  reflect.Type
	name string
	sym  *symbol
}

type symbol struct {
	description string
}

// TypeOf returns the token for the type T.
//
//	syringe.TypeOf[*UserService]()
//	syringe.TypeOf[Logger]() // interface types need a registration or metadata
func TypeOf[T any]() Token {
	return Token{typ: reflect.TypeFor[T]()}
}

// TypeToken returns the token for t. A nil type yields the zero token.
func TypeToken(t reflect.Type) Token {
	return Token{typ: t}
}

// Named returns a string token. Two named tokens are equal when their names are.
func Named(name string) Token {
	return Token{name: name}
}

// NewSymbol returns a token that is equal only to itself. The description
// is used for display and never for identity.
func NewSymbol(description string) Token {
	return Token{sym: &symbol{description: description}}
}

// IsNamed reports whether the token is a name or a symbol. Named tokens can
// never be constructed implicitly and must be registered.
func (t Token) IsNamed() bool {
	return t.name != "" || t.sym != nil
}

// IsZero reports whether t is the zero token.
func (t Token) IsZero() bool {
	return t.typ == nil && t.name == "" && t.sym == nil
}

// Type returns the type identity of a type token, or nil for named tokens.
func (t Token) Type() reflect.Type {
	return t.typ
}

func (t Token) String() string {
	switch {
	case t.typ != nil:
		return t.typ.String()
	case t.sym != nil:
		return "Symbol(" + t.sym.description + ")"
	case t.name != "":
		return strconv.Quote(t.name)
	default:
		return "<zero token>"
	}
}
