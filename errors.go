package syringe

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/junioryono/syringe/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that are wrapped in typed errors when returned.

var (
	// Token and provider errors.
	ErrTokenZero    = errors.New("token cannot be zero")
	ErrProviderNil  = errors.New("provider cannot be nil")
	ErrClassNil     = errors.New("class type cannot be nil")
	ErrContainerNil = errors.New("container cannot be nil")

	// Registration errors.
	ErrSingletonProvider          = errors.New("value and factory providers cannot be singletons")
	ErrSingletonNameWithoutTarget = errors.New("a named singleton requires a target")
	ErrTooManyTargets             = errors.New("at most one target can be given")

	// Resolution errors.
	ErrUnregisteredToken  = errors.New("attempted to resolve unregistered dependency token")
	ErrTypeInfoNotKnown   = errors.New("type info not known")
	ErrCircularDependency = graph.ErrCircularDependency

	// Metadata and construction errors.
	ErrInjectIndexOutOfRange = errors.New("injection index out of range")
	ErrTooManyArguments      = errors.New("too many arguments")
)

var (
	_ error = RegistrationError{}
	_ error = ResolutionError{}
	_ error = MissingTypeInfoError{}
	_ error = InjectionError{}
	_ error = TypeMismatchError{}
	_ error = ConstructorInvocationError{}
	_ error = ConstructorPanicError{}
	_ error = ReflectionAnalysisError{}
	_ error = ModuleError{}
	_ error = CircularDependencyError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// CircularDependencyError reports a token that was reached again while it
// was still being resolved. Path starts and ends at Node.
type CircularDependencyError = graph.CircularDependencyError[Token]

// RegistrationError wraps configuration errors from the register calls.
type RegistrationError struct {
	Token     Token
	Operation string // "register", "register singleton", "register scope", etc.
	Cause     error
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Token, e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// ResolutionError wraps errors that occur while resolving a token.
type ResolutionError struct {
	Token Token
	Cause error
}

func (e ResolutionError) Error() string {
	if e.Cause == ErrUnregisteredToken {
		return fmt.Sprintf("%v: %s", ErrUnregisteredToken, e.Token)
	}

	return fmt.Sprintf("failed to resolve %s: %v", e.Token, e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// MissingTypeInfoError indicates a type has no recorded constructor and
// cannot be zero-constructed.
type MissingTypeInfoError struct {
	Type reflect.Type
}

func (e MissingTypeInfoError) Error() string {
	return fmt.Sprintf("%v for %s\n\nDefine a constructor with syringe.Define or register a provider for it.",
		ErrTypeInfoNotKnown, formatType(e.Type))
}

func (e MissingTypeInfoError) Is(target error) bool {
	return target == ErrTypeInfoNotKnown
}

// InjectionError reports a parameter an auto-constructor could not fill.
type InjectionError struct {
	Type  reflect.Type
	Index int
	Param string // declared name or "#index"
	Cause error
}

func (e InjectionError) Error() string {
	return fmt.Sprintf("cannot inject the dependency %s at position #%d into %s: %v",
		e.Param, e.Index, formatType(e.Type), e.Cause)
}

func (e InjectionError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a type assertion or conversion failed.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "parameter 0", "type assertion", etc.
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

// ReflectionAnalysisError for reflection/analysis failures
type ReflectionAnalysisError struct {
	Constructor any
	Operation   string // "analyze", "inject"
	Cause       error
}

func (e ReflectionAnalysisError) Error() string {
	return fmt.Sprintf("reflection %s failed for constructor %T: %v", e.Operation, e.Constructor, e.Cause)
}

func (e ReflectionAnalysisError) Unwrap() error {
	return e.Cause
}

// ConstructorInvocationError for constructor call failures
type ConstructorInvocationError struct {
	Constructor reflect.Type
	Parameters  []reflect.Type
	Cause       error
}

func (e ConstructorInvocationError) Error() string {
	paramStrs := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		paramStrs[i] = formatType(p)
	}
	return fmt.Sprintf("failed to invoke %s with parameters [%s]: %v",
		formatType(e.Constructor), strings.Join(paramStrs, ", "), e.Cause)
}

func (e ConstructorInvocationError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a constructor panicked during invocation.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	Constructor reflect.Type
	Panic       any
	Stack       []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("constructor %s panicked: %v\n", formatType(e.Constructor), e.Panic))

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Check for nil pointer dereferences in your constructor\n")
	b.WriteString("  • Add nil checks for dependencies before using them\n")

	if len(e.Stack) > 0 {
		b.WriteString("\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// ModuleError wraps errors from module registration.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		// *Type instead of *package.Type
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
