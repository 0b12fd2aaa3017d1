package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor shape errors.
var (
	ErrConstructorNil                 = errors.New("constructor cannot be nil")
	ErrConstructorNotFunction         = errors.New("constructor must be a function")
	ErrConstructorVariadic            = errors.New("constructor cannot be variadic")
	ErrConstructorNoReturn            = errors.New("constructor must return at least one value")
	ErrConstructorTooManyReturns      = errors.New("constructor must return at most 2 values")
	ErrConstructorInvalidSecondReturn = errors.New("constructor's second return value must be error")
	ErrConstructorReturnsError        = errors.New("constructor's first return value cannot be error")
)

// Analyzer performs reflection-based analysis of constructors.
// It caches analysis results per function pointer.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[uintptr]*ConstructorInfo
}

// ConstructorInfo contains analyzed information about a constructor function.
type ConstructorInfo struct {
	Type           reflect.Type  // the function type
	Value          reflect.Value // the function value
	Parameters     []ParameterInfo
	Result         reflect.Type // the produced type
	HasErrorReturn bool         // returns (T, error)
}

// ParameterInfo describes a positional constructor parameter.
type ParameterInfo struct {
	Type  reflect.Type
	Index int
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		cache: make(map[uintptr]*ConstructorInfo),
	}
}

// Analyze validates a constructor function and extracts its parameter and result types.
func (a *Analyzer) Analyze(constructor any) (*ConstructorInfo, error) {
	if constructor == nil {
		return nil, ErrConstructorNil
	}

	val := reflect.ValueOf(constructor)
	if val.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w, got %s", ErrConstructorNotFunction, val.Type())
	}

	// Typed nil function
	if val.IsNil() {
		return nil, ErrConstructorNil
	}

	// Different functions with the same signature are cached separately.
	// Closures of one literal share a code pointer, so the value is rebound.
	cacheKey := val.Pointer()

	a.mu.RLock()
	if cached, ok := a.cache[cacheKey]; ok {
		a.mu.RUnlock()
		info := *cached
		info.Value = val
		return &info, nil
	}
	a.mu.RUnlock()

	fnType := val.Type()
	if fnType.IsVariadic() {
		return nil, ErrConstructorVariadic
	}

	info := &ConstructorInfo{
		Type:  fnType,
		Value: val,
	}

	if err := a.analyzeReturns(info); err != nil {
		return nil, err
	}

	info.Parameters = make([]ParameterInfo, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		info.Parameters[i] = ParameterInfo{
			Type:  fnType.In(i),
			Index: i,
		}
	}

	return a.cacheAndReturn(cacheKey, info)
}

// analyzeReturns checks the (T) or (T, error) result shape.
func (a *Analyzer) analyzeReturns(info *ConstructorInfo) error {
	fnType := info.Type

	switch fnType.NumOut() {
	case 0:
		return ErrConstructorNoReturn
	case 1:
	case 2:
		if fnType.Out(1) != errType {
			return ErrConstructorInvalidSecondReturn
		}
		info.HasErrorReturn = true
	default:
		return ErrConstructorTooManyReturns
	}

	if fnType.Out(0) == errType {
		return ErrConstructorReturnsError
	}

	info.Result = fnType.Out(0)
	return nil
}

// cacheAndReturn caches the analysis result and returns it.
func (a *Analyzer) cacheAndReturn(key uintptr, info *ConstructorInfo) (*ConstructorInfo, error) {
	a.mu.Lock()
	a.cache[key] = info
	a.mu.Unlock()

	return info, nil
}

// Clear clears the analysis cache.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	a.cache = make(map[uintptr]*ConstructorInfo)
	a.mu.Unlock()
}

// CacheSize returns the number of cached analyses.
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}

// IsZeroConstructible reports whether a value of t can be built without a
// constructor: a struct or a pointer to a struct.
func IsZeroConstructible(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

// NewZero allocates the zero value of a zero-constructible type. Pointer
// types get a pointer to a freshly allocated element.
func NewZero(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem())
	}

	return reflect.New(t).Elem()
}
