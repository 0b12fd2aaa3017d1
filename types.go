package syringe

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/junioryono/syringe/internal/reflection"
)

// TypeInfo is the constructor metadata recorded for a type.
type TypeInfo struct {
	Type        reflect.Type  // the constructed type
	Constructor reflect.Value // func(params...) Type or (Type, error)
	HasError    bool

	// Params holds one token per constructor parameter, positionally.
	Params []Token

	// ParamNames holds the declared parameter names, if any.
	ParamNames []string
}

// ParamName returns the declared name of parameter i, or "#i".
func (info *TypeInfo) ParamName(i int) string {
	if i < len(info.ParamNames) && info.ParamNames[i] != "" {
		return info.ParamNames[i]
	}

	return fmt.Sprintf("#%d", i)
}

// ParamType returns the declared type of parameter i.
func (info *TypeInfo) ParamType(i int) reflect.Type {
	return info.Constructor.Type().In(i)
}

func (info *TypeInfo) clone() *TypeInfo {
	cp := *info
	cp.Params = append([]Token(nil), info.Params...)
	cp.ParamNames = append([]string(nil), info.ParamNames...)
	return &cp
}

// TypeTable maps types to their constructor metadata. It is safe for
// concurrent use. Containers share DefaultTypes unless given their own
// table with WithTypes.
type TypeTable struct {
	mu       sync.RWMutex
	analyzer *reflection.Analyzer
	types    map[reflect.Type]*TypeInfo
	pending  map[reflect.Type]map[int]Token
}

var defaultTypes = NewTypeTable()

// DefaultTypes returns the process-wide type table.
func DefaultTypes() *TypeTable {
	return defaultTypes
}

// NewTypeTable creates an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{
		analyzer: reflection.New(),
		types:    make(map[reflect.Type]*TypeInfo),
		pending:  make(map[reflect.Type]map[int]Token),
	}
}

// InjectableOption configures Define and the Injectable entry points.
type InjectableOption func(*injectableOptions)

type injectableOptions struct {
	inject        map[int]Token
	names         []string
	token         Token
	registrations []ProviderRegistration
}

func collectInjectableOptions(opts []InjectableOption) *injectableOptions {
	o := &injectableOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Inject overrides the token used for the parameter at index.
//
//	syringe.Define(NewMailer, syringe.Inject(1, syringe.Named("smtp-host")))
func Inject(index int, token Token) InjectableOption {
	return func(o *injectableOptions) {
		if o.inject == nil {
			o.inject = make(map[int]Token)
		}
		o.inject[index] = token
	}
}

// ParamNames declares parameter names, used in injection errors.
func ParamNames(names ...string) InjectableOption {
	return func(o *injectableOptions) {
		o.names = append([]string(nil), names...)
	}
}

// WithToken additionally registers the type under token.
func WithToken(token Token) InjectableOption {
	return func(o *injectableOptions) {
		o.token = token
	}
}

// WithRegistrations attaches scoped registrations to the type.
func WithRegistrations(regs ...ProviderRegistration) InjectableOption {
	return func(o *injectableOptions) {
		o.registrations = append(o.registrations, regs...)
	}
}

// Define records constructor metadata for the constructor's result type.
// Parameters default to TypeToken of their declared type; Inject options and
// earlier TypeTable.Inject calls override individual positions.
// Defining a type again replaces its metadata.
func (tt *TypeTable) Define(constructor any, opts ...InjectableOption) (*TypeInfo, error) {
	ci, err := tt.analyzer.Analyze(constructor)
	if err != nil {
		return nil, ReflectionAnalysisError{Constructor: constructor, Operation: "analyze", Cause: err}
	}

	o := collectInjectableOptions(opts)

	info := &TypeInfo{
		Type:        ci.Result,
		Constructor: ci.Value,
		HasError:    ci.HasErrorReturn,
		Params:      make([]Token, len(ci.Parameters)),
		ParamNames:  o.names,
	}

	for _, p := range ci.Parameters {
		info.Params[p.Index] = TypeToken(p.Type)
	}

	tt.mu.Lock()
	defer tt.mu.Unlock()

	overrides := make(map[int]Token, len(o.inject)+len(tt.pending[info.Type]))
	for i, tok := range tt.pending[info.Type] {
		overrides[i] = tok
	}
	for i, tok := range o.inject {
		overrides[i] = tok
	}

	for i, tok := range overrides {
		if i < 0 || i >= len(info.Params) {
			return nil, ReflectionAnalysisError{
				Constructor: constructor,
				Operation:   "inject",
				Cause:       fmt.Errorf("%w: index %d, constructor takes %d", ErrInjectIndexOutOfRange, i, len(info.Params)),
			}
		}
		if tok.IsZero() {
			return nil, ReflectionAnalysisError{Constructor: constructor, Operation: "inject", Cause: ErrTokenZero}
		}
		info.Params[i] = tok
	}

	tt.types[info.Type] = info
	return info, nil
}

// Inject records the token for parameter index of target's constructor.
// It applies to the current metadata, if any, and to every later Define.
func (tt *TypeTable) Inject(target reflect.Type, index int, token Token) error {
	if target == nil {
		return ErrClassNil
	}
	if index < 0 {
		return fmt.Errorf("%w: index %d", ErrInjectIndexOutOfRange, index)
	}
	if token.IsZero() {
		return ErrTokenZero
	}

	tt.mu.Lock()
	defer tt.mu.Unlock()

	if info, ok := tt.types[target]; ok {
		if index >= len(info.Params) {
			return fmt.Errorf("%w: index %d, constructor takes %d", ErrInjectIndexOutOfRange, index, len(info.Params))
		}
		updated := info.clone()
		updated.Params[index] = token
		tt.types[target] = updated
	}

	if tt.pending[target] == nil {
		tt.pending[target] = make(map[int]Token)
	}
	tt.pending[target][index] = token

	return nil
}

// Lookup returns the metadata for t.
func (tt *TypeTable) Lookup(t reflect.Type) (*TypeInfo, bool) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	info, ok := tt.types[t]
	return info, ok
}

// Len returns the number of types with metadata.
func (tt *TypeTable) Len() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	return len(tt.types)
}

// Reset drops all metadata and pending injections.
func (tt *TypeTable) Reset() {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	tt.types = make(map[reflect.Type]*TypeInfo)
	tt.pending = make(map[reflect.Type]map[int]Token)
	tt.analyzer.Clear()
}
