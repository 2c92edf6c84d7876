package screenbind

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Param describes one function parameter for the metadata surface.
type Param struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Signature is the published metadata for one safe function. It feeds
// editor help/autocomplete panels and has no bearing on evaluation.
type Signature struct {
	Name        string  `json:"name" yaml:"name"`
	Params      []Param `json:"params" yaml:"params"`
	Returns     string  `json:"returns" yaml:"returns"`
	Description string  `json:"description" yaml:"description"`
}

// Function is a callable entry in the whitelist. Implementations must be
// pure and total: invalid input coerces to a safe default instead of
// propagating an error, so a bad binding never crashes a screen render.
type Function interface {
	// Call executes the function with the given arguments.
	Call(args ...interface{}) (interface{}, error)

	// Name returns the function name.
	Name() string

	// MinArgs returns the minimum number of arguments required.
	MinArgs() int

	// MaxArgs returns the maximum number of arguments allowed (-1 for unlimited).
	MaxArgs() int

	// Signature returns the published metadata for this function.
	Signature() Signature
}

// FunctionRegistry manages the closed set of callable functions.
type FunctionRegistry interface {
	// RegisterFunction adds a function to the registry.
	RegisterFunction(fn Function) error

	// GetFunction retrieves a function by name.
	GetFunction(name string) (Function, bool)

	// ListFunctions returns all registered function names, sorted.
	ListFunctions() []string

	// Describe returns the signatures of all registered functions, sorted
	// by name.
	Describe() []Signature
}

// DefaultFunctionRegistry is the default implementation of FunctionRegistry.
type DefaultFunctionRegistry struct {
	functions map[string]Function
	mutex     sync.RWMutex
}

// NewFunctionRegistry creates a new, empty function registry.
func NewFunctionRegistry() *DefaultFunctionRegistry {
	return &DefaultFunctionRegistry{
		functions: make(map[string]Function),
	}
}

func (r *DefaultFunctionRegistry) RegisterFunction(fn Function) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := fn.Name()
	if name == "" {
		return fmt.Errorf("function name cannot be empty")
	}

	r.functions[name] = fn
	return nil
}

func (r *DefaultFunctionRegistry) GetFunction(name string) (Function, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	fn, exists := r.functions[name]
	return fn, exists
}

func (r *DefaultFunctionRegistry) ListFunctions() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *DefaultFunctionRegistry) Describe() []Signature {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	signatures := make([]Signature, 0, len(r.functions))
	for _, fn := range r.functions {
		signatures = append(signatures, fn.Signature())
	}
	sort.Slice(signatures, func(i, j int) bool {
		return signatures[i].Name < signatures[j].Name
	})
	return signatures
}

var (
	safeRegistry     *DefaultFunctionRegistry
	safeRegistryOnce sync.Once
)

// SafeFunctionRegistry returns the global whitelist of safe functions.
// The table is statically defined; nothing outside it is ever reachable
// from an expression.
func SafeFunctionRegistry() FunctionRegistry {
	safeRegistryOnce.Do(func() {
		safeRegistry = NewFunctionRegistry()
		registerStringFunctions(safeRegistry)
		registerNumberFunctions(safeRegistry)
		registerDateFunctions(safeRegistry)
		registerCollectionFunctions(safeRegistry)
		registerUtilityFunctions(safeRegistry)
	})
	return safeRegistry
}

// safeFunction is the Function implementation used by the built-in
// library.
type safeFunction struct {
	signature Signature
	minArgs   int
	maxArgs   int
	handler   func(args ...interface{}) (interface{}, error)
}

// newSafeFunction wraps a handler with argument-count validation and the
// published signature.
func newSafeFunction(signature Signature, minArgs, maxArgs int, handler func(args ...interface{}) (interface{}, error)) Function {
	return &safeFunction{
		signature: signature,
		minArgs:   minArgs,
		maxArgs:   maxArgs,
		handler:   handler,
	}
}

func (f *safeFunction) Call(args ...interface{}) (interface{}, error) {
	argCount := len(args)
	if argCount < f.minArgs {
		return nil, fmt.Errorf("function %s requires at least %d arguments, got %d", f.signature.Name, f.minArgs, argCount)
	}
	if f.maxArgs >= 0 && argCount > f.maxArgs {
		return nil, fmt.Errorf("function %s accepts at most %d arguments, got %d", f.signature.Name, f.maxArgs, argCount)
	}

	return f.handler(args...)
}

func (f *safeFunction) Name() string {
	return f.signature.Name
}

func (f *safeFunction) MinArgs() int {
	return f.minArgs
}

func (f *safeFunction) MaxArgs() int {
	return f.maxArgs
}

func (f *safeFunction) Signature() Signature {
	return f.signature
}

// toSlice converts any slice-shaped value into []interface{}, capped at
// the configured maximum element count. Inputs beyond the cap are
// silently truncated, never rejected.
func toSlice(value interface{}) ([]interface{}, bool) {
	if value == nil {
		return nil, false
	}

	maxLen := GetGlobalConfig().MaxArrayLength

	if items, ok := value.([]interface{}); ok {
		if len(items) > maxLen {
			items = items[:maxLen]
		}
		return items, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	length := rv.Len()
	if length > maxLen {
		length = maxLen
	}
	items := make([]interface{}, length)
	for i := 0; i < length; i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
