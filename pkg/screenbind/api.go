// Package screenbind binds declarative screen schemas to runtime data
// without executing arbitrary code. It tokenizes, parses and evaluates a
// small sandboxed expression grammar against a {state, inputs, context,
// trace_id} binding context, renders {{ ... }} template placeholders, and
// maintains the derived-state conventions the UI runtime relies on.
//
// Basic usage:
//
//	ctx := &screenbind.BindingContext{
//	    State: map[string]interface{}{
//	        "items": []interface{}{
//	            map[string]interface{}{"value": 10.0},
//	            map[string]interface{}{"value": 20.0},
//	        },
//	    },
//	}
//
//	label := screenbind.RenderTemplate(
//	    "{{ sum(state.items, 'value') > 25 ? 'high' : 'low' }}", ctx)
//	// label == "high"
//
// Template syntax:
//
// Whole-string bindings {{state.items[0].value}} yield the native value
// of any type; inline interpolation "total: {{sum(state.items)}}" always
// coerces to string. Expressions reach only the closed safe function
// table; there is no assignment, no loops, and no access outside the four
// sanctioned roots.
//
// Rendering is total by design: a malformed binding degrades to a blank
// value. Authoring-time tooling uses ValidateExpression or
// EvaluateExpression to observe the structured errors instead.
package screenbind

// Engine bundles a configuration, function registry and logger behind one
// render/evaluate/validate surface. The zero-cost alternative is calling
// the package-level functions, which use the global config and the safe
// registry.
type Engine struct {
	config   *Config
	registry FunctionRegistry
	logger   *Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the engine's resource ceilings.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		if config != nil {
			copied := *config
			e.config = &copied
		}
	}
}

// WithRegistry overrides the function table. The registry is still a
// closed whitelist; expressions can reach nothing outside it.
func WithRegistry(registry FunctionRegistry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithLogger overrides the logger used for soft-fail diagnostics.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine with the safe function registry and the global
// configuration unless overridden.
func New(opts ...Option) *Engine {
	engine := &Engine{
		config:   GetGlobalConfig(),
		registry: SafeFunctionRegistry(),
		logger:   GetLogger(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Render applies the binding context to a schema fragment, soft-failing
// malformed expressions to blank values.
func (e *Engine) Render(template interface{}, ctx *BindingContext) interface{} {
	switch t := template.(type) {
	case nil:
		return nil
	case string:
		return e.renderString(t, ctx)
	case []interface{}:
		rendered := make([]interface{}, len(t))
		for i, element := range t {
			rendered[i] = e.Render(element, ctx)
		}
		return rendered
	case map[string]interface{}:
		rendered := make(map[string]interface{}, len(t))
		for key, value := range t {
			rendered[key] = e.Render(value, ctx)
		}
		return rendered
	default:
		return template
	}
}

func (e *Engine) renderString(template string, ctx *BindingContext) interface{} {
	if match := wholeTemplateRegex.FindStringSubmatch(template); match != nil {
		return e.resolveBlock(match[1], ctx)
	}
	if !containsTemplateBlock(template) {
		return template
	}
	return inlineTemplateRegex.ReplaceAllStringFunc(template, func(block string) string {
		inner := inlineTemplateRegex.FindStringSubmatch(block)[1]
		return formatValue(e.resolveBlock(inner, ctx))
	})
}

func (e *Engine) resolveBlock(inner string, ctx *BindingContext) interface{} {
	if inner == "" {
		return nil
	}
	if isExpressionBlock(inner) {
		value, err := e.Evaluate(inner, ctx)
		if err != nil {
			e.logger.DebugExpressionError(inner, err)
			return nil
		}
		return value
	}
	return ctx.ResolvePath(inner)
}

// Evaluate tokenizes, parses and evaluates an expression under the
// engine's ceilings and registry, propagating structured errors.
func (e *Engine) Evaluate(expr string, ctx *BindingContext) (interface{}, error) {
	tokens, err := tokenize(expr, e.config.MaxTokens)
	if err != nil {
		return nil, err
	}
	node, err := parseWithLimits(tokens, e.config.MaxParseDepth, e.config.MaxArguments)
	if err != nil {
		return nil, err
	}
	return Evaluate(node, ctx, &EvalOptions{
		MaxDepth: e.config.MaxEvalDepth,
		Registry: e.registry,
	})
}

// Validate checks an expression against the engine's registry and the
// sanctioned roots.
func (e *Engine) Validate(expr string) []ValidationIssue {
	return ValidateExpression(expr, &ValidateOptions{Registry: e.registry})
}

// Functions returns the published metadata of every function in the
// engine's registry.
func (e *Engine) Functions() []Signature {
	return e.registry.Describe()
}
