package screenbind

import (
	"regexp"
	"strings"
)

var (
	// A string that is exactly one {{ ... }} block is a whole-string
	// binding and yields the native value of the inner expression. The
	// inner text must not contain braces, so a string holding several
	// adjacent blocks falls through to interpolation.
	wholeTemplateRegex = regexp.MustCompile(`^\{\{\s*([^{}]*?)\s*\}\}$`)
	// Embedded blocks are interpolated: each result is coerced to a
	// string and spliced into the surrounding text.
	inlineTemplateRegex = regexp.MustCompile(`(?s)\{\{\s*(.*?)\s*\}\}`)
)

// expressionMarkers distinguishes a full expression from a plain dot-path
// inside a {{ ... }} block.
const expressionMarkers = "()!?:+-*/<>=|&"

// RenderTemplate applies a binding context to a schema fragment. Strings
// are resolved as whole-string bindings or inline interpolations, arrays
// element-wise, plain objects key-wise; everything else passes through
// unchanged. The function is total: a malformed expression degrades to
// null (whole-string) or the empty string (inline) rather than
// propagating an error into the UI runtime.
func RenderTemplate(template interface{}, ctx *BindingContext) interface{} {
	switch t := template.(type) {
	case nil:
		return nil
	case string:
		return renderString(t, ctx)
	case []interface{}:
		rendered := make([]interface{}, len(t))
		for i, element := range t {
			rendered[i] = RenderTemplate(element, ctx)
		}
		return rendered
	case map[string]interface{}:
		rendered := make(map[string]interface{}, len(t))
		for key, value := range t {
			rendered[key] = RenderTemplate(value, ctx)
		}
		return rendered
	default:
		return template
	}
}

func renderString(template string, ctx *BindingContext) interface{} {
	// Whole-string binding: the only case that can yield a non-string.
	if match := wholeTemplateRegex.FindStringSubmatch(template); match != nil {
		return resolveBlock(match[1], ctx)
	}

	if !containsTemplateBlock(template) {
		return template
	}

	return inlineTemplateRegex.ReplaceAllStringFunc(template, func(block string) string {
		inner := inlineTemplateRegex.FindStringSubmatch(block)[1]
		return formatValue(resolveBlock(inner, ctx))
	})
}

// resolveBlock classifies the inner text of one {{ ... }} block and
// resolves it. Expressions are detected by operator characters; anything
// else is a plain dot-path.
func resolveBlock(inner string, ctx *BindingContext) interface{} {
	if inner == "" {
		return nil
	}
	if isExpressionBlock(inner) {
		return evaluateSoft(inner, ctx)
	}
	return ctx.ResolvePath(inner)
}

// containsTemplateBlock reports whether a string embeds any {{ ... }} run.
func containsTemplateBlock(s string) bool {
	return strings.Contains(s, "{{")
}

// isExpressionBlock reports whether the inner text of a block is a full
// expression rather than a plain dot-path.
func isExpressionBlock(inner string) bool {
	return strings.ContainsAny(inner, expressionMarkers)
}

// evaluateSoft is the render-path signature over the parse/evaluate core:
// every error maps to nil. Tooling that needs the structured error calls
// EvaluateExpression instead.
func evaluateSoft(expr string, ctx *BindingContext) interface{} {
	value, err := EvaluateExpression(expr, ctx, nil)
	if err != nil {
		GetLogger().DebugExpressionError(expr, err)
		return nil
	}
	return value
}

// EvaluateExpression tokenizes, parses and evaluates an expression
// source, propagating structured errors (SyntaxError, ComplexityError,
// DepthExceededError, UnknownFunctionError) for validation tooling.
func EvaluateExpression(expr string, ctx *BindingContext, opts *EvalOptions) (interface{}, error) {
	node, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}
	return Evaluate(node, ctx, opts)
}
