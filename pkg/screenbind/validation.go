package screenbind

import (
	"errors"
	"fmt"
)

// IssueCode classifies a validation finding.
type IssueCode string

const (
	IssueCodeSyntaxError     IssueCode = "SYNTAX_ERROR"
	IssueCodeComplexity      IssueCode = "COMPLEXITY"
	IssueCodeUnknownFunction IssueCode = "UNKNOWN_FUNCTION"
	IssueCodeUnknownRoot     IssueCode = "UNKNOWN_ROOT"
)

// ValidationIssue is one authoring-time problem found in an expression.
type ValidationIssue struct {
	Code     IssueCode `json:"code" yaml:"code"`
	Message  string    `json:"message" yaml:"message"`
	Position int       `json:"position,omitempty" yaml:"position,omitempty"`
}

// ValidateOptions overrides the allow-lists used during validation.
type ValidateOptions struct {
	// Registry supplies the allowed function set. Zero value means the
	// safe function registry.
	Registry FunctionRegistry
	// AllowedRoots supplies the allowed path roots. Zero value means the
	// four sanctioned namespaces.
	AllowedRoots []string
}

// ValidateExpression checks an expression the way the schema validation
// layer does at authoring time: it must tokenize and parse within the
// configured ceilings, call only allow-listed functions, and reference
// only sanctioned roots. An empty result means the expression is valid.
//
// This is the hard-fail path; at render time the same defects degrade to
// a blank value instead.
func ValidateExpression(expr string, opts *ValidateOptions) []ValidationIssue {
	registry := SafeFunctionRegistry()
	allowedRoots := []string{RootState, RootInputs, RootContext, RootTraceID}
	if opts != nil {
		if opts.Registry != nil {
			registry = opts.Registry
		}
		if opts.AllowedRoots != nil {
			allowedRoots = opts.AllowedRoots
		}
	}

	node, err := ParseExpression(expr)
	if err != nil {
		return []ValidationIssue{issueFromParseError(err)}
	}

	var issues []ValidationIssue

	for _, name := range CollectFunctions(node) {
		if _, exists := registry.GetFunction(name); !exists {
			issues = append(issues, ValidationIssue{
				Code:    IssueCodeUnknownFunction,
				Message: fmt.Sprintf("function %q is not in the allow-list", name),
			})
		}
	}

	roots := make(map[string]bool, len(allowedRoots))
	for _, root := range allowedRoots {
		roots[root] = true
	}
	for _, path := range CollectPaths(node) {
		segments := ParsePath(path)
		if len(segments) == 0 {
			continue
		}
		if !roots[segments[0]] {
			issues = append(issues, ValidationIssue{
				Code:    IssueCodeUnknownRoot,
				Message: fmt.Sprintf("path %q references unknown root %q", path, segments[0]),
			})
		}
	}

	return issues
}

func issueFromParseError(err error) ValidationIssue {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return ValidationIssue{
			Code:     IssueCodeSyntaxError,
			Message:  syntaxErr.Error(),
			Position: syntaxErr.Position,
		}
	}

	var complexityErr *ComplexityError
	if errors.As(err, &complexityErr) {
		return ValidationIssue{
			Code:    IssueCodeComplexity,
			Message: complexityErr.Error(),
		}
	}

	return ValidationIssue{
		Code:    IssueCodeSyntaxError,
		Message: err.Error(),
	}
}
