package screenbind

import "fmt"

// LimitKind names the resource ceiling a ComplexityError refers to.
type LimitKind string

const (
	LimitTokens    LimitKind = "tokens"
	LimitDepth     LimitKind = "nesting depth"
	LimitArguments LimitKind = "arguments"
)

// SyntaxError represents a tokenize or parse failure. It carries the
// offending token (or character) and its byte offset in the source.
type SyntaxError struct {
	Message  string
	Token    string
	Position int
}

func (e *SyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("syntax error at position %d near %q: %s", e.Position, e.Token, e.Message)
	}
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

// NewSyntaxError creates a new syntax error with position information.
func NewSyntaxError(message, token string, position int) error {
	return &SyntaxError{
		Message:  message,
		Token:    token,
		Position: position,
	}
}

// ComplexityError indicates an expression exceeded one of the static
// resource ceilings (token count, nesting depth, argument count).
type ComplexityError struct {
	Kind  LimitKind
	Limit int
}

func (e *ComplexityError) Error() string {
	return fmt.Sprintf("expression too complex: %s limit of %d exceeded", e.Kind, e.Limit)
}

// NewComplexityError creates a new complexity error for the given limit.
func NewComplexityError(kind LimitKind, limit int) error {
	return &ComplexityError{
		Kind:  kind,
		Limit: limit,
	}
}

// DepthExceededError indicates the live evaluation stack grew past the
// configured maximum. This is enforced at run time independently of the
// parser's static nesting check.
type DepthExceededError struct {
	MaxDepth int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("evaluation depth exceeded: maximum is %d", e.MaxDepth)
}

// NewDepthExceededError creates a new depth exceeded error.
func NewDepthExceededError(maxDepth int) error {
	return &DepthExceededError{MaxDepth: maxDepth}
}

// UnknownFunctionError indicates a call expression named a function that is
// not present in the active function registry. There is no fallback lookup.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

// NewUnknownFunctionError creates a new unknown function error.
func NewUnknownFunctionError(name string) error {
	return &UnknownFunctionError{Name: name}
}
