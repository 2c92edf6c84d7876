package screenbind

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) ExpressionNode {
	t.Helper()
	node, err := ParseExpression(source)
	require.NoError(t, err)
	return node
}

func TestParsePrimaries(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   ExpressionNode
	}{
		{"number", "42", &LiteralNode{Value: 42.0}},
		{"decimal", "3.14", &LiteralNode{Value: 3.14}},
		{"string", "'hi'", &LiteralNode{Value: "hi"}},
		{"true", "true", &LiteralNode{Value: true}},
		{"false", "false", &LiteralNode{Value: false}},
		{"null", "null", &LiteralNode{Value: nil}},
		{"identifier", "state", &PathNode{Segments: []string{"state"}}},
		{"parenthesized", "(42)", &LiteralNode{Value: 42.0}},
		{"empty array", "[]", &ArrayNode{}},
		{
			"array literal",
			"[1, 'a', true]",
			&ArrayNode{Elements: []ExpressionNode{
				&LiteralNode{Value: 1.0},
				&LiteralNode{Value: "a"},
				&LiteralNode{Value: true},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.source))
		})
	}
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		segments []string
	}{
		{"dotted", "state.user.name", []string{"state", "user", "name"}},
		{"bracket index", "state.items[0]", []string{"state", "items", "0"}},
		{"bracket then field", "state.items[2].name", []string{"state", "items", "2", "name"}},
		{"string index", "state.items['key']", []string{"state", "items", "key"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.source)
			path, ok := node.(*PathNode)
			require.True(t, ok, "expected path node, got %s", node.String())
			assert.Equal(t, tt.segments, path.Segments)
		})
	}
}

func TestParseCalls(t *testing.T) {
	node := mustParse(t, "sum(state.items, 'value')")
	call, ok := node.(*CallNode)
	require.True(t, ok)
	assert.Equal(t, "sum", call.Name)
	require.Len(t, call.Args, 2)
	assert.Equal(t, &PathNode{Segments: []string{"state", "items"}}, call.Args[0])
	assert.Equal(t, &LiteralNode{Value: "value"}, call.Args[1])
}

func TestParseEmptyCall(t *testing.T) {
	node := mustParse(t, "now()")
	call, ok := node.(*CallNode)
	require.True(t, ok)
	assert.Equal(t, "now", call.Name)
	assert.Empty(t, call.Args)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"multiplicative over additive",
			"1 + 2 * 3",
			"Binary(Literal(1) + Binary(Literal(2) * Literal(3)))",
		},
		{
			"comparison over logical and",
			"a > 1 && b < 2",
			"Binary(Binary(Path(a) > Literal(1)) && Binary(Path(b) < Literal(2)))",
		},
		{
			"and over or",
			"a || b && c",
			"Binary(Path(a) || Binary(Path(b) && Path(c)))",
		},
		{
			"ternary lowest",
			"a || b ? 1 : 2",
			"Ternary(Binary(Path(a) || Path(b)) ? Literal(1) : Literal(2))",
		},
		{
			"ternary right associative",
			"a ? 1 : b ? 2 : 3",
			"Ternary(Path(a) ? Literal(1) : Ternary(Path(b) ? Literal(2) : Literal(3)))",
		},
		{
			"unary binds tighter than multiplication",
			"-a * b",
			"Binary(Unary(- Path(a)) * Path(b))",
		},
		{
			"comparison left fold",
			"1 < 2 == true",
			"Binary(Binary(Literal(1) < Literal(2)) == Literal(true))",
		},
		{
			"parentheses override",
			"(1 + 2) * 3",
			"Binary(Binary(Literal(1) + Literal(2)) * Literal(3))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.source).String())
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"trailing tokens", "a b"},
		{"unclosed paren", "(1 + 2"},
		{"unclosed bracket", "state.items[0"},
		{"missing ternary colon", "a ? 1"},
		{"dot without identifier", "state."},
		{"dangling operator", "1 +"},
		{"empty source", ""},
		{"non-literal index", "state.items[a]"},
		{"lone comma", ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpression(tt.source)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "expected SyntaxError, got %v", err)
		})
	}
}

func TestParseNestingCeiling(t *testing.T) {
	// Ten chained ternaries parse; eleven exceed the depth ceiling.
	build := func(n int) string {
		expr := "0"
		for i := 0; i < n; i++ {
			expr = "true ? 1 : " + expr
		}
		return expr
	}

	_, err := ParseExpression(build(10))
	assert.NoError(t, err)

	_, err = ParseExpression(build(11))
	require.Error(t, err)

	var complexityErr *ComplexityError
	require.True(t, errors.As(err, &complexityErr))
	assert.Equal(t, LimitDepth, complexityErr.Kind)
}

func TestParseDeepParenNesting(t *testing.T) {
	source := strings.Repeat("(", 11) + "1" + strings.Repeat(")", 11)
	_, err := ParseExpression(source)

	var complexityErr *ComplexityError
	require.True(t, errors.As(err, &complexityErr))
}

func TestParseArgumentCeiling(t *testing.T) {
	args := make([]string, 51)
	for i := range args {
		args[i] = "1"
	}
	_, err := ParseExpression("coalesce(" + strings.Join(args, ",") + ")")

	var complexityErr *ComplexityError
	require.True(t, errors.As(err, &complexityErr))
	assert.Equal(t, LimitArguments, complexityErr.Kind)
}

func TestParseDotAfterNonPath(t *testing.T) {
	// Forgiving historical behavior: a dot after a non-path primary
	// starts a fresh path at that field.
	node := mustParse(t, "(1 + 2).label")
	assert.Equal(t, &PathNode{Segments: []string{"label"}}, node)
}
