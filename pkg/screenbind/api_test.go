package screenbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRender(t *testing.T) {
	engine := New()
	ctx := testContext()

	assert.Equal(t, 5, engine.Render("{{state.x}}", ctx))
	assert.Equal(t, "Ada has 5", engine.Render("{{state.name}} has {{state.x}}", ctx))

	fragment := map[string]interface{}{
		"title": "Orders for {{context.tenant}}",
		"rows":  []interface{}{"{{state.items[0].value}}"},
	}
	rendered := engine.Render(fragment, ctx).(map[string]interface{})
	assert.Equal(t, "Orders for acme", rendered["title"])
	assert.Equal(t, []interface{}{10.0}, rendered["rows"])
}

func TestEngineWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxEvalDepth = 2
	engine := New(WithConfig(config))
	ctx := testContext()

	_, err := engine.Evaluate("toNumber(toNumber(state.x))", ctx)
	var depthErr *DepthExceededError
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, 2, depthErr.MaxDepth)

	// The engine copies the config at construction time.
	config.MaxEvalDepth = 100
	_, err = engine.Evaluate("toNumber(toNumber(state.x))", ctx)
	assert.Error(t, err)
}

func TestEngineWithConfigTokenCeiling(t *testing.T) {
	config := DefaultConfig()
	config.MaxTokens = 3
	engine := New(WithConfig(config))

	_, err := engine.Evaluate("1 + 2 + 3", NewBindingContext())
	var complexityErr *ComplexityError
	require.ErrorAs(t, err, &complexityErr)
	assert.Equal(t, LimitTokens, complexityErr.Kind)
}

func TestEngineWithRegistry(t *testing.T) {
	registry := NewFunctionRegistry()
	require.NoError(t, registry.RegisterFunction(newSafeFunction(
		Signature{Name: "greet", Returns: "string"}, 1, 1,
		func(args ...interface{}) (interface{}, error) {
			return "hello " + formatValue(args[0]), nil
		})))

	engine := New(WithRegistry(registry))
	ctx := testContext()

	value, err := engine.Evaluate("greet(state.name)", ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello Ada", value)

	// The safe table is gone; only the custom registry is reachable.
	_, err = engine.Evaluate("uppercase('x')", ctx)
	var unknownErr *UnknownFunctionError
	assert.ErrorAs(t, err, &unknownErr)

	issues := engine.Validate("uppercase('x')")
	require.Len(t, issues, 1)
	assert.Equal(t, IssueCodeUnknownFunction, issues[0].Code)
}

func TestEngineFunctions(t *testing.T) {
	signatures := New().Functions()
	assert.NotEmpty(t, signatures)
	for i := 1; i < len(signatures); i++ {
		assert.LessOrEqual(t, signatures[i-1].Name, signatures[i].Name)
	}
}

func TestEngineRenderSoftFails(t *testing.T) {
	engine := New()
	assert.Nil(t, engine.Render("{{ state.x + }}", testContext()))
	assert.Equal(t, "v=", engine.Render("v={{ state.x + }}", testContext()))
}
