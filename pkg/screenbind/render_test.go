package screenbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWholeStringBinding(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name     string
		template string
		want     interface{}
	}{
		{"plain path keeps native type", "{{state.x}}", 5},
		{"plain path with spaces", "{{ state.x }}", 5},
		{"path to array element", "{{state.items[0].value}}", 10.0},
		{"path to container", "{{state.items}}", testContext().State["items"]},
		{"trace id", "{{trace_id}}", "trace-123"},
		{"expression native result", "{{ state.x + 1 }}", 6.0},
		{"expression boolean", "{{ state.x > 3 }}", true},
		{"expression call", "{{ count(state.items) }}", 2.0},
		{"unknown root", "{{foo.bar}}", nil},
		{"missing path", "{{state.missing}}", nil},
		{"empty block", "{{}}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, ctx))
		})
	}
}

func TestRenderInlineInterpolation(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"prefix", "v={{state.x}}", "v=5"},
		{"surrounded", "hello {{state.name}}!", "hello Ada!"},
		{"multiple blocks", "{{state.name}} has {{ state.x }} points", "Ada has 5 points"},
		{"adjacent blocks", "{{state.name}} {{state.x}}", "Ada 5"},
		{"adjacent blocks with expression", "{{state.name}} {{ state.x * 2 }}", "Ada 10"},
		{"expression coerced to string", "total: {{ state.x * 2 }}", "total: 10"},
		{"nullish becomes empty", "v={{state.missing}}.", "v=."},
		{"unknown root becomes empty", "v={{foo.bar}}", "v="},
		{"malformed degrades to empty", "v={{ state.x + }}", "v="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, ctx))
		})
	}
}

func TestRenderPassThrough(t *testing.T) {
	ctx := testContext()

	assert.Nil(t, RenderTemplate(nil, ctx))
	assert.Equal(t, 42, RenderTemplate(42, ctx))
	assert.Equal(t, true, RenderTemplate(true, ctx))
	assert.Equal(t, "plain text", RenderTemplate("plain text", ctx))
}

func TestRenderContainers(t *testing.T) {
	ctx := testContext()

	template := map[string]interface{}{
		"label":   "hello {{state.name}}",
		"value":   "{{state.x}}",
		"visible": "{{ state.x > 3 }}",
		"static":  7,
		"rows": []interface{}{
			"{{state.items[0].value}}",
			"{{state.items[1].value}}",
		},
		"nested": map[string]interface{}{
			"deep": "{{ state.x * 2 }}",
		},
	}

	want := map[string]interface{}{
		"label":   "hello Ada",
		"value":   5,
		"visible": true,
		"static":  7,
		"rows":    []interface{}{10.0, 20.0},
		"nested": map[string]interface{}{
			"deep": 10.0,
		},
	}

	assert.Equal(t, want, RenderTemplate(template, ctx))
}

func TestRenderMalformedWholeExpression(t *testing.T) {
	// A malformed expression must degrade to null, never escape as an
	// error into the render pass.
	ctx := testContext()

	assert.Nil(t, RenderTemplate("{{ state.x + }}", ctx))
	assert.Nil(t, RenderTemplate("{{ doEval(1) }}", ctx))
	assert.Nil(t, RenderTemplate("{{ (((((((((((1))))))))))) }}", ctx))
}

func TestRenderEndToEndScenario(t *testing.T) {
	ctx := &BindingContext{
		State: map[string]interface{}{
			"items": []interface{}{
				map[string]interface{}{"value": 10.0},
				map[string]interface{}{"value": 20.0},
			},
		},
	}

	value := RenderTemplate("{{ sum(state.items,'value') > 25 ? 'high' : 'low' }}", ctx)
	assert.Equal(t, "high", value)
}

func TestRenderDoesNotMutateContext(t *testing.T) {
	ctx := testContext()
	RenderTemplate(map[string]interface{}{"a": "{{state.x}}", "b": "x {{state.name}}"}, ctx)

	require.Equal(t, 5, ctx.State["x"])
	require.Equal(t, "Ada", ctx.State["name"])
	require.Len(t, ctx.State, 3)
}

func TestEvaluateExpressionHardFailure(t *testing.T) {
	// The tooling signature propagates structured errors the render
	// path swallows.
	_, err := EvaluateExpression("state.x +", testContext(), nil)
	require.Error(t, err)

	_, err = EvaluateExpression("doEval(1)", testContext(), nil)
	require.Error(t, err)
}
