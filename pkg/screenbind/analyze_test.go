package screenbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectPaths(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"single", "state.user.name", []string{"state.user.name"}},
		{"literal only", "1 + 2", nil},
		{
			"first appearance order",
			"inputs.b + state.a + inputs.b",
			[]string{"inputs.b", "state.a"},
		},
		{
			"inside call and ternary",
			"sum(state.items, 'value') > inputs.limit ? context.high : context.low",
			[]string{"state.items", "inputs.limit", "context.high", "context.low"},
		},
		{"bracket index normalized", "state.rows[0].name", []string{"state.rows.0.name"}},
		{"array literal elements", "[state.a, state.b]", []string{"state.a", "state.b"}},
		{"unary operand", "!state.flag", []string{"state.flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.expr)
			assert.Equal(t, tt.want, CollectPaths(node))
		})
	}
}

func TestCollectFunctions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"none", "state.x + 1", nil},
		{"single", "uppercase(state.name)", []string{"uppercase"}},
		{
			"nested and deduped",
			"round(sum(state.items, 'value') + sum(state.extras, 'value'), round(2))",
			[]string{"round", "sum"},
		},
		{
			"both ternary branches",
			"state.ok ? first(state.items) : last(state.items)",
			[]string{"first", "last"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.expr)
			assert.Equal(t, tt.want, CollectFunctions(node))
		})
	}
}

func TestCollectHandlesNil(t *testing.T) {
	assert.Nil(t, CollectPaths(nil))
	assert.Nil(t, CollectFunctions(nil))
}
