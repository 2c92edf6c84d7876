package screenbind

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// EvalOptions overrides evaluation defaults. A nil options value uses the
// global config depth limit and the safe function registry.
type EvalOptions struct {
	// MaxDepth caps the live evaluation stack. Zero means the configured
	// default. This is independent of the parser's static nesting check:
	// nested call arguments can produce deep runtime evaluation from a
	// shallow AST.
	MaxDepth int
	// Registry is the function table for call nodes. Zero value means the
	// safe function registry. There is no dynamic fallback.
	Registry FunctionRegistry
}

// evalEnv carries evaluation state through the AST walk.
type evalEnv struct {
	ctx      *BindingContext
	registry FunctionRegistry
	depth    int
	maxDepth int
}

func (env *evalEnv) enter() error {
	env.depth++
	if env.depth > env.maxDepth {
		return NewDepthExceededError(env.maxDepth)
	}
	return nil
}

func (env *evalEnv) leave() {
	env.depth--
}

// Evaluate walks the AST against the binding context. It fails with
// DepthExceededError when the runtime stack exceeds the configured
// maximum and with UnknownFunctionError for calls outside the registry.
func Evaluate(node ExpressionNode, ctx *BindingContext, opts *EvalOptions) (interface{}, error) {
	env := &evalEnv{
		ctx:      ctx,
		registry: SafeFunctionRegistry(),
		maxDepth: GetGlobalConfig().MaxEvalDepth,
	}
	if opts != nil {
		if opts.MaxDepth > 0 {
			env.maxDepth = opts.MaxDepth
		}
		if opts.Registry != nil {
			env.registry = opts.Registry
		}
	}
	if node == nil {
		return nil, nil
	}
	return node.eval(env)
}

func (n *LiteralNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()
	return n.Value, nil
}

func (n *PathNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()
	return env.ctx.resolveSegments(n.Segments), nil
}

func (n *CallNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()

	fn, exists := env.registry.GetFunction(n.Name)
	if !exists {
		return nil, NewUnknownFunctionError(n.Name)
	}

	// Arguments evaluate left to right; order is part of the contract.
	args := make([]interface{}, len(n.Args))
	for i, arg := range n.Args {
		value, err := arg.eval(env)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	return fn.Call(args...)
}

func (n *BinaryNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()

	left, err := n.Left.eval(env)
	if err != nil {
		return nil, err
	}
	right, err := n.Right.eval(env)
	if err != nil {
		return nil, err
	}

	return applyBinaryOperator(n.Operator, left, right)
}

func (n *UnaryNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()

	operand, err := n.Operand.eval(env)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "!":
		return !isTruthy(operand), nil
	case "-":
		return -toNumber(operand), nil
	default:
		return nil, fmt.Errorf("unknown unary operator: %s", n.Operator)
	}
}

func (n *TernaryNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()

	condition, err := n.Condition.eval(env)
	if err != nil {
		return nil, err
	}

	// Short-circuit: the unchosen branch is never evaluated.
	if isTruthy(condition) {
		return n.Consequent.eval(env)
	}
	return n.Alternate.eval(env)
}

func (n *ArrayNode) eval(env *evalEnv) (interface{}, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()

	elements := make([]interface{}, len(n.Elements))
	for i, element := range n.Elements {
		value, err := element.eval(env)
		if err != nil {
			return nil, err
		}
		elements[i] = value
	}
	return elements, nil
}

func applyBinaryOperator(operator string, left, right interface{}) (interface{}, error) {
	switch operator {
	case "+":
		// String concatenation wins if either operand is a string.
		if _, ok := left.(string); ok {
			return formatValue(left) + formatValue(right), nil
		}
		if _, ok := right.(string); ok {
			return formatValue(left) + formatValue(right), nil
		}
		return toNumber(left) + toNumber(right), nil
	case "-":
		return toNumber(left) - toNumber(right), nil
	case "*":
		return toNumber(left) * toNumber(right), nil
	case "/":
		divisor := toNumber(right)
		if divisor == 0 {
			// Division by zero yields 0, never Inf or NaN.
			return float64(0), nil
		}
		return toNumber(left) / divisor, nil
	case "%":
		divisor := toNumber(right)
		if divisor == 0 {
			return float64(0), nil
		}
		return math.Mod(toNumber(left), divisor), nil
	case "==":
		return looseEquals(left, right), nil
	case "!=":
		return !looseEquals(left, right), nil
	case "===":
		return strictEquals(left, right), nil
	case "!==":
		return !strictEquals(left, right), nil
	case ">":
		return toNumber(left) > toNumber(right), nil
	case ">=":
		return toNumber(left) >= toNumber(right), nil
	case "<":
		return toNumber(left) < toNumber(right), nil
	case "<=":
		return toNumber(left) <= toNumber(right), nil
	case "&&":
		if isTruthy(left) {
			return right, nil
		}
		return left, nil
	case "||":
		if isTruthy(left) {
			return left, nil
		}
		return right, nil
	default:
		return nil, fmt.Errorf("unknown binary operator: %s", operator)
	}
}

// looseEquals compares numerically when both sides coerce to numbers,
// otherwise by stringified value. nil only equals nil.
func looseEquals(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	leftNum, leftErr := cast.ToFloat64E(left)
	rightNum, rightErr := cast.ToFloat64E(right)
	if leftErr == nil && rightErr == nil {
		return leftNum == rightNum
	}
	return formatValue(left) == formatValue(right)
}

// strictEquals requires matching type categories before comparing.
func strictEquals(left, right interface{}) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}

	switch l := left.(type) {
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	}

	if isNumeric(left) && isNumeric(right) {
		return toNumber(left) == toNumber(right)
	}

	return false
}

func isNumeric(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// toNumber coerces a value to float64, defaulting to 0 for anything that
// is not numeric-shaped. Booleans become 1/0, numeric strings parse.
func toNumber(value interface{}) float64 {
	if value == nil {
		return 0
	}
	num, err := cast.ToFloat64E(value)
	if err != nil {
		return 0
	}
	return num
}

// formatValue stringifies a value for interpolation and concatenation.
// Nullish values become the empty string; integral floats drop the
// trailing fraction.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	if str, err := cast.ToStringE(value); err == nil {
		return str
	}
	return fmt.Sprintf("%v", value)
}

// isTruthy mirrors the truthiness rules templates rely on: nil, zero,
// empty string and empty containers are falsy, everything else truthy.
func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	}
	if isNumeric(value) {
		return toNumber(value) != 0
	}
	return true
}
