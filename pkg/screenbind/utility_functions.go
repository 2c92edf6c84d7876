package screenbind

import (
	"strconv"
	"strings"
)

func registerUtilityFunctions(registry *DefaultFunctionRegistry) {
	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "coalesce",
		Params:      []Param{{Name: "values", Type: "any..."}},
		Returns:     "any",
		Description: "Returns the first argument that is neither null nor empty string.",
	}, 1, -1, func(args ...interface{}) (interface{}, error) {
		for _, arg := range args {
			if arg == nil {
				continue
			}
			if s, ok := arg.(string); ok && s == "" {
				continue
			}
			return arg, nil
		}
		return nil, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "ifElse",
		Params: []Param{
			{Name: "condition", Type: "any"},
			{Name: "whenTrue", Type: "any"},
			{Name: "whenFalse", Type: "any"},
		},
		Returns:     "any",
		Description: "Function form of the ternary operator.",
	}, 3, 3, func(args ...interface{}) (interface{}, error) {
		if isTruthy(args[0]) {
			return args[1], nil
		}
		return args[2], nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "toString",
		Params:      []Param{{Name: "value", Type: "any"}},
		Returns:     "string",
		Description: "Converts a value to its string form; null becomes empty.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return formatValue(args[0]), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "toNumber",
		Params:      []Param{{Name: "value", Type: "any"}},
		Returns:     "number",
		Description: "Converts a value to a number; non-numeric input becomes 0.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return toNumber(args[0]), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "formatNumber",
		Params: []Param{
			{Name: "value", Type: "number"},
			{Name: "decimals", Type: "number", Optional: true},
		},
		Returns:     "string",
		Description: "Formats a number with thousands separators and fixed decimals (default 2).",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		decimals := 2
		if len(args) > 1 {
			decimals = int(toNumber(args[1]))
			if decimals < 0 {
				decimals = 0
			}
		}
		return formatNumberGrouped(toNumber(args[0]), decimals), nil
	}))
}

// formatNumberGrouped renders a float with comma thousands grouping.
func formatNumberGrouped(value float64, decimals int) string {
	fixed := strconv.FormatFloat(value, 'f', decimals, 64)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole := fixed
	fraction := ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		whole = fixed[:dot]
		fraction = fixed[dot:]
	}

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + b.String() + fraction
}
