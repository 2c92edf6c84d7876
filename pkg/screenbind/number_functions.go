package screenbind

import "math"

// Number functions coerce non-numeric input to 0 before operating.

func registerNumberFunctions(registry *DefaultFunctionRegistry) {
	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "round",
		Params: []Param{
			{Name: "value", Type: "number"},
			{Name: "decimals", Type: "number", Optional: true},
		},
		Returns:     "number",
		Description: "Rounds to the given number of decimal places (default 0).",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		value := toNumber(args[0])
		decimals := 0
		if len(args) > 1 {
			decimals = int(toNumber(args[1]))
		}
		if decimals <= 0 {
			return math.Round(value), nil
		}
		shift := math.Pow(10, float64(decimals))
		return math.Round(value*shift) / shift, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "ceil",
		Params:      []Param{{Name: "value", Type: "number"}},
		Returns:     "number",
		Description: "Rounds up to the nearest integer.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return math.Ceil(toNumber(args[0])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "floor",
		Params:      []Param{{Name: "value", Type: "number"}},
		Returns:     "number",
		Description: "Rounds down to the nearest integer.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return math.Floor(toNumber(args[0])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "abs",
		Params:      []Param{{Name: "value", Type: "number"}},
		Returns:     "number",
		Description: "Returns the absolute value.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return math.Abs(toNumber(args[0])), nil
	}))
}
