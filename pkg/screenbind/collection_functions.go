package screenbind

import "strings"

// Collection functions operate on slices capped at the configured maximum
// element count (toSlice truncates). Aggregations accept an optional field
// name plucked from each element before aggregating; non-numeric values
// silently contribute 0, a coercion rule persisted screens depend on.

func registerCollectionFunctions(registry *DefaultFunctionRegistry) {
	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "sum",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "field", Type: "string", Optional: true},
		},
		Returns:     "number",
		Description: "Sums the elements, or the named field of each element.",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		total := 0.0
		for _, n := range pluckNumbers(args) {
			total += n
		}
		return total, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "avg",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "field", Type: "string", Optional: true},
		},
		Returns:     "number",
		Description: "Averages the elements, or the named field of each element.",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		numbers := pluckNumbers(args)
		if len(numbers) == 0 {
			return 0.0, nil
		}
		total := 0.0
		for _, n := range numbers {
			total += n
		}
		return total / float64(len(numbers)), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "min",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "field", Type: "string", Optional: true},
		},
		Returns:     "number",
		Description: "Returns the smallest element, or named field value.",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		numbers := pluckNumbers(args)
		if len(numbers) == 0 {
			return 0.0, nil
		}
		least := numbers[0]
		for _, n := range numbers[1:] {
			if n < least {
				least = n
			}
		}
		return least, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "max",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "field", Type: "string", Optional: true},
		},
		Returns:     "number",
		Description: "Returns the largest element, or named field value.",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		numbers := pluckNumbers(args)
		if len(numbers) == 0 {
			return 0.0, nil
		}
		most := numbers[0]
		for _, n := range numbers[1:] {
			if n > most {
				most = n
			}
		}
		return most, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "count",
		Params:      []Param{{Name: "array", Type: "array"}},
		Returns:     "number",
		Description: "Returns the number of elements.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok {
			return 0.0, nil
		}
		return float64(len(items)), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "first",
		Params:      []Param{{Name: "array", Type: "array"}},
		Returns:     "any",
		Description: "Returns the first element, or null for an empty array.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok || len(items) == 0 {
			return nil, nil
		}
		return items[0], nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "last",
		Params:      []Param{{Name: "array", Type: "array"}},
		Returns:     "any",
		Description: "Returns the last element, or null for an empty array.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok || len(items) == 0 {
			return nil, nil
		}
		return items[len(items)-1], nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "unique",
		Params:      []Param{{Name: "array", Type: "array"}},
		Returns:     "array",
		Description: "Removes duplicate elements, preserving first-seen order.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok {
			return []interface{}{}, nil
		}
		seen := make(map[string]bool, len(items))
		result := make([]interface{}, 0, len(items))
		for _, item := range items {
			key := formatValue(item)
			if !seen[key] {
				seen[key] = true
				result = append(result, item)
			}
		}
		return result, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "filter",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "field", Type: "string"},
			{Name: "operator", Type: "string"},
			{Name: "value", Type: "any"},
		},
		Returns:     "array",
		Description: "Keeps elements whose field satisfies operator and value.",
	}, 4, 4, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok {
			return []interface{}{}, nil
		}
		field := formatValue(args[1])
		operator := formatValue(args[2])
		expected := args[3]

		result := make([]interface{}, 0, len(items))
		for _, item := range items {
			actual := Get(item, field)
			keep, known := applyFilterOperator(actual, operator, expected)
			if !known {
				// Unknown operator yields an empty result, never an error.
				return []interface{}{}, nil
			}
			if keep {
				result = append(result, item)
			}
		}
		return result, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "map",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "field", Type: "string"},
		},
		Returns:     "array",
		Description: "Plucks the named field from each element.",
	}, 2, 2, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok {
			return []interface{}{}, nil
		}
		field := formatValue(args[1])
		result := make([]interface{}, len(items))
		for i, item := range items {
			result[i] = Get(item, field)
		}
		return result, nil
	}))
}

// pluckNumbers extracts the numeric values an aggregation operates on,
// applying the optional field argument.
func pluckNumbers(args []interface{}) []float64 {
	items, ok := toSlice(args[0])
	if !ok {
		return nil
	}

	field := ""
	if len(args) > 1 && args[1] != nil {
		field = formatValue(args[1])
	}

	numbers := make([]float64, 0, len(items))
	for _, item := range items {
		value := item
		if field != "" {
			value = Get(item, field)
		}
		numbers = append(numbers, toNumber(value))
	}
	return numbers
}

// applyFilterOperator evaluates one filter comparison. The second return
// reports whether the operator is part of the vocabulary.
func applyFilterOperator(actual interface{}, operator string, expected interface{}) (bool, bool) {
	switch operator {
	case "eq", "==":
		return looseEquals(actual, expected), true
	case "ne", "!=":
		return !looseEquals(actual, expected), true
	case "gt", ">":
		return toNumber(actual) > toNumber(expected), true
	case "gte", ">=":
		return toNumber(actual) >= toNumber(expected), true
	case "lt", "<":
		return toNumber(actual) < toNumber(expected), true
	case "lte", "<=":
		return toNumber(actual) <= toNumber(expected), true
	case "contains":
		return strings.Contains(formatValue(actual), formatValue(expected)), true
	default:
		return false, false
	}
}
