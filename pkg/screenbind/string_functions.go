package screenbind

import "strings"

// String functions stringify their inputs first; nil becomes the empty
// string, so none of them can fail on a missing binding.

func registerStringFunctions(registry *DefaultFunctionRegistry) {
	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "uppercase",
		Params:      []Param{{Name: "value", Type: "string"}},
		Returns:     "string",
		Description: "Converts a value to upper case.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return strings.ToUpper(formatValue(args[0])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "lowercase",
		Params:      []Param{{Name: "value", Type: "string"}},
		Returns:     "string",
		Description: "Converts a value to lower case.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return strings.ToLower(formatValue(args[0])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "trim",
		Params:      []Param{{Name: "value", Type: "string"}},
		Returns:     "string",
		Description: "Removes leading and trailing whitespace.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		return strings.TrimSpace(formatValue(args[0])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "substring",
		Params: []Param{
			{Name: "value", Type: "string"},
			{Name: "start", Type: "number"},
			{Name: "end", Type: "number", Optional: true},
		},
		Returns:     "string",
		Description: "Returns the part of the string between start and end.",
	}, 2, 3, func(args ...interface{}) (interface{}, error) {
		runes := []rune(formatValue(args[0]))
		start := clampIndex(int(toNumber(args[1])), len(runes))
		end := len(runes)
		if len(args) > 2 {
			end = clampIndex(int(toNumber(args[2])), len(runes))
		}
		if start > end {
			return "", nil
		}
		return string(runes[start:end]), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "includes",
		Params: []Param{
			{Name: "value", Type: "string"},
			{Name: "search", Type: "string"},
		},
		Returns:     "boolean",
		Description: "Reports whether the string contains the search text.",
	}, 2, 2, func(args ...interface{}) (interface{}, error) {
		return strings.Contains(formatValue(args[0]), formatValue(args[1])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "startsWith",
		Params: []Param{
			{Name: "value", Type: "string"},
			{Name: "prefix", Type: "string"},
		},
		Returns:     "boolean",
		Description: "Reports whether the string starts with the prefix.",
	}, 2, 2, func(args ...interface{}) (interface{}, error) {
		return strings.HasPrefix(formatValue(args[0]), formatValue(args[1])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "endsWith",
		Params: []Param{
			{Name: "value", Type: "string"},
			{Name: "suffix", Type: "string"},
		},
		Returns:     "boolean",
		Description: "Reports whether the string ends with the suffix.",
	}, 2, 2, func(args ...interface{}) (interface{}, error) {
		return strings.HasSuffix(formatValue(args[0]), formatValue(args[1])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "replace",
		Params: []Param{
			{Name: "value", Type: "string"},
			{Name: "search", Type: "string"},
			{Name: "replacement", Type: "string"},
		},
		Returns:     "string",
		Description: "Replaces every occurrence of search with replacement.",
	}, 3, 3, func(args ...interface{}) (interface{}, error) {
		return strings.ReplaceAll(formatValue(args[0]), formatValue(args[1]), formatValue(args[2])), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "split",
		Params: []Param{
			{Name: "value", Type: "string"},
			{Name: "separator", Type: "string"},
		},
		Returns:     "array",
		Description: "Splits the string around each occurrence of the separator.",
	}, 2, 2, func(args ...interface{}) (interface{}, error) {
		parts := strings.Split(formatValue(args[0]), formatValue(args[1]))
		items := make([]interface{}, len(parts))
		for i, part := range parts {
			items[i] = part
		}
		return items, nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "join",
		Params: []Param{
			{Name: "array", Type: "array"},
			{Name: "separator", Type: "string", Optional: true},
		},
		Returns:     "string",
		Description: "Joins array elements into one string.",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		items, ok := toSlice(args[0])
		if !ok {
			return formatValue(args[0]), nil
		}
		separator := ""
		if len(args) > 1 {
			separator = formatValue(args[1])
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, separator), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "length",
		Params:      []Param{{Name: "value", Type: "string|array"}},
		Returns:     "number",
		Description: "Returns the number of characters in a string or elements in an array.",
	}, 1, 1, func(args ...interface{}) (interface{}, error) {
		if items, ok := toSlice(args[0]); ok {
			return float64(len(items)), nil
		}
		if m, ok := args[0].(map[string]interface{}); ok {
			return float64(len(m)), nil
		}
		return float64(len([]rune(formatValue(args[0])))), nil
	}))
}

// clampIndex bounds an index into [0, length].
func clampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length {
		return length
	}
	return index
}
