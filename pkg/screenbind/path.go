package screenbind

import (
	"strconv"
	"strings"
)

// ParsePath splits a dot-path with optional bracket indices into ordered
// segments. "items[0].name" and "items.0.name" produce the same result:
// ["items", "0", "name"]. Whether a segment addresses an object key or an
// array slot is decided at resolution time against the runtime shape.
func ParsePath(path string) []string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	var segments []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			flush()
		case '[':
			flush()
		case ']':
			flush()
		default:
			current.WriteByte(path[i])
		}
	}
	flush()

	return segments
}

// pathIndex reports whether a segment is a numeric array index.
func pathIndex(segment string) (int, bool) {
	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// Get reads a dot-path out of a nested container. It returns nil the
// moment it traverses through a missing or nil intermediate, never
// erroring.
func Get(container interface{}, path string) interface{} {
	return getSegments(container, ParsePath(path))
}

func getSegments(container interface{}, segments []string) interface{} {
	current := container
	for _, segment := range segments {
		if current == nil {
			return nil
		}
		switch c := current.(type) {
		case map[string]interface{}:
			current = c[segment]
		case []interface{}:
			index, ok := pathIndex(segment)
			if !ok || index >= len(c) {
				return nil
			}
			current = c[index]
		default:
			return nil
		}
	}
	return current
}

// Set writes value at the dot-path inside state, auto-vivifying missing
// intermediate containers. A numeric next segment produces an array, any
// other segment a map; an intermediate of the wrong shape is replaced
// with a fresh container. This is the single mutation path into state.
func Set(state map[string]interface{}, path string, value interface{}) {
	segments := ParsePath(path)
	if state == nil || len(segments) == 0 {
		return
	}
	state[segments[0]] = setSegments(state[segments[0]], segments[1:], value)
}

// setSegments descends recursively, building containers bottom-up and
// returning the (possibly replaced) container for the caller to reattach.
func setSegments(current interface{}, segments []string, value interface{}) interface{} {
	if len(segments) == 0 {
		return value
	}

	segment := segments[0]
	if index, ok := pathIndex(segment); ok {
		arr, ok := current.([]interface{})
		if !ok {
			arr = nil
		}
		for len(arr) <= index {
			arr = append(arr, nil)
		}
		arr[index] = setSegments(arr[index], segments[1:], value)
		return arr
	}

	m, ok := current.(map[string]interface{})
	if !ok {
		m = make(map[string]interface{})
	}
	m[segment] = setSegments(m[segment], segments[1:], value)
	return m
}
