package screenbind

import "sort"

// Reserved sub-maps of the state document. They are owned exclusively by
// the mutators in this file; the UI runtime reads them through rendered
// bindings only.
const (
	StateResultsKey = "results"
	StateLoadingKey = "__loading"
	StateErrorKey   = "__error"
)

// ApplyBindings resolves every source path against the context and writes
// the value at the corresponding target path in state. Bindings are plain
// path to plain path; no expression evaluation happens here. Targets are
// applied in sorted order so repeated runs are deterministic.
func ApplyBindings(state map[string]interface{}, bindings map[string]string, ctx *BindingContext) {
	if state == nil || len(bindings) == 0 {
		return
	}

	targets := make([]string, 0, len(bindings))
	for target := range bindings {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		Set(state, target, ctx.ResolvePath(bindings[target]))
	}
}

// ApplyActionResult records an action's result under results[actionID]
// and, when the result carries a state_patch object, merges each patch
// key into state at the top level.
func ApplyActionResult(state map[string]interface{}, actionID string, result interface{}) {
	if state == nil || actionID == "" {
		return
	}

	ensureStateMap(state, StateResultsKey)[actionID] = result

	if m, ok := result.(map[string]interface{}); ok {
		if patch, ok := m["state_patch"].(map[string]interface{}); ok {
			keys := make([]string, 0, len(patch))
			for key := range patch {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				Set(state, key, patch[key])
			}
		}
	}
}

// SetLoading maintains the per-action loading flag the UI runtime renders
// spinners from.
func SetLoading(state map[string]interface{}, actionID string, loading bool) {
	if state == nil || actionID == "" {
		return
	}
	ensureStateMap(state, StateLoadingKey)[actionID] = loading
}

// SetError records the per-action error message the UI runtime renders
// banners from. Callers holding an error value pass err.Error().
func SetError(state map[string]interface{}, actionID, message string) {
	if state == nil || actionID == "" {
		return
	}
	ensureStateMap(state, StateErrorKey)[actionID] = message
}

// ClearError resets the per-action error entry back to null.
func ClearError(state map[string]interface{}, actionID string) {
	if state == nil || actionID == "" {
		return
	}
	ensureStateMap(state, StateErrorKey)[actionID] = nil
}

// ensureStateMap returns state[key] as a map, replacing a missing or
// wrong-shaped value with a fresh one. Action IDs are used as direct map
// keys, never parsed as paths, so IDs containing dots stay intact.
func ensureStateMap(state map[string]interface{}, key string) map[string]interface{} {
	if m, ok := state[key].(map[string]interface{}); ok {
		return m
	}
	m := make(map[string]interface{})
	state[key] = m
	return m
}
