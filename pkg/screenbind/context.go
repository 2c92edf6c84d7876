package screenbind

// Root namespaces resolvable from binding expressions. Any other root
// resolves to nil rather than erroring, so a partially populated screen
// still renders.
const (
	RootState   = "state"
	RootInputs  = "inputs"
	RootContext = "context"
	RootTraceID = "trace_id"
)

// BindingContext is the read-only view an expression evaluates against.
// The engine never mutates it; only State is ever written to, and only
// through Set or the binding mutators.
type BindingContext struct {
	State   map[string]interface{}
	Inputs  map[string]interface{}
	Context map[string]interface{}
	TraceID string
}

// NewBindingContext creates a context with non-nil maps so callers can
// write into State immediately.
func NewBindingContext() *BindingContext {
	return &BindingContext{
		State:   make(map[string]interface{}),
		Inputs:  make(map[string]interface{}),
		Context: make(map[string]interface{}),
	}
}

// ResolvePath resolves a dot-path such as "state.items[0].name" against
// the sanctioned roots. Unknown roots yield nil.
func (c *BindingContext) ResolvePath(path string) interface{} {
	return c.resolveSegments(ParsePath(path))
}

func (c *BindingContext) resolveSegments(segments []string) interface{} {
	if c == nil || len(segments) == 0 {
		return nil
	}
	switch segments[0] {
	case RootState:
		return getSegments(c.State, segments[1:])
	case RootInputs:
		return getSegments(c.Inputs, segments[1:])
	case RootContext:
		return getSegments(c.Context, segments[1:])
	case RootTraceID:
		// trace_id is a scalar; deeper segments have nothing to address.
		if len(segments) == 1 && c.TraceID != "" {
			return c.TraceID
		}
		return nil
	default:
		return nil
	}
}
