package tool

import (
	"context"
	"fmt"
)

// Registry is a fixed, ordered catalog of tools. Registration order is
// preserved because the definition list is replayed to the model verbatim and
// tests assert on it. The registry itself performs no validation beyond name
// lookup; argument validation belongs to the tools.
//
// A Registry is written once during setup and only read afterwards, so it
// needs no locking.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry constructs a registry holding the given tools in order.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool to the catalog. Registering a name twice replaces the
// implementation but keeps the original position.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns the tool definitions in registration order. The call is
// pure: it allocates a fresh slice and never mutates registry state.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Execute invokes the named tool with the given arguments. Unregistered names
// fail with ErrUnknownTool before anything runs; all other failures come from
// the tool itself (typically *ToolError).
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Call(ctx, args)
}
