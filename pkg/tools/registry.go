package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry is the process-wide tool catalogue. Built once at startup,
// read-mostly afterwards. Disabled tools stay listed but refuse to run.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its own name. Later registrations with the
// same name replace earlier ones.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	r.tools[t.Name()] = t
	r.mu.Unlock()
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	return t, ok
}

// Names returns all registered tool names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// EnabledNames returns the names of tools with credentials available.
func (r *Registry) EnabledNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.tools))
	for name, t := range r.tools {
		if t.Enabled() {
			names = append(names, name)
		}
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Invoke dispatches one call. Unknown and disabled tools return a
// descriptive error rather than panicking; the caller converts it to an
// observation.
func (r *Registry) Invoke(ctx context.Context, name string, params Params) (Result, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	if !t.Enabled() {
		return nil, fmt.Errorf("tool %q is disabled: missing credentials", name)
	}
	return t.Invoke(ctx, params)
}

// ToolStatus is one catalogue entry.
type ToolStatus struct {
	Enabled     bool   `json:"enabled"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Catalog summarizes the registry for presentation.
type Catalog struct {
	Total         int                   `json:"total"`
	EnabledCount  int                   `json:"enabled_count"`
	DisabledCount int                   `json:"disabled_count"`
	Tools         map[string]ToolStatus `json:"tools"`
}

// Describe builds the catalogue snapshot.
func (r *Registry) Describe() Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	catalog := Catalog{
		Total: len(r.tools),
		Tools: make(map[string]ToolStatus, len(r.tools)),
	}
	for name, t := range r.tools {
		enabled := t.Enabled()
		if enabled {
			catalog.EnabledCount++
		} else {
			catalog.DisabledCount++
		}
		catalog.Tools[name] = ToolStatus{Enabled: enabled, Category: t.Category(), Description: t.Description()}
	}
	return catalog
}
