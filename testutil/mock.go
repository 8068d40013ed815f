package testutil

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// MockRenderer is a thread-safe template renderer for tests. By default it
// renders "<name>:<iri>" and records every context it was given.
type MockRenderer struct {
	mu sync.Mutex

	// RenderFunc replaces the default output when set.
	RenderFunc func(name string, data any) ([]byte, error)

	// failures maps an "iri" context value to the error its render returns.
	failures map[string]error

	calls    map[string]int
	contexts []map[string]any
}

// NewMockRenderer creates a renderer with the default output.
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// FailOn makes renders whose context has iri fail with err.
func (m *MockRenderer) FailOn(iri string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[iri] = err
}

// Render implements the site renderer.
func (m *MockRenderer) Render(name string, data any) ([]byte, error) {
	m.mu.Lock()
	m.calls[name]++
	ctx, _ := data.(map[string]any)
	if ctx == nil {
		ctx = contextOf(data)
	}
	m.contexts = append(m.contexts, ctx)
	iri, _ := ctx["iri"].(string)
	err := m.failures[iri]
	fn := m.RenderFunc
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if fn != nil {
		return fn(name, data)
	}
	return []byte(fmt.Sprintf("%s:%s", name, iri)), nil
}

// Calls returns how often template name was rendered.
func (m *MockRenderer) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Contexts returns the recorded contexts sorted by their "iri" value.
func (m *MockRenderer) Contexts() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]map[string]any, len(m.contexts))
	copy(out, m.contexts)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i]["iri"].(string)
		b, _ := out[j]["iri"].(string)
		return a < b
	})
	return out
}

// Context returns the recorded context whose "iri" equals iri.
func (m *MockRenderer) Context(iri string) (map[string]any, bool) {
	for _, c := range m.Contexts() {
		if v, _ := c["iri"].(string); v == iri {
			return c, true
		}
	}
	return nil, false
}

// contextOf converts named map types such as page.Context.
func contextOf(data any) map[string]any {
	plain := reflect.TypeOf(map[string]any(nil))
	v := reflect.ValueOf(data)
	if !v.IsValid() || !v.Type().ConvertibleTo(plain) {
		return map[string]any{}
	}
	return v.Convert(plain).Interface().(map[string]any)
}
