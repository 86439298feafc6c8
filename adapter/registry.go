package adapter

import (
	"errors"
	"fmt"
	"sort"
)

var ErrDuplicateName = errors.New("adapter name already registered")

// Registry maps the names used by `from=` and `try_from=` directives to
// adapters. A nil *Registry is empty.
type Registry struct {
	byName map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Adapter)}
}

// Register adds a under name.
func (r *Registry) Register(name string, a Adapter) error {
	if name == "" {
		return fmt.Errorf("register %s: empty adapter name", a)
	}

	if r.byName == nil {
		r.byName = make(map[string]Adapter)
	}

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	r.byName[name] = a

	return nil
}

// Add parses fn and registers it under its package-qualified name.
func (r *Registry) Add(fn any) (Adapter, error) {
	a, err := Parse(fn)
	if err != nil {
		return Adapter{}, err
	}

	return a, r.Register(a.QualifiedName(), a)
}

func (r *Registry) Lookup(name string) (Adapter, bool) {
	if r == nil {
		return Adapter{}, false
	}

	a, ok := r.byName[name]

	return a, ok
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
