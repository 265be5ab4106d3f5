package ecsim

import (
	"reflect"
	"sync"
)

// factory implements the constructor pattern for ecsim's top-level
// types, the teacher library's singleton-with-methods idiom.
type factory struct{}

// Factory is the global factory instance for constructing engines and
// query builders. Typed component handles come from the generic
// FactoryNewComponent function instead.
var Factory factory

// NewEngine constructs a new Engine. Kept alongside the ordinary
// NewEngine constructor for callers that prefer the Factory idiom.
func (f factory) NewEngine() *Engine { return NewEngine() }

// NewQueryBuilder starts a new query.
func (f factory) NewQueryBuilder() *QueryBuilder { return NewQueryBuilder() }

// ComponentRegistry assigns a stable Component identifier per Go type on
// first use, the way an external code generator would assign one per
// compilation unit — here done at runtime for callers who don't run a
// generator at all. A registry's identifiers are scoped to it alone;
// the package-level default registry behind FactoryNewComponent is
// unranged, while NewComponentRegistry lets a caller draw from the
// [min, max] range spec §6 describes per compilation unit.
type ComponentRegistry struct {
	mu     sync.Mutex
	byType map[reflect.Type]Component
	next   uint32
	max    uint32
	ranged bool
}

// NewComponentRegistry returns a registry that allocates identifiers
// from [min, max], returning ErrComponentIDExhausted once exhausted.
func NewComponentRegistry(min, max uint32) *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]Component),
		next:   min,
		max:    max,
		ranged: true,
	}
}

var globalComponents = &ComponentRegistry{byType: make(map[reflect.Type]Component)}

// New allocates a fresh Component identifier for T within this
// registry (or returns the one already allocated for T).
func (r *ComponentRegistry) New(t reflect.Type) (Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byType[t]; ok {
		return id, nil
	}
	if r.ranged && r.next > r.max {
		return 0, ErrComponentIDExhausted
	}
	id := r.next
	r.byType[t] = Component(id)
	r.next++
	return Component(id), nil
}

// FactoryNewComponent allocates a fresh Component identifier for T from
// the package-level default registry and wraps it in a TypedComponent.
func FactoryNewComponent[T any]() TypedComponent[T] {
	id, err := globalComponents.New(reflect.TypeFor[T]())
	if err != nil {
		// The default registry is unranged: exhaustion cannot happen.
		panicInvariant(err)
	}
	return NewTypedComponent[T](id)
}

// FactoryNewComponentInRange behaves like FactoryNewComponent but draws
// from a caller-supplied, range-scoped registry, surfacing
// ErrComponentIDExhausted instead of panicking once it runs out.
func FactoryNewComponentInRange[T any](registry *ComponentRegistry) (TypedComponent[T], error) {
	id, err := registry.New(reflect.TypeFor[T]())
	if err != nil {
		return TypedComponent[T]{}, err
	}
	return NewTypedComponent[T](id), nil
}
