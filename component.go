package ecsim

// Component is an opaque identifier for a component type, not its data.
// Component identifiers are assigned externally — by the out-of-scope
// code generator, or by hand — and the core only requires that the
// identifier for a given logical component stays stable for the
// lifetime of the engine.
type Component uint32

// TypedComponent pairs a Component identifier with a Go type, the
// generated collaborator's shape described in spec §6 and §9: the core
// stores values as opaque any, and this thin wrapper is the only place
// that type-asserts them back. It never changes the core's contract —
// Get/Set still round-trip through Engine.GetComponent/StepScope's
// deferred setters.
type TypedComponent[T any] struct {
	Component
}

// NewTypedComponent wraps an existing Component identifier with a typed
// accessor for T. Kept alongside the FactoryNewComponent constructor
// for callers that already hold a raw identifier (e.g. one assigned by
// an external code generator).
func NewTypedComponent[T any](id Component) TypedComponent[T] {
	return TypedComponent[T]{Component: id}
}

// ComponentReader is the read surface Get and GetOrZero need. Both
// *Engine and *StepScope satisfy it, so a typed accessor works the same
// whether called from outside a step or from within its body.
type ComponentReader interface {
	GetComponent(Entity, Component) (any, error)
	GetComponentOrNone(Entity, Component) (any, bool)
}

// Get reads entity's value for this component from r, type-asserted to
// T. It fails the same way GetComponent does.
func (c TypedComponent[T]) Get(r ComponentReader, entity Entity) (T, error) {
	var zero T
	v, err := r.GetComponent(entity, c.Component)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// GetOrZero reads entity's value for this component, returning the zero
// value of T and false if the entity is invalid or lacks the component.
func (c TypedComponent[T]) GetOrZero(r ComponentReader, entity Entity) (T, bool) {
	var zero T
	v, ok := r.GetComponentOrNone(entity, c.Component)
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Set enqueues writing value for this component on entity within scope,
// the deferred variant used from inside a step body.
func (c TypedComponent[T]) Set(scope *StepScope, entity Entity, value T) {
	scope.SetComponent(entity, c.Component, value)
}

// Add enqueues adding this component with value to entity within scope.
func (c TypedComponent[T]) Add(scope *StepScope, entity Entity, value T) {
	scope.AddComponent(entity, c.Component, value)
}

// Remove enqueues removing this component from entity within scope.
func (c TypedComponent[T]) Remove(scope *StepScope, entity Entity) {
	scope.RemoveComponent(entity, c.Component)
}
