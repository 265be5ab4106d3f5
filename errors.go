package ecsim

import (
	"errors"
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// Sentinel errors. Wrapped errors returned by the package satisfy
// errors.Is against these, carrying the offending entity/component as
// context via the concrete types below.
var (
	ErrInvalidEntity               = errors.New("ecsim: invalid entity")
	ErrMissingComponent            = errors.New("ecsim: missing component")
	ErrDuplicateComponent          = errors.New("ecsim: duplicate component")
	ErrEmptyCell                   = errors.New("ecsim: empty cell")
	ErrDuplicateSignatureComponent = errors.New("ecsim: duplicate signature component")
	ErrMissingSignatureComponent   = errors.New("ecsim: missing signature component")
	ErrComponentIDExhausted        = errors.New("ecsim: component id range exhausted")
	ErrConcurrentStep              = errors.New("ecsim: step already in progress")
)

// InvalidEntityError reports a lookup, mutation, or destruction that
// targeted an entity never allocated or already destroyed.
type InvalidEntityError struct {
	Entity Entity
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("ecsim: invalid entity %d", e.Entity)
}

func (e InvalidEntityError) Unwrap() error { return ErrInvalidEntity }

// MissingComponentError reports a read or removal of a component that
// is not present on the entity.
type MissingComponentError struct {
	Entity    Entity
	Component Component
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("ecsim: entity %d has no component %d", e.Entity, e.Component)
}

func (e MissingComponentError) Unwrap() error { return ErrMissingComponent }

// DuplicateComponentError reports adding a component already on the entity.
type DuplicateComponentError struct {
	Entity    Entity
	Component Component
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("ecsim: entity %d already has component %d", e.Entity, e.Component)
}

func (e DuplicateComponentError) Unwrap() error { return ErrDuplicateComponent }

// EmptyCellError reports a read of a table cell before it was written.
// This indicates an internal invariant violation and is fatal: callers
// see it only via a panic, wrapped with a stack trace.
type EmptyCellError struct {
	Table uint32
	Row   int
	Col   int
}

func (e EmptyCellError) Error() string {
	return fmt.Sprintf("ecsim: empty cell at table %d row %d column %d", e.Table, e.Row, e.Col)
}

func (e EmptyCellError) Unwrap() error { return ErrEmptyCell }

// DuplicateSignatureComponentError reports Signature.With(c) where c is
// already present in the signature.
type DuplicateSignatureComponentError struct {
	Component uint32
}

func (e DuplicateSignatureComponentError) Error() string {
	return fmt.Sprintf("ecsim: signature already contains component %d", e.Component)
}

func (e DuplicateSignatureComponentError) Unwrap() error { return ErrDuplicateSignatureComponent }

// MissingSignatureComponentError reports Signature.Without(c) where c is
// absent from the signature.
type MissingSignatureComponentError struct {
	Component uint32
}

func (e MissingSignatureComponentError) Error() string {
	return fmt.Sprintf("ecsim: signature does not contain component %d", e.Component)
}

func (e MissingSignatureComponentError) Unwrap() error { return ErrMissingSignatureComponent }

// panicInvariant wraps err with a stack trace and panics. Used only at
// points that indicate the storage core's own invariants were violated,
// never for caller input errors.
func panicInvariant(err error) {
	panic(bark.AddTrace(err))
}
