/*
Package ecsim is an Entity-Component-System storage core: entities are
grouped by the exact set of component types they carry (their
archetype), and queries iterate over those groups without inspecting
any entity that doesn't match.

Core Concepts:

  - Entity: an opaque, non-recycled identifier for a game object.
  - Component: an opaque identifier for a component type, assigned by
    a caller or a generated companion package, not by this core.
  - Signature: the sorted set of component identifiers that names an
    archetype.
  - Table: the column store holding every entity of one archetype.
  - Step: a transactional scope. Reads inside it are stable; writes
    are deferred and applied once the body (and any tasks it
    launched) returns.

Basic Usage:

	engine := ecsim.NewEngine()
	position := ecsim.FactoryNewComponent[Position]()
	velocity := ecsim.FactoryNewComponent[Velocity]()

	var e ecsim.Entity
	engine.Step(context.Background(), func(s *ecsim.StepScope) error {
		e = s.NewEntity()
		position.Add(s, e, Position{X: 10, Y: 20})
		velocity.Add(s, e, Velocity{X: 1, Y: 2})
		return nil
	})

	query := engine.Select().With(position.Component).With(velocity.Component).Build()
	engine.Step(context.Background(), func(s *ecsim.StepScope) error {
		return s.ForEach(query, func(e ecsim.Entity) error {
			pos, _ := position.Get(s, e)
			_ = pos
			return nil
		})
	})

Only one step may be active at a time; entering Step while another is
in progress returns ErrConcurrentStep.
*/
package ecsim
