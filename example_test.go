package ecsim_test

import (
	"context"
	"fmt"

	"github.com/nullforge/ecsim"
)

// Position is a simple component for 2D coordinates.
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement.
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification.
type Name struct {
	Value string
}

// Example_basic shows entity creation, component writes, and a query
// matched against entities carrying both Position and Velocity.
func Example_basic() {
	engine := ecsim.NewEngine()
	position := ecsim.FactoryNewComponent[Position]()
	velocity := ecsim.FactoryNewComponent[Velocity]()
	name := ecsim.FactoryNewComponent[Name]()

	var player ecsim.Entity
	engine.Step(context.Background(), func(s *ecsim.StepScope) error {
		for i := 0; i < 5; i++ {
			e := s.NewEntity()
			position.Add(s, e, Position{})
		}
		for i := 0; i < 3; i++ {
			e := s.NewEntity()
			position.Add(s, e, Position{})
			velocity.Add(s, e, Velocity{})
		}
		player = s.NewEntity()
		position.Add(s, player, Position{})
		velocity.Add(s, player, Velocity{})
		name.Add(s, player, Name{Value: "Player"})
		return nil
	})

	query := engine.Select().With(position.Component).With(velocity.Component).Build()
	matchCount := 0
	engine.Step(context.Background(), func(s *ecsim.StepScope) error {
		return s.ForEach(query, func(e ecsim.Entity) error {
			matchCount++
			return nil
		})
	})
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	engine.Step(context.Background(), func(s *ecsim.StepScope) error {
		vel, _ := velocity.Get(s, player)
		vel.X, vel.Y = 1.0, 2.0
		velocity.Set(s, player, vel)

		pos, _ := position.Get(s, player)
		pos.X += vel.X
		pos.Y += vel.Y
		position.Set(s, player, pos)
		return nil
	})

	pos, _ := position.Get(engine, player)
	nme, _ := name.Get(engine, player)
	fmt.Printf("Updated %s to position (%.1f, %.1f)\n", nme.Value, pos.X, pos.Y)

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (1.0, 2.0)
}

// Example_queries shows With, WithAny, and Without used to select
// different slices of the same entity population.
func Example_queries() {
	engine := ecsim.NewEngine()
	position := ecsim.FactoryNewComponent[PQPosition]()
	velocity := ecsim.FactoryNewComponent[PQVelocity]()
	name := ecsim.FactoryNewComponent[PQName]()

	engine.Step(context.Background(), func(s *ecsim.StepScope) error {
		for i := 0; i < 3; i++ {
			e := s.NewEntity()
			position.Add(s, e, PQPosition{})
		}
		for i := 0; i < 3; i++ {
			e := s.NewEntity()
			position.Add(s, e, PQPosition{})
			velocity.Add(s, e, PQVelocity{})
		}
		for i := 0; i < 3; i++ {
			e := s.NewEntity()
			position.Add(s, e, PQPosition{})
			name.Add(s, e, PQName{})
		}
		for i := 0; i < 3; i++ {
			e := s.NewEntity()
			position.Add(s, e, PQPosition{})
			velocity.Add(s, e, PQVelocity{})
			name.Add(s, e, PQName{})
		}
		return nil
	})

	count := func(q *ecsim.Query) int {
		n := 0
		engine.Step(context.Background(), func(s *ecsim.StepScope) error {
			return s.ForEach(q, func(e ecsim.Entity) error {
				n++
				return nil
			})
		})
		return n
	}

	withBoth := engine.Select().With(position.Component).With(velocity.Component).Build()
	fmt.Printf("With query matched %d entities\n", count(withBoth))

	// WithAny is bulk sugar over With, not an OR clause: it requires
	// every listed component, same as chaining With calls.
	withVelocityAndName := engine.Select().WithAny(velocity.Component, name.Component).Build()
	fmt.Printf("WithAny query matched %d entities\n", count(withVelocityAndName))

	withoutVelocity := engine.Select().With(position.Component).Without(velocity.Component).Build()
	fmt.Printf("Without query matched %d entities\n", count(withoutVelocity))

	// Output:
	// With query matched 6 entities
	// WithAny query matched 3 entities
	// Without query matched 6 entities
}

// PQPosition, PQVelocity, and PQName give Example_queries its own
// component identifiers, distinct from Example_basic's.
type PQPosition struct{}
type PQVelocity struct{}
type PQName struct{}
