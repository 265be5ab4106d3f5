package ecsim

import "sync"

// command is a deferred mutation enqueued during a step and applied, in
// enqueue order, at drain time. This is the teacher library's
// EntityOperation/operation-queue idiom, generalized from an entity
// object's own queued methods to the engine's step-scoped command
// journal.
type command interface {
	apply(e *Engine) error
}

// commandQueue is the step's thread-safe, multi-producer single-consumer
// command journal. A mutex-guarded slice is a "finely locked" queue in
// the sense §5 of the spec allows; a single consumer drains it once per
// step, so a hand-rolled lock-free ring buffer would be speculative.
type commandQueue struct {
	mu       sync.Mutex
	commands []command
}

func (q *commandQueue) enqueue(c command) {
	q.mu.Lock()
	q.commands = append(q.commands, c)
	q.mu.Unlock()
}

// drain returns the queued commands in insertion order and resets the
// queue for the next step.
func (q *commandQueue) drain() []command {
	q.mu.Lock()
	defer q.mu.Unlock()
	commands := q.commands
	q.commands = nil
	return commands
}

type destroyEntityCommand struct {
	entity Entity
}

// apply tombstones the entity and frees its row. Destroying an already
// destroyed (or never allocated) entity is a no-op, matching
// destroy_entity's idempotence contract.
func (c destroyEntityCommand) apply(e *Engine) error {
	rec, live := e.entities.Get(c.entity)
	if !live {
		return nil
	}
	tbl, ok := e.tables.GetByID(rec.Table)
	if !ok {
		return nil
	}
	tbl.Remove(rec.Row)
	e.entities.Remove(c.entity)
	return nil
}

type addComponentCommand struct {
	entity    Entity
	component Component
	value     any
}

// apply migrates entity to the table for its current signature plus
// component, copying every column across via the column-shift policy
// and writing value at the new column.
func (c addComponentCommand) apply(e *Engine) error {
	rec, live := e.entities.Get(c.entity)
	if !live {
		return InvalidEntityError{Entity: c.entity}
	}
	oldTable, _ := e.tables.GetByID(rec.Table)
	if oldTable.Contains(uint32(c.component)) {
		return DuplicateComponentError{Entity: c.entity, Component: c.component}
	}
	newTable, err := e.tables.ResolveWith(oldTable, uint32(c.component))
	if err != nil {
		return err
	}
	newRow := newTable.Add(c.entity)
	insertCol := newTable.ColumnIndex(uint32(c.component))
	copyRowOnAdd(oldTable, rec.Row, newTable, newRow, insertCol, c.value)
	oldTable.Remove(rec.Row)
	e.entities.RecordUnsafe(c.entity, newTable.ID(), newRow)
	return nil
}

type removeComponentCommand struct {
	entity    Entity
	component Component
}

// apply migrates entity to the table for its current signature minus
// component, the inverse of addComponentCommand.
func (c removeComponentCommand) apply(e *Engine) error {
	rec, live := e.entities.Get(c.entity)
	if !live {
		return InvalidEntityError{Entity: c.entity}
	}
	oldTable, _ := e.tables.GetByID(rec.Table)
	if !oldTable.Contains(uint32(c.component)) {
		return MissingComponentError{Entity: c.entity, Component: c.component}
	}
	removedCol := oldTable.ColumnIndex(uint32(c.component))
	newTable, err := e.tables.ResolveWithout(oldTable, uint32(c.component))
	if err != nil {
		return err
	}
	newRow := newTable.Add(c.entity)
	copyRowOnRemove(oldTable, rec.Row, newTable, newRow, removedCol)
	oldTable.Remove(rec.Row)
	e.entities.RecordUnsafe(c.entity, newTable.ID(), newRow)
	return nil
}

type setComponentCommand struct {
	entity    Entity
	component Component
	value     any
}

// apply writes value in place if the component is already on the
// entity, otherwise degrades to an add.
func (c setComponentCommand) apply(e *Engine) error {
	rec, live := e.entities.Get(c.entity)
	if !live {
		return InvalidEntityError{Entity: c.entity}
	}
	tbl, _ := e.tables.GetByID(rec.Table)
	if col := tbl.ColumnIndex(uint32(c.component)); col >= 0 {
		tbl.Set(rec.Row, col, c.value)
		return nil
	}
	return addComponentCommand(c).apply(e)
}
