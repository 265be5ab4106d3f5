package ecsim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Engine holds one EntityIndex, one TableIndex, and the reusable command
// queue for the currently (or most recently) active step. Exactly one
// step may be active at a time.
type Engine struct {
	entities *EntityIndex
	tables   *TableIndex
	busy     atomic.Bool
	queue    commandQueue
}

// NewEngine returns a ready-to-use engine with an empty entity index and
// a table index holding only the empty-signature table.
func NewEngine() *Engine {
	return &Engine{
		entities: NewEntityIndex(),
		tables:   NewTableIndex(),
	}
}

// Exists reports whether entity is currently live.
func (e *Engine) Exists(entity Entity) bool {
	_, live := e.entities.Get(entity)
	return live
}

// HasComponent reports whether entity currently carries component c.
func (e *Engine) HasComponent(entity Entity, c Component) bool {
	rec, live := e.entities.Get(entity)
	if !live {
		return false
	}
	tbl, ok := e.tables.GetByID(rec.Table)
	return ok && tbl.Contains(uint32(c))
}

// GetComponent reads entity's value for component c. It fails with
// InvalidEntityError if entity is not live, or MissingComponentError if
// the entity does not carry c.
func (e *Engine) GetComponent(entity Entity, c Component) (any, error) {
	rec, live := e.entities.Get(entity)
	if !live {
		return nil, InvalidEntityError{Entity: entity}
	}
	tbl, _ := e.tables.GetByID(rec.Table)
	col := tbl.ColumnIndex(uint32(c))
	if col < 0 {
		return nil, MissingComponentError{Entity: entity, Component: c}
	}
	v, err := tbl.Get(rec.Row, col)
	if err != nil {
		panicInvariant(err)
	}
	return v, nil
}

// GetComponentOrNone reads entity's value for component c, returning ok
// == false instead of an error when the entity is invalid or lacks c.
func (e *Engine) GetComponentOrNone(entity Entity, c Component) (value any, ok bool) {
	rec, live := e.entities.Get(entity)
	if !live {
		return nil, false
	}
	tbl, _ := e.tables.GetByID(rec.Table)
	col := tbl.ColumnIndex(uint32(c))
	if col < 0 {
		return nil, false
	}
	v, err := tbl.Get(rec.Row, col)
	if err != nil {
		panicInvariant(err)
	}
	return v, true
}

// Select starts building a Query against this engine's component space.
func (e *Engine) Select() *QueryBuilder { return NewQueryBuilder() }

// Step runs body inside a transactional scope: exactly one step may be
// active at a time, reads inside the scope observe a stable snapshot,
// and every mutation the scope records is applied only after body
// returns and any tasks it launched have finished.
//
// If the caller's context is cancelled while body (or a task it
// launched) is running, body is expected to unwind; the commit phase is
// then skipped and the busy flag is still released.
func (e *Engine) Step(ctx context.Context, body func(*StepScope) error) error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrConcurrentStep
	}
	defer e.busy.Store(false) // scoped release: guaranteed on every exit path

	firstEntity := e.entities.Draft()
	e.queue.drain() // reset to an empty queue before the body enqueues anything

	scope := &StepScope{engine: e, ctx: ctx}
	bodyErr := body(scope)
	scope.wg.Wait()

	scope.mu.Lock()
	taskErrs := scope.errs
	scope.mu.Unlock()

	if ctx != nil && ctx.Err() != nil {
		return errors.Join(append([]error{bodyErr, ctx.Err()}, taskErrs...)...)
	}

	// Collect: commit every entity drafted during the body into the
	// empty-signature table, in allocation order, then drain and apply
	// the queued mutation commands.
	empty := e.tables.EmptyTable()
	for id := firstEntity; id < Entity(e.entities.NextID()); id++ {
		row := empty.Add(id)
		e.entities.RecordUnsafe(id, empty.ID(), row)
	}

	var drainErr error
	for _, cmd := range e.queue.drain() {
		if err := cmd.apply(e); err != nil {
			drainErr = errors.Join(drainErr, err)
		}
	}

	return errors.Join(append([]error{bodyErr, drainErr}, taskErrs...)...)
}

// StepScope is the interface a step's body uses to read and mutate
// storage. Reads bypass the command queue and observe the pre-step
// snapshot directly; writes are deferred and applied only once the step
// commits.
type StepScope struct {
	engine *Engine
	ctx    context.Context

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Context returns the context the enclosing Step was called with.
func (s *StepScope) Context() context.Context { return s.ctx }

// Go launches fn as a supervised child task: the step does not commit
// until every task launched this way has returned, but one task's
// failure never cancels its siblings.
func (s *StepScope) Go(fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(); err != nil {
			s.mu.Lock()
			s.errs = append(s.errs, err)
			s.mu.Unlock()
		}
	}()
}

// Exists, HasComponent, GetComponent, and GetComponentOrNone read
// directly against the pre-step snapshot, exactly as outside a step:
// no mutation is in flight until the drain phase runs.
func (s *StepScope) Exists(e Entity) bool { return s.engine.Exists(e) }

func (s *StepScope) HasComponent(e Entity, c Component) bool {
	return s.engine.HasComponent(e, c)
}

func (s *StepScope) GetComponent(e Entity, c Component) (any, error) {
	return s.engine.GetComponent(e, c)
}

func (s *StepScope) GetComponentOrNone(e Entity, c Component) (any, bool) {
	return s.engine.GetComponentOrNone(e, c)
}

// NewEntity drafts a fresh entity identifier. The entity is not live
// and cannot be read (Exists returns false, GetComponent fails) until
// the step commits and places it into the empty-signature table.
func (s *StepScope) NewEntity() Entity {
	return s.engine.entities.New()
}

// DestroyEntity enqueues entity's destruction. Destroying an entity
// that is already destroyed (or was never allocated) is not an error.
func (s *StepScope) DestroyEntity(e Entity) {
	s.engine.queue.enqueue(destroyEntityCommand{entity: e})
}

// AddComponent enqueues adding component c with value v to e, migrating
// it to the archetype with c included once the step commits.
func (s *StepScope) AddComponent(e Entity, c Component, v any) {
	s.engine.queue.enqueue(addComponentCommand{entity: e, component: c, value: v})
}

// RemoveComponent enqueues removing component c from e.
func (s *StepScope) RemoveComponent(e Entity, c Component) {
	s.engine.queue.enqueue(removeComponentCommand{entity: e, component: c})
}

// SetComponent enqueues writing v for component c on e. If e does not
// yet carry c when the command applies, it degrades to AddComponent.
func (s *StepScope) SetComponent(e Entity, c Component, v any) {
	s.engine.queue.enqueue(setComponentCommand{entity: e, component: c, value: v})
}

// ForEach iterates every entity whose archetype matches q, calling fn
// with each entity in turn. Iteration stops at the first error fn
// returns, which ForEach then returns to its caller.
func (s *StepScope) ForEach(q *Query, fn func(Entity) error) error {
	for _, tbl := range s.engine.tables.Iter() {
		if !q.Matches(tbl.Signature()) {
			continue
		}
		var iterErr error
		tbl.Iterate(func(_ int, e Entity) bool {
			if err := fn(e); err != nil {
				iterErr = err
				return false
			}
			return true
		})
		if iterErr != nil {
			return iterErr
		}
	}
	return nil
}
