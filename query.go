// Package ecsim provides query mechanisms for component-based entity systems.
package ecsim

import "sort"

// clauseKind distinguishes the two clause forms a query can hold.
type clauseKind uint8

const (
	clauseInclude clauseKind = iota
	clauseExclude
)

type clause struct {
	kind      clauseKind
	component uint32
}

// Query is a compiled include/exclude predicate over a signature. It is
// built once via QueryBuilder and then matched repeatedly; matching is a
// single linear scan since both the query's clauses and a signature's
// identifiers are sorted by the same key.
type Query struct {
	clauses []clause
}

// QueryBuilder accumulates With/Without clauses. Duplicate calls for the
// same component collapse to the last call; clauses are sorted by
// component identifier at Build.
type QueryBuilder struct {
	byComponent map[uint32]clauseKind
	order       []uint32
}

// NewQueryBuilder returns an empty builder. The empty query it produces
// matches every signature, including the empty one.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{byComponent: make(map[uint32]clauseKind)}
}

// With requires component c to be present.
func (b *QueryBuilder) With(c Component) *QueryBuilder {
	b.set(uint32(c), clauseInclude)
	return b
}

// Without requires component c to be absent.
func (b *QueryBuilder) Without(c Component) *QueryBuilder {
	b.set(uint32(c), clauseExclude)
	return b
}

// WithAny is sugar over repeated With calls for tag groups expressed as
// a slice; it introduces no new clause kind.
func (b *QueryBuilder) WithAny(cs ...Component) *QueryBuilder {
	for _, c := range cs {
		b.With(c)
	}
	return b
}

// WithoutAny is sugar over repeated Without calls.
func (b *QueryBuilder) WithoutAny(cs ...Component) *QueryBuilder {
	for _, c := range cs {
		b.Without(c)
	}
	return b
}

func (b *QueryBuilder) set(c uint32, kind clauseKind) {
	if _, seen := b.byComponent[c]; !seen {
		b.order = append(b.order, c)
	}
	b.byComponent[c] = kind
}

// Build compiles the accumulated clauses into a Query, sorted by
// component identifier.
func (b *QueryBuilder) Build() *Query {
	clauses := make([]clause, 0, len(b.order))
	for _, c := range b.order {
		clauses = append(clauses, clause{kind: b.byComponent[c], component: c})
	}
	sort.Slice(clauses, func(i, j int) bool { return clauses[i].component < clauses[j].component })
	return &Query{clauses: clauses}
}

// Matches reports whether sig satisfies every Include clause and no
// Exclude clause, using a two-cursor linear scan over the sorted
// clauses and the sorted signature.
func (q *Query) Matches(sig Signature) bool {
	iClause, iType := 0, 0
	ids := sig.IDs()
	for iClause < len(q.clauses) {
		c := q.clauses[iClause]
		if iType >= len(ids) {
			if c.kind == clauseInclude {
				return false
			}
			iClause++
			continue
		}
		switch {
		case ids[iType] == c.component:
			if c.kind == clauseExclude {
				return false
			}
			iClause++
			iType++
		case ids[iType] < c.component:
			iType++
		default: // ids[iType] > c.component: subject absent from signature
			if c.kind == clauseInclude {
				return false
			}
			iClause++
		}
	}
	return true
}
