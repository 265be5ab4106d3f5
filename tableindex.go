package ecsim

// TableIndex owns every table in an engine: a dense vector indexed by
// table id (table 0 is always the empty-signature table) plus a map from
// signature hash to table, enforcing at most one table per signature.
type TableIndex struct {
	tables      []*Table
	bySignature map[SignatureHash]*Table
}

// NewTableIndex returns a TableIndex already holding the empty-signature
// table at id 0, the destination of freshly committed entities.
func NewTableIndex() *TableIndex {
	idx := &TableIndex{
		bySignature: make(map[SignatureHash]*Table),
	}
	empty := newTable(0, EmptySignature)
	idx.tables = append(idx.tables, empty)
	idx.bySignature[EmptySignature.Hash()] = empty
	return idx
}

// EmptyTable returns the table holding freshly committed entities.
func (ti *TableIndex) EmptyTable() *Table { return ti.tables[0] }

// GetByID returns the table with the given id, if any.
func (ti *TableIndex) GetByID(id uint32) (*Table, bool) {
	if int(id) >= len(ti.tables) {
		return nil, false
	}
	return ti.tables[id], true
}

// GetBySignature returns the table matching sig, if one has been created.
func (ti *TableIndex) GetBySignature(sig Signature) (*Table, bool) {
	t, ok := ti.bySignature[sig.Hash()]
	return t, ok
}

func (ti *TableIndex) createTable(sig Signature) *Table {
	t := newTable(uint32(len(ti.tables)), sig)
	ti.tables = append(ti.tables, t)
	ti.bySignature[sig.Hash()] = t
	return t
}

// ResolveWith returns the table for from.Signature().With(c), consulting
// from's edge cache first, then the signature-hash map, and creating the
// table only as a last resort. The new table's with_edges entry is
// populated on from, but the inverse without_edges entry on the new
// table is deliberately left for lazy population on first traversal,
// keeping edge population simple and avoiding a cold-start edge
// explosion when many archetypes share a neighbour.
func (ti *TableIndex) ResolveWith(from *Table, c uint32) (*Table, error) {
	if next, ok := from.withEdges[c]; ok {
		return next, nil
	}
	sig, err := from.signature.With(c)
	if err != nil {
		return nil, err
	}
	next, ok := ti.GetBySignature(sig)
	if !ok {
		next = ti.createTable(sig)
	}
	from.withEdges[c] = next
	return next, nil
}

// ResolveWithout is the symmetric counterpart of ResolveWith for
// removing component c.
func (ti *TableIndex) ResolveWithout(from *Table, c uint32) (*Table, error) {
	if next, ok := from.withoutEdges[c]; ok {
		return next, nil
	}
	sig, err := from.signature.Without(c)
	if err != nil {
		return nil, err
	}
	next, ok := ti.GetBySignature(sig)
	if !ok {
		next = ti.createTable(sig)
	}
	from.withoutEdges[c] = next
	return next, nil
}

// Iter returns every table in identifier order. The returned slice is
// shared with the index and must not be mutated by the caller.
func (ti *TableIndex) Iter() []*Table { return ti.tables }
