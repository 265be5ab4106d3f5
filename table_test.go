package ecsim

import "testing"

func TestTableAddRemoveReusesFreedRows(t *testing.T) {
	sig, _ := NewSignature(1)
	tbl := newTable(0, sig)

	r0 := tbl.Add(Entity(10))
	r1 := tbl.Add(Entity(11))
	if r0 == r1 {
		t.Fatalf("two live Add calls returned the same row %d", r0)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	freed := tbl.Remove(r0)
	if freed != Entity(10) {
		t.Errorf("Remove() returned entity %d, want 10", freed)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() after Remove = %d, want 1", tbl.Len())
	}

	r2 := tbl.Add(Entity(12))
	if r2 != r0 {
		t.Errorf("Add() after Remove allocated row %d, want the freed row %d", r2, r0)
	}
}

func TestTableGetSetAndEmptyCell(t *testing.T) {
	sig, _ := NewSignature(1, 2)
	tbl := newTable(0, sig)
	row := tbl.Add(Entity(1))

	if _, err := tbl.Get(row, 0); err == nil {
		t.Error("Get() on a never-written cell: want EmptyCellError, got nil")
	}

	tbl.Set(row, 0, "hello")
	v, err := tbl.Get(row, 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v.(string) != "hello" {
		t.Errorf("Get() = %v, want %q", v, "hello")
	}
}

func TestTableRemoveClearsCells(t *testing.T) {
	sig, _ := NewSignature(1)
	tbl := newTable(0, sig)
	row := tbl.Add(Entity(1))
	tbl.Set(row, 0, 42)

	tbl.Remove(row)
	newRow := tbl.Add(Entity(2))
	if newRow != row {
		t.Fatalf("expected the freed row to be reused")
	}
	if _, err := tbl.Get(newRow, 0); err == nil {
		t.Error("Get() on a row reused after Remove: want EmptyCellError (cell cleared), got value")
	}
}

func TestTableGrowsBeyondInitialCapacity(t *testing.T) {
	sig, _ := NewSignature(1)
	tbl := newTable(0, sig)
	startCap := tbl.capacity()

	var rows []int
	for i := 0; i < startCap*3; i++ {
		rows = append(rows, tbl.Add(Entity(i)))
	}
	if tbl.capacity() <= startCap {
		t.Fatalf("capacity() = %d after growth, want > %d", tbl.capacity(), startCap)
	}
	for i, row := range rows {
		if tbl.EntityAt(row) != Entity(i) {
			t.Errorf("EntityAt(%d) = %d, want %d after growth", row, tbl.EntityAt(row), i)
		}
	}
}

func TestTableIterateVisitsEachOccupiedRowOnce(t *testing.T) {
	sig, _ := NewSignature(1)
	tbl := newTable(0, sig)

	want := map[Entity]bool{}
	for i := 0; i < 10; i++ {
		e := Entity(100 + i)
		tbl.Add(e)
		want[e] = true
	}
	if col := tbl.ColumnIndex(1); col != 0 {
		t.Fatalf("ColumnIndex(1) = %d, want 0", col)
	}

	removedRow := 3
	removedEntity := tbl.EntityAt(removedRow)
	tbl.Remove(removedRow)
	delete(want, removedEntity)

	seen := map[Entity]bool{}
	tbl.Iterate(func(_ int, e Entity) bool {
		seen[e] = true
		return true
	})

	if len(seen) != len(want) {
		t.Fatalf("Iterate visited %d entities, want %d", len(seen), len(want))
	}
	for e := range want {
		if !seen[e] {
			t.Errorf("Iterate did not visit entity %d", e)
		}
	}
}

func TestCopyRowOnAddAndRemove(t *testing.T) {
	from, _ := NewSignature(10, 30)
	to, _ := from.With(20)

	oldTable := newTable(0, from)
	widerTable := newTable(1, to)

	oldRow := oldTable.Add(Entity(1))
	oldTable.Set(oldRow, 0, "ten")
	oldTable.Set(oldRow, 1, "thirty")

	widerRow := widerTable.Add(Entity(1))
	insertCol := widerTable.ColumnIndex(20)
	copyRowOnAdd(oldTable, oldRow, widerTable, widerRow, insertCol, "twenty")

	for col, want := range map[int]string{0: "ten", 1: "twenty", 2: "thirty"} {
		v, err := widerTable.Get(widerRow, col)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", col, err)
		}
		if v.(string) != want {
			t.Errorf("Get(%d) = %v, want %q", col, v, want)
		}
	}

	backTable := newTable(2, from)
	backRow := backTable.Add(Entity(1))
	removedCol := widerTable.ColumnIndex(20)
	copyRowOnRemove(widerTable, widerRow, backTable, backRow, removedCol)

	for col, want := range map[int]string{0: "ten", 1: "thirty"} {
		v, err := backTable.Get(backRow, col)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", col, err)
		}
		if v.(string) != want {
			t.Errorf("Get(%d) = %v, want %q", col, v, want)
		}
	}
}
