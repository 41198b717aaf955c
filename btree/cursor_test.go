package btree

import (
	"os"
	"testing"

	"btdb/pager"
	"btdb/row"
)

func newTempPager(t *testing.T) *pager.Pager {
	t.Helper()
	f, err := os.CreateTemp("", "btree-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	name := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(name) })

	p, err := pager.Open(name)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestCursorAdvanceWithinOneLeaf(t *testing.T) {
	p := newTempPager(t)
	tree := Open(p)

	for _, id := range []uint32{3, 1, 2} {
		if err := tree.Insert(id, sampleRow(id)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	c := tree.TableStart()
	var got []uint32
	for !c.EndOfTable {
		got = append(got, row.Deserialize(c.Value()).ID)
		c.Advance()
	}
	want := []uint32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("scanned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scanned %v, want %v", got, want)
		}
	}
}

func TestCursorAdvanceFollowsNextLeafAcrossSplit(t *testing.T) {
	p := newTempPager(t)
	tree := Open(p)

	n := uint32(LeafNodeMaxCells) + 5
	for i := uint32(0); i < n; i++ {
		if err := tree.Insert(i, sampleRow(i)); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	c := tree.TableStart()
	var count uint32
	last := int64(-1)
	for !c.EndOfTable {
		id := int64(row.Deserialize(c.Value()).ID)
		if id <= last {
			t.Fatalf("scan out of order: %d after %d", id, last)
		}
		last = id
		count++
		c.Advance()
	}
	if count != n {
		t.Fatalf("scanned %d rows, want %d", count, n)
	}
}

func TestTableStartEmptyTree(t *testing.T) {
	p := newTempPager(t)
	tree := Open(p)

	c := tree.TableStart()
	if !c.EndOfTable {
		t.Fatalf("TableStart() on empty tree should have EndOfTable = true")
	}
}
