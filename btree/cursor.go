package btree

import "btdb/pager"

// Cursor is a position (page_num, cell_num) into a leaf, used both for
// ordered scans (TableStart + Advance) and as the insertion point
// returned by TableFind. It holds no page reference: every access
// re-fetches through the pager, since a split can invalidate the
// (page_num, cell_num) pair a cursor was built from.
type Cursor struct {
	pager      *pager.Pager
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// leaf re-fetches the page this cursor points at as a typed leaf view.
func (c *Cursor) leaf() LeafNode {
	return AsLeaf(c.pager.Get(c.PageNum))
}

// Value returns the raw row bytes at the cursor's current position.
func (c *Cursor) Value() []byte {
	return c.leaf().Value(c.CellNum)
}

// Advance moves to the next cell in key order, following the
// next_leaf sibling chain when the current leaf is exhausted. A
// next_leaf of 0 means there is no right sibling, so the scan ends;
// page 0 is never itself a non-leftmost leaf (root promotion always
// replaces it with a fresh internal node first), so this sentinel
// value is unambiguous.
func (c *Cursor) Advance() {
	leaf := c.leaf()
	c.CellNum++
	if c.CellNum >= leaf.NumCells() {
		next := leaf.NextLeaf()
		if next == 0 {
			c.EndOfTable = true
			return
		}
		c.PageNum = next
		c.CellNum = 0
	}
}
