package btree

import (
	"encoding/binary"

	"btdb/pager"
	"btdb/row"
)

// LeafNode is a bounds-checked typed view over a page holding
// (key, row) cells in ascending key order.
type LeafNode struct {
	Page *pager.Page
}

// InitializeLeafNode resets p to an empty, non-root leaf with no
// right sibling. Every freshly allocated page must be initialized
// before first use; a zeroed page is not a valid leaf (it reads as an
// empty internal node, per InitializeInternalNode).
func InitializeLeafNode(p *pager.Page) LeafNode {
	setNodeType(p, NodeLeaf)
	setIsRoot(p, false)
	n := LeafNode{Page: p}
	n.SetNumCells(0)
	n.SetNextLeaf(0)
	return n
}

// AsLeaf wraps an already-initialized leaf page.
func AsLeaf(p *pager.Page) LeafNode { return LeafNode{Page: p} }

func (n LeafNode) IsRoot() bool         { return isRoot(n.Page) }
func (n LeafNode) SetIsRoot(v bool)     { setIsRoot(n.Page, v); n.Page.Dirty = true }
func (n LeafNode) ParentPageNum() uint32 { return parentPageNum(n.Page) }
func (n LeafNode) SetParentPageNum(pn uint32) { setParentPageNum(n.Page, pn) }

func (n LeafNode) NumCells() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func (n LeafNode) SetNumCells(count uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], count)
	n.Page.Dirty = true
}

func (n LeafNode) NextLeaf() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[leafNextLeafOffset : leafNextLeafOffset+leafNextLeafSize])
}

func (n LeafNode) SetNextLeaf(pageNum uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[leafNextLeafOffset:leafNextLeafOffset+leafNextLeafSize], pageNum)
	n.Page.Dirty = true
}

func (n LeafNode) cellOffset(cellNum uint32) int {
	return LeafHeaderSize + int(cellNum)*leafCellSize
}

func (n LeafNode) Key(cellNum uint32) uint32 {
	off := n.cellOffset(cellNum)
	return binary.LittleEndian.Uint32(n.Page.Data[off : off+leafKeySize])
}

func (n LeafNode) setKey(cellNum uint32, key uint32) {
	off := n.cellOffset(cellNum)
	binary.LittleEndian.PutUint32(n.Page.Data[off:off+leafKeySize], key)
	n.Page.Dirty = true
}

// Value returns the raw row.Size-byte region for cellNum. Callers pass
// it to row.Deserialize / row.Serialize.
func (n LeafNode) Value(cellNum uint32) []byte {
	off := n.cellOffset(cellNum) + leafKeySize
	return n.Page.Data[off : off+row.Size]
}

func (n LeafNode) setCell(cellNum uint32, key uint32, r row.Row) {
	n.setKey(cellNum, key)
	row.Serialize(r, n.Value(cellNum))
	n.Page.Dirty = true
}

func (n LeafNode) copyCellFrom(dstCell uint32, src LeafNode, srcCell uint32) {
	dstOff := n.cellOffset(dstCell)
	srcOff := src.cellOffset(srcCell)
	copy(n.Page.Data[dstOff:dstOff+leafCellSize], src.Page.Data[srcOff:srcOff+leafCellSize])
	n.Page.Dirty = true
}

// FindCell returns the smallest cell index whose key is >= target, or
// NumCells() if every key is smaller. This doubles as the in-order
// insertion point whether or not the key is already present.
func (n LeafNode) FindCell(target uint32) uint32 {
	numCells := n.NumCells()
	lo, hi := uint32(0), numCells
	for lo != hi {
		mid := (lo + hi) / 2
		keyAtMid := n.Key(mid)
		if target == keyAtMid {
			return mid
		}
		if target < keyAtMid {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// MaxKey returns the greatest key stored in this leaf, or 0 if empty
// (an empty leaf can only be the root of a brand-new tree, so its max
// key is never consulted by a parent).
func (n LeafNode) MaxKey() uint32 {
	count := n.NumCells()
	if count == 0 {
		return 0
	}
	return n.Key(count - 1)
}

// InternalNode is a bounds-checked typed view over a page holding
// (child_page, key) cells plus a right_child pointer. Cell i's key is
// the maximum key reachable via child i; all keys under right_child
// exceed every cell key.
type InternalNode struct {
	Page *pager.Page
}

// InitializeInternalNode resets p to an empty, non-root internal node.
// RightChild is set to InvalidPageNum so it can be told apart from a
// node whose first real child happens to be page 0.
func InitializeInternalNode(p *pager.Page) InternalNode {
	setNodeType(p, NodeInternal)
	setIsRoot(p, false)
	n := InternalNode{Page: p}
	n.SetNumKeys(0)
	n.SetRightChild(InvalidPageNum)
	return n
}

// AsInternal wraps an already-initialized internal page.
func AsInternal(p *pager.Page) InternalNode { return InternalNode{Page: p} }

func (n InternalNode) IsRoot() bool          { return isRoot(n.Page) }
func (n InternalNode) SetIsRoot(v bool)      { setIsRoot(n.Page, v); n.Page.Dirty = true }
func (n InternalNode) ParentPageNum() uint32 { return parentPageNum(n.Page) }
func (n InternalNode) SetParentPageNum(pn uint32) { setParentPageNum(n.Page, pn) }

func (n InternalNode) NumKeys() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[internalNumKeysOffset : internalNumKeysOffset+internalNumKeysSize])
}

func (n InternalNode) SetNumKeys(count uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[internalNumKeysOffset:internalNumKeysOffset+internalNumKeysSize], count)
	n.Page.Dirty = true
}

func (n InternalNode) RightChild() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[internalRightChildOffset : internalRightChildOffset+internalRightChildSize])
}

func (n InternalNode) SetRightChild(pageNum uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[internalRightChildOffset:internalRightChildOffset+internalRightChildSize], pageNum)
	n.Page.Dirty = true
}

func (n InternalNode) cellOffset(cellNum uint32) int {
	return InternalHeaderSize + int(cellNum)*internalCellSize
}

func (n InternalNode) Key(cellNum uint32) uint32 {
	off := n.cellOffset(cellNum) + internalChildSize
	return binary.LittleEndian.Uint32(n.Page.Data[off : off+internalKeySize])
}

func (n InternalNode) setKey(cellNum uint32, key uint32) {
	off := n.cellOffset(cellNum) + internalChildSize
	binary.LittleEndian.PutUint32(n.Page.Data[off:off+internalKeySize], key)
	n.Page.Dirty = true
}

func (n InternalNode) childAtCell(cellNum uint32) uint32 {
	off := n.cellOffset(cellNum)
	return binary.LittleEndian.Uint32(n.Page.Data[off : off+internalChildSize])
}

func (n InternalNode) setChildAtCell(cellNum uint32, pageNum uint32) {
	off := n.cellOffset(cellNum)
	binary.LittleEndian.PutUint32(n.Page.Data[off:off+internalChildSize], pageNum)
	n.Page.Dirty = true
}

// Child returns the childNum'th child of num_keys+1 children: cell
// children 0..num_keys-1, then RightChild at index num_keys. Fatal if
// the resolved slot is the invalid-page sentinel: an internal node's
// children, once addressed this way, must exist.
func (n InternalNode) Child(childNum uint32) uint32 {
	numKeys := n.NumKeys()
	var pageNum uint32
	if childNum == numKeys {
		pageNum = n.RightChild()
	} else {
		pageNum = n.childAtCell(childNum)
	}
	if pageNum == InvalidPageNum {
		panic("btree: accessed invalid-page sentinel child")
	}
	return pageNum
}

func (n InternalNode) setCell(cellNum uint32, childPage uint32, key uint32) {
	n.setChildAtCell(cellNum, childPage)
	n.setKey(cellNum, key)
}

func (n InternalNode) copyCellFrom(dstCell uint32, src InternalNode, srcCell uint32) {
	dstOff := n.cellOffset(dstCell)
	srcOff := src.cellOffset(srcCell)
	copy(n.Page.Data[dstOff:dstOff+internalCellSize], src.Page.Data[srcOff:srcOff+internalCellSize])
	n.Page.Dirty = true
}

// FindChild returns the smallest cell index i with Key(i) >= key, or
// NumKeys() if every key is smaller (meaning: follow RightChild).
func (n InternalNode) FindChild(key uint32) uint32 {
	numKeys := n.NumKeys()
	lo, hi := uint32(0), numKeys
	for lo != hi {
		mid := (lo + hi) / 2
		if n.Key(mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
