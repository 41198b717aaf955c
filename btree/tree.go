package btree

import (
	"errors"

	"btdb/pager"
	"btdb/row"
)

// RootPageNum is fixed: page 0 is always the tree root. Root promotion
// never changes this — it reinitializes page 0 in place as a new
// internal node and demotes the old root's contents to a freshly
// allocated page instead.
const RootPageNum = 0

var (
	// ErrDuplicateKey is returned by Insert when the key is already
	// present; no mutation occurs.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrTableFull is returned when an insert would require a page
	// beyond pager.TableMaxPages. Capacity is checked before any
	// mutation for a given split step, so a single Insert call never
	// leaves a half-written node behind — though if capacity runs out
	// partway through a multi-level split cascade, the split steps
	// that already completed stay committed: this store has no
	// rollback (see the Non-goals on transactions).
	ErrTableFull = errors.New("table full")
)

// Tree is the B+ tree index over one pager-backed file.
type Tree struct {
	pager *pager.Pager
}

// Open binds a Tree to an already-open pager, initializing a fresh
// empty leaf root at page 0 if the file is new.
func Open(p *pager.Pager) *Tree {
	t := &Tree{pager: p}
	if p.NumPages() == 0 {
		root := p.Get(RootPageNum)
		leaf := InitializeLeafNode(root)
		leaf.SetIsRoot(true)
	}
	return t
}

func (t *Tree) allocatePage() (uint32, error) {
	if t.pager.NumPages() >= pager.TableMaxPages {
		return 0, ErrTableFull
	}
	pageNum := t.pager.GetUnusedPageNum()
	t.pager.Get(pageNum) // faults in a zeroed page, bumping NumPages
	return pageNum, nil
}

// maxKey returns the greatest key reachable under pageNum, descending
// through right_child pointers until it hits a leaf.
func (t *Tree) maxKey(pageNum uint32) uint32 {
	page := t.pager.Get(pageNum)
	if nodeType(page) == NodeLeaf {
		return AsLeaf(page).MaxKey()
	}
	return t.maxKey(AsInternal(page).RightChild())
}

// TableStart returns a cursor positioned at the first row, with
// EndOfTable already set if the tree is empty.
func (t *Tree) TableStart() *Cursor {
	c := t.TableFind(0)
	leaf := AsLeaf(t.pager.Get(c.PageNum))
	c.EndOfTable = leaf.NumCells() == 0
	return c
}

// TableFind descends from the root to the leaf that should contain
// key, returning a cursor at the smallest cell index whose key is >=
// key — the correct insertion point whether or not key exists.
func (t *Tree) TableFind(key uint32) *Cursor {
	pageNum := uint32(RootPageNum)
	for {
		page := t.pager.Get(pageNum)
		if nodeType(page) == NodeLeaf {
			leaf := AsLeaf(page)
			return &Cursor{pager: t.pager, PageNum: pageNum, CellNum: leaf.FindCell(key)}
		}
		internal := AsInternal(page)
		pageNum = internal.Child(internal.FindChild(key))
	}
}

// Insert adds (key, r) to the tree. Duplicate keys are rejected before
// any mutation.
func (t *Tree) Insert(key uint32, r row.Row) error {
	c := t.TableFind(key)
	leaf := AsLeaf(t.pager.Get(c.PageNum))
	if c.CellNum < leaf.NumCells() && leaf.Key(c.CellNum) == key {
		return ErrDuplicateKey
	}
	return t.leafNodeInsert(c, key, r)
}

// leafNodeInsert writes (key, r) at the cursor's sorted position,
// shifting later cells right, or splits the leaf if it is full.
func (t *Tree) leafNodeInsert(c *Cursor, key uint32, r row.Row) error {
	leaf := AsLeaf(t.pager.Get(c.PageNum))
	numCells := leaf.NumCells()

	if numCells >= LeafNodeMaxCells {
		return t.leafNodeSplitAndInsert(c, key, r)
	}

	for i := numCells; i > c.CellNum; i-- {
		leaf.copyCellFrom(i, leaf, i-1)
	}
	leaf.setCell(c.CellNum, key, r)
	leaf.SetNumCells(numCells + 1)
	return nil
}

// leafNodeSplitAndInsert redistributes the LeafNodeMaxCells existing
// cells plus the incoming one across old and a freshly allocated
// sibling leaf, then propagates the split to the parent (or promotes
// a new root, if old was the root).
func (t *Tree) leafNodeSplitAndInsert(c *Cursor, key uint32, r row.Row) error {
	oldLeaf := AsLeaf(t.pager.Get(c.PageNum))
	oldMax := oldLeaf.MaxKey()

	newPageNum, err := t.allocatePage()
	if err != nil {
		return err
	}
	newLeaf := InitializeLeafNode(t.pager.Get(newPageNum))
	newLeaf.SetParentPageNum(oldLeaf.ParentPageNum())
	newLeaf.SetNextLeaf(oldLeaf.NextLeaf())
	oldLeaf.SetNextLeaf(newPageNum)

	n := uint32(LeafNodeMaxCells) + 1
	right := (n + 1) / 2 // ceil(n/2)
	left := n - right

	for i := int(n) - 1; i >= 0; i-- {
		idx := uint32(i)

		dest := oldLeaf
		destIdx := idx
		if idx >= left {
			dest = newLeaf
			destIdx = idx - left
		}

		switch {
		case idx == c.CellNum:
			dest.setCell(destIdx, key, r)
		case idx > c.CellNum:
			dest.copyCellFrom(destIdx, oldLeaf, idx-1)
		default:
			dest.copyCellFrom(destIdx, oldLeaf, idx)
		}
	}

	oldLeaf.SetNumCells(left)
	newLeaf.SetNumCells(right)

	if oldLeaf.IsRoot() {
		return t.createNewRoot(newPageNum)
	}

	parentPageNum := oldLeaf.ParentPageNum()
	parent := AsInternal(t.pager.Get(parentPageNum))
	t.updateInternalNodeKey(parent, oldMax, oldLeaf.MaxKey())
	return t.internalNodeInsert(parentPageNum, newPageNum)
}

// createNewRoot copies the whole contents of page 0 into a newly
// allocated page, demoting them to the left child of a fresh internal root,
// with rightChildPageNum as the right child. Page 0 itself is
// reinitialized in place so it always remains the root.
func (t *Tree) createNewRoot(rightChildPageNum uint32) error {
	root := t.pager.Get(RootPageNum)
	rightChildPage := t.pager.Get(rightChildPageNum)
	rootWasInternal := nodeType(root) == NodeInternal

	leftChildPageNum, err := t.allocatePage()
	if err != nil {
		return err
	}
	leftChildPage := t.pager.Get(leftChildPageNum)

	if rootWasInternal {
		InitializeInternalNode(rightChildPage)
		InitializeInternalNode(leftChildPage)
	}

	leftChildPage.Data = root.Data
	leftChildPage.Dirty = true
	setIsRoot(leftChildPage, false)

	if nodeType(leftChildPage) == NodeInternal {
		left := AsInternal(leftChildPage)
		for i := uint32(0); i < left.NumKeys(); i++ {
			setParentPageNum(t.pager.Get(left.Child(i)), leftChildPageNum)
		}
		setParentPageNum(t.pager.Get(left.RightChild()), leftChildPageNum)
	}

	newRoot := InitializeInternalNode(root)
	newRoot.SetIsRoot(true)
	newRoot.SetNumKeys(1)
	newRoot.setCell(0, leftChildPageNum, t.maxKey(leftChildPageNum))
	newRoot.SetRightChild(rightChildPageNum)

	setParentPageNum(leftChildPage, RootPageNum)
	setParentPageNum(rightChildPage, RootPageNum)
	return nil
}

// internalNodeInsert splices a (child, child_max_key) cell into
// parent, replacing the right-child slot if the new child is the new
// maximum, or splitting parent if it is already full.
func (t *Tree) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parent := AsInternal(t.pager.Get(parentPageNum))
	childMax := t.maxKey(childPageNum)
	index := parent.FindChild(childMax)

	if parent.NumKeys() >= InternalNodeMaxCells {
		return t.internalNodeSplitAndInsert(parentPageNum, childPageNum)
	}

	rightChildPageNum := parent.RightChild()
	if rightChildPageNum == InvalidPageNum {
		parent.SetRightChild(childPageNum)
		return nil
	}

	originalNumKeys := parent.NumKeys()
	rightMax := t.maxKey(rightChildPageNum)
	parent.SetNumKeys(originalNumKeys + 1)

	if childMax > rightMax {
		parent.setCell(originalNumKeys, rightChildPageNum, rightMax)
		parent.SetRightChild(childPageNum)
	} else {
		for i := originalNumKeys; i > index; i-- {
			parent.copyCellFrom(i, parent, i-1)
		}
		parent.setCell(index, childPageNum, childMax)
	}
	return nil
}

// internalNodeSplitAndInsert splits an overflowing internal node:
// the former right child and the top half of its cells migrate to a
// new sibling, then the incoming child lands in whichever of the two
// halves its key belongs to.
func (t *Tree) internalNodeSplitAndInsert(parentPageNum, childPageNum uint32) error {
	oldPageNum := parentPageNum
	oldMax := t.maxKey(parentPageNum)
	childMax := t.maxKey(childPageNum)

	newPageNum, err := t.allocatePage()
	if err != nil {
		return err
	}

	oldNode := AsInternal(t.pager.Get(oldPageNum))
	splittingRoot := oldNode.IsRoot()

	var grandparentPageNum uint32
	if splittingRoot {
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		root := AsInternal(t.pager.Get(RootPageNum))
		grandparentPageNum = RootPageNum
		oldPageNum = root.Child(0)
		oldNode = AsInternal(t.pager.Get(oldPageNum))
	} else {
		grandparentPageNum = oldNode.ParentPageNum()
		InitializeInternalNode(t.pager.Get(newPageNum))
	}

	curPageNum := oldNode.RightChild()
	if curPageNum != InvalidPageNum {
		if err := t.internalNodeInsert(newPageNum, curPageNum); err != nil {
			return err
		}
		setParentPageNum(t.pager.Get(curPageNum), newPageNum)
	}
	oldNode.SetRightChild(InvalidPageNum)

	for i := int(InternalNodeMaxCells) - 1; i > int(InternalNodeMaxCells)/2; i-- {
		movePageNum := oldNode.childAtCell(uint32(i))
		if err := t.internalNodeInsert(newPageNum, movePageNum); err != nil {
			return err
		}
		setParentPageNum(t.pager.Get(movePageNum), newPageNum)
		oldNode.SetNumKeys(oldNode.NumKeys() - 1)
	}

	oldNode.SetRightChild(oldNode.childAtCell(oldNode.NumKeys() - 1))
	oldNode.SetNumKeys(oldNode.NumKeys() - 1)

	maxAfterSplit := t.maxKey(oldPageNum)
	destPageNum := newPageNum
	if childMax < maxAfterSplit {
		destPageNum = oldPageNum
	}
	if err := t.internalNodeInsert(destPageNum, childPageNum); err != nil {
		return err
	}
	setParentPageNum(t.pager.Get(childPageNum), destPageNum)

	grandparent := AsInternal(t.pager.Get(grandparentPageNum))
	t.updateInternalNodeKey(grandparent, oldMax, t.maxKey(oldPageNum))

	if !splittingRoot {
		if err := t.internalNodeInsert(grandparentPageNum, newPageNum); err != nil {
			return err
		}
		setParentPageNum(t.pager.Get(newPageNum), grandparentPageNum)
	}
	return nil
}

// updateInternalNodeKey replaces the separator key oldKey with newKey
// in node, locating it by the child-index it used to bound.
func (t *Tree) updateInternalNodeKey(node InternalNode, oldKey, newKey uint32) {
	idx := node.FindChild(oldKey)
	node.setKey(idx, newKey)
}
