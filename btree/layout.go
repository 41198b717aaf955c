// Package btree implements the on-disk B+ tree: leaf and internal node
// layouts, search/insert with split propagation, and the cursor used
// for both ordered scans and insertion-point lookup.
//
// Every page is exactly one node, discriminated by the node-type byte
// at offset 0. Leaf and internal nodes are modeled as two typed views
// over the same [pager.PageSize]byte buffer rather than as a class
// hierarchy; InternalNodeMaxCells is kept deliberately small so split
// propagation is easy to exercise.
package btree

import (
	"encoding/binary"

	"btdb/pager"
	"btdb/row"
)

// Node type tags, written to the first byte of every page.
const (
	NodeInternal byte = 0
	NodeLeaf     byte = 1
)

// InvalidPageNum is the sentinel stored in a freshly initialized
// internal node's right-child slot. It distinguishes "no child yet"
// from the otherwise-valid child page number 0 (the root).
const InvalidPageNum = ^uint32(0)

// Common header, present on every node.
const (
	nodeTypeOffset   = 0
	nodeTypeSize     = 1
	isRootOffset     = nodeTypeOffset + nodeTypeSize
	isRootSize       = 1
	parentPageOffset = isRootOffset + isRootSize
	parentPageSize   = 4
	commonHeaderSize = parentPageOffset + parentPageSize
)

// Leaf header and cell layout.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	leafNextLeafOffset = leafNumCellsOffset + leafNumCellsSize
	leafNextLeafSize   = 4
	LeafHeaderSize     = leafNextLeafOffset + leafNextLeafSize

	leafKeySize   = 4
	leafCellSize  = leafKeySize + row.Size
	leafSpaceForCells = pager.PageSize - LeafHeaderSize

	// LeafNodeMaxCells is how many (key, row) cells fit in one page.
	LeafNodeMaxCells = leafSpaceForCells / leafCellSize
)

// Internal header and cell layout.
const (
	internalNumKeysOffset  = commonHeaderSize
	internalNumKeysSize    = 4
	internalRightChildOffset = internalNumKeysOffset + internalNumKeysSize
	internalRightChildSize   = 4
	InternalHeaderSize       = internalRightChildOffset + internalRightChildSize

	internalChildSize = 4
	internalKeySize   = 4
	internalCellSize  = internalChildSize + internalKeySize
)

// InternalNodeMaxCells is configurably small (the reference value is 3)
// to exercise split propagation without needing thousands of rows.
var InternalNodeMaxCells uint32 = 3

// nodeType reads the discriminator byte shared by both node kinds.
func nodeType(p *pager.Page) byte { return p.Data[nodeTypeOffset] }

func setNodeType(p *pager.Page, t byte) { p.Data[nodeTypeOffset] = t }

func isRoot(p *pager.Page) bool { return p.Data[isRootOffset] != 0 }

func setIsRoot(p *pager.Page, v bool) {
	if v {
		p.Data[isRootOffset] = 1
	} else {
		p.Data[isRootOffset] = 0
	}
}

func parentPageNum(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[parentPageOffset : parentPageOffset+parentPageSize])
}

func setParentPageNum(p *pager.Page, pageNum uint32) {
	binary.LittleEndian.PutUint32(p.Data[parentPageOffset:parentPageOffset+parentPageSize], pageNum)
	p.Dirty = true
}
