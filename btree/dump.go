package btree

import (
	"fmt"
	"io"
	"strings"

	"btdb/pager"
	"btdb/row"
)

// PrintConstants writes the layout constants, in the order a reader
// debugging a corrupt file would want them. InternalNodeMaxCells is a
// package variable and is printed at its current value.
func PrintConstants(w io.Writer) {
	fmt.Fprintf(w, "ROW_SIZE: %d\n", row.Size)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", commonHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", LeafHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", leafCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", leafSpaceForCells)
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafNodeMaxCells)
	fmt.Fprintf(w, "INTERNAL_NODE_HEADER_SIZE: %d\n", InternalHeaderSize)
	fmt.Fprintf(w, "INTERNAL_NODE_MAX_CELLS: %d\n", InternalNodeMaxCells)
}

// PrintTree writes a depth-first dump of the node at pageNum and its
// descendants to w, indenting two spaces per level, in the same
// format the original project's repl used for its ".btree" command.
func PrintTree(w io.Writer, p *pager.Pager, pageNum uint32, indentLevel int) {
	page := p.Get(pageNum)
	indent := strings.Repeat("  ", indentLevel)

	switch nodeType(page) {
	case NodeLeaf:
		leaf := AsLeaf(page)
		numCells := leaf.NumCells()
		fmt.Fprintf(w, "%s- leaf (size %d)\n", indent, numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s  - %d\n", indent, leaf.Key(i))
		}
	case NodeInternal:
		internal := AsInternal(page)
		numKeys := internal.NumKeys()
		fmt.Fprintf(w, "%s- internal (size %d)\n", indent, numKeys)
		for i := uint32(0); i < numKeys; i++ {
			PrintTree(w, p, internal.childAtCell(i), indentLevel+1)
			fmt.Fprintf(w, "%s- key %d\n", indent, internal.Key(i))
		}
		PrintTree(w, p, internal.RightChild(), indentLevel+1)
	}
}
