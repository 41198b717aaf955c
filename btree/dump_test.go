package btree

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintConstantsIncludesAllEightLines(t *testing.T) {
	var buf bytes.Buffer
	PrintConstants(&buf)

	want := []string{
		"ROW_SIZE:",
		"COMMON_NODE_HEADER_SIZE:",
		"LEAF_NODE_HEADER_SIZE:",
		"LEAF_NODE_CELL_SIZE:",
		"LEAF_NODE_SPACE_FOR_CELLS:",
		"LEAF_NODE_MAX_CELLS:",
		"INTERNAL_NODE_HEADER_SIZE:",
		"INTERNAL_NODE_MAX_CELLS:",
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("PrintConstants wrote %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, prefix := range want {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestPrintTreeLeafAndInternal(t *testing.T) {
	p := newTempPager(t)
	tree := Open(p)

	n := uint32(LeafNodeMaxCells) + 1
	for i := uint32(0); i < n; i++ {
		if err := tree.Insert(i, sampleRow(i)); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	var buf bytes.Buffer
	PrintTree(&buf, p, RootPageNum, 0)
	out := buf.String()

	if !strings.Contains(out, "- internal (size 1)") {
		t.Errorf("expected a one-key internal root after split, got:\n%s", out)
	}
	if !strings.Contains(out, "- leaf (size") {
		t.Errorf("expected leaf entries in dump, got:\n%s", out)
	}
	if !strings.Contains(out, "- key ") {
		t.Errorf("expected a separator key line, got:\n%s", out)
	}
}
