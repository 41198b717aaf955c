package pager

import (
	"os"
	"path/filepath"
	"testing"
)

// Opening a brand-new or empty file yields zero pages.
func TestOpenEmptyFile(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_empty_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 0 {
		t.Errorf("expected 0 pages, got %d", p.NumPages())
	}
}

// Get on a fresh file materializes a zeroed page and bumps NumPages.
func TestGetMaterializesNewPage(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_new_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if got := p.GetUnusedPageNum(); got != 0 {
		t.Fatalf("GetUnusedPageNum: expected 0, got %d", got)
	}

	pg := p.Get(0)
	for i, b := range pg.Data {
		if b != 0 {
			t.Fatalf("expected freshly allocated page to be zeroed, byte %d = %d", i, b)
		}
	}
	if p.NumPages() != 1 {
		t.Errorf("expected NumPages=1 after Get(0), got %d", p.NumPages())
	}
	if p.GetUnusedPageNum() != 1 {
		t.Errorf("expected GetUnusedPageNum=1, got %d", p.GetUnusedPageNum())
	}
}

// Flush writes a dirty page's full buffer and clears Dirty; Close flushes
// every resident dirty page.
func TestFlushAndClosePersist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flush.db")

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	pg := p.Get(p.GetUnusedPageNum())
	pg.Data[0] = 0xAB
	pg.Data[PageSize-1] = 0xCD
	pg.Dirty = true

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != PageSize {
		t.Fatalf("expected file size %d, got %d", PageSize, len(data))
	}
	if data[0] != 0xAB || data[PageSize-1] != 0xCD {
		t.Errorf("unexpected persisted bytes: first=0x%X last=0x%X", data[0], data[PageSize-1])
	}
}

// Reopening a file with a full page loads it back verbatim, and Get past
// the on-disk page count yields a zeroed page rather than an error.
func TestReopenLoadsExistingPage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reopen.db")

	buf := make([]byte, PageSize)
	for i := range buf {
		buf[i] = 0x01
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 1 {
		t.Fatalf("expected 1 page on open, got %d", p.NumPages())
	}
	pg := p.Get(0)
	if pg.Data[0] != 0x01 || pg.Data[PageSize-1] != 0x01 {
		t.Errorf("unexpected data in loaded page: first=0x%X last=0x%X", pg.Data[0], pg.Data[PageSize-1])
	}

	next := p.Get(1)
	for i, b := range next.Data {
		if b != 0 {
			t.Fatalf("expected page beyond EOF to be zeroed, byte %d = %d", i, b)
		}
	}
	if p.NumPages() != 2 {
		t.Errorf("expected NumPages=2 after faulting in page 1, got %d", p.NumPages())
	}
}

// Get returns the same cached instance on repeated calls, and never
// re-reads the page from disk once resident.
func TestGetReturnsStableReference(t *testing.T) {
	tmp, err := os.CreateTemp("", "pager_test_stable_*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	first := p.Get(0)
	first.Data[5] = 0x42
	second := p.Get(0)
	if second.Data[5] != 0x42 {
		t.Errorf("expected Get to return the same cached page instance")
	}
}
