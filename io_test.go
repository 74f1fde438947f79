package spike

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveThenOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	e := testEditor(24, 80)
	loadRows(e, "alpha", "beta\twith tab", "", "delta")
	e.filename = path
	e.dirty = 4

	if err := e.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.dirty != 0 {
		t.Fatalf("dirty = %d after save, want 0", e.dirty)
	}
	if !strings.Contains(e.statusmsg, "bytes written") {
		t.Fatalf("statusmsg = %q, want bytes-written report", e.statusmsg)
	}

	reloaded := testEditor(24, 80)
	if err := reloaded.Open(path); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(reloaded.rows) != len(e.rows) {
		t.Fatalf("reloaded %d rows, want %d", len(reloaded.rows), len(e.rows))
	}
	for i := range e.rows {
		if reloaded.rows[i].chars != e.rows[i].chars {
			t.Fatalf("row %d = %q, want %q", i, reloaded.rows[i].chars, e.rows[i].chars)
		}
	}
	if reloaded.dirty != 0 {
		t.Fatalf("dirty = %d after load, want 0", reloaded.dirty)
	}
}

func TestReadLinesStripsCarriageReturns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("readLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("lines = %q, want [a b]", lines)
	}
}

func TestReadLinesWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noeol.txt")
	if err := os.WriteFile(path, []byte("a\nb"), 0644); err != nil {
		t.Fatal(err)
	}
	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("readLines: %v", err)
	}
	if len(lines) != 2 || lines[1] != "b" {
		t.Fatalf("lines = %q, want [a b]", lines)
	}
}

func TestOpenMissingFileFails(t *testing.T) {
	e := testEditor(24, 80)
	if err := e.Open(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("opening a missing file should fail")
	}
}

func TestSaveFailureLeavesBufferDirtyAndUnchanged(t *testing.T) {
	e := testEditor(24, 80)
	loadRows(e, "keep", "me")
	e.filename = filepath.Join(t.TempDir(), "missing-dir", "doc.txt")
	e.dirty = 2
	before := string(e.rowsToText())

	if err := e.Save(); err == nil {
		t.Fatalf("save into a missing directory should fail")
	}
	if e.dirty != 2 {
		t.Fatalf("dirty = %d after failed save, want 2", e.dirty)
	}
	if got := string(e.rowsToText()); got != before {
		t.Fatalf("rows changed by failed save: %q", got)
	}
	if !strings.Contains(e.statusmsg, "Can't save") {
		t.Fatalf("statusmsg = %q, want I/O error report", e.statusmsg)
	}
}

func TestWriteAllReportsByteCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.txt")
	n, err := writeAll(path, []byte("12345"))
	if err != nil || n != 5 {
		t.Fatalf("writeAll = (%d, %v), want (5, nil)", n, err)
	}
}
