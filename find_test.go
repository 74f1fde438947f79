package spike

import "testing"

func TestSearchForwardWraparound(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "cat", "dog", "cat")
	s := newSearchSession(e)

	s.Key("cat", 't') // typing: no prior match, scan from the top
	if e.cy != 0 {
		t.Fatalf("first match at row %d, want 0", e.cy)
	}
	s.Key("cat", arrowRight)
	if e.cy != 2 {
		t.Fatalf("second match at row %d, want 2", e.cy)
	}
	s.Key("cat", arrowRight)
	if e.cy != 0 {
		t.Fatalf("wrapped match at row %d, want 0", e.cy)
	}
}

func TestSearchBackwardWrapsToLastRow(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "cat", "dog", "cat")
	s := newSearchSession(e)

	s.Key("cat", 't')
	s.Key("cat", arrowLeft)
	if e.cy != 2 {
		t.Fatalf("backward from row 0 should wrap to row 2, got %d", e.cy)
	}
}

func TestSearchHighlightSaveRestore(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "cat", "dog", "cat")
	s := newSearchSession(e)

	s.Key("cat", 't')
	for j := 0; j < 3; j++ {
		if e.rows[0].hl[j] != hlMatch {
			t.Fatalf("row 0 hl[%d] = %d, want match override", j, e.rows[0].hl[j])
		}
	}

	s.Key("cat", arrowRight)
	for j := 0; j < 3; j++ {
		if e.rows[0].hl[j] != hlNormal {
			t.Fatalf("row 0 hl[%d] = %d, want restored to normal", j, e.rows[0].hl[j])
		}
		if e.rows[2].hl[j] != hlMatch {
			t.Fatalf("row 2 hl[%d] = %d, want match override", j, e.rows[2].hl[j])
		}
	}

	s.Key("cat", keyEnter)
	for j := 0; j < 3; j++ {
		if e.rows[2].hl[j] != hlNormal {
			t.Fatalf("after Enter, row 2 hl[%d] = %d, want normal", j, e.rows[2].hl[j])
		}
	}
}

func TestSearchMapsRenderOffsetToRawColumn(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "\tcat")
	s := newSearchSession(e)

	s.Key("cat", 't')
	if e.cy != 0 || e.cx != 1 {
		t.Fatalf("cursor = (%d,%d), want raw column 1 behind the tab", e.cx, e.cy)
	}
}

func TestSearchForcesScrollToMatch(t *testing.T) {
	e := testEditor(5, 80)
	for i := 0; i < 30; i++ {
		e.insertRow(len(e.rows), "filler")
	}
	e.insertRow(len(e.rows), "needle")
	e.dirty = 0
	s := newSearchSession(e)

	s.Key("needle", 'e')
	e.scroll()
	if e.cy != 30 {
		t.Fatalf("match row = %d, want 30", e.cy)
	}
	if e.cy < e.rowoff || e.cy >= e.rowoff+e.screenrows {
		t.Fatalf("matched row %d not visible with rowoff %d", e.cy, e.rowoff)
	}
}

func TestSearchNoMatchLeavesCursor(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "abc")
	e.cx = 2
	s := newSearchSession(e)

	s.Key("zzz", 'z')
	if e.cx != 2 || e.cy != 0 {
		t.Fatalf("cursor moved to (%d,%d) on a failed search", e.cx, e.cy)
	}
	if s.lastMatch != -1 {
		t.Fatalf("lastMatch = %d, want none", s.lastMatch)
	}
}
