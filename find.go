package spike

import "strings"

// searchSession is the incremental-search state driven by the modal
// prompt: the last matched row, the scan direction, and a snapshot of
// the highlight bytes of the most recently decorated row.
type searchSession struct {
	e          *Editor
	lastMatch  int // row index of the last match, -1 for none
	direction  int // 1 forward, -1 backward
	savedHLRow int
	savedHL    []byte
}

func newSearchSession(e *Editor) *searchSession {
	return &searchSession{e: e, lastMatch: -1, direction: 1, savedHLRow: -1}
}

// restoreHL puts back the highlight bytes of the previously decorated
// row, if any.
func (s *searchSession) restoreHL() {
	if s.savedHL != nil {
		copy(s.e.rows[s.savedHLRow].hl, s.savedHL)
		s.savedHL = nil
	}
}

// Key implements promptAction. Each prompt keystroke steps the search:
// arrows pick the direction, any other edit restarts from the top, and
// Enter/Escape end the session.
func (s *searchSession) Key(query string, key int) {
	switch {
	case key == keyEnter || key == keyEsc:
		s.restoreHL()
		s.lastMatch = -1
		s.direction = 1
		return
	case key == arrowRight || key == arrowDown:
		s.direction = 1
	case key == arrowLeft || key == arrowUp:
		s.direction = -1
	default:
		s.lastMatch = -1
		s.direction = 1
	}

	if s.lastMatch == -1 {
		s.direction = 1
	}
	if query == "" {
		return
	}

	e := s.e
	current := s.lastMatch
	for i := 0; i < len(e.rows); i++ {
		current += s.direction
		if current == -1 {
			current = len(e.rows) - 1
		} else if current == len(e.rows) {
			current = 0
		}

		row := e.rows[current]
		matchOffset := strings.Index(row.render, query)
		if matchOffset == -1 {
			continue
		}

		s.restoreHL()
		s.lastMatch = current
		s.savedHLRow = current
		s.savedHL = make([]byte, len(row.hl))
		copy(s.savedHL, row.hl)
		for j := 0; j < len(query) && matchOffset+j < len(row.hl); j++ {
			row.hl[matchOffset+j] = hlMatch
		}

		// The match was found in rendered text; map back to a raw column
		e.cy = current
		e.cx = row.rxToCx(matchOffset)
		// Scroll from past the end so the matched line lands at the top
		e.rowoff = len(e.rows)
		break
	}
}

// find runs the incremental search prompt. Canceling restores the cursor
// and viewport captured when the search began.
func (e *Editor) find() {
	savedCx, savedCy := e.cx, e.cy
	savedColoff, savedRowoff := e.coloff, e.rowoff

	s := newSearchSession(e)
	query := e.prompt("Search: %s (Use ESC/Arrows/Enter)", s)
	if query == "" {
		e.cx, e.cy = savedCx, savedCy
		e.coloff, e.rowoff = savedColoff, savedRowoff
	}
}
