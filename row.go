package spike

import "bytes"

const tabStop = 8

// erow represents a single line of the file being edited. chars is the
// raw content; render is chars with tabs expanded and hl holds one
// highlight class per render byte. render and hl are derived state,
// rebuilt by updateRow after every chars mutation.
type erow struct {
	idx    int
	chars  string
	render string
	hl     []byte
	hlOC   bool // had open comment at end
}

// cxToRx maps a position in chars to the matching column in render. Tabs
// advance to the next multiple of tabStop.
func (row *erow) cxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(row.chars); j++ {
		if row.chars[j] == keyTab {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}

// rxToCx is the left inverse of cxToRx: for any valid cx,
// rxToCx(cxToRx(cx)) == cx.
func (row *erow) rxToCx(rx int) int {
	cur := 0
	for cx := 0; cx < len(row.chars); cx++ {
		if row.chars[cx] == keyTab {
			cur += (tabStop - 1) - (cur % tabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(row.chars)
}

func (e *Editor) updateRow(row *erow) {
	var buf bytes.Buffer
	for _, c := range []byte(row.chars) {
		if c == keyTab {
			buf.WriteByte(' ')
			for buf.Len()%tabStop != 0 {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteByte(c)
		}
	}
	row.render = buf.String()
	e.updateSyntax(row)
}

func (e *Editor) insertRow(at int, s string) {
	if at < 0 || at > len(e.rows) {
		return
	}
	row := &erow{
		idx:   at,
		chars: s,
	}
	if at == len(e.rows) {
		e.rows = append(e.rows, row)
	} else {
		e.rows = append(e.rows, nil)
		copy(e.rows[at+1:], e.rows[at:])
		e.rows[at] = row
		for j := at + 1; j < len(e.rows); j++ {
			e.rows[j].idx = j
		}
	}
	e.updateRow(row)
	e.dirty++
}

func (e *Editor) delRow(at int) {
	if at < 0 || at >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:at], e.rows[at+1:]...)
	for j := at; j < len(e.rows); j++ {
		e.rows[j].idx = j
	}
	e.dirty++
}

// rowsToText serializes the buffer for persistence: every row's raw
// content followed by a single newline byte.
func (e *Editor) rowsToText() []byte {
	var buf bytes.Buffer
	for _, row := range e.rows {
		buf.WriteString(row.chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (e *Editor) rowInsertChar(row *erow, at int, c byte) {
	// Out-of-range columns clamp to the row bounds
	if at < 0 {
		at = 0
	}
	if at > len(row.chars) {
		at = len(row.chars)
	}
	row.chars = row.chars[:at] + string(c) + row.chars[at:]
	e.updateRow(row)
	e.dirty++
}

func (e *Editor) rowAppendString(row *erow, s string) {
	row.chars += s
	e.updateRow(row)
	e.dirty++
}

func (e *Editor) rowDelChar(row *erow, at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}
	row.chars = row.chars[:at] + row.chars[at+1:]
	e.updateRow(row)
	e.dirty++
}
