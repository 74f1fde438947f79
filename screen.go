package spike

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

const (
	rowMarker      = "-_-"
	messageTimeout = 5 * time.Second
)

func (e *Editor) drawRows(ab *bytes.Buffer) {
	for y := 0; y < e.screenrows; y++ {
		filerow := e.rowoff + y

		if filerow >= len(e.rows) {
			if len(e.rows) == 0 && y == e.screenrows/3 {
				welcome := fmt.Sprintf("Spike editor -- version %s", Version)
				if len(welcome) > e.screencols {
					welcome = welcome[:e.screencols]
				}
				padding := (e.screencols - len(welcome)) / 2
				if padding > 0 {
					ab.WriteString(rowMarker)
					padding -= len(rowMarker)
				}
				for padding > 0 {
					ab.WriteByte(' ')
					padding--
				}
				ab.WriteString(welcome)
			} else {
				ab.WriteString(rowMarker)
			}
			ab.WriteString("\x1b[0K\r\n")
			continue
		}

		r := e.rows[filerow]
		renderLen := len(r.render) - e.coloff
		if renderLen < 0 {
			renderLen = 0
		}
		if renderLen > 0 {
			if renderLen > e.screencols {
				renderLen = e.screencols
			}
			rStr := r.render[e.coloff : e.coloff+renderLen]
			hl := r.hl[e.coloff : e.coloff+renderLen]
			// Emit a color escape only when the class changes
			currentColor := -1
			for j := 0; j < len(rStr); j++ {
				if hl[j] == hlNonprint {
					ab.WriteString("\x1b[7m")
					if rStr[j] <= 26 {
						ab.WriteByte('@' + rStr[j])
					} else {
						ab.WriteByte('?')
					}
					ab.WriteString("\x1b[0m")
					currentColor = -1
				} else if hl[j] == hlNormal {
					if currentColor != -1 {
						ab.WriteString("\x1b[39m")
						currentColor = -1
					}
					ab.WriteByte(rStr[j])
				} else {
					color := syntaxToColor(hl[j])
					if color != currentColor {
						fmt.Fprintf(ab, "\x1b[%dm", color)
						currentColor = color
					}
					ab.WriteByte(rStr[j])
				}
			}
		}
		ab.WriteString("\x1b[39m")
		ab.WriteString("\x1b[0K")
		ab.WriteString("\r\n")
	}
}

func (e *Editor) drawStatusBar(ab *bytes.Buffer) {
	ab.WriteString("\x1b[0K")
	ab.WriteString("\x1b[7m")

	modifiedStr := ""
	if e.dirty > 0 {
		modifiedStr = "(modified)"
	}
	fname := e.filename
	if fname == "" {
		fname = "[No Name]"
	}
	if len(fname) > 20 {
		fname = fname[:20]
	}
	status := fmt.Sprintf("%.20s - %d lines %s", fname, len(e.rows), modifiedStr)
	rstatus := fmt.Sprintf("%d/%d", e.cy+1, len(e.rows))
	if len(e.rows) > e.screenrows {
		rstatus += fmt.Sprintf(" %d%%", (e.cy+1)*100/len(e.rows))
	}
	if len(status) > e.screencols {
		status = status[:e.screencols]
	}
	ab.WriteString(status)
	slen := len(status)
	for slen < e.screencols {
		if e.screencols-slen == len(rstatus) {
			ab.WriteString(rstatus)
			break
		}
		ab.WriteByte(' ')
		slen++
	}
	ab.WriteString("\x1b[0m\r\n")
}

func (e *Editor) drawMessageBar(ab *bytes.Buffer) {
	ab.WriteString("\x1b[0K")
	if e.statusmsg != "" && time.Since(e.statustime) < messageTimeout {
		msg := e.statusmsg
		if len(msg) > e.screencols {
			msg = msg[:e.screencols]
		}
		ab.WriteString(msg)
	}
}

// renderFrame composes one complete terminal frame: visible rows, status
// bar, message bar, and final cursor placement.
func (e *Editor) renderFrame() []byte {
	e.scroll()

	var ab bytes.Buffer
	ab.WriteString("\x1b[?25l") // Hide cursor
	ab.WriteString("\x1b[H")    // Go home

	e.drawRows(&ab)
	e.drawStatusBar(&ab)
	e.drawMessageBar(&ab)

	fmt.Fprintf(&ab, "\x1b[%d;%dH", e.cy-e.rowoff+1, e.rx-e.coloff+1)
	ab.WriteString("\x1b[?25h") // Show cursor
	return ab.Bytes()
}

// refreshScreen paints the current frame in a single write.
func (e *Editor) refreshScreen() {
	unix.Write(unix.Stdout, e.renderFrame())
}
