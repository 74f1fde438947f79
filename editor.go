// Package spike implements a small terminal text editor in the kilo
// lineage. It emits VT100 escape sequences directly, without depending
// on ncurses.
package spike

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

const Version = "0.0.1"

const (
	spikeQuitTimes = 3
	promptMaxLen   = 256
)

// Editor holds the complete state of the editor: the line buffer, the
// cursor and viewport, and the terminal mode. All operations take it by
// reference; there are no package-level singletons.
type Editor struct {
	cx, cy      int // cursor in raw chars / row index
	rx          int // cursor in render columns, derived each frame
	rowoff      int
	coloff      int
	screenrows  int
	screencols  int
	rows        []*erow
	dirty       int
	filename    string
	statusmsg   string
	statustime  time.Time
	syntax      *Syntax
	rawmode     bool
	origTermios unix.Termios
	quitTimes   int
}

// New creates a new Editor instance and installs the SIGWINCH handler.
// The terminal size is first queried by Run once raw mode is active:
// the cursor-position fallback reads a reply that has no newline, which
// a canonical-mode read would block on.
func New() *Editor {
	e := &Editor{
		syntax:    &plainSyntax,
		quitTimes: spikeQuitTimes,
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	go func() {
		for range ch {
			e.handleSigWinCh()
		}
	}()
	return e
}

// SetStatusMessage sets the transient status message shown in the
// message bar for the next few seconds.
func (e *Editor) SetStatusMessage(format string, args ...interface{}) {
	e.statusmsg = fmt.Sprintf(format, args...)
	e.statustime = time.Now()
}

// ---------- Viewport ----------

// scroll rederives rx from cx and single-step clamps the scroll offsets
// so the cursor stays inside the visible window. It never moves further
// than necessary.
func (e *Editor) scroll() {
	e.rx = 0
	if e.cy < len(e.rows) {
		e.rx = e.rows[e.cy].cxToRx(e.cx)
	}
	if e.cy < e.rowoff {
		e.rowoff = e.cy
	}
	if e.cy >= e.rowoff+e.screenrows {
		e.rowoff = e.cy - e.screenrows + 1
	}
	if e.rx < e.coloff {
		e.coloff = e.rx
	}
	if e.rx >= e.coloff+e.screencols {
		e.coloff = e.rx - e.screencols + 1
	}
}

// ---------- Editor operations ----------

func (e *Editor) insertChar(c int) {
	if e.cy == len(e.rows) {
		e.insertRow(len(e.rows), "")
	}
	e.rowInsertChar(e.rows[e.cy], e.cx, byte(c))
	e.cx++
	e.dirty++
}

func (e *Editor) insertNewline() {
	if e.cx == 0 {
		e.insertRow(e.cy, "")
	} else {
		row := e.rows[e.cy]
		e.insertRow(e.cy+1, row.chars[e.cx:])
		// insertRow may have reallocated the slice
		row = e.rows[e.cy]
		row.chars = row.chars[:e.cx]
		e.updateRow(row)
	}
	e.cy++
	e.cx = 0
}

// delChar removes the byte before the cursor. At column 0 of a non-first
// row it merges the row into the previous one instead.
func (e *Editor) delChar() {
	if e.cy >= len(e.rows) {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}
	row := e.rows[e.cy]
	if e.cx > 0 {
		e.rowDelChar(row, e.cx-1)
		e.cx--
	} else {
		e.cx = len(e.rows[e.cy-1].chars)
		e.rowAppendString(e.rows[e.cy-1], row.chars)
		e.delRow(e.cy)
		e.cy--
	}
	e.dirty++
}

// ---------- Cursor movement ----------

func (e *Editor) moveCursor(key int) {
	var row *erow
	if e.cy < len(e.rows) {
		row = e.rows[e.cy]
	}

	switch key {
	case arrowLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.rows[e.cy].chars)
		}
	case arrowRight:
		if row != nil && e.cx < len(row.chars) {
			e.cx++
		} else if row != nil && e.cx == len(row.chars) {
			e.cy++
			e.cx = 0
		}
	case arrowUp:
		if e.cy != 0 {
			e.cy--
		}
	case arrowDown:
		if e.cy < len(e.rows) {
			e.cy++
		}
	}

	// Snap cx if the new line is shorter
	rowlen := 0
	if e.cy < len(e.rows) {
		rowlen = len(e.rows[e.cy].chars)
	}
	if e.cx > rowlen {
		e.cx = rowlen
	}
}

// ---------- Modal prompt ----------

// promptAction receives every keystroke of a modal prompt together with
// the input accumulated so far. The search session is one implementation.
type promptAction interface {
	Key(query string, key int)
}

// promptStep applies one keystroke to the prompt input. done reports that
// the prompt ended; accepted distinguishes Enter from cancellation.
// Enter on empty input is ignored and the prompt stays open.
func promptStep(buf []byte, c int) (out []byte, done, accepted bool) {
	switch {
	case c == delKey || c == ctrlH || c == keyBackspace:
		if len(buf) > 0 {
			buf = buf[:len(buf)-1]
		}
	case c == keyEsc:
		return buf, true, false
	case c == keyEnter:
		if len(buf) != 0 {
			return buf, true, true
		}
	case c >= 32 && c < 127 && len(buf) < promptMaxLen:
		buf = append(buf, byte(c))
	}
	return buf, false, false
}

// prompt runs a status-bar line prompt until the input is accepted or
// canceled. format must contain one %s verb for the in-progress input.
// Every keystroke, including the terminating one, is forwarded to action.
// Returns "" on cancellation.
func (e *Editor) prompt(format string, action promptAction) string {
	var buf []byte
	for {
		e.SetStatusMessage(format, string(buf))
		e.refreshScreen()

		c := e.readKey()
		var done, accepted bool
		buf, done, accepted = promptStep(buf, c)
		if action != nil {
			action.Key(string(buf), c)
		}
		if done {
			e.SetStatusMessage("")
			if !accepted {
				return ""
			}
			return string(buf)
		}
	}
}

// ---------- Event processing ----------

// processKey dispatches one decoded key. It returns false when the
// editor should exit.
func (e *Editor) processKey(c int) bool {
	switch c {
	case keyEnter:
		e.insertNewline()
	case ctrlC, ctrlD:
		// Ignore
	case ctrlA, homeKey:
		e.cx = 0
	case ctrlE, endKey:
		if e.cy < len(e.rows) {
			e.cx = len(e.rows[e.cy].chars)
		}
	case ctrlQ:
		if e.dirty > 0 && e.quitTimes > 1 {
			e.quitTimes--
			e.SetStatusMessage("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
			return true
		}
		return false
	case ctrlS:
		e.Save()
	case ctrlF:
		e.find()
	case keyBackspace, ctrlH:
		e.delChar()
	case delKey:
		e.moveCursor(arrowRight)
		e.delChar()
	case pageUp, pageDown:
		if c == pageUp {
			e.cy = e.rowoff
		} else {
			e.cy = e.rowoff + e.screenrows - 1
			if e.cy > len(e.rows) {
				e.cy = len(e.rows)
			}
		}
		dir := arrowDown
		if c == pageUp {
			dir = arrowUp
		}
		for times := e.screenrows; times > 0; times-- {
			e.moveCursor(dir)
		}
	case arrowUp, arrowDown, arrowLeft, arrowRight:
		e.moveCursor(c)
	case ctrlL, keyEsc:
		// Nothing
	default:
		// Only Tab among the control bytes inserts literally
		if c == keyTab || c >= 32 {
			e.insertChar(c)
		}
	}
	e.quitTimes = spikeQuitTimes
	return true
}

func (e *Editor) processKeypress() bool {
	return e.processKey(e.readKey())
}

// Run is the main editor loop. It enables raw mode, switches to the
// alternate screen buffer, queries the window size, and processes keys
// until the user quits. The terminal is restored on exit, SIGTERM, and
// SIGINT; a restore failure is fatal since the host terminal is left
// unusable.
func (e *Editor) Run() (err error) {
	if err := e.enableRawMode(); err != nil {
		return err
	}

	// Switch to alternate screen buffer
	unix.Write(unix.Stdout, []byte("\x1b[?1049h"))

	restore := func() error {
		// Leave alternate screen buffer and restore terminal
		unix.Write(unix.Stdout, []byte("\x1b[?1049l"))
		return e.DisableRawMode()
	}
	defer func() {
		if derr := restore(); derr != nil && err == nil {
			err = fmt.Errorf("failed to restore terminal: %w", derr)
		}
	}()

	// Restore the terminal on SIGTERM/SIGINT as well
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGTERM, unix.SIGINT)
	go func() {
		<-sigCh
		if derr := restore(); derr != nil {
			fmt.Fprintf(os.Stderr, "failed to restore terminal: %s\n", derr)
			os.Exit(1)
		}
		os.Exit(0)
	}()

	// The size query's fallback path needs raw mode to read the reply
	if err := e.updateWindowSize(); err != nil {
		return err
	}

	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")
	for {
		e.refreshScreen()
		if !e.processKeypress() {
			return nil
		}
	}
}

// FileWasModified returns true if the buffer has unsaved changes.
func (e *Editor) FileWasModified() bool {
	return e.dirty > 0
}
