package spike

import (
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Key constants
const (
	ctrlA        = 1
	ctrlC        = 3
	ctrlD        = 4
	ctrlE        = 5
	ctrlF        = 6
	ctrlH        = 8
	keyTab       = 9
	ctrlL        = 12
	keyEnter     = 13
	ctrlQ        = 17
	ctrlS        = 19
	keyEsc       = 27
	keyBackspace = 127

	arrowLeft  = 1000
	arrowRight = 1001
	arrowUp    = 1002
	arrowDown  = 1003
	delKey     = 1004
	homeKey    = 1005
	endKey     = 1006
	pageUp     = 1007
	pageDown   = 1008
)

func (e *Editor) enableRawMode() error {
	if e.rawmode {
		return nil
	}
	if !term.IsTerminal(unix.Stdin) {
		return fmt.Errorf("not a tty")
	}
	orig, err := unix.IoctlGetTermios(unix.Stdin, ioctlReadTermios)
	if err != nil {
		return err
	}
	e.origTermios = *orig

	raw := *orig
	// Input modes
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// Output modes
	raw.Oflag &^= unix.OPOST
	// Control modes
	raw.Cflag |= unix.CS8
	// Local modes
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// Control chars: reads return after 1/10s even with no input
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(unix.Stdin, ioctlWriteTermios, &raw); err != nil {
		return err
	}
	e.rawmode = true
	return nil
}

// DisableRawMode restores the terminal to its original mode. A failure
// here leaves the host terminal unusable, so callers must report it.
func (e *Editor) DisableRawMode() error {
	if !e.rawmode {
		return nil
	}
	if err := unix.IoctlSetTermios(unix.Stdin, ioctlWriteTermios, &e.origTermios); err != nil {
		return err
	}
	e.rawmode = false
	return nil
}

// readKey blocks until one input unit is available and returns it as a
// logical key. Timed-out reads (VMIN=0, VTIME=1) simply retry.
func (e *Editor) readKey() int {
	buf := make([]byte, 1)
	for {
		n, err := unix.Read(unix.Stdin, buf)
		if n == 1 {
			break
		}
		if err != nil && err != unix.EAGAIN {
			return -1
		}
	}
	c := int(buf[0])
	if c != keyEsc {
		return c
	}
	return decodeEscape(readByteTimeout)
}

// readByteTimeout returns the next input byte, or ok=false if nothing
// arrived within the VTIME read window.
func readByteTimeout() (byte, bool) {
	buf := make([]byte, 1)
	n, _ := unix.Read(unix.Stdin, buf)
	if n != 1 {
		return 0, false
	}
	return buf[0], true
}

// Escape decoder states.
type escState int

const (
	escIntro  escState = iota // after ESC: expecting '[' or 'O'
	escCSI                    // after ESC[: expecting a final byte or a digit
	escCSINum                 // after ESC[<digit>: expecting '~'
	escSS3                    // after ESCO: expecting a final byte
)

var csiKeys = map[byte]int{
	'A': arrowUp,
	'B': arrowDown,
	'C': arrowRight,
	'D': arrowLeft,
	'H': homeKey,
	'F': endKey,
}

// The 1/7 and 4/8 aliases depend on which form the terminal emulator
// sends; both are kept.
var csiTildeKeys = map[byte]int{
	'1': homeKey,
	'3': delKey,
	'4': endKey,
	'5': pageUp,
	'6': pageDown,
	'7': homeKey,
	'8': endKey,
}

var ss3Keys = map[byte]int{
	'H': homeKey,
	'F': endKey,
}

// decodeEscape runs the escape-sequence state machine after an ESC byte
// has been read. next yields further input bytes; ok=false means the byte
// did not arrive within the read timeout, which degrades the whole
// sequence to a bare Escape keypress. Unknown sequences do the same.
func decodeEscape(next func() (byte, bool)) int {
	state := escIntro
	var digit byte
	for {
		b, ok := next()
		if !ok {
			return keyEsc
		}
		switch state {
		case escIntro:
			switch b {
			case '[':
				state = escCSI
			case 'O':
				state = escSS3
			default:
				return keyEsc
			}
		case escCSI:
			if b >= '0' && b <= '9' {
				digit = b
				state = escCSINum
				continue
			}
			if key, ok := csiKeys[b]; ok {
				return key
			}
			return keyEsc
		case escCSINum:
			if b == '~' {
				if key, ok := csiTildeKeys[digit]; ok {
					return key
				}
			}
			return keyEsc
		case escSS3:
			if key, ok := ss3Keys[b]; ok {
				return key
			}
			return keyEsc
		}
	}
}

// getCursorPosition queries the terminal for the cursor position and
// parses the row;col pair from the status report.
func getCursorPosition() (int, int, error) {
	if _, err := unix.Write(unix.Stdout, []byte("\x1b[6n")); err != nil {
		return 0, 0, err
	}
	var buf [32]byte
	i := 0
	for i < len(buf)-1 {
		n, _ := unix.Read(unix.Stdin, buf[i:i+1])
		if n != 1 || buf[i] == 'R' {
			break
		}
		i++
	}
	if buf[0] != keyEsc || buf[1] != '[' {
		return 0, 0, fmt.Errorf("failed to parse cursor position")
	}
	var rows, cols int
	if _, err := fmt.Sscanf(string(buf[2:i]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

func getWindowSize() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(unix.Stdout, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		// Fallback: move cursor to bottom-right and query position
		if _, err := unix.Write(unix.Stdout, []byte("\x1b[999C\x1b[999B")); err != nil {
			return 0, 0, err
		}
		return getCursorPosition()
	}
	return int(ws.Row), int(ws.Col), nil
}

func (e *Editor) updateWindowSize() error {
	rows, cols, err := getWindowSize()
	if err != nil {
		return err
	}
	e.screenrows = rows - 2 // room for status and message bars
	e.screencols = cols
	return nil
}

func (e *Editor) handleSigWinCh() {
	// Before raw mode is active the fallback size query cannot read the
	// terminal's reply; the first query happens in Run
	if !e.rawmode {
		return
	}
	e.updateWindowSize()
	e.refreshScreen()
}
