package spike

import (
	"os"
	"strings"
)

// readLines loads path as a sequence of lines with the trailing
// newline/carriage-return stripped.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	// Drop the empty tail produced by a trailing newline
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

// writeAll replaces the contents of path with data and reports the
// number of bytes written. A short write surfaces as an error.
func writeAll(path string, data []byte) (int, error) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Open loads a file into the editor and clears the dirty flag.
func (e *Editor) Open(filename string) error {
	e.filename = filename
	lines, err := readLines(filename)
	if err != nil {
		return err
	}
	for _, line := range lines {
		e.insertRow(len(e.rows), line)
	}
	e.dirty = 0
	return nil
}

// Save writes the current buffer to disk, prompting for a filename
// first if none is associated. A canceled prompt aborts the save
// without error; a failed write leaves the buffer dirty.
func (e *Editor) Save() error {
	if e.filename == "" {
		name := e.prompt("Save as: %s (ESC to cancel)", nil)
		if name == "" {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		e.filename = name
		e.SelectSyntaxHighlight(name)
	}
	data := e.rowsToText()
	n, err := writeAll(e.filename, data)
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return err
	}
	e.dirty = 0
	e.SetStatusMessage("%d bytes written on disk", n)
	return nil
}
