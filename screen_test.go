package spike

import (
	"strings"
	"testing"
	"time"
)

func TestWelcomeBannerOnEmptyBuffer(t *testing.T) {
	e := testEditor(22, 80)
	frame := string(e.renderFrame())
	if !strings.Contains(frame, "Spike editor -- version") {
		t.Fatalf("empty buffer frame should carry the welcome banner")
	}
	if !strings.Contains(frame, rowMarker) {
		t.Fatalf("frame should mark rows past the end with %q", rowMarker)
	}
}

func TestNoWelcomeBannerWithContent(t *testing.T) {
	e := testEditor(22, 80)
	loadRows(e, "hi")
	if strings.Contains(string(e.renderFrame()), "Spike editor") {
		t.Fatalf("banner must only show for an empty buffer")
	}
}

func TestStatusBarContents(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "a", "b", "c")
	e.filename = "x.txt"

	frame := string(e.renderFrame())
	if !strings.Contains(frame, "x.txt - 3 lines") {
		t.Fatalf("status bar missing filename/line count: %q", frame)
	}
	if !strings.Contains(frame, "1/3") {
		t.Fatalf("status bar missing current line indicator")
	}
	if strings.Contains(frame, "%") {
		t.Fatalf("percentage should only show when the file exceeds one screenful")
	}
}

func TestStatusBarPercentThroughFile(t *testing.T) {
	e := testEditor(5, 80)
	for i := 0; i < 20; i++ {
		e.insertRow(len(e.rows), "line")
	}
	e.dirty = 0
	e.cy = 9

	frame := string(e.renderFrame())
	if !strings.Contains(frame, "10/20") {
		t.Fatalf("status bar missing line indicator: %q", frame)
	}
	if !strings.Contains(frame, "50%") {
		t.Fatalf("status bar missing percent-through-file: %q", frame)
	}
}

func TestStatusBarPlaceholderAndDirtyFlag(t *testing.T) {
	e := testEditor(10, 80)
	frame := string(e.renderFrame())
	if !strings.Contains(frame, "[No Name]") {
		t.Fatalf("unnamed buffer should show a placeholder")
	}

	e.insertChar('x')
	frame = string(e.renderFrame())
	if !strings.Contains(frame, "(modified)") {
		t.Fatalf("dirty buffer should show the modified indicator")
	}
}

func TestColorEscapesOnlyOnClassChange(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "aa11aa")

	frame := string(e.renderFrame())
	if got := strings.Count(frame, "\x1b[31m"); got != 1 {
		t.Fatalf("number color emitted %d times, want once for the run", got)
	}
	if !strings.Contains(frame, "\x1b[39m") {
		t.Fatalf("row must reset to the default color")
	}
}

func TestCursorPlacementUsesRenderColumn(t *testing.T) {
	e := testEditor(10, 80)
	loadRows(e, "\tabc")
	e.cy, e.cx = 0, 1

	frame := string(e.renderFrame())
	if !strings.Contains(frame, "\x1b[1;9H") {
		t.Fatalf("cursor should land at render column 9 past the tab: %q", frame)
	}
}

func TestMessageBarExpires(t *testing.T) {
	e := testEditor(10, 80)
	e.SetStatusMessage("hello there")
	if !strings.Contains(string(e.renderFrame()), "hello there") {
		t.Fatalf("fresh status message should be visible")
	}

	e.statustime = time.Now().Add(-2 * messageTimeout)
	if strings.Contains(string(e.renderFrame()), "hello there") {
		t.Fatalf("expired status message should be cleared")
	}
}

func TestFrameIsSingleCursorHideShowPair(t *testing.T) {
	e := testEditor(10, 40)
	loadRows(e, "content")
	frame := string(e.renderFrame())
	if !strings.HasPrefix(frame, "\x1b[?25l\x1b[H") {
		t.Fatalf("frame must start by hiding and homing the cursor")
	}
	if !strings.HasSuffix(frame, "\x1b[?25h") {
		t.Fatalf("frame must end by showing the cursor")
	}
}
