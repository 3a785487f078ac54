package checkbox

import (
	"fmt"
	"io"
)

// Terminal abstracts the cursor control the play command needs to
// redraw a grid in place.
type Terminal interface {
	ResetCursor(rows int)
	ShowCursor(show bool)
}

// Xterm drives an xterm-compatible terminal.
type Xterm struct {
	Writer io.Writer
}

// ResetCursor moves the cursor to the beginning of the line and up by
// rows, so the next frame overwrites the previous one.
func (term *Xterm) ResetCursor(rows int) {
	fmt.Fprintf(term.Writer, "\033[999D\033[%dA", rows)
}

// ShowCursor shows or hides the cursor.
func (term *Xterm) ShowCursor(show bool) {
	if show {
		term.Writer.Write([]byte("\033[?12l\033[?25h"))
	} else {
		term.Writer.Write([]byte("\033[?25l"))
	}
}
