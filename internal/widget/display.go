package widget

import (
	"fmt"
	"io"
	"sync"
)

// Display is where the controller renders. Implementations are called from
// timer goroutines and must serialize internally.
type Display interface {
	Render(visible bool, text, tooltip string)
}

// ConsoleDisplay prints one line per state change.
type ConsoleDisplay struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

func NewConsoleDisplay(w io.Writer) *ConsoleDisplay {
	return &ConsoleDisplay{w: w}
}

func (d *ConsoleDisplay) Render(visible bool, text, tooltip string) {
	line := "(hidden)"
	if visible {
		line = text
		if tooltip != "" {
			line = text + "  |  " + tooltip
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if line == d.last {
		return
	}
	d.last = line

	fmt.Fprintln(d.w, line)
}
