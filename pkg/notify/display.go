package notify

import (
	"fmt"
	"io"
	"sync"
)

// Icon returns the glyph shown in front of a notification of kind k.
func Icon(k Kind) string {
	switch k {
	case KindSuccess:
		return "✔"
	case KindError:
		return "✖"
	case KindWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// WriterDisplay prints notifications as lines on a terminal.
type WriterDisplay struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterDisplay(w io.Writer) *WriterDisplay {
	return &WriterDisplay{w: w}
}

func (d *WriterDisplay) Show(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "%s %s\n", Icon(n.Kind), n.Message)
}

// Hide is a no-op: printed lines cannot be taken back.
func (d *WriterDisplay) Hide(Notification) {}
