/*
Package termview renders a chat session as plain lines on a terminal.

It is one concrete presentation layer for the session core: it implements the
session Renderer for chat messages and the roster ViewBinder for join/leave
lines. Visual design stays deliberately minimal; the session core neither
knows nor cares that the views are text lines.
*/
package termview

import (
	"fmt"
	"io"
	"sync"

	"roomchat/internal/app/roster"
	"roomchat/internal/app/session"
)

// View writes session output to a terminal (or any io.Writer).
type View struct {
	// mu serializes writes; render calls arrive from the session's dispatch
	// goroutine while the prompt may be redrawn from the input goroutine.
	mu sync.Mutex
	w  io.Writer
}

// New returns a View writing to w.
func New(w io.Writer) *View {
	return &View{w: w}
}

// RenderMessage prints one chat message. Own messages are labeled "you",
// mirroring the self/remote distinction of the message bubbles.
func (v *View) RenderMessage(msg session.Message, self bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if self {
		fmt.Fprintf(v.w, "          you | %s\n", msg.Text)
		return
	}

	name := msg.DisplayName
	if name == "" {
		name = msg.Sender
	}
	fmt.Fprintf(v.w, "%13s | %s\n", name, msg.Text)
}

// CreateView prints a join line and returns the label used for the matching
// leave line.
func (v *View) CreateView(u roster.User) roster.ViewHandle {
	v.mu.Lock()
	defer v.mu.Unlock()

	label := u.DisplayName
	if label == "" {
		label = u.Sender
	}

	if u.IsSelf {
		fmt.Fprintf(v.w, "* you are online as %s\n", label)
	} else {
		fmt.Fprintf(v.w, "* %s is online\n", label)
	}

	return label
}

// RemoveView prints the leave line for a previously created view.
func (v *View) RemoveView(h roster.ViewHandle) {
	v.mu.Lock()
	defer v.mu.Unlock()

	label, ok := h.(string)
	if !ok {
		return
	}

	fmt.Fprintf(v.w, "* %s went offline\n", label)
}
