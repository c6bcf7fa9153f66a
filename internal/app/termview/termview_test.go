package termview

import (
	"bytes"
	"strings"
	"testing"

	"roomchat/internal/app/roster"
	"roomchat/internal/app/session"
)

func TestRenderMessage_RemoteUsesDisplayName(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf)

	v.RenderMessage(session.Message{Sender: "U2", DisplayName: "Bob", Text: "hello"}, false)

	out := buf.String()
	if !strings.Contains(out, "Bob") {
		t.Errorf("Expected display name in output, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("Expected message text in output, got %q", out)
	}
}

func TestRenderMessage_SelfIsLabeledYou(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf)

	v.RenderMessage(session.Message{Sender: "U1", DisplayName: "Alice", Text: "hi"}, true)

	out := buf.String()
	if !strings.Contains(out, "you") {
		t.Errorf("Expected self label 'you', got %q", out)
	}
	if strings.Contains(out, "Alice") {
		t.Errorf("Expected self message not to repeat the display name, got %q", out)
	}
}

func TestRenderMessage_FallsBackToSender(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf)

	v.RenderMessage(session.Message{Sender: "U9", Text: "anon"}, false)

	if !strings.Contains(buf.String(), "U9") {
		t.Errorf("Expected sender fallback in output, got %q", buf.String())
	}
}

func TestCreateAndRemoveView(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf)

	handle := v.CreateView(roster.User{Sender: "U2", DisplayName: "Bob"})
	if !strings.Contains(buf.String(), "Bob is online") {
		t.Errorf("Expected join line, got %q", buf.String())
	}

	buf.Reset()
	v.RemoveView(handle)
	if !strings.Contains(buf.String(), "Bob went offline") {
		t.Errorf("Expected leave line, got %q", buf.String())
	}
}

func TestCreateView_Self(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf)

	v.CreateView(roster.User{Sender: "U1", DisplayName: "Alice", IsSelf: true})

	if !strings.Contains(buf.String(), "you are online as Alice") {
		t.Errorf("Expected self join line, got %q", buf.String())
	}
}
