package chattest

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *Server, query string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(srv.URL()+"?"+query, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	return conn
}

func TestServer_AuthIssuesIdentity(t *testing.T) {
	srv := New()
	defer srv.Close()

	conn := dial(t, srv, "room=r1&user=Alice")

	if err := conn.WriteJSON(frame{Type: "auth"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var reply frame
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	if reply.Type != "auth" {
		t.Errorf("Expected auth reply, got %q", reply.Type)
	}
	if reply.Sender == "" {
		t.Error("Expected issued identity in auth reply")
	}
	if reply.DisplayName != "Alice" {
		t.Errorf("Expected display name echoed, got %q", reply.DisplayName)
	}
}

func TestServer_HonorsPresentedIdentity(t *testing.T) {
	srv := New()
	defer srv.Close()

	conn := dial(t, srv, "room=r1&user=Alice&id=known-id")

	if err := conn.WriteJSON(frame{Type: "auth"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var reply frame
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if reply.Sender != "known-id" {
		t.Errorf("Expected presented identity to be kept, got %q", reply.Sender)
	}
}

func TestServer_MessageFanOutIncludesSender(t *testing.T) {
	srv := New()
	defer srv.Close()

	alice := dial(t, srv, "room=r1&user=Alice")
	bob := dial(t, srv, "room=r1&user=Bob")

	// Alice receives Bob's online presence before any messages.
	var presence frame
	if err := alice.ReadJSON(&presence); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if presence.Type != "presence" || presence.Text != "online" {
		t.Fatalf("Expected online presence, got %+v", presence)
	}

	if err := alice.WriteJSON(frame{Type: "message", Text: "hi", Room: "r1"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	for name, conn := range map[string]*websocket.Conn{"alice": alice, "bob": bob} {
		var msg frame
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("%s ReadJSON failed: %v", name, err)
		}
		if msg.Type != "message" || msg.Text != "hi" {
			t.Errorf("%s: expected fanned-out message, got %+v", name, msg)
		}
		if msg.ID == "" || msg.Sender == "" {
			t.Errorf("%s: expected server-assigned id and sender, got %+v", name, msg)
		}
		if !strings.EqualFold(msg.DisplayName, "alice") {
			t.Errorf("%s: expected sender display name, got %q", name, msg.DisplayName)
		}
	}
}
