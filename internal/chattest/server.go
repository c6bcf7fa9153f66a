/*
Package chattest provides an in-process double of the chat server's wire contract,
used to exercise the client session machinery in tests.

It reproduces the observed protocol: connections arrive on /ws carrying room,
user, and optional cached id query parameters; the server issues an identity
when none is presented, answers auth frames, fans out message frames to the
whole room (sender included), and broadcasts presence online/offline events to
the other room members. It is a test fixture, not a production server: no
persistence, no rate limiting, no origin checks.
*/
package chattest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"roomchat/internal/pkg/logx"
	"roomchat/internal/pkg/randx"
)

// frame mirrors the JSON envelope exchanged on the connection.
type frame struct {
	Type        string    `json:"type,omitempty"`
	Text        string    `json:"text,omitempty"`
	Room        string    `json:"room,omitempty"`
	Sender      string    `json:"sender,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	ID          string    `json:"id,omitempty"`
	Date        time.Time `json:"date,omitempty"`
}

// peer is one connected client.
type peer struct {
	conn *websocket.Conn
	id   string
	name string
	room string

	// writeMu serializes writes; fan-out may reach a peer from several
	// reader goroutines at once.
	writeMu sync.Mutex
}

func (p *peer) writeJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(v)
}

func (p *peer) writeRaw(data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

// Server is the in-process chat server double.
type Server struct {
	httpSrv  *httptest.Server
	upgrader websocket.Upgrader

	mu    sync.Mutex
	peers map[string]*peer            // by identity
	rooms map[string]map[string]*peer // room -> identity -> peer

	logger zerolog.Logger
}

// New starts a server double listening on a loopback address.
func New() *Server {
	s := &Server{
		upgrader: websocket.Upgrader{},
		peers:    make(map[string]*peer),
		rooms:    make(map[string]map[string]*peer),
		logger:   logx.Component("chattest"),
	}

	s.httpSrv = httptest.NewServer(http.HandlerFunc(s.handleWS))
	return s
}

// URL returns the WebSocket endpoint of the double.
func (s *Server) URL() string {
	return "ws" + strings.TrimPrefix(s.httpSrv.URL, "http") + "/ws"
}

// Close shuts the double down, terminating all connections.
func (s *Server) Close() {
	s.mu.Lock()
	for _, p := range s.peers {
		p.conn.Close()
	}
	s.mu.Unlock()

	s.httpSrv.Close()
}

// Inject delivers raw bytes verbatim to every member of the given room.
// Used to feed clients payloads the real server would never produce, such as
// malformed JSON.
func (s *Server) Inject(room string, data []byte) {
	s.mu.Lock()
	targets := make([]*peer, 0, len(s.rooms[room]))
	for _, p := range s.rooms[room] {
		targets = append(targets, p)
	}
	s.mu.Unlock()

	for _, p := range targets {
		if err := p.writeRaw(data); err != nil {
			s.logger.Warn().Err(err).Str("peer", p.id).Msg("Inject write failed.")
		}
	}
}

// RoomSize reports how many peers are currently registered in the room.
func (s *Server) RoomSize(room string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms[room])
}

// handleWS upgrades one connection and runs its read loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	room := query.Get("room")
	name := query.Get("user")

	// A presented identity is honored as-is; otherwise a fresh one is issued.
	// Rejoining clients keep their identity across connections this way.
	id := query.Get("id")
	if id == "" {
		id = randx.MessageID()
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Upgrade failed.")
		return
	}

	p := &peer{conn: conn, id: id, name: name, room: room}

	s.register(p)
	defer s.unregister(p)

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}

		// The server, not the client, is authoritative for these fields.
		f.Sender = p.id
		f.DisplayName = p.name
		f.Room = p.room

		switch f.Type {
		case "auth":
			reply := frame{Type: "auth", Sender: p.id, DisplayName: p.name, Room: p.room}
			if err := p.writeJSON(reply); err != nil {
				return
			}

		case "message":
			f.ID = randx.MessageID()
			f.Date = time.Now().UTC()
			s.fanOut(p.room, f, "")

		case "status":
			// Replays the online presence of everyone else in the room to the
			// requester, mirroring the original protocol's optional resync.
			s.replayPresence(p)
		}
	}
}

// register adds the peer and announces it to the rest of the room.
func (s *Server) register(p *peer) {
	s.mu.Lock()
	s.peers[p.id] = p
	if s.rooms[p.room] == nil {
		s.rooms[p.room] = make(map[string]*peer)
	}
	s.rooms[p.room][p.id] = p
	s.mu.Unlock()

	s.logger.Debug().Str("peer", p.id).Str("room", p.room).Msg("Peer registered.")

	s.fanOut(p.room, frame{
		Type:        "presence",
		Text:        "online",
		Sender:      p.id,
		DisplayName: p.name,
		Room:        p.room,
	}, p.id)
}

// unregister removes the peer and announces its departure to the rest of the room.
func (s *Server) unregister(p *peer) {
	s.mu.Lock()
	delete(s.peers, p.id)
	if members, ok := s.rooms[p.room]; ok {
		delete(members, p.id)
		if len(members) == 0 {
			delete(s.rooms, p.room)
		}
	}
	s.mu.Unlock()

	p.conn.Close()

	s.logger.Debug().Str("peer", p.id).Str("room", p.room).Msg("Peer unregistered.")

	s.fanOut(p.room, frame{
		Type:        "presence",
		Text:        "offline",
		Sender:      p.id,
		DisplayName: p.name,
		Room:        p.room,
	}, p.id)
}

// fanOut delivers a frame to every room member except skipID (empty means everyone).
func (s *Server) fanOut(room string, f frame, skipID string) {
	data, err := json.Marshal(f)
	if err != nil {
		s.logger.Error().Err(err).Msg("Fan-out marshal failed.")
		return
	}

	s.mu.Lock()
	targets := make([]*peer, 0, len(s.rooms[room]))
	for _, p := range s.rooms[room] {
		if p.id != skipID {
			targets = append(targets, p)
		}
	}
	s.mu.Unlock()

	for _, p := range targets {
		if err := p.writeRaw(data); err != nil {
			s.logger.Warn().Err(err).Str("peer", p.id).Msg("Fan-out write failed.")
		}
	}
}

// replayPresence sends the requester an online presence frame for every other
// member of its room.
func (s *Server) replayPresence(requester *peer) {
	s.mu.Lock()
	others := make([]*peer, 0, len(s.rooms[requester.room]))
	for _, p := range s.rooms[requester.room] {
		if p.id != requester.id {
			others = append(others, p)
		}
	}
	s.mu.Unlock()

	for _, other := range others {
		err := requester.writeJSON(frame{
			Type:        "presence",
			Text:        "online",
			Sender:      other.id,
			DisplayName: other.name,
			Room:        other.room,
		})
		if err != nil {
			return
		}
	}
}
