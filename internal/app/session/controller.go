/*
Package session contains the client-side session state machine for one chat room.

This file defines the Controller, which owns the WebSocket connection, the
server-assigned identity, the message log, and the roster. It translates
inbound frames into state mutations and render requests, and carries the
outbound send path. One Controller instance is one session: one connection,
one identity, one roster, one message log.
*/
package session

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"roomchat/internal/app/identity"
	"roomchat/internal/app/roster"
	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/logx"
)

// Renderer is implemented by the presentation layer. It receives each logged
// chat message together with whether it was sent by this session's identity.
type Renderer interface {
	RenderMessage(msg Message, self bool)
}

// Config holds the parameters of one session.
type Config struct {
	// ServerURL is the WebSocket endpoint of the chat server.
	ServerURL string

	// Room is the identifier of the room to join. Required.
	Room string

	// DisplayName is the participant's chosen name. Required, non-blank.
	DisplayName string
}

// Deps holds the collaborators injected into a Controller.
type Deps struct {
	// Identity is the persisted identity slot, read at session start and
	// written when the server issues an identity.
	Identity identity.Store

	// Renderer receives chat messages for display. May be nil for headless use.
	Renderer Renderer

	// Views receives roster view create/remove requests. May be nil.
	Views roster.ViewBinder
}

// Controller drives one chat session. All inbound frame handling happens
// sequentially on the Run goroutine; each frame is processed to completion
// before the next is read, so no two frames ever interleave.
type Controller struct {
	cfg      Config
	store    identity.Store
	renderer Renderer
	roster   *roster.Model

	conn *websocket.Conn

	// identity is the server-assigned sender for this session, set by the
	// auth frame. Only the Run goroutine writes it.
	identity string

	log *messageLog

	// closed flips once, either by Close or when the connection terminates.
	// A dropped connection is terminal for the session.
	closed    atomic.Bool
	closeOnce sync.Once

	logger zerolog.Logger
}

// New validates the session parameters and constructs a Controller.
// A missing room or a blank display name fails fast: no connection is
// attempted and the session never reaches a connected state.
func New(cfg Config, deps Deps) (*Controller, error) {
	if strings.TrimSpace(cfg.Room) == "" {
		return nil, errs.NewError(errs.ErrRoomRequired)
	}

	cfg.DisplayName = strings.TrimSpace(cfg.DisplayName)
	if cfg.DisplayName == "" {
		return nil, errs.NewError(errs.ErrDisplayNameRequired)
	}

	sessionLogger := logx.Component("session").With().
		Str("room", cfg.Room).
		Logger()

	return &Controller{
		cfg:      cfg,
		store:    deps.Identity,
		renderer: deps.Renderer,
		roster:   roster.NewModel(deps.Views),
		log:      newMessageLog(),
		logger:   sessionLogger,
	}, nil
}

// Connect opens the single connection for this session and announces the
// client with an auth frame. A previously cached identity, when present, is
// passed along so the server can recognize a returning participant.
func (c *Controller) Connect(ctx context.Context) error {
	cached, err := c.store.Load()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load cached identity. Connecting without one.")
		cached = ""
	}

	endpoint, err := url.Parse(c.cfg.ServerURL)
	if err != nil {
		return errs.NewError(errs.ErrServerURLInvalid, c.cfg.ServerURL)
	}

	query := endpoint.Query()
	query.Set("room", c.cfg.Room)
	query.Set("user", c.cfg.DisplayName)
	if cached != "" {
		query.Set("id", cached)
	}
	endpoint.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return errs.NewError(errs.ErrConnectFailed, err)
	}
	c.conn = conn

	if err := conn.WriteJSON(wireFrame{Type: frameTypeAuth}); err != nil {
		c.Close()
		return errs.NewError(errs.ErrConnectFailed, err)
	}

	c.logger.Info().
		Str("endpoint", endpoint.Host).
		Bool("cached_identity", cached != "").
		Msg("Session connected.")

	return nil
}

// Run reads and dispatches inbound frames until the connection ends or Close
// is called. It is the session's single consumer: frames are handled strictly
// in arrival order. After Run returns the session is terminal; there is no
// automatic reconnection.
func (c *Controller) Run() {
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.closed.Load() {
				c.logger.Info().Msg("Session closed.")
			} else {
				c.logger.Info().Err(err).Msg("Connection terminated.")
			}
			return
		}

		c.handleRaw(data)
	}
}

// handleRaw decodes one inbound payload and dispatches it. A payload that
// fails to decode is logged and discarded; one malformed frame must never
// take down the session.
func (c *Controller) handleRaw(data []byte) {
	frame, err := DecodeFrame(data)
	if err != nil {
		c.logger.Warn().Err(err).
			Bytes("payload", data).
			Msg("Discarding malformed inbound frame.")
		return
	}

	c.dispatch(frame)
}

// dispatch applies one decoded frame to session state.
func (c *Controller) dispatch(frame Frame) {
	switch f := frame.(type) {
	case AuthFrame:
		c.handleAuth(f)

	case MessageFrame:
		c.handleMessage(f)

	case PresenceFrame:
		// isSelf is fixed at record creation time from the identity known
		// right now; auth always precedes the self-announcement on this
		// connection, so the self record is tagged correctly.
		c.roster.Apply(f.Sender, f.DisplayName, f.Status, f.Sender != "" && f.Sender == c.identity)

	case UnknownFrame:
		c.logger.Debug().
			Str("frame_type", f.Type).
			Msg("Ignoring unrecognized frame kind.")
	}
}

// handleAuth records the server-assigned identity, persists it, and admits
// the session's own user into the roster. It does not log a chat message.
func (c *Controller) handleAuth(f AuthFrame) {
	c.identity = f.Sender

	if err := c.store.Save(f.Sender); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist session identity.")
	}

	c.logger.Info().
		Str("sender", f.Sender).
		Str("display_name", f.DisplayName).
		Msg("Identity established.")

	// Self-announcement: the server does not echo a presence frame for this
	// connection back to it, so the self join is synthesized here, before any
	// later frame can observe the roster.
	c.roster.Apply(f.Sender, f.DisplayName, roster.StatusOnline, true)
}

// handleMessage appends one chat message to the log and hands it to the
// presentation layer, tagged self/remote.
func (c *Controller) handleMessage(f MessageFrame) {
	m := Message{
		ID:          f.ID,
		Sender:      f.Sender,
		DisplayName: f.DisplayName,
		Text:        f.Text,
		Date:        f.Date,
	}
	c.log.append(m)

	if c.renderer != nil {
		c.renderer.RenderMessage(m, f.Sender != "" && f.Sender == c.identity)
	}
}

// Send submits one chat message. Input that is empty after trimming is
// silently dropped: no network call, no log entry. Sending on an ended
// session is a caller error. The message is not locally echoed; it enters
// the log only when the server's own message frame for it arrives.
func (c *Controller) Send(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if c.closed.Load() || c.conn == nil {
		return errs.NewError(errs.ErrSessionClosed)
	}

	if err := c.conn.WriteJSON(wireFrame{
		Type: frameTypeMessage,
		Room: c.cfg.Room,
		Text: text,
	}); err != nil {
		c.logger.Warn().Err(err).Msg("Outbound send failed.")
		return errs.NewError(errs.ErrSessionClosed)
	}

	return nil
}

// Close ends the session, closing the connection exactly once. Safe to call
// repeatedly and at teardown even if the connection already dropped.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.conn != nil {
			if err := c.conn.Close(); err != nil {
				c.logger.Debug().Err(err).Msg("Connection close reported an error.")
			}
		}
	})
}

// Identity returns the server-assigned identity, or an empty string before auth.
func (c *Controller) Identity() string {
	return c.identity
}

// Messages returns the session's message log in arrival order.
func (c *Controller) Messages() []Message {
	return c.log.all()
}

// Roster returns the session's live roster.
func (c *Controller) Roster() *roster.Model {
	return c.roster
}
