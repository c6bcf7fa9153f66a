/*
Package session contains the client-side session state machine for one chat room.

This file defines the inbound frame variant. Frames arrive as JSON objects
with a string "type" discriminator; they are decoded exactly once at the
transport boundary into a tagged variant so that dispatch is an exhaustive
type switch rather than a string switch with silent fallthrough.
*/
package session

import (
	"encoding/json"
	"time"
)

// Frame kind discriminators on the wire.
const (
	frameTypeAuth     = "auth"
	frameTypeMessage  = "message"
	frameTypePresence = "presence"
)

// wireFrame is the JSON envelope shared by all frames on the connection.
// Every field is optional; the type field selects which ones are meaningful.
type wireFrame struct {
	Type        string    `json:"type,omitempty"`
	Text        string    `json:"text,omitempty"`
	Room        string    `json:"room,omitempty"`
	Sender      string    `json:"sender,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	ID          string    `json:"id,omitempty"`
	Date        time.Time `json:"date,omitempty"`
}

// Frame is one decoded inbound protocol frame.
type Frame interface {
	frame()
}

// AuthFrame carries the server-assigned identity for this session.
type AuthFrame struct {
	Sender      string
	DisplayName string
}

// MessageFrame carries one chat message as fanned out by the server.
type MessageFrame struct {
	ID          string
	Sender      string
	DisplayName string
	Text        string
	Date        time.Time
}

// PresenceFrame carries one incremental presence event. Status is the raw
// text value ("online" or "offline"; anything else is ignored downstream).
type PresenceFrame struct {
	Sender      string
	DisplayName string
	Status      string
}

// UnknownFrame represents a frame kind this client does not recognize.
// Unrecognized kinds are forward-compatible no-ops, never errors.
type UnknownFrame struct {
	Type string
}

func (AuthFrame) frame()     {}
func (MessageFrame) frame()  {}
func (PresenceFrame) frame() {}
func (UnknownFrame) frame()  {}

// DecodeFrame parses one raw inbound payload into the frame variant.
// A payload that is not valid JSON for the envelope is a decode error; the
// caller logs and discards it without terminating the session.
func DecodeFrame(data []byte) (Frame, error) {
	var w wireFrame
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	switch w.Type {
	case frameTypeAuth:
		return AuthFrame{Sender: w.Sender, DisplayName: w.DisplayName}, nil

	case frameTypeMessage:
		return MessageFrame{
			ID:          w.ID,
			Sender:      w.Sender,
			DisplayName: w.DisplayName,
			Text:        w.Text,
			Date:        w.Date,
		}, nil

	case frameTypePresence:
		return PresenceFrame{
			Sender:      w.Sender,
			DisplayName: w.DisplayName,
			Status:      w.Text,
		}, nil

	default:
		return UnknownFrame{Type: w.Type}, nil
	}
}
