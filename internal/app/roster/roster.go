/*
Package roster contains the presence reconciliation engine for a chat session.

It converts the stream of presence events received on the session's connection
into a consistent set of present users, with idempotent add/remove semantics,
and routes view creation/removal to the presentation layer through the
ViewBinder interface.
*/
package roster

import (
	"github.com/rs/zerolog"

	"roomchat/internal/pkg/logx"
)

// Presence status values carried in the text field of presence frames.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// User represents one present participant as known to this client.
// IsSelf is fixed when the record is created and never recomputed.
type User struct {
	// Sender is the server-assigned opaque identifier of the participant's connection.
	Sender string

	// DisplayName is the participant's chosen name at join time.
	DisplayName string

	// IsSelf reports whether this record was created for the session's own identity.
	IsSelf bool
}

// ViewHandle is an opaque reference to a presentation-layer view, owned by the
// ViewBinder. The roster only stores it to route the matching removal.
type ViewHandle any

// ViewBinder is implemented by the presentation layer. CreateView is called
// when a user joins and RemoveView with the previously returned handle when
// that user leaves.
type ViewBinder interface {
	CreateView(u User) ViewHandle
	RemoveView(h ViewHandle)
}

// Model reconciles incremental presence events into the live user set.
//
// All mutation happens synchronously on the session's single dispatch
// goroutine, so the Model carries no locking.
type Model struct {
	// users maps sender identity to its user record. A sender appears at most once.
	users map[string]User

	// views is the explicit side table from sender identity to the bound view
	// handle. Entries exist only while the user is present.
	views map[string]ViewHandle

	// binder receives view create/remove requests. May be nil for headless use.
	binder ViewBinder

	logger zerolog.Logger
}

// NewModel constructs an empty roster bound to the given presentation layer.
func NewModel(binder ViewBinder) *Model {
	return &Model{
		users:  make(map[string]User),
		views:  make(map[string]ViewHandle),
		binder: binder,
		logger: logx.Component("roster"),
	}
}

// Apply reconciles one presence event. An online event for a present sender
// and an offline event for an absent sender are both no-ops; any status other
// than online/offline is ignored.
func (m *Model) Apply(sender, displayName, status string, isSelf bool) {
	switch status {
	case StatusOnline:
		if _, present := m.users[sender]; present {
			return
		}

		u := User{Sender: sender, DisplayName: displayName, IsSelf: isSelf}
		m.users[sender] = u

		if m.binder != nil {
			m.views[sender] = m.binder.CreateView(u)
		}

		m.logger.Debug().
			Str("sender", sender).
			Str("display_name", displayName).
			Bool("is_self", isSelf).
			Msg("User joined roster.")

	case StatusOffline:
		if _, present := m.users[sender]; !present {
			return
		}

		if handle, bound := m.views[sender]; bound {
			if m.binder != nil {
				m.binder.RemoveView(handle)
			}
			delete(m.views, sender)
		}
		delete(m.users, sender)

		m.logger.Debug().
			Str("sender", sender).
			Msg("User left roster.")

	default:
		m.logger.Debug().
			Str("sender", sender).
			Str("status", status).
			Msg("Ignoring presence event with unknown status.")
	}
}

// Contains reports whether the given sender is currently present.
func (m *Model) Contains(sender string) bool {
	_, present := m.users[sender]
	return present
}

// Get returns the record for the given sender, if present.
func (m *Model) Get(sender string) (User, bool) {
	u, present := m.users[sender]
	return u, present
}

// Users returns a snapshot of all present user records.
func (m *Model) Users() []User {
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users
}

// Len returns the number of present users.
func (m *Model) Len() int {
	return len(m.users)
}
