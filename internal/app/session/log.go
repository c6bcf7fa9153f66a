package session

import "time"

// Message is one chat message in the session's log.
type Message struct {
	ID          string
	Sender      string
	DisplayName string
	Text        string
	Date        time.Time
}

// messageLog is the append-only, arrival-ordered message log of a session.
// The server is the sole writer of message IDs, so a repeated ID overwrites
// the earlier payload in place (last write wins) without moving its position.
type messageLog struct {
	index   map[string]int
	entries []Message
}

func newMessageLog() *messageLog {
	return &messageLog{index: make(map[string]int)}
}

// append records a message, overwriting in place when the ID was seen before.
func (l *messageLog) append(m Message) {
	if i, seen := l.index[m.ID]; seen {
		l.entries[i] = m
		return
	}

	l.index[m.ID] = len(l.entries)
	l.entries = append(l.entries, m)
}

// all returns a copy of the log in arrival order.
func (l *messageLog) all() []Message {
	out := make([]Message, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *messageLog) len() int {
	return len(l.entries)
}
