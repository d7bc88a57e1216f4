package domain

import "time"

// SessionState is the lifecycle state of a conversation thread.
// The state machine is deliberately explicit rather than a set of
// loosely-coordinated flags:
//
//	provisional --(first message sent)--> persisted
//	persisted   --(deleted / abandoned empty)--> gone
type SessionState string

// Session states.
const (
	// SessionProvisional exists only in client memory with a
	// client-generated placeholder id. Nothing has been created
	// server-side yet.
	SessionProvisional SessionState = "provisional"

	// SessionPersisted has a server-issued id and lives in the
	// backend's session list.
	SessionPersisted SessionState = "persisted"
)

// IsValid returns true if the state is recognised.
func (s SessionState) IsValid() bool {
	return s == SessionProvisional || s == SessionPersisted
}

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}

// Session is one conversation thread, optionally scoped to a class.
// A session is created lazily: no server-side session exists until the
// first user message is sent.
type Session struct {
	// ID is the session identifier. Client-generated while the session
	// is provisional, replaced by the server id on first send.
	ID string `json:"id"`

	// Name is the display name. The backend may rename a session after
	// the first exchange (e.g. deriving a title from the question).
	Name string `json:"name"`

	// MessageCount is the server-reported message count. For the
	// currently active session the live transcript length is
	// authoritative instead; see ChatService.
	MessageCount int `json:"message_count"`

	// ClassID tags the session with a class, empty if unscoped.
	ClassID string `json:"class_id,omitempty"`

	// ClassName is the display name of the tagged class at creation
	// time. Kept denormalised so session lists render without a class
	// lookup.
	ClassName string `json:"class_name,omitempty"`

	// State is the lifecycle state.
	State SessionState `json:"state"`

	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the session last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// Persisted returns true once the session has a server-issued id.
func (s *Session) Persisted() bool {
	return s.State == SessionPersisted
}
