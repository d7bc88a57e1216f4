package domain

import "time"

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	// RoleUser is a message typed by the user.
	RoleUser Role = "user"

	// RoleAssistant is a reply produced by the assistant.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Citation is a source excerpt attached to an assistant reply.
// Citations ground the answer in the user's uploaded documents.
type Citation struct {
	// Source identifies the cited document (filename or document id).
	Source string `json:"source"`

	// Preview is a short excerpt from the cited passage.
	Preview string `json:"preview"`

	// Score is the retrieval relevance score.
	Score float64 `json:"score"`
}

// Message is one turn in a conversation. Messages are immutable once
// appended to a transcript.
type Message struct {
	// ID is the unique identifier for the message.
	ID string `json:"id"`

	// Role is the author of the message.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Citations holds source references for assistant replies.
	// Empty for user messages.
	Citations []Citation `json:"citations,omitempty"`

	// CreatedAt is when the message was appended.
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the ordered list of messages for one conversation.
// It is strictly append-ordered; no reordering or merging exists.
type Transcript []Message

// Append returns the transcript with msg added at the end.
func (t Transcript) Append(msg Message) Transcript {
	return append(t, msg)
}

// Clone returns a copy of the transcript so callers can hold a snapshot
// that later appends do not mutate.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Len returns the number of messages.
func (t Transcript) Len() int {
	return len(t)
}

// Empty returns true if the transcript holds no messages.
func (t Transcript) Empty() bool {
	return len(t) == 0
}
