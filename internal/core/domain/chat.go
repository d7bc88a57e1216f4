package domain

// ChatRequest carries one user question to the backend.
type ChatRequest struct {
	// Query is the user's question text.
	Query string

	// SessionID is the persisted session the question belongs to.
	SessionID string

	// ClassID scopes retrieval to a class's document collection, empty
	// for unscoped questions.
	ClassID string

	// DocumentIDs optionally narrows retrieval to specific documents.
	DocumentIDs []string

	// ProfileContext is free-form user context (display name, study
	// level) the backend may weave into the answer.
	ProfileContext string
}

// ChatReply is the backend's answer to a ChatRequest.
type ChatReply struct {
	// Answer is the assistant's reply text.
	Answer string

	// Citations ground the answer in retrieved passages.
	Citations []Citation

	// SessionID echoes the session the reply belongs to. Some backends
	// issue a session id on the first exchange; callers must prefer
	// this value over the id they sent.
	SessionID string
}
