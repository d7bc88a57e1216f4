package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrBackendUnavailable indicates the RAG Scholar backend could not
	// be reached. Callers surface this as a persistent banner and retry
	// only on explicit user action.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrSendInFlight indicates a chat send is already outstanding for
	// the active session. Sends are serialised per conversation.
	ErrSendInFlight = errors.New("chat send already in flight")

	// ErrNoActiveClass indicates an operation required an active class
	// but none is selected.
	ErrNoActiveClass = errors.New("no active class selected")

	// ErrDocumentBusy indicates a document has an assignment operation
	// in flight and cannot accept another until it settles.
	ErrDocumentBusy = errors.New("document assignment in flight")
)
