package driving

import "context"

// StatusReport summarises backend reachability and local state.
type StatusReport struct {
	// BackendReachable is true if the health check succeeded.
	BackendReachable bool

	// BackendError holds the health check failure, if any.
	BackendError string

	// Classes is the number of classes in the registry.
	Classes int

	// Documents is the number of documents known to the backend.
	Documents int

	// Sessions is the number of persisted sessions.
	Sessions int
}

// StatusService reports application health for the status command.
type StatusService interface {
	// Check probes the backend and summarises local registries.
	// A failed health check is reported, not returned as an error.
	Check(ctx context.Context) (*StatusReport, error)
}
