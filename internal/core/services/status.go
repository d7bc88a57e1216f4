package services

import (
	"context"

	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports backend reachability and registry counts.
type StatusService struct {
	backend driven.BackendClient
	classes driven.ClassStore
}

// NewStatusService creates a new status service.
func NewStatusService(backend driven.BackendClient, classes driven.ClassStore) *StatusService {
	return &StatusService{backend: backend, classes: classes}
}

// Check probes the backend and summarises local registries. A failed
// health check is reported in the result, not returned as an error;
// the class count is local and available even offline.
func (s *StatusService) Check(ctx context.Context) (*driving.StatusReport, error) {
	report := &driving.StatusReport{}

	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	report.Classes = len(classes)

	if err := s.backend.Health(ctx); err != nil {
		report.BackendError = err.Error()
		return report, nil
	}
	report.BackendReachable = true

	if docs, err := s.backend.ListDocuments(ctx); err == nil {
		report.Documents = len(docs)
	}
	if sessions, err := s.backend.ListSessions(ctx); err == nil {
		report.Sessions = len(sessions)
	}
	return report, nil
}
