package domain

import (
	"fmt"
	"strings"
)

// AssignmentFailure records a single document whose assignment change
// could not be applied server-side.
type AssignmentFailure struct {
	// DocumentID is the document whose change failed.
	DocumentID string

	// Op is the attempted operation ("add" or "remove").
	Op string

	// Err is the underlying failure.
	Err error
}

// AssignmentReport is the outcome of a bulk document assignment.
// Each document's change is attempted independently; failures are
// collected here rather than aborting the batch.
type AssignmentReport struct {
	// Added lists document ids newly assigned to the class.
	Added []string

	// Removed lists document ids removed from the class.
	Removed []string

	// Failures lists the changes that could not be applied.
	Failures []AssignmentFailure
}

// Ok returns true if every change was applied.
func (r *AssignmentReport) Ok() bool {
	return len(r.Failures) == 0
}

// Err returns a single error summarising all failures, or nil if the
// batch fully succeeded.
func (r *AssignmentReport) Err() error {
	if r.Ok() {
		return nil
	}
	parts := make([]string, 0, len(r.Failures))
	for i := range r.Failures {
		parts = append(parts, fmt.Sprintf("%s %s: %v",
			r.Failures[i].Op, r.Failures[i].DocumentID, r.Failures[i].Err))
	}
	return fmt.Errorf("%d assignment change(s) failed: %s", len(r.Failures), strings.Join(parts, "; "))
}
