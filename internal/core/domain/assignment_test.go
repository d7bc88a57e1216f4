package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentReport_Ok(t *testing.T) {
	r := AssignmentReport{Added: []string{"doc-1"}}
	assert.True(t, r.Ok())
	assert.NoError(t, r.Err())
}

func TestAssignmentReport_Err(t *testing.T) {
	r := AssignmentReport{
		Added: []string{"doc-1"},
		Failures: []AssignmentFailure{
			{DocumentID: "doc-2", Op: "add", Err: errors.New("boom")},
			{DocumentID: "doc-3", Op: "remove", Err: errors.New("gone")},
		},
	}

	assert.False(t, r.Ok())
	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 assignment change(s) failed")
	assert.Contains(t, err.Error(), "add doc-2")
	assert.Contains(t, err.Error(), "remove doc-3")
}
