package domain

import (
	"slices"
	"time"
)

// Document represents an uploaded file known to the backend.
// The backend assigns the id at upload time; the client never invents
// document ids.
type Document struct {
	// ID is the server-assigned identifier.
	ID string `json:"id"`

	// Filename is the original file name as uploaded.
	Filename string `json:"filename"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// ChunkCount is how many retrieval chunks the backend produced.
	ChunkCount int `json:"chunk_count"`

	// AssignedClasses lists the ids of classes this document belongs to.
	AssignedClasses []string `json:"assigned_classes"`

	// UploadedAt is when the document was uploaded.
	UploadedAt time.Time `json:"uploaded_at"`
}

// AssignedTo returns true if the document is assigned to the class.
func (d *Document) AssignedTo(classID string) bool {
	return slices.Contains(d.AssignedClasses, classID)
}

// AddClass assigns the document to a class. Adding an already-present
// id is a no-op.
func (d *Document) AddClass(classID string) {
	if d.AssignedTo(classID) {
		return
	}
	d.AssignedClasses = append(d.AssignedClasses, classID)
}

// RemoveClass removes a class assignment. Removing an absent id is a
// no-op.
func (d *Document) RemoveClass(classID string) {
	d.AssignedClasses = slices.DeleteFunc(d.AssignedClasses, func(id string) bool {
		return id == classID
	})
}
