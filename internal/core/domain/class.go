package domain

import (
	"slices"
	"time"
)

const unknownDescription = "Unknown"

// Subject categorises a class by topic area.
type Subject string

// Available subjects.
const (
	// SubjectScience covers natural sciences.
	SubjectScience Subject = "science"

	// SubjectMath covers mathematics.
	SubjectMath Subject = "math"

	// SubjectHistory covers history and social studies.
	SubjectHistory Subject = "history"

	// SubjectLanguage covers languages and literature.
	SubjectLanguage Subject = "language"

	// SubjectArts covers arts and humanities.
	SubjectArts Subject = "arts"

	// SubjectEngineering covers engineering and computing.
	SubjectEngineering Subject = "engineering"

	// SubjectOther is the catch-all for everything else.
	SubjectOther Subject = "other"
)

// IsValid returns true if the subject is recognised.
func (s Subject) IsValid() bool {
	switch s {
	case SubjectScience, SubjectMath, SubjectHistory, SubjectLanguage,
		SubjectArts, SubjectEngineering, SubjectOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Subject) String() string {
	return string(s)
}

// Description returns a human-readable description of the subject.
func (s Subject) Description() string {
	switch s {
	case SubjectScience:
		return "Science"
	case SubjectMath:
		return "Mathematics"
	case SubjectHistory:
		return "History & Social Studies"
	case SubjectLanguage:
		return "Language & Literature"
	case SubjectArts:
		return "Arts & Humanities"
	case SubjectEngineering:
		return "Engineering & Computing"
	case SubjectOther:
		return "Other"
	default:
		return unknownDescription
	}
}

// AllSubjects returns all recognised subjects.
func AllSubjects() []Subject {
	return []Subject{
		SubjectScience,
		SubjectMath,
		SubjectHistory,
		SubjectLanguage,
		SubjectArts,
		SubjectEngineering,
		SubjectOther,
	}
}

// Class is a user-defined topical grouping of documents and chat
// sessions (e.g. "Biology 101"). Classes exist client-side with a
// client-generated id; the backend only sees the id as an opaque tag
// on sessions and document assignments.
type Class struct {
	// ID is the client-generated unique identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Subject is the topic area.
	Subject Subject `json:"subject"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Documents is the ordered list of assigned document ids.
	Documents []string `json:"documents"`

	// CreatedAt is when the class was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewClass creates a class with the given identity and an empty
// document list.
func NewClass(id, name string, subject Subject, description string) *Class {
	return &Class{
		ID:          id,
		Name:        name,
		Subject:     subject,
		Description: description,
		Documents:   []string{},
		CreatedAt:   time.Now(),
	}
}

// HasDocument returns true if the document id is assigned to the class.
func (c *Class) HasDocument(docID string) bool {
	return slices.Contains(c.Documents, docID)
}

// AddDocument assigns a document id. Adding an already-present id is a
// no-op, preserving order of first assignment.
func (c *Class) AddDocument(docID string) {
	if c.HasDocument(docID) {
		return
	}
	c.Documents = append(c.Documents, docID)
}

// RemoveDocument removes a document id. Removing an absent id is a
// no-op.
func (c *Class) RemoveDocument(docID string) {
	c.Documents = slices.DeleteFunc(c.Documents, func(id string) bool {
		return id == docID
	})
}
