// Package domain contains the core business entities for the Scholar CLI.
// These types have no dependencies on adapters or infrastructure and
// represent the client-side view of classes, documents, sessions and
// conversations held against the RAG Scholar backend.
package domain
