// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BackendClient: the RAG Scholar HTTP API. The single remote
//     collaborator; everything server-side lives behind it.
//   - ClassStore: class registry persistence (local mirror).
//   - TranscriptCache: cached transcripts keyed by session and class.
//   - KVStore: small string key-value persistence (last session id,
//     timezone).
//   - ConfigStore: application configuration.
//
// Local stores are best-effort caches: the application must function
// correctly, just less instantly, if any of them start empty.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
