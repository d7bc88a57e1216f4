// Package sqlite provides the persistent local store for the Scholar
// CLI: the class registry mirror, cached transcripts and small KV
// state. The store is a restore aid; anything that also exists
// server-side is reconciled against the backend on load.
package sqlite
