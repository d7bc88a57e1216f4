// Package api implements the BackendClient port over the RAG Scholar
// HTTP API. It is a pure I/O adapter: JSON in and out, transport
// errors mapped onto domain sentinels, a proactive rate limiter in
// front of every call, and bounded retries for idempotent reads.
package api
