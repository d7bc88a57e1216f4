// Package file provides a TOML-backed configuration store.
// Configuration lives in ~/.scholar/config.toml and holds the backend
// endpoint, credentials and client preferences. Values persist
// immediately on Set.
package file
