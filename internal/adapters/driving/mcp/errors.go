// Package mcp provides an MCP (Model Context Protocol) server adapter for Scholar.
// It enables AI assistants to ask questions over the user's study material and to
// browse classes and documents as resources.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
