// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants search the papis library through the same
// search provider the desktop shell uses.
package mcp

import "errors"

// ErrMissingSearchProvider is returned when the search provider is not provided.
var ErrMissingSearchProvider = errors.New("mcp: search provider is required")
