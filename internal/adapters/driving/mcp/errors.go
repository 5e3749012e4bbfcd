// Package mcp provides an MCP (Model Context Protocol) server adapter for ghfinder.
// It lets AI assistants search GitHub users and browse their repositories.
package mcp

import "errors"

// ErrMissingDirectoryService is returned when the directory service is not provided.
var ErrMissingDirectoryService = errors.New("mcp: directory service is required")
