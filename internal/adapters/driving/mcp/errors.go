// Package mcp provides an MCP (Model Context Protocol) server adapter for
// textsasset. It lets AI assistants run export and import batches and read
// the run history.
package mcp

import "errors"

// ErrMissingBatchService is returned when the batch service is not provided.
var ErrMissingBatchService = errors.New("mcp: batch service is required")
