package mcp

import (
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Batch runs export and import batches.
	Batch driving.BatchService

	// History reads recorded runs. Optional.
	History driving.HistoryService

	// Config exposes the effective configuration. Optional.
	Config driving.ConfigService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Batch == nil {
		return ErrMissingBatchService
	}
	return nil
}
