// Package tui provides an interactive terminal user interface for textsasset.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

// Ports aggregates the driving ports and settings the TUI needs.
type Ports struct {
	// Batch runs export and import batches.
	Batch driving.BatchService

	// History lists recent runs. Optional.
	History driving.HistoryService

	// Config names the folders and the initially selected method.
	Config domain.Config
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Batch == nil {
		return ErrMissingBatchService
	}
	return nil
}
