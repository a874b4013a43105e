// Package domain defines the core business entities for textsasset.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed TextAsset JSON document with ordered fields
//   - Entry: One translatable (or comment) unit inside a payload
//   - Method: The payload sub-encoding chosen for a batch
//   - BatchReport: The outcome of one export or import run
//   - Config: Directory layout and placeholder settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
