// Package memory provides in-memory stores used when nothing should be
// persisted: the --ephemeral flag and tests.
package memory
