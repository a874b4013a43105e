// Package codecs holds the payload codecs, one sub-package per method,
// and the registry that dispatches a method to its codec.
//
// Every codec implements driven.Codec: Extract lists entries in document
// order, Count returns how many of them are replaceable, and Rewrite puts
// replacement values back positionally while leaving everything else alone.
//
// Codecs are registered with the Registry at startup.
package codecs
