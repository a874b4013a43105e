// Package file provides the TOML-backed configuration store.
//
// The file lives at ~/.textsasset/config.toml unless another directory is
// given. Nested tables are flattened to dot keys on load and nested again on
// save, so "dirs.source" is written as
//
//	[dirs]
//	source = "Original_TextsAsset"
package file
