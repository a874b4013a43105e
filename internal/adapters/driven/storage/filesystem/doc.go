// Package filesystem provides the local-directory implementation of
// driven.Workspace.
//
// Source documents are read from one directory, intermediate text files
// live in a second and rewritten documents are written to a third. Every
// write goes to a temporary file in the target directory first and is
// renamed into place, so a failed document never leaves a partial file.
package filesystem
