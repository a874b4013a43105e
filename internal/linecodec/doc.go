// Package linecodec converts single text values to and from lines of an
// intermediate text file.
//
// Each value occupies exactly one line: it is trimmed, its newlines are
// escaped as a literal backslash-n and it is wrapped in double quotes.
// Empty values are written as a placeholder so that a translator cannot
// confuse an empty entry with a deleted line.
package linecodec
