// Package logger provides verbose diagnostics and line sinks for textsasset.
//
// Diagnostics (Debug, Info, Warn) are printed to stderr only when the
// --verbose flag is set. Batch progress lines are not diagnostics: they are
// always shown and go through a LineWriter handed to the pipeline as its sink.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { printf("[DEBUG] ", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { printf("[INFO] ", format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { printf("[WARN] ", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// LineWriter writes batch log lines to an io.Writer, one per call.
// It is safe for concurrent use.
type LineWriter struct {
	mu         sync.Mutex
	w          io.Writer
	timestamps bool
	now        func() time.Time
}

// NewLineWriter returns a LineWriter over w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w, now: time.Now}
}

// WithTimestamps prefixes each line with the wall-clock time.
func (l *LineWriter) WithTimestamps() *LineWriter {
	l.timestamps = true
	return l
}

// Log writes line followed by a newline.
func (l *LineWriter) Log(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timestamps {
		fmt.Fprintf(l.w, "%s %s\n", l.now().Format("15:04:05"), line)
		return
	}
	fmt.Fprintln(l.w, line)
}
