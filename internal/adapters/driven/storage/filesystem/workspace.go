package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/jsondoc"
	"github.com/custodia-labs/textsasset/internal/logger"
)

// Ensure Workspace implements the interface.
var _ driven.Workspace = (*Workspace)(nil)

const (
	documentExt     = ".json"
	intermediateExt = ".txt"

	permDir  = 0o755
	permFile = 0o644
)

// Workspace reads and writes the three working directories.
type Workspace struct {
	sourceDir       string
	intermediateDir string
	outputDir       string
}

// NewWorkspace creates a workspace over the directories named in cfg.
func NewWorkspace(cfg domain.Config) *Workspace {
	return &Workspace{
		sourceDir:       cfg.SourceDir,
		intermediateDir: cfg.IntermediateDir,
		outputDir:       cfg.OutputDir,
	}
}

// Documents lists *.json files of the source directory in name order.
func (w *Workspace) Documents(_ context.Context) ([]string, error) {
	if err := requireDir(w.sourceDir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(w.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var names []string //nolint:prealloc // filtered
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), documentExt) {
			continue
		}
		names = append(names, e.Name())
	}
	logger.Debug("found %d documents in %s", len(names), w.sourceDir)
	return names, nil
}

// Load parses a source document, keeping its field order.
func (w *Workspace) Load(_ context.Context, name string) (*domain.Document, error) {
	data, err := os.ReadFile(filepath.Join(w.sourceDir, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return ParseDocument(name, data)
}

// RequireIntermediate checks the intermediate directory exists.
func (w *Workspace) RequireIntermediate() error {
	return requireDir(w.intermediateDir)
}

// IntermediateName swaps the document extension for .txt.
func (w *Workspace) IntermediateName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + intermediateExt
}

// ReadIntermediate returns the intermediate file of a document.
func (w *Workspace) ReadIntermediate(_ context.Context, name string) ([]byte, error) {
	txt := w.IntermediateName(name)
	data, err := os.ReadFile(filepath.Join(w.intermediateDir, txt))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no corresponding TXT file '%s'", domain.ErrIntermediateMissing, txt)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", txt, err)
	}
	return data, nil
}

// WriteIntermediate atomically replaces the intermediate file of a document.
func (w *Workspace) WriteIntermediate(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(w.intermediateDir, permDir); err != nil {
		return fmt.Errorf("creating intermediate directory: %w", err)
	}
	return writeAtomic(ctx, filepath.Join(w.intermediateDir, w.IntermediateName(name)), data)
}

// Save writes doc to the output directory with two-space indentation.
func (w *Workspace) Save(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.Name == "" {
		return domain.ErrInvalidInput
	}
	data, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.outputDir, permDir); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return writeAtomic(ctx, filepath.Join(w.outputDir, doc.Name), data)
}

// ParseDocument parses document bytes into an ordered domain.Document.
func ParseDocument(name string, data []byte) (*domain.Document, error) {
	obj, err := jsondoc.ParseObject(data)
	if errors.Is(err, jsondoc.ErrNotObject) {
		return nil, fmt.Errorf("%w: %s is not a JSON object", domain.ErrPayloadFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, name, err)
	}

	doc := &domain.Document{Name: name, Fields: make([]domain.Field, len(obj.Members))}
	for i, m := range obj.Members {
		doc.Fields[i] = domain.Field{Key: m.Key, Value: m.Value}
	}
	return doc, nil
}

// FormatDocument renders doc as indented JSON in field order.
func FormatDocument(doc *domain.Document) ([]byte, error) {
	obj := &jsondoc.Object{Members: make([]jsondoc.Member, len(doc.Fields))}
	for i, f := range doc.Fields {
		obj.Members[i] = jsondoc.Member{Key: f.Key, Value: f.Value}
	}

	compact, err := obj.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", doc.Name, err)
	}
	return jsondoc.Indent(compact)
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: '%s' not found", domain.ErrDirectoryMissing, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: '%s' is not a directory", domain.ErrDirectoryMissing, dir)
	}
	return nil
}

// writeAtomic writes data to a temporary file next to dest and renames it.
func writeAtomic(ctx context.Context, dest string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	_ = os.Chmod(tmpPath, permFile)

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
