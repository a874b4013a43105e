// Package watch re-imports a document whenever its intermediate text file
// is saved, so translators see the rewritten JSON without rerunning a batch.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
	"github.com/custodia-labs/textsasset/internal/logger"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

const (
	textExt     = ".txt"
	documentExt = ".json"
)

// Watcher watches the intermediate directory and imports changed documents.
type Watcher struct {
	batch    driving.BatchService
	method   domain.Method
	dir      string
	sink     driving.LogSink
	debounce time.Duration
}

// New creates a watcher over cfg.IntermediateDir.
func New(batch driving.BatchService, cfg domain.Config, method domain.Method, sink driving.LogSink) *Watcher {
	if sink == nil {
		sink = driving.DiscardSink
	}
	return &Watcher{
		batch:    batch,
		method:   method,
		dir:      cfg.IntermediateDir,
		sink:     sink,
		debounce: DefaultDebounce,
	}
}

// WithDebounce overrides the settle delay.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run blocks until ctx is cancelled or importing fails fatally.
// Cancellation is a clean shutdown and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("%w: watching '%s': %v", domain.ErrDirectoryMissing, w.dir, err)
	}
	w.sink.Log(fmt.Sprintf("Watching '%s' for changes (method %s). Press Ctrl+C to stop.", w.dir, w.method))

	names := make(chan string, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.eventLoop(gctx, fw, names) })
	g.Go(func() error { return w.importLoop(gctx, names) })

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (w *Watcher) eventLoop(ctx context.Context, fw *fsnotify.Watcher, names chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name := w.handleFsEvent(ev)
			if name == "" {
				continue
			}
			select {
			case names <- name:
			case <-ctx.Done():
				return ctx.Err()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// importLoop batches names until writes settle, then imports each once.
func (w *Watcher) importLoop(ctx context.Context, names <-chan string) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name := <-names:
			pending[name] = struct{}{}
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := w.flush(ctx, pending); err != nil {
				return err
			}
			pending = make(map[string]struct{})
		}
	}
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) error {
	names := make([]string, 0, len(pending))
	for n := range pending {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		logger.Debug("re-importing %s", name)
		if _, err := w.batch.ImportDocument(ctx, w.method, name, w.sink); err != nil {
			return err
		}
	}
	return nil
}

// handleFsEvent maps a text file write to its document name.
// It returns "" for events that should not trigger an import.
func (w *Watcher) handleFsEvent(ev fsnotify.Event) string {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return ""
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || filepath.Ext(base) != textExt {
		return ""
	}
	return strings.TrimSuffix(base, textExt) + documentExt
}
