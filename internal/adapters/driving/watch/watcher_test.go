package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

type recordingBatch struct {
	mu       sync.Mutex
	imported []string
	calls    chan string
	err      error
}

func newRecordingBatch() *recordingBatch {
	return &recordingBatch{calls: make(chan string, 16)}
}

func (r *recordingBatch) Export(context.Context, domain.Method, driving.LogSink) (*domain.BatchReport, error) {
	return &domain.BatchReport{}, nil
}

func (r *recordingBatch) Import(context.Context, domain.Method, driving.LogSink) (*domain.BatchReport, error) {
	return &domain.BatchReport{}, nil
}

func (r *recordingBatch) ImportDocument(
	_ context.Context, _ domain.Method, name string, _ driving.LogSink,
) (*domain.DocumentOutcome, error) {
	r.mu.Lock()
	r.imported = append(r.imported, name)
	r.mu.Unlock()
	r.calls <- name
	if r.err != nil {
		return nil, r.err
	}
	return &domain.DocumentOutcome{Name: name, State: domain.OutcomeImported}, nil
}

func TestHandleFsEvent(t *testing.T) {
	w := New(newRecordingBatch(), domain.DefaultConfig(), domain.MethodXMLEntry, nil)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
	}{
		{"write text", fsnotify.Event{Name: "/x/quests.txt", Op: fsnotify.Write}, "quests.json"},
		{"create text", fsnotify.Event{Name: "/x/quests.txt", Op: fsnotify.Create}, "quests.json"},
		{"write and chmod", fsnotify.Event{Name: "/x/a.txt", Op: fsnotify.Write | fsnotify.Chmod}, "a.json"},
		{"chmod only", fsnotify.Event{Name: "/x/a.txt", Op: fsnotify.Chmod}, ""},
		{"remove", fsnotify.Event{Name: "/x/a.txt", Op: fsnotify.Remove}, ""},
		{"rename", fsnotify.Event{Name: "/x/a.txt", Op: fsnotify.Rename}, ""},
		{"other extension", fsnotify.Event{Name: "/x/a.json", Op: fsnotify.Write}, ""},
		{"temporary file", fsnotify.Event{Name: "/x/.tmp-123.txt", Op: fsnotify.Create}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleFsEvent(tt.event))
		})
	}
}

func TestWatcher_ImportsOnSave(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.IntermediateDir = dir
	batch := newRecordingBatch()
	w := New(batch, cfg, domain.MethodCSVString, nil).WithDebounce(200 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "quests.txt")
	require.NoError(t, os.WriteFile(path, []byte(`"a"`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`"b"`), 0o644))

	select {
	case name := <-batch.calls:
		assert.Equal(t, "quests.json", name)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for import")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}

	batch.mu.Lock()
	defer batch.mu.Unlock()
	assert.Equal(t, []string{"quests.json"}, batch.imported, "writes within the debounce window import once")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.IntermediateDir = filepath.Join(t.TempDir(), "missing")

	err := New(newRecordingBatch(), cfg, domain.MethodXMLEntry, nil).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryMissing)
}

func TestWatcher_StopsOnImportError(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.IntermediateDir = dir
	batch := newRecordingBatch()
	batch.err = domain.ErrDirectoryMissing
	w := New(batch, cfg, domain.MethodXMLEntry, nil).WithDebounce(10 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrDirectoryMissing)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
