package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/jsondoc"
)

func newTestWorkspace(t *testing.T) (*Workspace, domain.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.SourceDir = filepath.Join(root, "src")
	cfg.IntermediateDir = filepath.Join(root, "txt")
	cfg.OutputDir = filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0o755))
	return NewWorkspace(cfg), cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDocuments_FiltersAndSorts(t *testing.T) {
	ws, cfg := newTestWorkspace(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(cfg.SourceDir, "b.json"), `{}`)
	writeFile(t, filepath.Join(cfg.SourceDir, "a.json"), `{}`)
	writeFile(t, filepath.Join(cfg.SourceDir, "notes.txt"), `x`)
	writeFile(t, filepath.Join(cfg.SourceDir, "upper.JSON"), `{}`)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.SourceDir, "dir.json"), 0o755))

	names, err := ws.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)
}

func TestDocuments_MissingDirectory(t *testing.T) {
	ws := NewWorkspace(domain.Config{SourceDir: filepath.Join(t.TempDir(), "nope")})

	_, err := ws.Documents(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryMissing)
}

func TestDocuments_SourceIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	writeFile(t, file, "x")
	ws := NewWorkspace(domain.Config{SourceDir: file})

	_, err := ws.Documents(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryMissing)
}

func TestLoad(t *testing.T) {
	ws, cfg := newTestWorkspace(t)
	writeFile(t, filepath.Join(cfg.SourceDir, "q.json"), `{"m_Name":"q","m_Script":"hello"}`)

	doc, err := ws.Load(context.Background(), "q.json")
	require.NoError(t, err)
	assert.Equal(t, "q.json", doc.Name)
	require.Len(t, doc.Fields, 2)
	assert.Equal(t, "m_Name", doc.Fields[0].Key)

	payload, err := doc.Payload("m_Script")
	require.NoError(t, err)
	assert.Equal(t, "hello", payload)
}

func TestLoad_Errors(t *testing.T) {
	ws, cfg := newTestWorkspace(t)
	ctx := context.Background()
	writeFile(t, filepath.Join(cfg.SourceDir, "bad.json"), `{"m_Script":`)
	writeFile(t, filepath.Join(cfg.SourceDir, "arr.json"), `[1,2]`)

	_, err := ws.Load(ctx, "bad.json")
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = ws.Load(ctx, "arr.json")
	assert.ErrorIs(t, err, domain.ErrPayloadFormat)

	_, err = ws.Load(ctx, "missing.json")
	assert.Error(t, err)
}

func TestIntermediateName(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	assert.Equal(t, "quests.txt", ws.IntermediateName("quests.json"))
	assert.Equal(t, "en-CAB-1.txt", ws.IntermediateName("en-CAB-1.json"))
}

func TestIntermediate_WriteRead(t *testing.T) {
	ws, cfg := newTestWorkspace(t)
	ctx := context.Background()

	assert.ErrorIs(t, ws.RequireIntermediate(), domain.ErrDirectoryMissing)

	_, err := ws.ReadIntermediate(ctx, "q.json")
	assert.ErrorIs(t, err, domain.ErrIntermediateMissing)

	require.NoError(t, ws.WriteIntermediate(ctx, "q.json", []byte(`"a"`)))
	assert.NoError(t, ws.RequireIntermediate())
	assert.FileExists(t, filepath.Join(cfg.IntermediateDir, "q.txt"))

	data, err := ws.ReadIntermediate(ctx, "q.json")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(data))

	entries, err := os.ReadDir(cfg.IntermediateDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestSave_IndentsAndKeepsOrder(t *testing.T) {
	ws, cfg := newTestWorkspace(t)

	doc, err := ParseDocument("q.json", []byte(`{"z":1,"m_Script":"x","a":{"k":[1]}}`))
	require.NoError(t, err)
	encoded, err := jsondoc.EncodeString("Grüße\n<b>")
	require.NoError(t, err)
	out := doc.WithPayload("m_Script", encoded)

	require.NoError(t, ws.Save(context.Background(), out))

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "q.json"))
	require.NoError(t, err)
	want := "{\n  \"z\": 1,\n  \"m_Script\": \"Grüße\\n<b>\",\n  \"a\": {\n    \"k\": [\n      1\n    ]\n  }\n}"
	assert.Equal(t, want, string(data))
}

func TestFormatDocument_UnescapesOtherFields(t *testing.T) {
	doc, err := ParseDocument("q.json", []byte(`{"m_Name":"caf\u00e9","m_Script":"x"}`))
	require.NoError(t, err)
	encoded, err := jsondoc.EncodeString("y")
	require.NoError(t, err)

	data, err := FormatDocument(doc.WithPayload("m_Script", encoded))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"m_Name\": \"café\",\n  \"m_Script\": \"y\"\n}", string(data))
}

func TestSave_InvalidDocument(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	assert.ErrorIs(t, ws.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, ws.Save(context.Background(), &domain.Document{}), domain.ErrInvalidInput)
}

func TestWriteAtomic_CancelledContext(t *testing.T) {
	ws, cfg := newTestWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ws.WriteIntermediate(ctx, "q.json", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(cfg.IntermediateDir, "q.txt"))
}
