package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleExport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report and log", func(t *testing.T) {
		batch := &mockBatchService{report: sampleReport()}
		server := newTestServer(t, &Ports{Batch: batch})

		_, out, err := server.handleExport(ctx, nil, BatchInput{Method: "csv"})

		require.NoError(t, err)
		assert.Equal(t, domain.MethodCSVString, batch.lastMethod)
		assert.Equal(t, "run-1", out.RunID)
		assert.Equal(t, 2, out.Total)
		assert.Equal(t, 1, out.Processed)
		assert.Equal(t, 1, out.Skipped)
		require.Len(t, out.Outcomes, 2)
		assert.Equal(t, "skipped", out.Outcomes[1].State)
		assert.Equal(t, []string{"exporting"}, out.Log)
	})

	t.Run("empty method defers to config", func(t *testing.T) {
		batch := &mockBatchService{report: sampleReport()}
		server := newTestServer(t, &Ports{Batch: batch})

		_, _, err := server.handleExport(ctx, nil, BatchInput{})

		require.NoError(t, err)
		assert.Equal(t, domain.Method(""), batch.lastMethod)
	})

	t.Run("unknown method", func(t *testing.T) {
		server := newTestServer(t, &Ports{Batch: &mockBatchService{}})

		_, _, err := server.handleExport(ctx, nil, BatchInput{Method: "yaml"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedMethod)
	})

	t.Run("batch error", func(t *testing.T) {
		batch := &mockBatchService{err: domain.ErrDirectoryMissing}
		server := newTestServer(t, &Ports{Batch: batch})

		_, _, err := server.handleExport(ctx, nil, BatchInput{})

		assert.ErrorIs(t, err, domain.ErrDirectoryMissing)
	})
}

func TestServer_handleImport(t *testing.T) {
	ctx := context.Background()

	t.Run("whole batch", func(t *testing.T) {
		report := sampleReport()
		report.Direction = domain.DirectionImport
		batch := &mockBatchService{report: report}
		server := newTestServer(t, &Ports{Batch: batch})

		_, out, err := server.handleImport(ctx, nil, BatchInput{Method: "xml_entry"})

		require.NoError(t, err)
		assert.Equal(t, "import", out.Direction)
		assert.Equal(t, []string{"importing"}, out.Log)
	})

	t.Run("single document", func(t *testing.T) {
		batch := &mockBatchService{outcome: &domain.DocumentOutcome{
			Name: "quests.json", State: domain.OutcomeImported, Lines: 2,
		}}
		server := newTestServer(t, &Ports{Batch: batch})

		_, out, err := server.handleImport(ctx, nil, BatchInput{Method: "table", Document: "quests.json"})

		require.NoError(t, err)
		assert.Equal(t, "quests.json", batch.lastDocument)
		assert.Equal(t, domain.MethodJSONTable, batch.lastMethod)
		assert.Equal(t, 1, out.Total)
		assert.Equal(t, 1, out.Processed)
		assert.Equal(t, "json_table", out.Method)
	})

	t.Run("single document error", func(t *testing.T) {
		batch := &mockBatchService{err: errors.New("boom")}
		server := newTestServer(t, &Ports{Batch: batch})

		_, _, err := server.handleImport(ctx, nil, BatchInput{Document: "a.json"})

		assert.EqualError(t, err, "boom")
	})
}

func TestServer_handleListMethods(t *testing.T) {
	server := newTestServer(t, &Ports{Batch: &mockBatchService{}})

	_, out, err := server.handleListMethods(context.Background(), nil, MethodsInput{})

	require.NoError(t, err)
	require.Len(t, out.Methods, 4)
	assert.Equal(t, "xml_entry", out.Methods[0].Name)
	assert.NotEmpty(t, out.Methods[0].Description)
}

func TestServer_handleRecentRuns(t *testing.T) {
	history := &mockHistoryService{reports: []domain.BatchReport{*sampleReport(), *sampleReport()}}
	server := newTestServer(t, &Ports{Batch: &mockBatchService{}, History: history})

	_, out, err := server.handleRecentRuns(context.Background(), nil, RunsInput{Limit: 1})

	require.NoError(t, err)
	require.Len(t, out.Runs, 1)
	assert.Equal(t, "run-1", out.Runs[0].RunID)
	assert.Empty(t, out.Runs[0].Log)

	history.err = errors.New("db closed")
	_, _, err = server.handleRecentRuns(context.Background(), nil, RunsInput{})
	assert.Error(t, err)
}

func TestCollectSink(t *testing.T) {
	sink := &collectSink{}
	sink.Log("a")
	sink.Log("b")

	lines := sink.lines()
	lines[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, sink.lines())
}
