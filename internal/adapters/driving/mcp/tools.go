package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// BatchInput is the input schema for the export and import tools.
type BatchInput struct {
	Method   string `json:"method,omitempty" jsonschema:"payload method: xml_entry, json_string, csv_string or json_table (default from config)"`
	Document string `json:"document,omitempty" jsonschema:"import only this source document, e.g. quests.json"`
}

// BatchOutput is the output schema for the export and import tools.
type BatchOutput struct {
	RunID     string          `json:"run_id,omitempty"`
	Direction string          `json:"direction"`
	Method    string          `json:"method"`
	Total     int             `json:"total"`
	Processed int             `json:"processed"`
	Skipped   int             `json:"skipped"`
	Outcomes  []OutcomeOutput `json:"outcomes"`
	Log       []string        `json:"log"`
}

// OutcomeOutput is the result for one document.
type OutcomeOutput struct {
	Document string `json:"document"`
	State    string `json:"state"`
	Lines    int    `json:"lines"`
	Reason   string `json:"reason,omitempty"`
}

// MethodsInput is the (empty) input schema for list_methods.
type MethodsInput struct{}

// MethodsOutput lists the supported methods.
type MethodsOutput struct {
	Methods []MethodOutput `json:"methods"`
}

// MethodOutput describes one method.
type MethodOutput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunsInput is the input schema for recent_runs.
type RunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default from config)"`
}

// RunsOutput lists recorded runs, newest first.
type RunsOutput struct {
	Runs []BatchOutput `json:"runs"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_texts",
		Description: "Extract translatable texts from every source document into intermediate .txt files",
	}, s.handleExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_texts",
		Description: "Merge edited .txt files back into new JSON documents in the output directory",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_methods",
		Description: "List the payload methods that export and import understand",
	}, s.handleListMethods)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "recent_runs",
			Description: "List recent export and import runs with per-document outcomes",
		}, s.handleRecentRuns)
	}
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchInput,
) (*mcp.CallToolResult, BatchOutput, error) {
	method, err := parseMethod(input.Method)
	if err != nil {
		return nil, BatchOutput{}, err
	}

	sink := &collectSink{}
	report, err := s.ports.Batch.Export(ctx, method, sink)
	if err != nil {
		return nil, BatchOutput{}, err
	}
	return nil, toBatchOutput(report, sink.lines()), nil
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchInput,
) (*mcp.CallToolResult, BatchOutput, error) {
	method, err := parseMethod(input.Method)
	if err != nil {
		return nil, BatchOutput{}, err
	}

	sink := &collectSink{}
	if input.Document != "" {
		outcome, err := s.ports.Batch.ImportDocument(ctx, method, input.Document, sink)
		if err != nil {
			return nil, BatchOutput{}, err
		}
		report := &domain.BatchReport{Direction: domain.DirectionImport, Method: method}
		report.Add(*outcome)
		return nil, toBatchOutput(report, sink.lines()), nil
	}

	report, err := s.ports.Batch.Import(ctx, method, sink)
	if err != nil {
		return nil, BatchOutput{}, err
	}
	return nil, toBatchOutput(report, sink.lines()), nil
}

func (s *Server) handleListMethods(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ MethodsInput,
) (*mcp.CallToolResult, MethodsOutput, error) {
	all := domain.AllMethods()
	output := MethodsOutput{Methods: make([]MethodOutput, len(all))}
	for i, m := range all {
		output.Methods[i] = MethodOutput{Name: m.String(), Description: m.Description()}
	}
	return nil, output, nil
}

func (s *Server) handleRecentRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunsInput,
) (*mcp.CallToolResult, RunsOutput, error) {
	reports, err := s.ports.History.Recent(ctx, input.Limit)
	if err != nil {
		return nil, RunsOutput{}, err
	}

	output := RunsOutput{Runs: make([]BatchOutput, len(reports))}
	for i := range reports {
		output.Runs[i] = toBatchOutput(&reports[i], nil)
	}
	return nil, output, nil
}

// parseMethod accepts an empty name, leaving the choice to the pipeline.
func parseMethod(name string) (domain.Method, error) {
	if name == "" {
		return "", nil
	}
	return domain.ParseMethod(name)
}

func toBatchOutput(r *domain.BatchReport, log []string) BatchOutput {
	out := BatchOutput{
		RunID:     r.RunID,
		Direction: string(r.Direction),
		Method:    r.Method.String(),
		Total:     r.Total(),
		Processed: r.Processed(),
		Skipped:   r.Skipped(),
		Outcomes:  make([]OutcomeOutput, len(r.Outcomes)),
		Log:       log,
	}
	if out.Log == nil {
		out.Log = []string{}
	}
	for i, o := range r.Outcomes {
		out.Outcomes[i] = OutcomeOutput{
			Document: o.Name,
			State:    string(o.State),
			Lines:    o.Lines,
			Reason:   o.Reason,
		}
	}
	return out
}

// collectSink buffers log lines for the tool result.
type collectSink struct {
	mu  sync.Mutex
	buf []string
}

func (c *collectSink) Log(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = append(c.buf, line)
}

func (c *collectSink) lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.buf...)
}
