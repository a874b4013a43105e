package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for textsasset resources.
	uriScheme = "textsasset://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config",
		Name:        "config",
		Description: "Effective directories, placeholder and default method",
		MIMEType:    "application/json",
	}, s.handleConfigResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run",
		Description: "One recorded export or import run with per-document outcomes",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleConfigResource returns the effective configuration.
func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Config == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cfg, err := s.ports.Config.Get()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	info := struct {
		SourceDir       string `json:"source_dir"`
		IntermediateDir string `json:"intermediate_dir"`
		OutputDir       string `json:"output_dir"`
		Placeholder     string `json:"placeholder"`
		PayloadField    string `json:"payload_field"`
		Method          string `json:"method"`
	}{
		SourceDir:       cfg.SourceDir,
		IntermediateDir: cfg.IntermediateDir,
		OutputDir:       cfg.OutputDir,
		Placeholder:     cfg.Placeholder,
		PayloadField:    cfg.PayloadField,
		Method:          cfg.Method.String(),
	}
	return jsonResult(req.Params.URI, info)
}

// handleRunResource returns one recorded run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report, err := s.ports.History.Get(ctx, runID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, toBatchOutput(report, nil))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like textsasset://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
