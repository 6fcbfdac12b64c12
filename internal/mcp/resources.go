package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PromptURIScheme prefixes prompt resource URIs, e.g. prompt://tools-coding-agent.
const PromptURIScheme = "prompt://"

// registerResources exposes every prompt as a readable resource.
func (s *Server) registerResources() {
	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "prompt",
		URITemplate: PromptURIScheme + "{id}",
		Description: "Raw content of a system prompt by id",
		MIMEType:    "text/plain",
	}, s.handleReadPrompt)
}

// handleReadPrompt returns the content of the prompt named by the request URI.
// Failures are protocol errors carrying the MCPError code.
func (s *Server) handleReadPrompt(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	res, err := s.readPrompt(ctx, req.Params.URI)
	if err != nil {
		var mcpErr *MCPError
		if errors.As(err, &mcpErr) {
			return nil, mcpErr.WireError()
		}
		return nil, err
	}
	return res, nil
}

func (s *Server) readPrompt(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(uri, PromptURIScheme)
	if !ok || id == "" {
		return nil, NewInvalidParamsError("invalid prompt URI: " + uri)
	}

	doc, err := s.catalog.Get(ctx, id)
	if err != nil {
		mapped := MapError(err)
		if mapped.Code == ErrCodeNotFound {
			return nil, NewNotFoundError(id)
		}
		return nil, mapped
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: mimeTypeForPath(doc.SourcePath),
				Text:     doc.Content,
			},
		},
	}, nil
}

// mimeTypeForPath returns the MIME type for a prompt file.
func mimeTypeForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return "text/markdown"
	}
	return "text/plain"
}
