package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/pkg/version"
)

// ServerName is reported to clients during initialization.
const ServerName = "promptdex"

// Catalog is the subset of catalog.Service the server needs.
type Catalog interface {
	List(ctx context.Context, opts query.Options) ([]scanner.Document, error)
	Get(ctx context.Context, id string) (scanner.Document, error)
	Categories(ctx context.Context) ([]query.CategorySummary, error)
}

// Server is the MCP server for promptdex.
// It exposes the catalog to AI clients as tools and prompt:// resources.
type Server struct {
	mcp     *mcp.Server
	catalog Catalog
	logger  *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        ToolListPrompts,
		Description: "List system prompts in the catalog, ordered by title. Optionally filter by a case-insensitive search string and an exact category.",
	},
	{
		Name:        ToolGetPrompt,
		Description: "Fetch one system prompt by id, including its full content.",
	},
	{
		Name:        ToolListCategories,
		Description: "List prompt categories with the number of prompts in each, largest first.",
	},
}

// NewServer creates a new MCP server over catalog.
func NewServer(catalog Catalog, logger *slog.Logger) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		catalog: catalog,
		logger:  logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/resources
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// CallTool invokes a tool by name with JSON-style arguments and returns its
// structured output. It runs the same handlers the MCP transport uses.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolListPrompts:
		var in ListPromptsInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		_, out, err := s.mcpListPromptsHandler(ctx, nil, in)
		return out, err
	case ToolGetPrompt:
		var in GetPromptInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		_, out, err := s.mcpGetPromptHandler(ctx, nil, in)
		return out, err
	case ToolListCategories:
		_, out, err := s.mcpListCategoriesHandler(ctx, nil, ListCategoriesInput{})
		return out, err
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpListPromptsHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpGetPromptHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[2].Name, Description: tools[2].Description}, s.mcpListCategoriesHandler)

	s.logger.Debug("MCP tools registered", slog.Int("count", len(tools)))
}

// mcpListPromptsHandler is the MCP SDK handler for the list_prompts tool.
func (s *Server) mcpListPromptsHandler(ctx context.Context, _ *mcp.CallToolRequest, input ListPromptsInput) (
	*mcp.CallToolResult,
	ListPromptsOutput,
	error,
) {
	start := time.Now()
	requestID := generateRequestID()
	opts := query.Options{Search: input.Search, Category: input.Category}

	docs, err := s.catalog.List(ctx, opts)
	if err != nil {
		s.logFailure(ToolListPrompts, requestID, start, err)
		return nil, ListPromptsOutput{}, MapError(err)
	}

	out := ListPromptsOutput{Prompts: make([]PromptSummary, 0, len(docs))}
	for _, doc := range docs {
		out.Prompts = append(out.Prompts, toSummary(doc))
	}

	s.logger.Info("list_prompts completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.Int("result_count", len(docs)))

	return textResult(FormatPromptList(opts, docs)), out, nil
}

// mcpGetPromptHandler is the MCP SDK handler for the get_prompt tool.
func (s *Server) mcpGetPromptHandler(ctx context.Context, _ *mcp.CallToolRequest, input GetPromptInput) (
	*mcp.CallToolResult,
	GetPromptOutput,
	error,
) {
	if input.ID == "" {
		return nil, GetPromptOutput{}, NewInvalidParamsError("id parameter is required")
	}

	start := time.Now()
	requestID := generateRequestID()

	doc, err := s.catalog.Get(ctx, input.ID)
	if err != nil {
		mapped := MapError(err)
		if mapped.Code == ErrCodeNotFound {
			return nil, GetPromptOutput{}, NewNotFoundError(input.ID)
		}
		s.logFailure(ToolGetPrompt, requestID, start, err)
		return nil, GetPromptOutput{}, mapped
	}

	s.logger.Info("get_prompt completed",
		slog.String("request_id", requestID),
		slog.String("id", input.ID),
		slog.Duration("duration", time.Since(start)))

	return textResult(FormatPrompt(doc)), GetPromptOutput{Prompt: doc}, nil
}

// mcpListCategoriesHandler is the MCP SDK handler for the list_categories tool.
func (s *Server) mcpListCategoriesHandler(ctx context.Context, _ *mcp.CallToolRequest, _ ListCategoriesInput) (
	*mcp.CallToolResult,
	ListCategoriesOutput,
	error,
) {
	start := time.Now()
	requestID := generateRequestID()

	cats, err := s.catalog.Categories(ctx)
	if err != nil {
		s.logFailure(ToolListCategories, requestID, start, err)
		return nil, ListCategoriesOutput{}, MapError(err)
	}

	s.logger.Info("list_categories completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.Int("result_count", len(cats)))

	return textResult(FormatCategories(cats)), ListCategoriesOutput{Categories: cats}, nil
}

// Serve runs the server on stdio until ctx is cancelled or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}

func (s *Server) logFailure(tool, requestID string, start time.Time, err error) {
	s.logger.Error(tool+" failed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.String("error", err.Error()))
}

// textResult wraps markdown as the human-readable part of a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// decodeArgs converts loosely typed arguments into a tool input struct.
func decodeArgs(args map[string]any, dst any) error {
	if len(args) == 0 {
		return nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
