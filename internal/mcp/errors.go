// Package mcp implements the Model Context Protocol server for promptdex.
package mcp

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"

	"github.com/Aman-CERP/promptdex/internal/catalog"
	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
)

// MCP error codes used by promptdex.
const (
	// ErrCodeNotFound indicates the requested prompt does not exist.
	ErrCodeNotFound = -32004

	// Standard JSON-RPC error codes.
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// WireError returns e as a JSON-RPC error, which the SDK sends with its code intact.
func (e *MCPError) WireError() *jsonrpc.Error {
	return &jsonrpc.Error{Code: int64(e.Code), Message: e.Message}
}

// MapError converts internal errors to MCP errors.
// Only a missing prompt and bad input get dedicated codes; everything else is internal.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return &MCPError{
			Code:    ErrCodeNotFound,
			Message: "Prompt not found.",
		}
	case dexerrors.GetCategory(err) == dexerrors.CategoryValidation:
		return &MCPError{
			Code:    ErrCodeInvalidParams,
			Message: "Invalid parameters.",
		}
	default:
		return &MCPError{
			Code:    ErrCodeInternalError,
			Message: "Internal server error.",
		}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// NewMethodNotFoundError creates an error for unknown tools.
func NewMethodNotFoundError(name string) *MCPError {
	return &MCPError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Tool '%s' not found.", name),
	}
}

// NewNotFoundError creates an error for a missing prompt.
func NewNotFoundError(id string) *MCPError {
	return &MCPError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("Prompt '%s' not found.", id),
	}
}
