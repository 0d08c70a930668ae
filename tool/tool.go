// Package tool implements the function / tool calling subsystem that lets the
// conversation loop invoke structured lookups with schema validated arguments,
// consistent error handling and metadata the model uses to decide when to call
// them.
package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/tripmesh/internal/util"
)

// ErrUnknownTool is returned by Registry.Execute when the requested tool name
// is not registered. The lookup never partially executes anything.
var ErrUnknownTool = errors.New("unknown tool")

// Tool defines the interface for a single callable capability exposed to the
// model.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions
//   - Define a proper JSON schema for parameters
//   - Be deterministic functions of their declared inputs (no network or disk
//     I/O in this repository; lookups run over static tables with synthesized
//     fallbacks)
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the LLM to help it understand when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	// This schema is used for parameter validation and LLM function calling.
	Parameters() map[string]any

	// Call executes the tool. Arguments are parsed from JSON and validated
	// against the tool's schema before the implementation runs.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Definition declaratively exposes a callable tool to the model: its unique
// name, description and JSON schema (parameter names, types, required subset,
// enum constraints, defaults). Immutable per agent variant.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
