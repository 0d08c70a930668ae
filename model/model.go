package model

import (
	"context"

	"github.com/hupe1980/tripmesh/core"
)

// StopReason signals how the model finished a round-trip. Values mirror the
// Anthropic Messages API and are normalized by adapters for other vendors.
type StopReason string

const (
	// StopReasonEndTurn indicates the model produced a final answer.
	StopReasonEndTurn StopReason = "end_turn"
	// StopReasonToolUse indicates the model requested one or more tool invocations.
	StopReasonToolUse StopReason = "tool_use"
)

// ToolDefinition declaratively exposes a callable tool to the model.
// InputSchema is a JSON Schema object (draft agnostic, minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// Request captures the normalized model input produced by the conversation
// loop: the agent's system prompt, the literal history replayed each turn and
// the tool catalog.
type Request struct {
	System   string           `json:"system"`
	Messages []core.Message   `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// Response is the model's reply for one round-trip. Message carries the
// assistant content (text parts, and tool-use parts when StopReason is
// tool_use). Fields a provider does not understand are round-tripped
// unchanged.
type Response struct {
	StopReason StopReason   `json:"stop_reason"`
	Message    core.Message `json:"message"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "anthropic", "openai", "scripted", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Provider is the minimal interface the conversation loop needs to drive
// generation. Send blocks until the model answers; callers wanting timeouts or
// cancellation supply a context deadline.
type Provider interface {
	Send(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the provider implementation.
	Info() Info
}
