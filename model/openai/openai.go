// Package openai provides a provider wrapper for the OpenAI Chat Completions
// API. It adapts the normalized Request/Response structures into the SDK's
// message format and back, mapping finish reasons onto the shared stop-reason
// vocabulary.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
)

// Options configure the OpenAI provider adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind the generic
// model.Provider interface.
type Provider struct {
	client *openai.Client
	opts   Options
}

// NewProvider creates a new OpenAI provider using the official client.
func NewProvider(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewProviderFromClient(&client, optFns...)
}

// NewProviderFromClient creates a new OpenAI provider from an existing client.
func NewProviderFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Provider{client: client, opts: opts}
}

// Send performs one non-streaming Chat Completions round-trip. Finish reasons
// are translated to the shared vocabulary: "stop" becomes end_turn and
// "tool_calls" becomes tool_use; anything else passes through verbatim so the
// caller can reject it.
func (p *Provider) Send(ctx context.Context, req model.Request) (*model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	}

	if len(req.Tools) > 0 {
		params.Tools = buildTools(req.Tools)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api error: no choices returned")
	}

	choice := resp.Choices[0]

	parts := make([]core.Part, 0, len(choice.Message.ToolCalls)+1)
	if choice.Message.Content != "" {
		parts = append(parts, core.TextPart{Text: choice.Message.Content})
	}

	for _, tc := range choice.Message.ToolCalls {
		parts = append(parts, core.ToolUsePart{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: decodeArguments(tc.Function.Arguments),
		})
	}

	return &model.Response{
		StopReason: mapFinishReason(choice.FinishReason),
		Message:    core.Message{Role: core.RoleAssistant, Parts: parts},
	}, nil
}

// mapFinishReason translates an OpenAI finish reason onto the shared
// stop-reason vocabulary.
func mapFinishReason(reason string) model.StopReason {
	switch reason {
	case "stop":
		return model.StopReasonEndTurn
	case "tool_calls":
		return model.StopReasonToolUse
	default:
		return model.StopReason(reason)
	}
}

// decodeArguments parses the JSON arguments string of a tool call. Malformed
// payloads yield a nil map rather than an error; schema validation downstream
// reports the missing parameters.
func decodeArguments(arguments string) map[string]any {
	if arguments == "" {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil
	}
	return args
}

// buildMessages converts the conversation history into OpenAI chat messages.
// Tool results travel on user-role messages in the normalized history; the
// Chat Completions API wants them as standalone tool messages instead.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion

	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case core.RoleAssistant:
			messages = append(messages, buildAssistantMessage(m))
		default:
			results := m.ToolResults()
			if len(results) > 0 {
				for _, r := range results {
					messages = append(messages, openai.ToolMessage(r.Content, r.ToolUseID))
				}
				continue
			}
			if text := m.Text(); text != "" {
				messages = append(messages, openai.UserMessage(text))
			}
		}
	}

	return messages
}

// buildAssistantMessage converts an assistant turn, carrying over any tool
// calls alongside the text.
func buildAssistantMessage(m core.Message) openai.ChatCompletionMessageParamUnion {
	uses := m.ToolUses()
	if len(uses) == 0 {
		return openai.AssistantMessage(m.Text())
	}

	toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(uses))
	for i, use := range uses {
		arguments := "{}"
		if use.Input != nil {
			if raw, err := json.Marshal(use.Input); err == nil {
				arguments = string(raw)
			}
		}
		toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
			ID:   use.ID,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      use.Name,
				Arguments: arguments,
			},
		}
	}

	return openai.ChatCompletionMessageParamUnion{OfAssistant: &openai.ChatCompletionAssistantMessageParam{
		Role:      "assistant",
		ToolCalls: toolCalls,
	}}
}

// buildTools converts tool definitions into OpenAI function tool params.
func buildTools(tools []model.ToolDefinition) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, len(tools))

	for i, tool := range tools {
		out[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  openai.FunctionParameters(tool.InputSchema),
			},
		}
	}

	return out
}

// Info returns metadata describing this OpenAI provider implementation.
func (p *Provider) Info() model.Info {
	return model.Info{
		Name:          p.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}
