// Package anthropic provides a provider wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
)

// Options configures the Anthropic provider adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Provider wraps the Anthropic Messages API behind the generic model.Provider interface.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// NewProvider creates a new Anthropic provider using the official client.
func NewProvider(optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Provider{
		client: &client,
		opts:   opts,
	}
}

// NewProviderFromClient creates a new Anthropic provider from an existing client.
func NewProviderFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Provider{
		client: client,
		opts:   opts,
	}
}

// Send performs one non-streaming Messages round-trip. The conversation
// history maps onto the API one-to-one: tool results already travel on
// user-role messages, so no reordering is required in either direction.
func (p *Provider) Send(ctx context.Context, req model.Request) (*model.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       p.opts.Model,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   p.opts.MaxTokens,
		Temperature: anthropic.Float(p.opts.Temperature),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	if len(req.Tools) > 0 {
		params.Tools = buildTools(req.Tools)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var parts []core.Part
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			textBlock := block.AsText()
			if textBlock.Text != "" {
				parts = append(parts, core.TextPart{Text: textBlock.Text})
			}
		case "tool_use":
			toolBlock := block.AsToolUse()
			parts = append(parts, core.ToolUsePart{
				ID:    toolBlock.ID,
				Name:  toolBlock.Name,
				Input: decodeInput(toolBlock.Input),
			})
		}
	}

	return &model.Response{
		StopReason: model.StopReason(resp.StopReason),
		Message:    core.Message{Role: core.RoleAssistant, Parts: parts},
	}, nil
}

// decodeInput normalizes the SDK's tool input payload into a plain map.
func decodeInput(input any) map[string]any {
	if input == nil {
		return nil
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil
	}
	return args
}

// buildMessages converts the conversation history to Anthropic message params.
func buildMessages(messages []core.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))

	for _, m := range messages {
		content := buildContent(m.Parts)
		if len(content) == 0 {
			continue
		}

		switch m.Role {
		case core.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(content...))
		default:
			out = append(out, anthropic.NewUserMessage(content...))
		}
	}

	return out
}

// buildContent converts message parts into Anthropic content blocks, keeping
// part order.
func buildContent(parts []core.Part) []anthropic.ContentBlockParamUnion {
	var content []anthropic.ContentBlockParamUnion

	for _, p := range parts {
		switch part := p.(type) {
		case core.TextPart:
			if part.Text != "" {
				content = append(content, anthropic.NewTextBlock(part.Text))
			}
		case core.ToolUsePart:
			content = append(content, anthropic.NewToolUseBlock(part.ID, part.Input, part.Name))
		case core.ToolResultPart:
			content = append(content, anthropic.NewToolResultBlock(part.ToolUseID, part.Content, part.IsError))
		}
	}

	return content
}

// buildTools converts tool definitions to the Anthropic tool format.
func buildTools(tools []model.ToolDefinition) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))

	for i, tool := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}

		if tool.InputSchema != nil {
			if properties, exists := tool.InputSchema["properties"]; exists {
				inputSchema.Properties = properties
			}
			if required, exists := tool.InputSchema["required"]; exists {
				inputSchema.Required = requiredStrings(required)
			}
		}

		anthropicTools[i] = anthropic.ToolUnionParamOfTool(inputSchema, tool.Name)
		anthropicTools[i].OfTool.Description = anthropic.String(tool.Description)
	}

	return anthropicTools
}

// requiredStrings tolerates both []string and the []any shape produced by
// JSON decoding.
func requiredStrings(required any) []string {
	switch req := required.(type) {
	case []string:
		return req
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Info returns metadata describing this Anthropic provider implementation.
func (p *Provider) Info() model.Info {
	return model.Info{
		Name:          string(p.opts.Model),
		Provider:      "anthropic",
		SupportsTools: true,
	}
}
