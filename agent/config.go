package agent

import (
	"context"
	"errors"

	"github.com/hupe1980/tripmesh/tool"
)

// ErrInvalidAgentConfig is returned when a configuration does not satisfy the
// required capability set.
var ErrInvalidAgentConfig = errors.New("invalid agent config")

// Config is the capability set an agent variant must provide: a system
// prompt, the tool catalog shown to the model, and a dispatcher executing a
// named tool. Implementations are immutable after registration; a plain
// struct composing the three operations suffices, no inheritance mechanism is
// involved.
type Config interface {
	// SystemPrompt returns the agent's system prompt.
	SystemPrompt() string

	// ToolDefinitions returns the tools available to this agent, in the order
	// they are presented to the model. Pure and side-effect-free.
	ToolDefinitions() []tool.Definition

	// ExecuteTool runs a tool by name with the given input. Unknown names fail
	// with tool.ErrUnknownTool.
	ExecuteTool(ctx context.Context, name string, args map[string]any) (any, error)
}

// validateConfig checks the capability set at registration/construction time.
func validateConfig(cfg Config) error {
	if cfg == nil {
		return errors.Join(ErrInvalidAgentConfig, errors.New("config is nil"))
	}
	if cfg.SystemPrompt() == "" {
		return errors.Join(ErrInvalidAgentConfig, errors.New("system prompt is empty"))
	}
	seen := make(map[string]struct{})
	for _, def := range cfg.ToolDefinitions() {
		if def.Name == "" {
			return errors.Join(ErrInvalidAgentConfig, errors.New("tool definition with empty name"))
		}
		if _, dup := seen[def.Name]; dup {
			return errors.Join(ErrInvalidAgentConfig, errors.New("duplicate tool name: "+def.Name))
		}
		seen[def.Name] = struct{}{}
	}
	return nil
}
