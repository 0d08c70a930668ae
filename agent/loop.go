package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
)

// ErrUnexpectedModelSignal is returned when the provider reports a stop
// reason the loop does not understand. This is a protocol violation and is
// never retried.
var ErrUnexpectedModelSignal = errors.New("unexpected model signal")

// maxIterationsReply is the canned reply returned when a turn exceeds the
// model round-trip cap. The turn ends without an error; whatever history and
// tool results accumulated are kept.
const maxIterationsReply = "I apologize, but I'm having trouble completing this request. Please try rephrasing."

// defaultMaxIterations caps model round-trips per user turn.
const defaultMaxIterations = 10

// Options configures an Agent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// MaxIterations caps model round-trips per user turn (default 10).
	MaxIterations int
	// ModelTimeout bounds each individual provider call. Zero means no
	// per-call deadline beyond what the caller's context carries.
	ModelTimeout time.Duration
	// Logger receives structured loop/tool events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Agent drives the bounded conversation loop for one configured variant.
// It holds no per-conversation state and is safe for concurrent use; history
// and session state travel through Chat.
type Agent struct {
	name          string
	provider      model.Provider
	config        Config
	maxIterations int
	modelTimeout  time.Duration
	logger        logging.Logger
}

// New constructs an Agent from a provider and a capability config. The config
// is validated eagerly; a config failing the capability set returns
// ErrInvalidAgentConfig.
func New(name string, provider model.Provider, cfg Config, optFns ...func(o *Options)) (*Agent, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	opts := Options{
		MaxIterations: defaultMaxIterations,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agent{
		name:          name,
		provider:      provider,
		config:        cfg,
		maxIterations: opts.MaxIterations,
		modelTimeout:  opts.ModelTimeout,
		logger:        logging.OrNoOp(opts.Logger),
	}, nil
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Result is the outcome of one user turn.
type Result struct {
	// Reply is the final natural-language answer (or the canned apology when
	// the iteration cap was hit).
	Reply string
	// History is the updated conversation history including this turn's
	// messages. Append-only relative to the input history.
	History []core.Message
	// State is the session state, passed through untouched by the loop.
	State map[string]any
	// ToolsUsed lists the names of tools invoked this turn, in invocation
	// order, duplicates kept.
	ToolsUsed []string
}

// Chat processes one user message and returns the reply plus updated history.
//
// The loop is a plain synchronous state machine: append the user message,
// send {system prompt, full history, tool definitions} to the provider, then
// either finish on a final answer, dispatch the requested tools and loop, or
// fail on an unknown stop reason. Tool failures never abort the turn; they
// are fed back to the model as flagged results so it can adapt.
func (a *Agent) Chat(ctx context.Context, userMessage string, history []core.Message, state map[string]any) (*Result, error) {
	if state == nil {
		state = map[string]any{}
	}

	history = core.CloneHistory(history)
	history = append(history, core.NewUserMessage(userMessage))

	tools := a.toolDefinitions()
	var toolsUsed []string

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		resp, err := a.send(ctx, model.Request{
			System:   a.config.SystemPrompt(),
			Messages: history,
			Tools:    tools,
		})
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}

		switch resp.StopReason {
		case model.StopReasonEndTurn:
			reply := resp.Message.Text()
			history = append(history, core.NewAssistantMessage(reply))

			a.logger.Debug("agent.turn.complete", "agent", a.name, "iterations", iteration, "tools_used", len(toolsUsed))

			return &Result{Reply: reply, History: history, State: state, ToolsUsed: toolsUsed}, nil

		case model.StopReasonToolUse:
			// Record the model's text + tool-use blocks verbatim, then answer
			// every invocation with exactly one result, order preserved.
			history = append(history, resp.Message)

			results := make([]core.Part, 0, len(resp.Message.Parts))
			for _, invocation := range resp.Message.ToolUses() {
				results = append(results, a.dispatch(ctx, invocation, &toolsUsed))
			}
			history = append(history, core.Message{Role: core.RoleUser, Parts: results})

		default:
			return nil, fmt.Errorf("%w: stop reason %q", ErrUnexpectedModelSignal, resp.StopReason)
		}
	}

	a.logger.Warn("agent.turn.iteration_cap", "agent", a.name, "max_iterations", a.maxIterations)

	return &Result{Reply: maxIterationsReply, History: history, State: state, ToolsUsed: toolsUsed}, nil
}

// dispatch executes one tool invocation and converts the outcome into a
// result part. Failures are absorbed: the error message becomes a flagged
// result the model receives as data.
func (a *Agent) dispatch(ctx context.Context, invocation core.ToolUsePart, toolsUsed *[]string) core.Part {
	start := time.Now()

	payload, err := a.config.ExecuteTool(ctx, invocation.Name, invocation.Input)
	if err != nil {
		a.logger.Error("agent.tool.error", "agent", a.name, "tool", invocation.Name, "error", err.Error())

		return core.ToolResultPart{
			ToolUseID: invocation.ID,
			Content:   fmt.Sprintf("Error: %s", err),
			IsError:   true,
		}
	}

	*toolsUsed = append(*toolsUsed, invocation.Name)

	serialized, err := json.Marshal(payload)
	if err != nil {
		return core.ToolResultPart{
			ToolUseID: invocation.ID,
			Content:   fmt.Sprintf("Error: serializing result: %s", err),
			IsError:   true,
		}
	}

	a.logger.Info("agent.tool.success", "agent", a.name, "tool", invocation.Name, "duration_ms", time.Since(start).Milliseconds())

	return core.ToolResultPart{ToolUseID: invocation.ID, Content: string(serialized)}
}

// send performs one provider round-trip, applying the per-call timeout when
// configured.
func (a *Agent) send(ctx context.Context, req model.Request) (*model.Response, error) {
	if a.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.modelTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.provider.Send(ctx, req)
	a.logger.Debug("agent.model.call", "agent", a.name, "provider", a.provider.Info().Provider, "duration_ms", time.Since(start).Milliseconds(), "success", err == nil)

	return resp, err
}

// toolDefinitions converts the config's catalog into the wire shape.
func (a *Agent) toolDefinitions() []model.ToolDefinition {
	defs := a.config.ToolDefinitions()
	out := make([]model.ToolDefinition, len(defs))
	for i, d := range defs {
		out[i] = model.ToolDefinition{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.Parameters,
		}
	}
	return out
}
