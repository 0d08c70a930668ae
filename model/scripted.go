package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/tripmesh/core"
)

// ScriptedProvider is a lightweight in-memory Provider useful for tests and
// examples. It replays a fixed script of responses in order and records every
// request it receives. Safe for concurrent use.
type ScriptedProvider struct {
	mu       sync.Mutex
	info     Info
	script   []Response
	next     int
	requests []Request
}

// NewScriptedProvider constructs a ScriptedProvider replaying the given
// responses in order.
func NewScriptedProvider(script ...Response) *ScriptedProvider {
	return &ScriptedProvider{
		info: Info{
			Name:          "scripted",
			Provider:      "scripted",
			SupportsTools: true,
		},
		script: script,
	}
}

// TextResponse builds a final-answer response from plain text segments.
func TextResponse(texts ...string) Response {
	parts := make([]core.Part, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, core.TextPart{Text: t})
	}
	return Response{
		StopReason: StopReasonEndTurn,
		Message:    core.Message{Role: core.RoleAssistant, Parts: parts},
	}
}

// ToolUseResponse builds a tool-invocation response. Parts may mix TextPart
// and ToolUsePart values, matching what real providers interleave.
func ToolUseResponse(parts ...core.Part) Response {
	return Response{
		StopReason: StopReasonToolUse,
		Message:    core.Message{Role: core.RoleAssistant, Parts: parts},
	}
}

// Append adds further responses to the script.
func (p *ScriptedProvider) Append(responses ...Response) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = append(p.script, responses...)
}

// Requests returns a copy of all requests received so far.
func (p *ScriptedProvider) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	reqs := make([]Request, len(p.requests))
	copy(reqs, p.requests)
	return reqs
}

// Send implements Provider; it pops the next scripted response. When the
// script runs out the last response is repeated, which lets cap tests script a
// single tool-use turn and have the model "insist" forever.
func (p *ScriptedProvider) Send(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	if len(p.script) == 0 {
		return nil, fmt.Errorf("scripted provider has no responses")
	}

	idx := p.next
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	} else {
		p.next++
	}

	resp := p.script[idx]
	return &resp, nil
}

// Info implements the Provider interface.
func (p *ScriptedProvider) Info() Info { return p.info }
