// Package tripmesh provides a high-level façade over the conversation loop
// and its services (agent factory, session store, logging) for building
// trip-planning assistants. Most applications interact with this package by:
//  1. Creating a Planner via New() with a model provider (optionally
//     overriding the default in-memory services)
//  2. Calling Chat to start or resume conversations, or ContinueChat to
//     strictly resume an existing one
//
// The façade delegates the reasoning turn to agent.Agent while owning
// session persistence and per-conversation serialization. All defaults are
// safe for local development and testing; production deployments typically
// supply a durable session store and a structured logger.
package tripmesh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/tripmesh/agent"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/internal/util"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/session"
	"github.com/hupe1980/tripmesh/trip"
)

// Options configures the Planner instance.
type Options struct {
	// SessionStore persists conversations between turns (defaults to an
	// in-memory implementation if not provided).
	SessionStore core.SessionStore

	// Factory resolves agent types. The default factory carries the cycling
	// trip planner registration; supply your own to add variants.
	Factory *agent.Factory

	// AgentType selects which registered agent variant answers turns.
	AgentType string

	// AgentOptions are forwarded to agent construction (iteration cap,
	// model timeout).
	AgentOptions []func(o *agent.Options)

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Planner is the high-level façade aggregating the conversation agent and
// its session store. It is safe for concurrent use; turns on the same
// conversation are serialized, turns on different conversations proceed in
// parallel.
type Planner struct {
	opts  Options
	agent *agent.Agent
	store core.SessionStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// TurnResult is the outcome of one conversation turn as seen by callers of
// the façade.
type TurnResult struct {
	// Reply is the assistant's final answer for this turn.
	Reply string `json:"response"`
	// ConversationID identifies the session; generated when the turn started
	// a new conversation.
	ConversationID string `json:"conversation_id"`
	// State is the session state after the turn.
	State map[string]any `json:"session_state"`
	// ToolsUsed lists tool names invoked this turn, in invocation order.
	ToolsUsed []string `json:"tools_used"`
}

// DefaultFactory returns a factory with the cycling trip planner registered.
func DefaultFactory() *agent.Factory {
	f := agent.NewFactory()
	// The registration is validated at package assembly time; a failure here
	// is a programming error.
	if err := f.Register(trip.Registration()); err != nil {
		panic(fmt.Sprintf("tripmesh: default registration invalid: %v", err))
	}
	return f
}

// New creates a new Planner with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(provider model.Provider, optFns ...func(o *Options)) (*Planner, error) {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Factory:      DefaultFactory(),
		AgentType:    trip.AgentKey,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	opts.Logger = logging.OrNoOp(opts.Logger)

	agentOptions := append([]func(o *agent.Options){func(o *agent.Options) {
		o.Logger = opts.Logger
	}}, opts.AgentOptions...)

	a, err := opts.Factory.Create(opts.AgentType, provider, agentOptions...)
	if err != nil {
		return nil, fmt.Errorf("create agent %q: %w", opts.AgentType, err)
	}

	return &Planner{
		opts:  opts,
		agent: a,
		store: opts.SessionStore,
		locks: map[string]*sync.Mutex{},
	}, nil
}

// Agent returns the underlying conversation agent.
func (p *Planner) Agent() *agent.Agent { return p.agent }

// Chat processes one user message. An empty conversationID starts a fresh
// conversation with a generated id; a known id resumes it and an unknown id
// starts a conversation under that id. The seed state is applied only when
// the turn creates the session; on resume the stored state wins.
func (p *Planner) Chat(ctx context.Context, message, conversationID string, seedState map[string]any) (*TurnResult, error) {
	if conversationID == "" {
		// Generate the id up front so the keyed lock covers the whole turn.
		conversationID = util.NewID()
	}

	unlock := p.lockConversation(conversationID)
	defer unlock()

	isNew := !p.store.Has(conversationID)

	sess, err := p.store.GetOrCreate(conversationID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if isNew && seedState != nil {
		for k, v := range seedState {
			sess.State[k] = v
		}
	}

	return p.runTurn(ctx, message, sess)
}

// ContinueChat resumes an existing conversation. Unlike Chat it refuses to
// start one: an unknown id yields session.ErrNotFound.
func (p *Planner) ContinueChat(ctx context.Context, conversationID, message string) (*TurnResult, error) {
	unlock := p.lockConversation(conversationID)
	defer unlock()

	if !p.store.Has(conversationID) {
		return nil, fmt.Errorf("conversation %q: %w", conversationID, session.ErrNotFound)
	}

	sess, err := p.store.GetOrCreate(conversationID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return p.runTurn(ctx, message, sess)
}

// runTurn executes one agent turn against the session and persists the
// result. Callers hold the conversation lock.
func (p *Planner) runTurn(ctx context.Context, message string, sess *core.Session) (*TurnResult, error) {
	p.opts.Logger.Info("planner.turn.start", "conversation_id", sess.ID, "history_len", len(sess.History))

	result, err := p.agent.Chat(ctx, message, sess.History, sess.State)
	if err != nil {
		return nil, err
	}

	sess.History = result.History
	sess.State = result.State
	sess.Updated = time.Now()

	if err := p.store.Put(sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	p.opts.Logger.Info("planner.turn.complete", "conversation_id", sess.ID, "tools_used", len(result.ToolsUsed))

	return &TurnResult{
		Reply:          result.Reply,
		ConversationID: sess.ID,
		State:          result.State,
		ToolsUsed:      result.ToolsUsed,
	}, nil
}

// Reset deletes one conversation. Unknown ids yield session.ErrNotFound.
func (p *Planner) Reset(conversationID string) error {
	unlock := p.lockConversation(conversationID)
	defer unlock()

	return p.store.Delete(conversationID)
}

// Sessions returns the number of active conversations and their ids.
func (p *Planner) Sessions() (int, []string) {
	ids := p.store.ListIDs()
	return len(ids), ids
}

// ClearSessions removes all conversations.
func (p *Planner) ClearSessions() {
	p.store.Clear()
}

// lockConversation acquires the per-conversation mutex, creating it on first
// use, and returns the matching unlock function.
func (p *Planner) lockConversation(id string) func() {
	p.mu.Lock()
	lock, ok := p.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[id] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
