package tripmesh

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/session"
	"github.com/hupe1980/tripmesh/trip"
)

// -----------------------------------------------------------------------------
// Construction
// -----------------------------------------------------------------------------

func TestNew_Defaults(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(model.TextResponse("hi")))
	require.NoError(t, err)
	assert.Equal(t, trip.Registration().DisplayName, planner.Agent().Name())
}

func TestNew_UnknownAgentType(t *testing.T) {
	_, err := New(model.NewScriptedProvider(model.TextResponse("hi")), func(o *Options) {
		o.AgentType = "hiking"
	})
	require.Error(t, err)
}

// -----------------------------------------------------------------------------
// Chat
// -----------------------------------------------------------------------------

func TestChat_NewConversationGetsGeneratedID(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(model.TextResponse("Hello! Where would you like to ride?")))
	require.NoError(t, err)

	result, err := planner.Chat(context.Background(), "Hi there", "", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ConversationID)
	assert.Equal(t, "Hello! Where would you like to ride?", result.Reply)
	assert.Empty(t, result.ToolsUsed)
}

func TestChat_ConversationIDStableAcrossTurns(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(
		model.TextResponse("first"),
		model.TextResponse("second"),
	))
	require.NoError(t, err)

	first, err := planner.Chat(context.Background(), "turn one", "", nil)
	require.NoError(t, err)

	second, err := planner.Chat(context.Background(), "turn two", first.ConversationID, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)
}

func TestChat_HistoryAccumulatesAcrossTurns(t *testing.T) {
	store := session.NewInMemoryStore()
	planner, err := New(model.NewScriptedProvider(
		model.TextResponse("first"),
		model.TextResponse("second"),
	), func(o *Options) {
		o.SessionStore = store
	})
	require.NoError(t, err)

	first, err := planner.Chat(context.Background(), "turn one", "", nil)
	require.NoError(t, err)

	afterFirst, err := store.GetOrCreate(first.ConversationID)
	require.NoError(t, err)
	require.Len(t, afterFirst.History, 2)

	_, err = planner.Chat(context.Background(), "turn two", first.ConversationID, nil)
	require.NoError(t, err)

	afterSecond, err := store.GetOrCreate(first.ConversationID)
	require.NoError(t, err)
	require.Len(t, afterSecond.History, 4)

	// Earlier turns are untouched: the stored history only ever grows.
	for i, msg := range afterFirst.History {
		assert.Equal(t, msg.Role, afterSecond.History[i].Role)
		assert.Equal(t, msg.Text(), afterSecond.History[i].Text())
	}
}

func TestChat_SeedStateAppliesOnlyToNewSessions(t *testing.T) {
	store := session.NewInMemoryStore()
	planner, err := New(model.NewScriptedProvider(
		model.TextResponse("first"),
		model.TextResponse("second"),
	), func(o *Options) {
		o.SessionStore = store
	})
	require.NoError(t, err)

	first, err := planner.Chat(context.Background(), "turn one", "", map[string]any{"bike": "gravel"})
	require.NoError(t, err)
	assert.Equal(t, "gravel", first.State["bike"])

	// A resume attempt with different seed state leaves the stored state alone.
	second, err := planner.Chat(context.Background(), "turn two", first.ConversationID, map[string]any{"bike": "road"})
	require.NoError(t, err)
	assert.Equal(t, "gravel", second.State["bike"])
}

func TestChat_ToolRoundTripEndToEnd(t *testing.T) {
	provider := model.NewScriptedProvider(
		model.ToolUseResponse(
			core.TextPart{Text: "Let me look that up."},
			core.ToolUsePart{ID: "call_1", Name: trip.ToolGetRoute, Input: map[string]any{
				"start": "Amsterdam",
				"end":   "Copenhagen",
			}},
		),
		model.TextResponse("The route is about 680 km."),
	)

	planner, err := New(provider)
	require.NoError(t, err)

	result, err := planner.Chat(context.Background(), "How far is Amsterdam to Copenhagen?", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "The route is about 680 km.", result.Reply)
	assert.Equal(t, []string{trip.ToolGetRoute}, result.ToolsUsed)

	// The second request carried the tool result back to the model.
	requests := provider.Requests()
	require.Len(t, requests, 2)
	last := requests[1].Messages[len(requests[1].Messages)-1]
	results := last.ToolResults()
	require.Len(t, results, 1)
	assert.Equal(t, "call_1", results[0].ToolUseID)
	assert.False(t, results[0].IsError)
	assert.Contains(t, results[0].Content, "680")
}

// -----------------------------------------------------------------------------
// ContinueChat
// -----------------------------------------------------------------------------

func TestContinueChat_UnknownConversation(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(model.TextResponse("hi")))
	require.NoError(t, err)

	_, err = planner.ContinueChat(context.Background(), "missing", "hello again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrNotFound))
}

func TestContinueChat_ResumesExistingConversation(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(
		model.TextResponse("first"),
		model.TextResponse("second"),
	))
	require.NoError(t, err)

	first, err := planner.Chat(context.Background(), "turn one", "", nil)
	require.NoError(t, err)

	second, err := planner.ContinueChat(context.Background(), first.ConversationID, "turn two")
	require.NoError(t, err)
	assert.Equal(t, "second", second.Reply)
	assert.Equal(t, first.ConversationID, second.ConversationID)
}

// -----------------------------------------------------------------------------
// Session management
// -----------------------------------------------------------------------------

func TestReset_DeletesConversation(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(model.TextResponse("hi")))
	require.NoError(t, err)

	result, err := planner.Chat(context.Background(), "hello", "", nil)
	require.NoError(t, err)

	require.NoError(t, planner.Reset(result.ConversationID))

	count, _ := planner.Sessions()
	assert.Zero(t, count)

	err = planner.Reset(result.ConversationID)
	assert.True(t, errors.Is(err, session.ErrNotFound))
}

func TestSessionsAndClear(t *testing.T) {
	planner, err := New(model.NewScriptedProvider(
		model.TextResponse("one"),
		model.TextResponse("two"),
	))
	require.NoError(t, err)

	a, err := planner.Chat(context.Background(), "hello", "", nil)
	require.NoError(t, err)
	b, err := planner.Chat(context.Background(), "hello", "", nil)
	require.NoError(t, err)
	require.NotEqual(t, a.ConversationID, b.ConversationID)

	count, ids := planner.Sessions()
	assert.Equal(t, 2, count)
	assert.ElementsMatch(t, []string{a.ConversationID, b.ConversationID}, ids)

	planner.ClearSessions()
	count, _ = planner.Sessions()
	assert.Zero(t, count)
}
