package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/trip"
)

func newTestServer(t *testing.T, responses ...model.Response) *Server {
	t.Helper()

	planner, err := tripmesh.New(model.NewScriptedProvider(responses...))
	require.NoError(t, err)

	return New(Config{Planner: planner})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("hi"))

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	root := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "healthy", root["status"])
	assert.Equal(t, "Cycling Trip Planner", root["service"])

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, health["agent_initialized"])
	assert.Equal(t, float64(0), health["active_sessions"])
}

// -----------------------------------------------------------------------------
// Chat
// -----------------------------------------------------------------------------

func TestChat_NewConversation(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("Hello! Where would you like to ride?"))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "Hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[ChatResponse](t, rec)
	assert.Equal(t, "Hello! Where would you like to ride?", resp.Response)
	assert.NotEmpty(t, resp.ConversationID)
	assert.NotNil(t, resp.SessionState)
	assert.Equal(t, []string{}, resp.ToolsUsed)

	require.NotNil(t, resp.NextRequest)
	assert.Equal(t, resp.ConversationID, resp.NextRequest.ConversationID)
	assert.Empty(t, resp.NextRequest.Message)
}

func TestChat_ToolRoundTripReportsToolsUsed(t *testing.T) {
	srv := newTestServer(t,
		model.ToolUseResponse(core.ToolUsePart{
			ID:   "call_1",
			Name: trip.ToolGetWeather,
			Input: map[string]any{
				"location": "Hamburg",
				"month":    "june",
			},
		}),
		model.TextResponse("Expect around 21°C in Hamburg in June."),
	)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{
		Message: "What's the weather like in Hamburg in June?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[ChatResponse](t, rec)
	assert.Equal(t, "Expect around 21°C in Hamburg in June.", resp.Response)
	assert.Equal(t, []string{trip.ToolGetWeather}, resp.ToolsUsed)
}

func TestChat_ReusesConversation(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("first"), model.TextResponse("second"))

	first := decodeBody[ChatResponse](t,
		doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "one"}))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{
		Message:        "two",
		ConversationID: first.ConversationID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	second := decodeBody[ChatResponse](t, rec)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, "second", second.Response)
}

func TestChat_SeedStateReturned(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("noted"))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{
		Message:      "Plan a trip",
		SessionState: map[string]any{"bike": "gravel"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[ChatResponse](t, rec)
	assert.Equal(t, "gravel", resp.SessionState["bike"])
}

func TestChat_BadRequests(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("hi"))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString("{not json"))
	raw := httptest.NewRecorder()
	srv.Handler().ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestChat_ProviderFailureIs500(t *testing.T) {
	srv := newTestServer(t) // empty script: every model call fails

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "Hi"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Contains(t, body["detail"], "Error processing request")
}

// -----------------------------------------------------------------------------
// Continue
// -----------------------------------------------------------------------------

func TestContinue_ExistingConversation(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("first"), model.TextResponse("second"))

	first := decodeBody[ChatResponse](t,
		doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "one"}))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat/"+first.ConversationID+"/continue",
		ChatRequest{Message: "two"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[ChatResponse](t, rec)
	assert.Equal(t, "second", resp.Response)
	assert.Equal(t, first.ConversationID, resp.ConversationID)
}

func TestContinue_UnknownConversationIs404(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("hi"))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/chat/missing/continue", ChatRequest{Message: "two"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Contains(t, body["detail"], "missing")
}

// -----------------------------------------------------------------------------
// Reset and session management
// -----------------------------------------------------------------------------

func TestReset(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("hi"))

	first := decodeBody[ChatResponse](t,
		doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "one"}))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/reset/"+first.ConversationID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/reset/"+first.ConversationID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionsListAndClear(t *testing.T) {
	srv := newTestServer(t, model.TextResponse("one"), model.TextResponse("two"))

	a := decodeBody[ChatResponse](t,
		doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "one"}))
	b := decodeBody[ChatResponse](t,
		doJSON(t, srv.Handler(), http.MethodPost, "/chat", ChatRequest{Message: "two"}))
	require.NotEqual(t, a.ConversationID, b.ConversationID)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(2), listing["active_sessions"])
	assert.Len(t, listing["session_ids"], 2)

	rec = doJSON(t, srv.Handler(), http.MethodDelete, "/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/sessions", nil)
	listing = decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(0), listing["active_sessions"])
}
