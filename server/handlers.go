package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/session"
)

// ChatRequest is the body accepted by the chat endpoints.
type ChatRequest struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversation_id,omitempty"`
	SessionState   map[string]any `json:"session_state,omitempty"`
}

// ChatResponse is the body returned by the chat endpoints. NextRequest is a
// pre-filled template for continuing the conversation.
type ChatResponse struct {
	Response       string         `json:"response"`
	ConversationID string         `json:"conversation_id"`
	SessionState   map[string]any `json:"session_state"`
	ToolsUsed      []string       `json:"tools_used"`
	NextRequest    *ChatRequest   `json:"next_request,omitempty"`
}

type handlers struct {
	planner *tripmesh.Planner
	logger  logging.Logger
	version string
}

func (h *handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "Cycling Trip Planner",
		"version": h.version,
	})
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, _ := h.planner.Sessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "healthy",
		"agent_initialized": true,
		"active_sessions":   count,
	})
}

func (h *handlers) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	result, err := h.planner.Chat(r.Context(), req.Message, req.ConversationID, req.SessionState)
	if err != nil {
		h.logger.Error("chat turn failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing request: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, chatResponse(result))
}

func (h *handlers) handleContinue(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversation_id")

	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	result, err := h.planner.ContinueChat(r.Context(), conversationID, req.Message)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("Conversation %s not found. Use POST /chat to start a new conversation.", conversationID))
			return
		}
		h.logger.Error("chat turn failed", "error", err, "conversation_id", conversationID)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing request: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, chatResponse(result))
}

func (h *handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversation_id")

	if err := h.planner.Reset(conversationID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing request: %s", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Conversation reset",
	})
}

func (h *handlers) handleListSessions(w http.ResponseWriter, r *http.Request) {
	count, ids := h.planner.Sessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"active_sessions": count,
		"session_ids":     ids,
	})
}

func (h *handlers) handleClearSessions(w http.ResponseWriter, r *http.Request) {
	h.planner.ClearSessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "All sessions cleared",
	})
}

// decodeChatRequest parses and validates the request body, writing the error
// response itself on failure.
func (h *handlers) decodeChatRequest(w http.ResponseWriter, r *http.Request) (ChatRequest, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %s", err))
		return ChatRequest{}, false
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Field 'message' is required")
		return ChatRequest{}, false
	}
	return req, true
}

// chatResponse shapes a turn result for the wire, normalizing nils so clients
// always see a state object and a tools list.
func chatResponse(result *tripmesh.TurnResult) ChatResponse {
	state := result.State
	if state == nil {
		state = map[string]any{}
	}
	toolsUsed := result.ToolsUsed
	if toolsUsed == nil {
		toolsUsed = []string{}
	}
	return ChatResponse{
		Response:       result.Reply,
		ConversationID: result.ConversationID,
		SessionState:   state,
		ToolsUsed:      toolsUsed,
		NextRequest: &ChatRequest{
			Message:        "",
			ConversationID: result.ConversationID,
			SessionState:   state,
		},
	}
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body of the shape {"detail": "..."}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

// loggingMiddleware logs one line per request with method, path, status and
// duration.
func loggingMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// recoveryMiddleware converts handler panics into 500 responses.
func recoveryMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("handler panic", "panic", rec, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
