package core

// Conversation roles used throughout the message model. Tool results are
// carried on a user-role message, mirroring the Anthropic Messages wire shape.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Part represents a polymorphic segment of a message. Concrete part types
// implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text string `json:"text"`
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// ToolUsePart is a tool invocation requested by the model. ID correlates the
// invocation with the ToolResultPart that answers it.
type ToolUsePart struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input,omitempty"`
}

// isPart implements the Part interface for ToolUsePart.
func (ToolUsePart) isPart() {}

// ToolResultPart is the outcome of a single tool invocation. Content holds the
// serialized payload on success or the failure message when IsError is set.
type ToolResultPart struct {
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error,omitempty"`
}

// isPart implements the Part interface for ToolResultPart.
func (ToolResultPart) isPart() {}

// Message holds a role plus ordered parts. The ordered sequence of messages
// forms the conversation history replayed to the model each turn.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// NewUserMessage builds a user message from plain text.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{TextPart{Text: text}}}
}

// NewAssistantMessage builds an assistant message from plain text.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Parts: []Part{TextPart{Text: text}}}
}

// Text concatenates all text parts of the message in order.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			out += tp.Text
		}
	}
	return out
}

// ToolUses returns the tool invocation parts of the message in order.
func (m Message) ToolUses() []ToolUsePart {
	var uses []ToolUsePart
	for _, p := range m.Parts {
		if tu, ok := p.(ToolUsePart); ok {
			uses = append(uses, tu)
		}
	}
	return uses
}

// ToolResults returns the tool result parts of the message in order.
func (m Message) ToolResults() []ToolResultPart {
	var results []ToolResultPart
	for _, p := range m.Parts {
		if tr, ok := p.(ToolResultPart); ok {
			results = append(results, tr)
		}
	}
	return results
}

// CloneHistory returns a shallow copy of the message slice. Messages and parts
// are treated as immutable once appended, so copying the spine is sufficient
// for callers that must not observe later appends.
func CloneHistory(history []Message) []Message {
	cloned := make([]Message, len(history))
	copy(cloned, history)
	return cloned
}
