package entity

// ChatRole tags a message sent to the generation service.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one role-tagged message of a generation request.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// LLMCompletionRequest is a single blocking generation call: ordered messages
// plus an output token budget. Model overrides the configured default when
// set. The call's deadline comes from the context.
type LLMCompletionRequest struct {
	Messages  []ChatMessage
	MaxTokens int
	Model     string
}
