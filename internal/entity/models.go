package entity

import (
	"fmt"
	"time"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (r MessageRole) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("unknown message role: %s", r)
	}
}

// Message is a single conversation entry. Immutable once appended.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// SessionInfo carries per-session activity metadata.
type SessionInfo struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
}

type QueryLanguage string

const (
	LanguageEnglish QueryLanguage = "en"
	LanguageHindi   QueryLanguage = "hi"
)

func (l QueryLanguage) Validate() error {
	switch l {
	case LanguageEnglish, LanguageHindi:
		return nil
	default:
		return fmt.Errorf("unknown query language: %s", l)
	}
}

// QueryRequest is the input of the query pipeline.
type QueryRequest struct {
	Query         string        `json:"query"`
	Language      QueryLanguage `json:"language"`
	ArgumentsMode bool          `json:"arguments_mode"`
	AnalysisMode  bool          `json:"analysis_mode"`
	SessionID     string        `json:"session_id,omitempty"`
}
