package models

import (
	"time"
)

type MessageType string

const (
	MessageTypeUser MessageType = "user"
	MessageTypeAI   MessageType = "ai"
)

// MessageKind marks a message that carries an inline form.
type MessageKind string

const (
	KindIntensityPrompt  MessageKind = "intensity_prompt"
	KindObjectivesPrompt MessageKind = "objectives_prompt"
)

// ChatMessage is one entry of a coach transcript. Transcripts live in memory only.
type ChatMessage struct {
	ID        uint        `json:"id"` // sequence number within the user's transcript
	UserID    int64       `json:"-"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"kind,omitempty"`
	Form      interface{} `json:"form,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatRequest is the body sent to /api/chat/{agentType} and /api/fitness/chat.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ChatResponse is the backend chat reply.
type ChatResponse struct {
	Response       string `json:"response"`
	Message        string `json:"message,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	AgentType      string `json:"agentType,omitempty"`
}

// Text returns the reply text, falling back to the message field some agents use.
func (r *ChatResponse) Text() string {
	if r == nil {
		return ""
	}
	if r.Response != "" {
		return r.Response
	}
	return r.Message
}
