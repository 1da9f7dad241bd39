package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatSession struct {
	ID     string  `bson:"id" json:"id"` // uuid v4, client-supplied on first turn
	UserID string  `bson:"user_id" json:"user_id"`
	Title  *string `bson:"title,omitempty" json:"title,omitempty"` // from first user message, immutable afterwards

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ChatMessage is append-only; a chat turn writes a user message followed by
// an assistant message.
type ChatMessage struct {
	ID        string `bson:"id" json:"id"` // uuid v4
	SessionID string `bson:"session_id" json:"session_id"`
	UserID    string `bson:"user_id" json:"user_id"`
	Content   string `bson:"content" json:"content"`
	Role      string `bson:"role" json:"role"` // user|assistant

	EmotionDetected *string `bson:"emotion_detected,omitempty" json:"emotion_detected,omitempty"` // reserved, not populated yet

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
