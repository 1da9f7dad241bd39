package llm

import "context"

// Provider is the chat capability consumed by the chat service: one
// system-instructed turn within a session-scoped conversation.
type Provider interface {
	// Ready reports whether the provider holds the credentials it needs.
	// It is checked before any network call is attempted.
	Ready() error
	// Complete sends one user message under the given system instruction
	// and returns the full assistant reply. Any upstream conversational
	// context is keyed by sessionID.
	Complete(ctx context.Context, system, sessionID, userMessage string) (string, error)
	Close() error
}
