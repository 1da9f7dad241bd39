package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vimukti/vimukti-api/internal/models"
	"github.com/vimukti/vimukti-api/internal/providers/llm"
	mongorepo "github.com/vimukti/vimukti-api/internal/repositories/mongo"
	"github.com/vimukti/vimukti-api/internal/utils"
)

const (
	messageListLimit = 1000
	titleMaxLen      = 50
)

type ChatService interface {
	// SendMessage runs one chat turn: build the personalized system prompt,
	// call the LLM, persist both sides of the exchange and resolve the
	// session. Nothing is persisted when the LLM call fails.
	SendMessage(ctx context.Context, user *models.User, sessionID, message string) (string, error)
	// ListMessages returns a session's messages oldest-first, scoped to the
	// caller's own records.
	ListMessages(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error)
}

type chatService struct {
	llm      llm.Provider
	sessions mongorepo.SessionRepository
	messages mongorepo.MessageRepository
	log      *logrus.Logger
	now      func() time.Time
}

func NewChatService(provider llm.Provider, sessions mongorepo.SessionRepository, messages mongorepo.MessageRepository, log *logrus.Logger) ChatService {
	return &chatService{
		llm:      provider,
		sessions: sessions,
		messages: messages,
		log:      log,
		now:      time.Now,
	}
}

func (s *chatService) SendMessage(ctx context.Context, user *models.User, sessionID, message string) (string, error) {
	const op = "ChatService.SendMessage"

	if user == nil {
		return "", utils.E(utils.CodeUnauthorized, op, "no authenticated user", nil)
	}
	if sessionID == "" || message == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "session_id and message are required", nil)
	}

	// Credential check happens before any network or store I/O.
	if err := s.llm.Ready(); err != nil {
		return "", utils.E(utils.CodeConfig, op, "llm credential is not configured", err)
	}

	systemPrompt := llm.BuildSystemPrompt(user)

	reply, err := s.llm.Complete(ctx, systemPrompt, sessionID, message)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id":    user.ID,
			"session_id": sessionID,
		}).WithError(err).Error("llm call failed")
		return "", utils.E(utils.CodeUnavailable, op, "assistant is unavailable", err)
	}

	userMsg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    user.ID,
		Content:   message,
		Role:      models.RoleUser,
		Timestamp: s.now().UTC(),
	}
	if err := s.messages.Insert(ctx, userMsg); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to save user message", err)
	}

	// Written independently of the user message; if this fails the user
	// message stays and the turn fails, no rollback.
	assistantMsg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    user.ID,
		Content:   reply,
		Role:      models.RoleAssistant,
		Timestamp: s.now().UTC(),
	}
	if err := s.messages.Insert(ctx, assistantMsg); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to save assistant message", err)
	}

	if err := s.sessions.UpsertForTurn(ctx, sessionID, user.ID, sessionTitle(message), s.now().UTC()); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to resolve session", err)
	}

	return reply, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	const op = "ChatService.ListMessages"

	if userID == "" || sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}

	out, err := s.messages.ListBySession(ctx, userID, sessionID, messageListLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return out, nil
}

// sessionTitle derives a session title from its first user message.
func sessionTitle(message string) string {
	runes := []rune(message)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen]) + "..."
	}
	return message
}
