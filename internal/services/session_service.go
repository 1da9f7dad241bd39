package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vimukti/vimukti-api/internal/models"
	mongorepo "github.com/vimukti/vimukti-api/internal/repositories/mongo"
	"github.com/vimukti/vimukti-api/internal/utils"
)

const sessionListLimit = 50

type SessionService interface {
	// Start creates an empty session ahead of the first message.
	Start(ctx context.Context, userID string) (*models.ChatSession, error)
	// List returns the caller's most recently active sessions.
	List(ctx context.Context, userID string) ([]models.ChatSession, error)
}

type sessionService struct {
	sessions mongorepo.SessionRepository
}

func NewSessionService(sessions mongorepo.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Start(ctx context.Context, userID string) (*models.ChatSession, error) {
	const op = "SessionService.Start"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	now := time.Now().UTC()
	title := "New Chat"
	session := &models.ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     &title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context, userID string) ([]models.ChatSession, error) {
	const op = "SessionService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	out, err := s.sessions.ListByUser(ctx, userID, sessionListLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return out, nil
}
